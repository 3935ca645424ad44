package inspectionsvc

import (
	"fmt"

	inspectionmodels "github.com/PhuocTran96/store-inspector-sub000/internal/api/inspection/models"
	"github.com/PhuocTran96/store-inspector-sub000/internal/common"
)

// SessionState là trạng thái của một phiên kiểm tra trước khi finalize.
type SessionState string

const (
	StateNoBefore              SessionState = "no_before"
	StateBeforeCaptured        SessionState = "before_captured"
	StateAfterCategorySelected SessionState = "after_category_selected"
	StateAfterCaptured         SessionState = "after_captured"
	StateFinalized             SessionState = "finalized"
)

// CategoryEntry là dữ liệu của một ngành hàng trong một pha.
type CategoryEntry struct {
	CategoryID   string
	CategoryName string
	Images       []string
	Note         string
	Fixed        inspectionmodels.FixStatus // Chỉ dùng ở pha after
}

// HasContent cho biết entry có ảnh hoặc ghi chú không.
func (e CategoryEntry) HasContent() bool {
	return len(e.Images) > 0 || e.Note != ""
}

// SessionDraft là state machine của một phiên:
//
//	NoBefore → BeforeCaptured → AfterCategorySelected → AfterCaptured → Finalized
//
// với nhánh quay lui từ hai trạng thái after về BeforeCaptured (bỏ toàn bộ
// tiến độ pha after, giữ dữ liệu before). Chỉ bước Finalized mới sinh ghi
// bền vững; draft tồn tại phía phiên làm việc.
type SessionDraft struct {
	SessionID string
	StoreID   string
	State     SessionState

	before        []CategoryEntry
	selectedAfter map[string]bool
	after         []CategoryEntry
}

// NewSessionDraft tạo draft mới ở trạng thái NoBefore.
func NewSessionDraft(sessionID, storeID string) *SessionDraft {
	return &SessionDraft{
		SessionID:     sessionID,
		StoreID:       storeID,
		State:         StateNoBefore,
		selectedAfter: make(map[string]bool),
	}
}

// CaptureBefore ghi nhận dữ liệu before của một ngành hàng.
// Entry không có ảnh lẫn ghi chú không được tính: ngành hàng đó sẽ không
// xuất hiện trong danh sách đủ điều kiện chụp after.
// Trả về true nếu entry được ghi nhận.
func (d *SessionDraft) CaptureBefore(entry CategoryEntry) (bool, error) {
	if d.State != StateNoBefore && d.State != StateBeforeCaptured {
		return false, common.NewError(common.ErrCodeBusinessState,
			fmt.Sprintf("Không thể thêm dữ liệu before ở trạng thái %s", d.State),
			common.StatusUnprocessable, nil)
	}
	if len(entry.Images) > inspectionmodels.MaxImagesPerCategory {
		return false, common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Mỗi ngành hàng tối đa %d ảnh", inspectionmodels.MaxImagesPerCategory),
			common.StatusBadRequest, nil)
	}
	if !entry.HasContent() {
		return false, nil
	}

	d.before = append(d.before, entry)
	d.State = StateBeforeCaptured
	return true, nil
}

// EligibleAfterCategories trả về các ngành hàng đủ điều kiện cho pha after:
// đúng bằng tập ngành hàng đã ghi nhận ở pha before.
func (d *SessionDraft) EligibleAfterCategories() []CategoryEntry {
	eligible := make([]CategoryEntry, len(d.before))
	copy(eligible, d.before)
	return eligible
}

// SelectAfterCategories chọn tập ngành hàng (khác rỗng) để chụp after.
// Mọi ngành hàng được chọn phải nằm trong tập đủ điều kiện.
func (d *SessionDraft) SelectAfterCategories(categoryIDs []string) error {
	if d.State != StateBeforeCaptured && d.State != StateAfterCategorySelected {
		return common.NewError(common.ErrCodeBusinessState,
			fmt.Sprintf("Không thể chọn ngành hàng after ở trạng thái %s", d.State),
			common.StatusUnprocessable, nil)
	}
	if len(categoryIDs) == 0 {
		return common.NewError(common.ErrCodeValidationInput,
			"Phải chọn ít nhất một ngành hàng cho pha after",
			common.StatusBadRequest, nil)
	}

	eligible := make(map[string]bool, len(d.before))
	for _, entry := range d.before {
		eligible[entry.CategoryID] = true
	}

	selected := make(map[string]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		if !eligible[id] {
			return common.NewError(common.ErrCodeBusinessOperation,
				fmt.Sprintf("Ngành hàng %s chưa có dữ liệu before, không thể chọn cho pha after", id),
				common.StatusBadRequest, nil)
		}
		selected[id] = true
	}

	d.selectedAfter = selected
	d.after = nil
	d.State = StateAfterCategorySelected
	return nil
}

// CaptureAfter ghi nhận dữ liệu after cho một ngành hàng đã chọn.
func (d *SessionDraft) CaptureAfter(entry CategoryEntry) error {
	if d.State != StateAfterCategorySelected && d.State != StateAfterCaptured {
		return common.NewError(common.ErrCodeBusinessState,
			fmt.Sprintf("Không thể thêm dữ liệu after ở trạng thái %s", d.State),
			common.StatusUnprocessable, nil)
	}
	if !d.selectedAfter[entry.CategoryID] {
		return common.NewError(common.ErrCodeBusinessOperation,
			fmt.Sprintf("Ngành hàng %s không nằm trong tập đã chọn cho pha after", entry.CategoryID),
			common.StatusBadRequest, nil)
	}
	if len(entry.Images) > inspectionmodels.MaxImagesPerCategory {
		return common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Mỗi ngành hàng tối đa %d ảnh", inspectionmodels.MaxImagesPerCategory),
			common.StatusBadRequest, nil)
	}

	d.after = append(d.after, entry)
	d.State = StateAfterCaptured
	return nil
}

// AnswerFixed cập nhật câu trả lời khắc phục cho một ngành hàng after.
func (d *SessionDraft) AnswerFixed(categoryID string, status inspectionmodels.FixStatus) error {
	if d.State != StateAfterCaptured {
		return common.NewError(common.ErrCodeBusinessState,
			fmt.Sprintf("Không thể trả lời khắc phục ở trạng thái %s", d.State),
			common.StatusUnprocessable, nil)
	}
	for i := range d.after {
		if d.after[i].CategoryID == categoryID {
			d.after[i].Fixed = status
			return nil
		}
	}
	return common.NewError(common.ErrCodeBusinessNotFound,
		fmt.Sprintf("Không tìm thấy dữ liệu after của ngành hàng %s", categoryID),
		common.StatusNotFound, nil)
}

// Revert quay lui về BeforeCaptured: bỏ tập ngành hàng đã chọn và toàn bộ
// dữ liệu after, giữ nguyên dữ liệu before.
func (d *SessionDraft) Revert() error {
	if d.State != StateAfterCategorySelected && d.State != StateAfterCaptured {
		return common.NewError(common.ErrCodeBusinessState,
			fmt.Sprintf("Không thể quay lui từ trạng thái %s", d.State),
			common.StatusUnprocessable, nil)
	}
	d.selectedAfter = make(map[string]bool)
	d.after = nil
	d.State = StateBeforeCaptured
	return nil
}

// Before trả về dữ liệu before đã ghi nhận.
func (d *SessionDraft) Before() []CategoryEntry {
	return d.before
}

// After trả về dữ liệu after đã ghi nhận.
func (d *SessionDraft) After() []CategoryEntry {
	return d.after
}

// Finalize kiểm tra điều kiện và chuyển phiên sang Finalized.
// Draft bị từ chối thì trạng thái giữ nguyên.
func (d *SessionDraft) Finalize() error {
	if d.State != StateAfterCaptured {
		return common.NewError(common.ErrCodeBusinessState,
			fmt.Sprintf("Không thể finalize ở trạng thái %s", d.State),
			common.StatusUnprocessable, nil)
	}
	if err := ValidateFinalize(d.before, d.after); err != nil {
		return err
	}
	d.State = StateFinalized
	return nil
}

// ValidateFinalize kiểm tra điều kiện finalize của một phiên:
//   - tập before không được rỗng;
//   - tập after không được rỗng;
//   - mọi ngành hàng after có ít nhất một ảnh phải có câu trả lời khắc phục.
//
// Ngành hàng after không có ảnh được phép chưa trả lời: luật chỉ khóa theo
// sự hiện diện của ảnh.
func ValidateFinalize(before, after []CategoryEntry) error {
	if len(before) == 0 {
		return common.NewError(common.ErrCodeValidationInput,
			"Phiên chưa có dữ liệu pha before, không thể finalize",
			common.StatusBadRequest, nil)
	}
	if len(after) == 0 {
		return common.NewError(common.ErrCodeValidationInput,
			"Phiên chưa có dữ liệu pha after, không thể finalize",
			common.StatusBadRequest, nil)
	}
	for _, entry := range after {
		if len(entry.Images) > 0 && !entry.Fixed.Answered() {
			return common.NewError(common.ErrCodeValidationInput,
				fmt.Sprintf("Ngành hàng %s có ảnh after nhưng chưa trả lời đã khắc phục hay chưa", entry.CategoryID),
				common.StatusBadRequest, map[string]interface{}{
					"categoryId": entry.CategoryID,
				})
		}
	}
	return nil
}
