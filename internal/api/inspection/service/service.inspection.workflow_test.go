package inspectionsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inspectionmodels "github.com/PhuocTran96/store-inspector-sub000/internal/api/inspection/models"
)

func beforeEntry(categoryID string, images int, note string) CategoryEntry {
	entry := CategoryEntry{CategoryID: categoryID, CategoryName: "Ngành " + categoryID, Note: note}
	for i := 0; i < images; i++ {
		entry.Images = append(entry.Images, "https://example.test/img.jpg")
	}
	return entry
}

func afterEntry(categoryID string, images int, fixed inspectionmodels.FixState) CategoryEntry {
	entry := beforeEntry(categoryID, images, "")
	entry.Fixed = inspectionmodels.FixStatus{State: fixed}
	return entry
}

func TestSessionDraft_HappyPath(t *testing.T) {
	draft := NewSessionDraft("s1", "100")
	assert.Equal(t, StateNoBefore, draft.State)

	added, err := draft.CaptureBefore(beforeEntry("c1", 2, ""))
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, StateBeforeCaptured, draft.State)

	require.NoError(t, draft.SelectAfterCategories([]string{"c1"}))
	assert.Equal(t, StateAfterCategorySelected, draft.State)

	require.NoError(t, draft.CaptureAfter(afterEntry("c1", 1, inspectionmodels.FixUnanswered)))
	assert.Equal(t, StateAfterCaptured, draft.State)

	// Có ảnh after mà chưa trả lời -> finalize bị từ chối, trạng thái giữ nguyên
	err = draft.Finalize()
	require.Error(t, err, "finalize phải bị từ chối khi ngành hàng có ảnh chưa trả lời")
	assert.Equal(t, StateAfterCaptured, draft.State)

	require.NoError(t, draft.AnswerFixed("c1", inspectionmodels.FixStatus{State: inspectionmodels.FixDone}))
	require.NoError(t, draft.Finalize())
	assert.Equal(t, StateFinalized, draft.State)
}

func TestSessionDraft_EmptyBeforeEntryNotCounted(t *testing.T) {
	draft := NewSessionDraft("s1", "100")

	added, err := draft.CaptureBefore(CategoryEntry{CategoryID: "c1"})
	require.NoError(t, err)
	assert.False(t, added, "entry không có ảnh lẫn ghi chú không được tính")
	assert.Equal(t, StateNoBefore, draft.State)
	assert.Empty(t, draft.EligibleAfterCategories())

	// Entry chỉ có ghi chú vẫn được tính
	added, err = draft.CaptureBefore(beforeEntry("c2", 0, "kệ bị nghiêng"))
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, StateBeforeCaptured, draft.State)
}

func TestSessionDraft_SelectRequiresEligibleCategories(t *testing.T) {
	draft := NewSessionDraft("s1", "100")

	// Chưa có before thì không được chọn
	err := draft.SelectAfterCategories([]string{"c1"})
	assert.Error(t, err, "không thể chọn ngành hàng khi chưa có dữ liệu before")

	_, err = draft.CaptureBefore(beforeEntry("c1", 1, ""))
	require.NoError(t, err)

	// Tập chọn rỗng bị từ chối
	assert.Error(t, draft.SelectAfterCategories(nil))

	// Ngành hàng ngoài tập đủ điều kiện bị từ chối
	assert.Error(t, draft.SelectAfterCategories([]string{"c1", "c_khac"}))

	assert.NoError(t, draft.SelectAfterCategories([]string{"c1"}))
}

func TestSessionDraft_CaptureAfterOnlySelectedCategories(t *testing.T) {
	draft := NewSessionDraft("s1", "100")
	_, err := draft.CaptureBefore(beforeEntry("c1", 1, ""))
	require.NoError(t, err)
	_, err = draft.CaptureBefore(beforeEntry("c2", 1, ""))
	require.NoError(t, err)
	require.NoError(t, draft.SelectAfterCategories([]string{"c1"}))

	// c2 đủ điều kiện nhưng không được chọn
	assert.Error(t, draft.CaptureAfter(afterEntry("c2", 1, inspectionmodels.FixDone)))
	assert.NoError(t, draft.CaptureAfter(afterEntry("c1", 1, inspectionmodels.FixDone)))
}

func TestSessionDraft_BackwardTransition(t *testing.T) {
	draft := NewSessionDraft("s1", "100")
	_, err := draft.CaptureBefore(beforeEntry("c1", 2, ""))
	require.NoError(t, err)
	require.NoError(t, draft.SelectAfterCategories([]string{"c1"}))
	require.NoError(t, draft.CaptureAfter(afterEntry("c1", 1, inspectionmodels.FixDone)))

	// Quay lui: bỏ tiến độ after, giữ before
	require.NoError(t, draft.Revert())
	assert.Equal(t, StateBeforeCaptured, draft.State)
	assert.Empty(t, draft.After())
	assert.Len(t, draft.Before(), 1, "dữ liệu before phải được giữ nguyên sau khi quay lui")

	// Không thể quay lui khi chưa vào pha after
	assert.Error(t, draft.Revert())

	// Sau khi quay lui vẫn đi tiếp được
	require.NoError(t, draft.SelectAfterCategories([]string{"c1"}))
	require.NoError(t, draft.CaptureAfter(afterEntry("c1", 0, inspectionmodels.FixUnanswered)))
	assert.NoError(t, draft.Finalize())
}

func TestValidateFinalize_Matrix(t *testing.T) {
	cases := []struct {
		name    string
		before  []CategoryEntry
		after   []CategoryEntry
		wantErr bool
	}{
		{
			name:    "before rỗng bị từ chối",
			before:  nil,
			after:   []CategoryEntry{afterEntry("c1", 0, inspectionmodels.FixDone)},
			wantErr: true,
		},
		{
			name:    "after rỗng bị từ chối",
			before:  []CategoryEntry{beforeEntry("c1", 1, "")},
			after:   nil,
			wantErr: true,
		},
		{
			name:    "after có ảnh chưa trả lời bị từ chối",
			before:  []CategoryEntry{beforeEntry("c1", 1, "")},
			after:   []CategoryEntry{afterEntry("c1", 1, inspectionmodels.FixUnanswered)},
			wantErr: true,
		},
		{
			name:    "after có ảnh đã trả lời done được chấp nhận",
			before:  []CategoryEntry{beforeEntry("c1", 1, "")},
			after:   []CategoryEntry{afterEntry("c1", 1, inspectionmodels.FixDone)},
			wantErr: false,
		},
		{
			name:    "after có ảnh trả lời not_done được chấp nhận",
			before:  []CategoryEntry{beforeEntry("c1", 1, "")},
			after:   []CategoryEntry{afterEntry("c1", 3, inspectionmodels.FixNotDone)},
			wantErr: false,
		},
		{
			name:    "after không ảnh chưa trả lời vẫn được chấp nhận",
			before:  []CategoryEntry{beforeEntry("c1", 1, "")},
			after:   []CategoryEntry{afterEntry("c1", 0, inspectionmodels.FixUnanswered)},
			wantErr: false,
		},
		{
			name:   "một ngành vi phạm kéo cả phiên bị từ chối",
			before: []CategoryEntry{beforeEntry("c1", 1, ""), beforeEntry("c2", 1, "")},
			after: []CategoryEntry{
				afterEntry("c1", 1, inspectionmodels.FixDone),
				afterEntry("c2", 2, inspectionmodels.FixUnanswered),
			},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateFinalize(tc.before, tc.after)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// Kịch bản đầy đủ: before 2 ảnh, after không ảnh với fixed=not_done
// kèm ghi chú -> finalize thành công.
func TestSessionDraft_EndToEnd_UnfixedWithoutImages(t *testing.T) {
	draft := NewSessionDraft("phien-1", "100")

	_, err := draft.CaptureBefore(beforeEntry("c1", 2, ""))
	require.NoError(t, err)
	require.NoError(t, draft.SelectAfterCategories([]string{"c1"}))

	after := afterEntry("c1", 0, inspectionmodels.FixNotDone)
	after.Fixed.Note = "kệ bị nứt"
	require.NoError(t, draft.CaptureAfter(after))

	require.NoError(t, draft.Finalize())
	assert.Equal(t, StateFinalized, draft.State)
}

// Kịch bản đầy đủ: một ngành hàng after có 3 ảnh nhưng chưa trả lời
// -> finalize bị từ chối.
func TestSessionDraft_EndToEnd_UnansweredWithImagesRejected(t *testing.T) {
	draft := NewSessionDraft("phien-2", "100")

	_, err := draft.CaptureBefore(beforeEntry("c1", 2, ""))
	require.NoError(t, err)
	_, err = draft.CaptureBefore(beforeEntry("c2", 1, ""))
	require.NoError(t, err)
	require.NoError(t, draft.SelectAfterCategories([]string{"c1", "c2"}))

	require.NoError(t, draft.CaptureAfter(afterEntry("c1", 0, inspectionmodels.FixNotDone)))
	require.NoError(t, draft.CaptureAfter(afterEntry("c2", 3, inspectionmodels.FixUnanswered)))

	assert.Error(t, draft.Finalize())
	assert.Equal(t, StateAfterCaptured, draft.State)
}

func TestSessionDraft_ImageLimit(t *testing.T) {
	draft := NewSessionDraft("s1", "100")

	_, err := draft.CaptureBefore(beforeEntry("c1", inspectionmodels.MaxImagesPerCategory+1, ""))
	assert.Error(t, err, "quá %d ảnh phải bị từ chối", inspectionmodels.MaxImagesPerCategory)

	_, err = draft.CaptureBefore(beforeEntry("c1", inspectionmodels.MaxImagesPerCategory, ""))
	assert.NoError(t, err)
}
