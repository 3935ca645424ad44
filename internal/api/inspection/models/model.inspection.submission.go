// Package inspectionmodels chứa model của nghiệp vụ kiểm tra trưng bày:
// bản ghi submission theo phiên (collection submissions) và trạng thái
// khắc phục tri-state.
package inspectionmodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hai pha của một phiên kiểm tra.
const (
	TypeBefore = "before"
	TypeAfter  = "after"
)

// MaxImagesPerCategory là số ảnh tối đa cho một ngành hàng trong một pha.
const MaxImagesPerCategory = 8

// FixState là câu trả lời khắc phục của một ngành hàng trong pha after.
type FixState string

const (
	// FixUnanswered - chưa trả lời. Một ngành hàng after có ảnh mà chưa
	// trả lời thì phiên không được phép finalize.
	FixUnanswered FixState = ""
	// FixDone - lỗi trưng bày đã được khắc phục.
	FixDone FixState = "done"
	// FixNotDone - chưa khắc phục, kèm ghi chú và ngày dự kiến xử lý.
	FixNotDone FixState = "not_done"
)

// FixStatus là trạng thái khắc phục đầy đủ của một ngành hàng after.
// Note và ExpectedResolutionDate chỉ có ý nghĩa khi State = not_done.
type FixStatus struct {
	State                  FixState `json:"state" bson:"state,omitempty"`
	Note                   string   `json:"note,omitempty" bson:"note,omitempty"`
	ExpectedResolutionDate int64    `json:"expectedResolutionDate,omitempty" bson:"expectedResolutionDate,omitempty"` // UnixMilli, 0 = chưa có
}

// Answered cho biết ngành hàng đã có câu trả lời khắc phục chưa.
func (f FixStatus) Answered() bool {
	return f.State == FixDone || f.State == FixNotDone
}

// Submission là một bản ghi kiểm tra: một ngành hàng, một pha, một phiên.
// Bản ghi chỉ được tạo một lần khi finalize, không bao giờ sửa; chỉ admin
// được xóa (kèm xóa ảnh best-effort).
//
// Index uq_session_phase (unique, sparse) chặn ghi trùng một pha của cùng
// ngành hàng trong cùng phiên khi client retry finalize song song.
type Submission struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username       string             `json:"username" bson:"username" index:"single:1"`
	UserID         primitive.ObjectID `json:"userId" bson:"userId,omitempty"`
	TdsName        string             `json:"tdsName" bson:"tdsName,omitempty"`
	StoreID        string             `json:"storeId" bson:"storeId" index:"single:1,compound:uq_session_phase"` // Mã cửa hàng (storeCode)
	StoreName      string             `json:"storeName" bson:"storeName,omitempty"`
	CategoryID     string             `json:"categoryId" bson:"categoryId" index:"compound:uq_session_phase"`
	CategoryName   string             `json:"categoryName" bson:"categoryName,omitempty"`
	Note           string             `json:"note,omitempty" bson:"note,omitempty"`
	Fixed          FixStatus          `json:"fixed" bson:"fixed,omitempty"` // Chỉ có ý nghĩa với pha after
	Images         []string           `json:"images" bson:"images,omitempty"`
	SubmissionType string             `json:"submissionType" bson:"submissionType" index:"compound:uq_session_phase,unique,sparse"` // before | after
	SessionID      string             `json:"sessionId" bson:"sessionId" index:"single:1,compound:uq_session_phase"`                // Token phiên do client sinh, chỉ duy nhất theo (sessionId, storeId)
	SubmittedAt    int64              `json:"submittedAt" bson:"submittedAt" index:"single:-1"`                                     // UnixMilli
	CreatedAt      int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt      int64              `json:"updatedAt" bson:"updatedAt"`
}

// HasContent cho biết bản ghi có dữ liệu thực (ảnh hoặc ghi chú) không.
func (s Submission) HasContent() bool {
	return len(s.Images) > 0 || s.Note != ""
}
