// Package inspectiondto chứa DTO cho các API kiểm tra trưng bày.
package inspectiondto

// FinalizeCategoryInput là dữ liệu một ngành hàng pha before trong finalize.
type FinalizeCategoryInput struct {
	CategoryID   string   `json:"categoryId" validate:"required,max=64"`
	CategoryName string   `json:"categoryName" validate:"max=128"`
	Images       []string `json:"images" validate:"max=8"`
	Note         string   `json:"note" validate:"max=2000"`
}

// FinalizeAfterCategoryInput là dữ liệu một ngành hàng pha after.
// Fixed: "" (chưa trả lời) | "done" | "not_done". FixNote và
// ExpectedResolutionDate chỉ có ý nghĩa khi Fixed = "not_done".
type FinalizeAfterCategoryInput struct {
	CategoryID             string   `json:"categoryId" validate:"required,max=64"`
	CategoryName           string   `json:"categoryName" validate:"max=128"`
	Images                 []string `json:"images" validate:"max=8"`
	Note                   string   `json:"note" validate:"max=2000"`
	Fixed                  string   `json:"fixed" validate:"omitempty,oneof=done not_done"`
	FixNote                string   `json:"fixNote" validate:"max=2000"`
	ExpectedResolutionDate int64    `json:"expectedResolutionDate"` // UnixMilli, 0 = chưa có
}

// FinalizeInput là body của POST /inspections/finalize: toàn bộ dữ liệu
// hai pha của một phiên, ghi bền vững một lần duy nhất.
type FinalizeInput struct {
	SessionID string                       `json:"sessionId" validate:"required,max=128"`
	StoreID   string                       `json:"storeId" validate:"required,max=64"`
	Before    []FinalizeCategoryInput      `json:"before" validate:"required,min=1,dive"`
	After     []FinalizeAfterCategoryInput `json:"after" validate:"required,min=1,dive"`
}

// FinalizeResult trả về sau khi finalize thành công.
type FinalizeResult struct {
	SessionID       string `json:"sessionId"`
	StoreID         string `json:"storeId"`
	ImagesPersisted int    `json:"imagesPersisted"` // Số ảnh đã ghi vào submission
	UnfixedCount    int    `json:"unfixedCount"`    // Số ngành hàng báo chưa khắc phục
}

// BeforeCategoryInfo là một ngành hàng đủ điều kiện cho pha after.
type BeforeCategoryInfo struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	ImageCount   int    `json:"imageCount"`
	Note         string `json:"note,omitempty"`
}
