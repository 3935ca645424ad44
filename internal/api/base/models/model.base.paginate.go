// Package basemodels chứa các model dùng chung cho tầng API.
package basemodels

// PaginateResult là kết quả phân trang chuẩn cho mọi collection.
type PaginateResult[T any] struct {
	Items      []T   `json:"items"`      // Dữ liệu của trang hiện tại
	Page       int64 `json:"page"`       // Trang hiện tại (bắt đầu từ 1)
	Limit      int64 `json:"limit"`      // Số item mỗi trang
	ItemCount  int64 `json:"itemCount"`  // Số item trả về trong trang này
	Total      int64 `json:"total"`      // Tổng số item thỏa filter
	TotalPages int64 `json:"totalPages"` // Tổng số trang
}
