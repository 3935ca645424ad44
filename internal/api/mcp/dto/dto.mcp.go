// Package mcpdto chứa DTO cho các API kế hoạch viếng thăm.
package mcpdto

// PlanCreateInput là body tạo một dòng kế hoạch.
type PlanCreateInput struct {
	Username  string  `json:"username" bson:"username" validate:"required,max=128"`
	StoreCode string  `json:"storeCode" bson:"storeCode" validate:"required,max=64"`
	Date      int64   `json:"date" bson:"date" validate:"required,gt=0"` // UnixMilli 00:00 UTC
	Value     float64 `json:"value" bson:"value" validate:"gte=0"`
}

// PlanUpdateInput là body cập nhật một dòng kế hoạch.
type PlanUpdateInput struct {
	StoreCode string   `json:"storeCode" bson:"storeCode,omitempty" validate:"omitempty,max=64"`
	Date      int64    `json:"date" bson:"date,omitempty" validate:"omitempty,gt=0"`
	Value     *float64 `json:"value" bson:"value,omitempty" validate:"omitempty,gte=0"`
}
