// Package catalogdto chứa DTO cho các API danh mục cửa hàng/ngành hàng.
package catalogdto

// StoreCreateInput là body tạo cửa hàng mới.
type StoreCreateInput struct {
	StoreCode string `json:"storeCode" bson:"storeCode" validate:"required,max=64"`
	StoreName string `json:"storeName" bson:"storeName" validate:"required,max=256"`
	Region    string `json:"region" bson:"region" validate:"max=128"`
	TdsName   string `json:"tdsName" bson:"tdsName" validate:"max=128"`
	Active    bool   `json:"active" bson:"active"`
}

// StoreUpdateInput là body cập nhật cửa hàng.
type StoreUpdateInput struct {
	StoreName string `json:"storeName" bson:"storeName,omitempty" validate:"omitempty,max=256"`
	Region    string `json:"region" bson:"region,omitempty" validate:"max=128"`
	TdsName   string `json:"tdsName" bson:"tdsName,omitempty" validate:"max=128"`
	Active    *bool  `json:"active" bson:"active,omitempty"`
}

// CategoryCreateInput là body tạo ngành hàng mới.
type CategoryCreateInput struct {
	Name   string `json:"name" bson:"name" validate:"required,max=128"`
	Order  int    `json:"order" bson:"order"`
	Active bool   `json:"active" bson:"active"`
}

// CategoryUpdateInput là body cập nhật ngành hàng.
type CategoryUpdateInput struct {
	Name   string `json:"name" bson:"name,omitempty" validate:"omitempty,max=128"`
	Order  *int   `json:"order" bson:"order,omitempty"`
	Active *bool  `json:"active" bson:"active,omitempty"`
}
