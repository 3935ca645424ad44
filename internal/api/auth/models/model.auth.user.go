// Package authmodels chứa model người dùng hệ thống (collection auth_users).
package authmodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthUser là một tài khoản đăng nhập của hệ thống.
// Username lưu dạng chữ thường để so khớp không phân biệt hoa thường.
type AuthUser struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username     string             `json:"username" bson:"username" index:"single:1,unique"`
	DisplayName  string             `json:"displayName" bson:"displayName,omitempty"`
	TdsName      string             `json:"tdsName" bson:"tdsName,omitempty"` // Tên giám sát phụ trách
	Role         string             `json:"role" bson:"role"`                 // user | admin
	PasswordHash string             `json:"-" bson:"passwordHash"`
	Active       bool               `json:"active" bson:"active"`
	CreatedAt    int64              `json:"createdAt" bson:"createdAt" index:"single:-1"`
	UpdatedAt    int64              `json:"updatedAt" bson:"updatedAt"`
}
