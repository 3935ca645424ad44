// Package authdto chứa DTO cho các API xác thực và quản lý người dùng.
package authdto

// LoginInput là body của POST /auth/login.
type LoginInput struct {
	Username string `json:"username" bson:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" bson:"password" validate:"required,min=6,max=128"`
}

// LoginResult trả về sau khi đăng nhập thành công.
type LoginResult struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// UserInfo là thông tin người dùng trả về cho client (không có password).
type UserInfo struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	TdsName     string `json:"tdsName"`
	Role        string `json:"role"`
}

// UserCreateInput là body tạo người dùng mới (admin).
type UserCreateInput struct {
	Username    string `json:"username" bson:"username" validate:"required,min=3,max=64"`
	Password    string `json:"password" bson:"password" validate:"required,min=6,max=128"`
	DisplayName string `json:"displayName" bson:"displayName" validate:"max=128"`
	TdsName     string `json:"tdsName" bson:"tdsName" validate:"max=128"`
	Role        string `json:"role" bson:"role" validate:"required,oneof=user admin"`
}

// UserUpdateInput là body cập nhật người dùng (admin).
type UserUpdateInput struct {
	DisplayName string `json:"displayName" bson:"displayName,omitempty" validate:"max=128"`
	TdsName     string `json:"tdsName" bson:"tdsName,omitempty" validate:"max=128"`
	Role        string `json:"role" bson:"role,omitempty" validate:"omitempty,oneof=user admin"`
	Active      *bool  `json:"active" bson:"active,omitempty"`
}

// ChangePasswordInput là body đổi mật khẩu của chính mình.
type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=128"`
}
