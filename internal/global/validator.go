package global

import (
	"github.com/go-playground/validator/v10"
)

// Validate là validator dùng chung cho toàn bộ DTO đầu vào.
var Validate *validator.Validate

// InitValidator khởi tạo validator toàn cục. Gọi một lần trong InitGlobal.
func InitValidator() {
	Validate = validator.New()
}
