// Package common chứa các định nghĩa dùng chung cho toàn bộ ứng dụng:
// mã lỗi, thông điệp, cấu trúc Error chuẩn và chuyển đổi lỗi MongoDB.
package common

import (
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
)

// ============================================
// HTTP STATUS CODES
// ============================================

const (
	StatusOK                  = http.StatusOK                  // 200
	StatusCreated             = http.StatusCreated             // 201
	StatusBadRequest          = http.StatusBadRequest          // 400
	StatusUnauthorized        = http.StatusUnauthorized        // 401
	StatusForbidden           = http.StatusForbidden           // 403
	StatusNotFound            = http.StatusNotFound            // 404
	StatusConflict            = http.StatusConflict            // 409
	StatusUnprocessable       = http.StatusUnprocessableEntity // 422
	StatusTooManyRequests     = http.StatusTooManyRequests     // 429
	StatusInternalServerError = http.StatusInternalServerError // 500
	StatusServiceUnavailable  = http.StatusServiceUnavailable  // 503
)

// ============================================
// THÔNG ĐIỆP CHUẨN
// ============================================

const (
	MsgSuccess           = "Thao tác thành công"
	MsgErrorInternal     = "Lỗi hệ thống, vui lòng thử lại sau"
	MsgErrorNotFound     = "Không tìm thấy dữ liệu"
	MsgErrorDuplicate    = "Dữ liệu đã tồn tại"
	MsgErrorInvalidInput = "Dữ liệu đầu vào không hợp lệ"
	MsgErrorUnauthorized = "Chưa xác thực hoặc phiên đã hết hạn"
	MsgErrorForbidden    = "Không có quyền thực hiện thao tác này"
	MsgErrorInvalidState = "Trạng thái không hợp lệ cho thao tác này"
	MsgErrorDBConnection = "Không thể kết nối cơ sở dữ liệu"
)

// ============================================
// ERROR CODE - phân loại lỗi theo nhóm
// ============================================

// ErrorCode định danh một loại lỗi cụ thể trong hệ thống.
// Code có dạng <CATEGORY>_<SEQ>, ví dụ: AUTH_001, VAL_002.
type ErrorCode struct {
	Code        string // Mã lỗi duy nhất, ví dụ: AUTH_001
	Category    string // Nhóm lỗi: SYS, AUTH, VAL, DB, BIZ
	SubCategory string // Nhóm con, ví dụ: TOKEN, INPUT
	Description string // Mô tả ngắn về loại lỗi
}

// Các nhóm lỗi chính
const (
	CategorySystem     = "SYS"
	CategoryAuth       = "AUTH"
	CategoryValidation = "VAL"
	CategoryDatabase   = "DB"
	CategoryBusiness   = "BIZ"
)

var (
	// SYS - lỗi hệ thống
	ErrCodeSystem = ErrorCode{Code: "SYS_001", Category: CategorySystem, SubCategory: "INTERNAL", Description: "Lỗi hệ thống không xác định"}

	// AUTH - lỗi xác thực/phân quyền
	ErrCodeAuthCredentials = ErrorCode{Code: "AUTH_001", Category: CategoryAuth, SubCategory: "CREDENTIALS", Description: "Thông tin đăng nhập không đúng"}
	ErrCodeAuthToken       = ErrorCode{Code: "AUTH_002", Category: CategoryAuth, SubCategory: "TOKEN", Description: "Token không hợp lệ hoặc hết hạn"}
	ErrCodeAuthForbidden   = ErrorCode{Code: "AUTH_003", Category: CategoryAuth, SubCategory: "PERMISSION", Description: "Không đủ quyền truy cập"}

	// VAL - lỗi dữ liệu đầu vào
	ErrCodeValidationInput  = ErrorCode{Code: "VAL_001", Category: CategoryValidation, SubCategory: "INPUT", Description: "Dữ liệu đầu vào không hợp lệ"}
	ErrCodeValidationFormat = ErrorCode{Code: "VAL_002", Category: CategoryValidation, SubCategory: "FORMAT", Description: "Định dạng dữ liệu không hợp lệ"}

	// DB - lỗi cơ sở dữ liệu
	ErrCodeDatabaseConnection = ErrorCode{Code: "DB_001", Category: CategoryDatabase, SubCategory: "CONNECTION", Description: "Lỗi kết nối cơ sở dữ liệu"}
	ErrCodeDatabaseQuery      = ErrorCode{Code: "DB_002", Category: CategoryDatabase, SubCategory: "QUERY", Description: "Lỗi truy vấn cơ sở dữ liệu"}

	// BIZ - lỗi nghiệp vụ
	ErrCodeBusinessNotFound  = ErrorCode{Code: "BIZ_001", Category: CategoryBusiness, SubCategory: "NOT_FOUND", Description: "Không tìm thấy dữ liệu nghiệp vụ"}
	ErrCodeBusinessState     = ErrorCode{Code: "BIZ_002", Category: CategoryBusiness, SubCategory: "STATE", Description: "Trạng thái nghiệp vụ không hợp lệ"}
	ErrCodeBusinessOperation = ErrorCode{Code: "BIZ_003", Category: CategoryBusiness, SubCategory: "OPERATION", Description: "Thao tác nghiệp vụ không được phép"}
)

// ============================================
// ERROR - cấu trúc lỗi chuẩn của ứng dụng
// ============================================

// Error là lỗi chuẩn của ứng dụng, mang theo mã lỗi, thông điệp
// cho người dùng, HTTP status và chi tiết bổ sung (nếu có).
type Error struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	StatusCode int                    `json:"statusCode"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

// Error triển khai interface error.
func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code.Code, e.Message)
}

// Is cho phép so sánh lỗi qua errors.Is dựa trên mã lỗi.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code.Code == t.Code.Code
}

// WithDetails trả về bản sao của lỗi kèm chi tiết bổ sung.
// Không sửa đổi lỗi gốc để các sentinel giữ nguyên giá trị.
func (e *Error) WithDetails(details map[string]interface{}) *Error {
	clone := *e
	clone.Details = details
	return &clone
}

// NewError tạo một Error mới.
func NewError(code ErrorCode, message string, statusCode int, details map[string]interface{}) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// ============================================
// SENTINEL ERRORS - các lỗi định nghĩa sẵn
// ============================================

var (
	// Xác thực
	ErrInvalidCredentials = NewError(ErrCodeAuthCredentials, "Tên đăng nhập hoặc mật khẩu không đúng", StatusUnauthorized, nil)
	ErrTokenExpired       = NewError(ErrCodeAuthToken, "Token đã hết hạn", StatusUnauthorized, nil)
	ErrTokenInvalid       = NewError(ErrCodeAuthToken, "Token không hợp lệ", StatusUnauthorized, nil)
	ErrTokenMissing       = NewError(ErrCodeAuthToken, "Thiếu token xác thực", StatusUnauthorized, nil)
	ErrForbidden          = NewError(ErrCodeAuthForbidden, MsgErrorForbidden, StatusForbidden, nil)

	// Dữ liệu đầu vào
	ErrInvalidInput  = NewError(ErrCodeValidationInput, MsgErrorInvalidInput, StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, "Định dạng dữ liệu không hợp lệ", StatusBadRequest, nil)
	ErrRequiredField = NewError(ErrCodeValidationInput, "Thiếu trường dữ liệu bắt buộc", StatusBadRequest, nil)

	// Cơ sở dữ liệu
	ErrNotFound   = NewError(ErrCodeBusinessNotFound, MsgErrorNotFound, StatusNotFound, nil)
	ErrDuplicate  = NewError(ErrCodeDatabaseQuery, MsgErrorDuplicate, StatusConflict, nil)
	ErrConnection = NewError(ErrCodeDatabaseConnection, MsgErrorDBConnection, StatusServiceUnavailable, nil)

	// Nghiệp vụ
	ErrInvalidState     = NewError(ErrCodeBusinessState, MsgErrorInvalidState, StatusUnprocessable, nil)
	ErrInvalidOperation = NewError(ErrCodeBusinessOperation, "Thao tác không được phép", StatusBadRequest, nil)
)

// ============================================
// MONGODB ERROR CONVERSION
// ============================================

// Các mã lỗi MongoDB hay gặp
const (
	MongoCodeDuplicateKey     = 11000
	MongoCodeExceededTimeout  = 50
	MongoCodeUnauthorizedCmd  = 13
	MongoCodeWriteConflict    = 112
	MongoCodeCursorNotFound   = 43
	MongoCodeNamespaceMissing = 26
)

var (
	ErrMongoDuplicate = NewError(ErrCodeDatabaseQuery, MsgErrorDuplicate, StatusConflict, nil)
	ErrMongoNetwork   = NewError(ErrCodeDatabaseConnection, MsgErrorDBConnection, StatusServiceUnavailable, nil)
	ErrMongoTimeout   = NewError(ErrCodeDatabaseConnection, "Truy vấn cơ sở dữ liệu quá thời gian cho phép", StatusServiceUnavailable, nil)
	ErrMongoQuery     = NewError(ErrCodeDatabaseQuery, "Lỗi truy vấn cơ sở dữ liệu", StatusInternalServerError, nil)
)

// ConvertMongoError chuyển lỗi của MongoDB driver về Error chuẩn của ứng dụng.
// Các tầng service luôn trả lỗi qua hàm này để handler không phải biết về driver.
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	// Lỗi đã là Error chuẩn thì giữ nguyên
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	// Không tìm thấy document
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	// Trùng khóa (unique index)
	if mongo.IsDuplicateKeyError(err) {
		return ErrMongoDuplicate
	}

	// Lỗi mạng/kết nối
	if mongo.IsNetworkError(err) {
		return ErrMongoNetwork
	}

	// Quá thời gian
	if mongo.IsTimeout(err) {
		return ErrMongoTimeout
	}

	// Lỗi lệnh cụ thể từ server
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		switch cmdErr.Code {
		case MongoCodeDuplicateKey:
			return ErrMongoDuplicate
		case MongoCodeExceededTimeout:
			return ErrMongoTimeout
		case MongoCodeNamespaceMissing, MongoCodeCursorNotFound:
			return ErrNotFound
		}
		return NewError(ErrCodeDatabaseQuery, fmt.Sprintf("Lỗi cơ sở dữ liệu: %s", cmdErr.Message), StatusInternalServerError, map[string]interface{}{
			"mongoCode": cmdErr.Code,
		})
	}

	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, we := range writeErr.WriteErrors {
			if we.Code == MongoCodeDuplicateKey {
				return ErrMongoDuplicate
			}
		}
		return ErrMongoQuery
	}

	return NewError(ErrCodeDatabaseQuery, fmt.Sprintf("Lỗi cơ sở dữ liệu: %v", err), StatusInternalServerError, nil)
}
