// Package basehdl cung cấp handler CRUD generic và các tiện ích xử lý
// request/response chung (parse body, filter an toàn, phân trang, envelope JSON).
package basehdl

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/PhuocTran96/store-inspector-sub000/internal/api/base/service"
	"github.com/PhuocTran96/store-inspector-sub000/internal/common"
	"github.com/PhuocTran96/store-inspector-sub000/internal/global"
	"github.com/PhuocTran96/store-inspector-sub000/internal/logger"
)

// FilterOptions giới hạn filter mà client được phép gửi lên.
type FilterOptions struct {
	DeniedFields     []string // Các field không được phép filter
	AllowedOperators []string // Các toán tử Mongo được phép
	MaxFields        int      // Số field tối đa trong một filter
}

// DefaultFilterOptions là giới hạn filter mặc định cho mọi handler.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		DeniedFields:     []string{"password", "passwordHash", "token", "secret", "key", "hash"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists", "$regex", "$options"},
		MaxFields:        10,
	}
}

// BaseHandler là handler CRUD generic cho một model T với DTO tạo/sửa riêng.
type BaseHandler[T any, CreateInput any, UpdateInput any] struct {
	BaseService   basesvc.BaseServiceMongo[T]
	filterOptions FilterOptions
}

// NewBaseHandler tạo BaseHandler mới trên service cho trước.
func NewBaseHandler[T any, CreateInput any, UpdateInput any](service basesvc.BaseServiceMongo[T]) *BaseHandler[T, CreateInput, UpdateInput] {
	return &BaseHandler[T, CreateInput, UpdateInput]{
		BaseService:   service,
		filterOptions: DefaultFilterOptions(),
	}
}

// ============================================
// RESPONSE ENVELOPE
// ============================================

// JSONResponse ghi payload dạng JSON với charset rõ ràng.
func JSONResponse(c fiber.Ctx, statusCode int, payload interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(payload)
}

// HandleResponse trả về envelope chuẩn {code, message, data, status}.
// Lỗi *common.Error giữ nguyên status code và mã lỗi; lỗi khác thành 500.
func HandleResponse(c fiber.Ctx, data interface{}, err error) error {
	if err != nil {
		var appErr *common.Error
		if errors.As(err, &appErr) {
			return JSONResponse(c, appErr.StatusCode, fiber.Map{
				"code":    appErr.Code.Code,
				"message": appErr.Message,
				"details": appErr.Details,
				"status":  "error",
			})
		}

		logger.GetErrorLogger().WithError(err).
			WithField("path", c.Path()).
			Error("Lỗi không xác định trong handler")
		return JSONResponse(c, common.StatusInternalServerError, fiber.Map{
			"code":    common.ErrCodeSystem.Code,
			"message": common.MsgErrorInternal,
			"status":  "error",
		})
	}

	return JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    data,
		"status":  "success",
	})
}

// SafeHandler bọc logic handler trong recover để panic không làm sập server.
func SafeHandler(c fiber.Ctx, fn func() error) error {
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				logger.GetErrorLogger().
					WithField("panic", fmt.Sprintf("%v", r)).
					WithField("path", c.Path()).
					Error("Panic trong handler")
				err = HandleResponse(c, nil, common.NewError(common.ErrCodeSystem, common.MsgErrorInternal, common.StatusInternalServerError, nil))
			}
		}()
		err = fn()
	}()
	return err
}

// ============================================
// REQUEST PARSING
// ============================================

// ParseRequestBody decode body JSON vào input và chạy validator.
func ParseRequestBody(c fiber.Ctx, input interface{}) error {
	body := c.Body()
	if len(body) == 0 {
		return common.NewError(common.ErrCodeValidationInput, "Body không được để trống", common.StatusBadRequest, nil)
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, "Body không phải JSON hợp lệ", common.StatusBadRequest, map[string]interface{}{
			"error": err.Error(),
		})
	}

	if global.Validate != nil {
		if err := global.Validate.Struct(input); err != nil {
			return common.NewError(common.ErrCodeValidationInput, common.MsgErrorInvalidInput, common.StatusBadRequest, map[string]interface{}{
				"validation": err.Error(),
			})
		}
	}
	return nil
}

// validateWithGlobal chạy validator toàn cục nếu đã được khởi tạo.
func validateWithGlobal(input interface{}) error {
	if global.Validate == nil {
		return nil
	}
	return global.Validate.Struct(input)
}

// ParsePagination đọc page/limit từ query string với giá trị mặc định.
func ParsePagination(c fiber.Ctx) (page int64, limit int64) {
	page = int64(fiber.Query(c, "page", 1))
	limit = int64(fiber.Query(c, "limit", 10))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 1000 {
		limit = 1000
	}
	return page, limit
}

// GetIDFromParams đọc và kiểm tra ObjectID từ path param "id".
func GetIDFromParams(c fiber.Ctx) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "ID không hợp lệ", common.StatusBadRequest, nil)
	}
	return id, nil
}

// ============================================
// FILTER PROCESSING
// ============================================

// ParseFilter đọc filter JSON từ query "filter", kiểm tra an toàn và
// chuẩn hóa các giá trị ObjectID.
func (h *BaseHandler[T, C, U]) ParseFilter(c fiber.Ctx) (bson.M, error) {
	raw := c.Query("filter")
	if raw == "" {
		return bson.M{}, nil
	}

	var filter bson.M
	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&filter); err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, "Filter không phải JSON hợp lệ", common.StatusBadRequest, nil)
	}

	if err := h.validateFilter(filter); err != nil {
		return nil, err
	}
	return h.normalizeFilter(filter), nil
}

// validateFilter từ chối filter vượt giới hạn hoặc chứa field/toán tử cấm.
func (h *BaseHandler[T, C, U]) validateFilter(filter bson.M) error {
	if len(filter) > h.filterOptions.MaxFields {
		return common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Filter không được vượt quá %d field", h.filterOptions.MaxFields),
			common.StatusBadRequest, nil)
	}

	for field, value := range filter {
		for _, denied := range h.filterOptions.DeniedFields {
			if strings.EqualFold(field, denied) {
				return common.NewError(common.ErrCodeValidationInput,
					fmt.Sprintf("Không được phép filter theo field %s", field),
					common.StatusBadRequest, nil)
			}
		}

		if sub, ok := value.(map[string]interface{}); ok {
			for op := range sub {
				if strings.HasPrefix(op, "$") && !h.operatorAllowed(op) {
					return common.NewError(common.ErrCodeValidationInput,
						fmt.Sprintf("Toán tử %s không được phép", op),
						common.StatusBadRequest, nil)
				}
			}
		}
	}
	return nil
}

func (h *BaseHandler[T, C, U]) operatorAllowed(op string) bool {
	for _, allowed := range h.filterOptions.AllowedOperators {
		if op == allowed {
			return true
		}
	}
	return false
}

// normalizeFilter chuyển các giá trị hex string của field dạng Id thành ObjectID.
func (h *BaseHandler[T, C, U]) normalizeFilter(filter bson.M) bson.M {
	normalized := bson.M{}
	for field, value := range filter {
		normalized[field] = normalizeFilterValue(field, value)
	}
	return normalized
}

func normalizeFilterValue(field string, value interface{}) interface{} {
	isIDField := field == "_id" || strings.HasSuffix(field, "Id") || strings.HasSuffix(field, "ID")

	switch v := value.(type) {
	case string:
		if isIDField {
			if oid, err := primitive.ObjectIDFromHex(v); err == nil {
				return oid
			}
		}
		return v
	case map[string]interface{}:
		// Extended JSON {"$oid": "..."}
		if oidStr, ok := v["$oid"].(string); ok && len(v) == 1 {
			if oid, err := primitive.ObjectIDFromHex(oidStr); err == nil {
				return oid
			}
		}
		sub := bson.M{}
		for op, opValue := range v {
			if arr, ok := opValue.([]interface{}); ok && (op == "$in" || op == "$nin") {
				converted := make([]interface{}, len(arr))
				for i, item := range arr {
					converted[i] = normalizeFilterValue(field, item)
				}
				sub[op] = converted
				continue
			}
			sub[op] = opValue
		}
		return sub
	default:
		return value
	}
}

// ParseMongoOptions đọc sort/projection/limit/skip từ query string.
func ParseMongoOptions(c fiber.Ctx) (*options.FindOptions, error) {
	opts := options.Find()

	if sortRaw := c.Query("sort"); sortRaw != "" {
		sortDoc, err := parseOrderedSort(sortRaw)
		if err != nil {
			return nil, err
		}
		opts.SetSort(sortDoc)
	}

	if limit := int64(fiber.Query(c, "limit", 0)); limit > 0 {
		if limit > 1000 {
			limit = 1000
		}
		opts.SetLimit(limit)
	}
	if skip := int64(fiber.Query(c, "skip", 0)); skip > 0 {
		opts.SetSkip(skip)
	}

	return opts, nil
}

// parseOrderedSort parse sort JSON giữ nguyên thứ tự field khai báo,
// vì thứ tự key trong sort có ý nghĩa với MongoDB.
func parseOrderedSort(raw string) (bson.D, error) {
	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.UseNumber()

	token, err := decoder.Token()
	if err != nil || token != json.Delim('{') {
		return nil, common.NewError(common.ErrCodeValidationFormat, "Sort không phải JSON object hợp lệ", common.StatusBadRequest, nil)
	}

	var sortDoc bson.D
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat, "Sort không hợp lệ", common.StatusBadRequest, nil)
		}
		key := keyToken.(string)

		valueToken, err := decoder.Token()
		if err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat, "Sort không hợp lệ", common.StatusBadRequest, nil)
		}

		num, ok := valueToken.(json.Number)
		if !ok {
			return nil, common.NewError(common.ErrCodeValidationFormat, "Giá trị sort phải là 1 hoặc -1", common.StatusBadRequest, nil)
		}
		order, err := num.Int64()
		if err != nil || (order != 1 && order != -1) {
			return nil, common.NewError(common.ErrCodeValidationFormat, "Giá trị sort phải là 1 hoặc -1", common.StatusBadRequest, nil)
		}
		sortDoc = append(sortDoc, bson.E{Key: key, Value: int(order)})
	}

	return sortDoc, nil
}
