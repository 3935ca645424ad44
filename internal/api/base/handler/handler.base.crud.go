package basehdl

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/PhuocTran96/store-inspector-sub000/internal/common"
	"github.com/PhuocTran96/store-inspector-sub000/internal/utility"
)

// Các handler CRUD chuẩn. DTO tạo/sửa được validate rồi chuyển sang model
// qua bson tag (tên field JSON và bson của DTO phải khớp với model).

// HandleInsertOne xử lý POST /insert-one.
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleInsertOne(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		var input CreateInput
		if err := ParseRequestBody(c, &input); err != nil {
			return HandleResponse(c, nil, err)
		}

		var model T
		if err := utility.ConvertStruct(input, &model); err != nil {
			return HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Không thể chuyển đổi dữ liệu", common.StatusBadRequest, nil))
		}

		result, err := h.BaseService.InsertOne(context.Background(), model)
		return HandleResponse(c, result, err)
	})
}

// HandleInsertMany xử lý POST /insert-many.
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleInsertMany(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		var inputs []CreateInput
		if err := json.Unmarshal(c.Body(), &inputs); err != nil {
			return HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Body phải là mảng JSON", common.StatusBadRequest, nil))
		}
		if len(inputs) == 0 {
			return HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "Danh sách dữ liệu rỗng", common.StatusBadRequest, nil))
		}

		models := make([]T, 0, len(inputs))
		for _, input := range inputs {
			if err := validateInput(&input); err != nil {
				return HandleResponse(c, nil, err)
			}
			var model T
			if err := utility.ConvertStruct(input, &model); err != nil {
				return HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Không thể chuyển đổi dữ liệu", common.StatusBadRequest, nil))
			}
			models = append(models, model)
		}

		result, err := h.BaseService.InsertMany(context.Background(), models)
		return HandleResponse(c, result, err)
	})
}

// HandleFindOne xử lý GET /find-one?filter=...
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleFindOne(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.ParseFilter(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}
		result, err := h.BaseService.FindOne(context.Background(), filter, nil)
		return HandleResponse(c, result, err)
	})
}

// HandleFind xử lý GET /find?filter=...&sort=...&limit=...&skip=...
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleFind(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.ParseFilter(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}
		opts, err := ParseMongoOptions(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}
		result, err := h.BaseService.Find(context.Background(), filter, opts)
		return HandleResponse(c, result, err)
	})
}

// HandleFindById xử lý GET /find-by-id/:id.
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleFindById(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		id, err := GetIDFromParams(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}
		result, err := h.BaseService.FindOneById(context.Background(), id)
		return HandleResponse(c, result, err)
	})
}

// HandleFindWithPagination xử lý GET /find-with-pagination?page=&limit=&filter=
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleFindWithPagination(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.ParseFilter(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}
		opts, err := ParseMongoOptions(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}
		page, limit := ParsePagination(c)
		result, err := h.BaseService.FindWithPagination(context.Background(), filter, page, limit, opts)
		return HandleResponse(c, result, err)
	})
}

// HandleUpdateById xử lý PUT /update-by-id/:id.
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleUpdateById(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		id, err := GetIDFromParams(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		var input UpdateInput
		if err := ParseRequestBody(c, &input); err != nil {
			return HandleResponse(c, nil, err)
		}

		setDoc, err := utility.ToMap(input)
		if err != nil {
			return HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Không thể chuyển đổi dữ liệu", common.StatusBadRequest, nil))
		}
		delete(setDoc, "_id")

		result, err := h.BaseService.UpdateById(context.Background(), id, bson.M{"$set": setDoc})
		return HandleResponse(c, result, err)
	})
}

// HandleDeleteById xử lý DELETE /delete-by-id/:id.
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleDeleteById(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		id, err := GetIDFromParams(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}
		err = h.BaseService.DeleteById(context.Background(), id)
		return HandleResponse(c, fiber.Map{"deleted": err == nil}, err)
	})
}

// HandleDeleteMany xử lý DELETE /delete-many?filter=...
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleDeleteMany(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.ParseFilter(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}
		if len(filter) == 0 {
			return HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "Không được xóa hàng loạt với filter rỗng", common.StatusBadRequest, nil))
		}
		count, err := h.BaseService.DeleteMany(context.Background(), filter)
		return HandleResponse(c, fiber.Map{"deletedCount": count}, err)
	})
}

// HandleCount xử lý GET /count?filter=...
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleCount(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.ParseFilter(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}
		count, err := h.BaseService.CountDocuments(context.Background(), filter)
		return HandleResponse(c, fiber.Map{"count": count}, err)
	})
}

// HandleDistinct xử lý GET /distinct?field=...&filter=...
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleDistinct(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		field := c.Query("field")
		if field == "" {
			return HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "Thiếu query param field", common.StatusBadRequest, nil))
		}
		filter, err := h.ParseFilter(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}
		values, err := h.BaseService.Distinct(context.Background(), field, filter)
		return HandleResponse(c, values, err)
	})
}

// validateInput chạy validator toàn cục trên một input đơn lẻ.
func validateInput(input interface{}) error {
	if err := validateWithGlobal(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput, common.MsgErrorInvalidInput, common.StatusBadRequest, map[string]interface{}{
			"validation": err.Error(),
		})
	}
	return nil
}
