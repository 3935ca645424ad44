// Package inspectionhdl - Handler cho các API kiểm tra trưng bày.
package inspectionhdl

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/PhuocTran96/store-inspector-sub000/internal/api/base/handler"
	inspectiondto "github.com/PhuocTran96/store-inspector-sub000/internal/api/inspection/dto"
	inspectionsvc "github.com/PhuocTran96/store-inspector-sub000/internal/api/inspection/service"
	"github.com/PhuocTran96/store-inspector-sub000/internal/common"
	"github.com/PhuocTran96/store-inspector-sub000/internal/logger"
)

// InspectionHandler xử lý finalize, lịch sử, tra cứu ngành hàng before
// và xóa submission.
type InspectionHandler struct {
	service *inspectionsvc.SubmissionService
}

// NewInspectionHandler tạo InspectionHandler mới.
func NewInspectionHandler() (*InspectionHandler, error) {
	service, err := inspectionsvc.NewSubmissionService()
	if err != nil {
		return nil, err
	}
	return &InspectionHandler{service: service}, nil
}

// submitterFromLocals lấy thông tin người nộp từ token đã xác thực.
func submitterFromLocals(c fiber.Ctx) inspectionsvc.SubmitterInfo {
	userID, _ := c.Locals("userID").(string)
	username, _ := c.Locals("username").(string)
	return inspectionsvc.SubmitterInfo{
		UserID:   userID,
		Username: username,
	}
}

// HandleFinalize xử lý POST /inspections/finalize.
func (h *InspectionHandler) HandleFinalize(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input inspectiondto.FinalizeInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		result, err := h.service.Finalize(context.Background(), submitterFromLocals(c), &input)
		if err == nil {
			logger.LogAction(c, logger.AuditAction{
				Action:   "FINALIZE",
				Resource: "submission",
				Detail: map[string]interface{}{
					"sessionId": input.SessionID,
					"storeId":   input.StoreID,
					"images":    result.ImagesPersisted,
				},
			})
		}
		return basehdl.HandleResponse(c, result, err)
	})
}

// HandleHistory xử lý GET /inspections/history: lịch sử phiên của chính
// người dùng. Query: storeId, from, to (UnixMilli), page, limit.
func (h *InspectionHandler) HandleHistory(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		scope := h.parseHistoryScope(c)
		// Người dùng thường chỉ xem được lịch sử của mình
		username, _ := c.Locals("username").(string)
		scope.Username = username

		sessions, warnings, err := h.service.FindHistory(context.Background(), scope)
		return basehdl.HandleResponse(c, fiber.Map{
			"sessions": sessions,
			"warnings": warnings,
		}, err)
	})
}

// HandleAdminHistory xử lý GET /inspections/admin/history: lịch sử mọi
// người dùng, có thể lọc theo username.
func (h *InspectionHandler) HandleAdminHistory(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		scope := h.parseHistoryScope(c)
		scope.Username = c.Query("username")

		sessions, warnings, err := h.service.FindHistory(context.Background(), scope)
		return basehdl.HandleResponse(c, fiber.Map{
			"sessions": sessions,
			"warnings": warnings,
		}, err)
	})
}

func (h *InspectionHandler) parseHistoryScope(c fiber.Ctx) inspectionsvc.HistoryScope {
	page, limit := basehdl.ParsePagination(c)
	return inspectionsvc.HistoryScope{
		StoreID: c.Query("storeId"),
		FromMs:  int64(fiber.Query(c, "from", 0)),
		ToMs:    int64(fiber.Query(c, "to", 0)),
		Page:    page,
		Limit:   limit,
	}
}

// HandleBeforeCategories xử lý GET /inspections/sessions/:sessionId/before-categories?storeId=
func (h *InspectionHandler) HandleBeforeCategories(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		sessionID := c.Params("sessionId")
		storeID := c.Query("storeId")
		if sessionID == "" || storeID == "" {
			return basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput,
				"Thiếu sessionId hoặc storeId", common.StatusBadRequest, nil))
		}

		categories, err := h.service.FindBeforeCategories(context.Background(), sessionID, storeID)
		return basehdl.HandleResponse(c, categories, err)
	})
}

// HandleAdminDelete xử lý DELETE /inspections/admin/delete: xóa submission
// theo danh sách id, cascade xóa ảnh best-effort.
func (h *InspectionHandler) HandleAdminDelete(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input struct {
			IDs []string `json:"ids" validate:"required,min=1,max=500"`
		}
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		ids := make([]primitive.ObjectID, 0, len(input.IDs))
		for _, raw := range input.IDs {
			id, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				return basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat,
					"Danh sách chứa id không hợp lệ", common.StatusBadRequest, map[string]interface{}{"id": raw}))
			}
			ids = append(ids, id)
		}

		deleted, err := h.service.DeleteWithImages(context.Background(), ids)
		if err == nil {
			logger.LogCRUD(c, "DELETE", "submission", map[string]interface{}{
				"deletedCount": deleted,
				"at":           time.Now().UnixMilli(),
			})
		}
		return basehdl.HandleResponse(c, fiber.Map{"deletedCount": deleted}, err)
	})
}
