// Package mcphdl - Handler cho API kế hoạch viếng thăm và đối chiếu tuân thủ.
package mcphdl

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/PhuocTran96/store-inspector-sub000/internal/api/base/handler"
	mcpdto "github.com/PhuocTran96/store-inspector-sub000/internal/api/mcp/dto"
	mcpmodels "github.com/PhuocTran96/store-inspector-sub000/internal/api/mcp/models"
	mcpsvc "github.com/PhuocTran96/store-inspector-sub000/internal/api/mcp/service"
	"github.com/PhuocTran96/store-inspector-sub000/internal/common"
	"github.com/PhuocTran96/store-inspector-sub000/internal/logger"
)

// McpHandler xử lý CRUD kế hoạch, import Excel và các API tuân thủ.
type McpHandler struct {
	*basehdl.BaseHandler[mcpmodels.VisitPlanEntry, mcpdto.PlanCreateInput, mcpdto.PlanUpdateInput]
	compliance *mcpsvc.ComplianceService
}

// NewMcpHandler tạo McpHandler mới.
func NewMcpHandler() (*McpHandler, error) {
	compliance, err := mcpsvc.NewComplianceService()
	if err != nil {
		return nil, err
	}
	return &McpHandler{
		BaseHandler: basehdl.NewBaseHandler[mcpmodels.VisitPlanEntry, mcpdto.PlanCreateInput, mcpdto.PlanUpdateInput](compliance.Plans()),
		compliance:  compliance,
	}, nil
}

// HandleImport xử lý POST /mcp/plans/import: nhận file xlsx qua
// multipart field "file". Query replace=true thì xóa kế hoạch cũ của
// các tháng có trong file trước khi ghi.
func (h *McpHandler) HandleImport(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput,
				"Thiếu file upload (field \"file\")", common.StatusBadRequest, nil))
		}

		file, err := fileHeader.Open()
		if err != nil {
			return basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat,
				"Không thể đọc file upload", common.StatusBadRequest, nil))
		}
		defer file.Close()

		replace := fiber.Query(c, "replace", false)
		result, err := h.compliance.Plans().ImportFromExcel(context.Background(), file, replace)
		if err == nil {
			logger.LogAction(c, logger.AuditAction{
				Action:   "IMPORT",
				Resource: "visit_plan",
				Detail: map[string]interface{}{
					"fileName": fileHeader.Filename,
					"imported": result.Imported,
					"skipped":  len(result.Skipped),
					"replace":  replace,
				},
			})
		}
		return basehdl.HandleResponse(c, result, err)
	})
}

// HandleUserCompliance xử lý GET /mcp/compliance?username=&year=&month=
func (h *McpHandler) HandleUserCompliance(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		username := c.Query("username")
		if username == "" {
			return basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput,
				"Thiếu username", common.StatusBadRequest, nil))
		}

		year, month, err := parseYearMonth(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		result, err := h.compliance.UserCompliance(context.Background(), username, year, month)
		return basehdl.HandleResponse(c, result, err)
	})
}

// HandleMonthlySummary xử lý GET /mcp/summary?year=&month=
func (h *McpHandler) HandleMonthlySummary(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		year, month, err := parseYearMonth(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		result, err := h.compliance.MonthlySummary(context.Background(), year, month)
		return basehdl.HandleResponse(c, result, err)
	})
}

// parseYearMonth đọc year/month từ query, mặc định tháng hiện tại UTC.
func parseYearMonth(c fiber.Ctx) (int, time.Month, error) {
	now := time.Now().UTC()
	year := fiber.Query(c, "year", now.Year())
	month := fiber.Query(c, "month", int(now.Month()))

	if year < 2000 || year > 2100 || month < 1 || month > 12 {
		return 0, 0, common.NewError(common.ErrCodeValidationInput,
			"year/month không hợp lệ", common.StatusBadRequest, nil)
	}
	return year, time.Month(month), nil
}
