// Package reporthdl - Handler xuất báo cáo Excel.
package reporthdl

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/xuri/excelize/v2"

	basehdl "github.com/PhuocTran96/store-inspector-sub000/internal/api/base/handler"
	reportsvc "github.com/PhuocTran96/store-inspector-sub000/internal/api/report/service"
	"github.com/PhuocTran96/store-inspector-sub000/internal/common"
	"github.com/PhuocTran96/store-inspector-sub000/internal/logger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler xử lý các API xuất báo cáo.
type ReportHandler struct {
	service *reportsvc.ReportService
}

// NewReportHandler tạo ReportHandler mới.
func NewReportHandler() (*ReportHandler, error) {
	service, err := reportsvc.NewReportService()
	if err != nil {
		return nil, err
	}
	return &ReportHandler{service: service}, nil
}

// sendWorkbook ghi workbook ra response dưới dạng file tải về.
func sendWorkbook(c fiber.Ctx, f *excelize.File, fileName string) error {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeSystem,
			"Không thể ghi file báo cáo", common.StatusInternalServerError, nil))
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	return c.Send(buf.Bytes())
}

// HandleMcpSummary xử lý GET /reports/mcp-summary?year=&month=: báo cáo
// tổng hợp tuân thủ kế hoạch theo tháng.
func (h *ReportHandler) HandleMcpSummary(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		now := time.Now().UTC()
		year := fiber.Query(c, "year", now.Year())
		month := fiber.Query(c, "month", int(now.Month()))
		if year < 2000 || year > 2100 || month < 1 || month > 12 {
			return basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput,
				"year/month không hợp lệ", common.StatusBadRequest, nil))
		}

		f, err := h.service.McpSummaryWorkbook(context.Background(), year, time.Month(month))
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		logger.LogAction(c, logger.AuditAction{
			Action:   "EXPORT",
			Resource: "mcp_summary",
			Detail:   map[string]interface{}{"year": year, "month": month},
		})
		return sendWorkbook(c, f, fmt.Sprintf("mcp-summary-%04d-%02d.xlsx", year, month))
	})
}

// HandleSessions xử lý GET /reports/sessions?username=&storeId=&from=&to=
// xuất báo cáo chi tiết phiên kiểm tra trưng bày.
func (h *ReportHandler) HandleSessions(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		scope := reportsvc.SessionReportScope{
			Username: c.Query("username"),
			StoreID:  c.Query("storeId"),
			FromMs:   int64(fiber.Query(c, "from", 0)),
			ToMs:     int64(fiber.Query(c, "to", 0)),
		}

		f, err := h.service.SessionsWorkbook(context.Background(), scope)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		logger.LogAction(c, logger.AuditAction{
			Action:   "EXPORT",
			Resource: "sessions",
			Detail:   map[string]interface{}{"username": scope.Username, "storeId": scope.StoreID},
		})
		return sendWorkbook(c, f, fmt.Sprintf("sessions-%s.xlsx", time.Now().UTC().Format("20060102-150405")))
	})
}
