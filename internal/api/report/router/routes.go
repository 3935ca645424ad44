// Package router đăng ký các route xuất báo cáo.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/PhuocTran96/store-inspector-sub000/internal/api/middleware"
	reporthdl "github.com/PhuocTran96/store-inspector-sub000/internal/api/report/handler"
	apirouter "github.com/PhuocTran96/store-inspector-sub000/internal/api/router"
)

// Register đăng ký các route báo cáo lên v1. Chỉ admin được xuất.
func Register(v1 fiber.Router) error {
	handler, err := reporthdl.NewReportHandler()
	if err != nil {
		return fmt.Errorf("tạo ReportHandler: %w", err)
	}

	adminRequired := []fiber.Handler{middleware.AuthMiddleware(middleware.RoleAdmin)}

	apirouter.RegisterRouteWithMiddleware(v1, "/reports", fiber.MethodGet, "/mcp-summary", adminRequired, handler.HandleMcpSummary)
	apirouter.RegisterRouteWithMiddleware(v1, "/reports", fiber.MethodGet, "/sessions", adminRequired, handler.HandleSessions)

	return nil
}
