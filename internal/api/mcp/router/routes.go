// Package router đăng ký các route kế hoạch viếng thăm và tuân thủ.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	mcphdl "github.com/PhuocTran96/store-inspector-sub000/internal/api/mcp/handler"
	"github.com/PhuocTran96/store-inspector-sub000/internal/api/middleware"
	apirouter "github.com/PhuocTran96/store-inspector-sub000/internal/api/router"
)

// Register đăng ký các route mcp lên v1. Toàn bộ đều là API quản trị.
func Register(v1 fiber.Router) error {
	handler, err := mcphdl.NewMcpHandler()
	if err != nil {
		return fmt.Errorf("tạo McpHandler: %w", err)
	}

	adminRequired := []fiber.Handler{middleware.AuthMiddleware(middleware.RoleAdmin)}

	apirouter.RegisterCRUDRoutes(v1, "/mcp/plans", handler, apirouter.ReadWriteConfig, adminRequired, adminRequired)

	// Import kế hoạch hàng loạt từ file xlsx
	apirouter.RegisterRouteWithMiddleware(v1, "/mcp/plans", fiber.MethodPost, "/import", adminRequired, handler.HandleImport)

	// Đối chiếu tuân thủ của một user và tổng hợp tháng toàn bộ user
	apirouter.RegisterRouteWithMiddleware(v1, "/mcp", fiber.MethodGet, "/compliance", adminRequired, handler.HandleUserCompliance)
	apirouter.RegisterRouteWithMiddleware(v1, "/mcp", fiber.MethodGet, "/summary", adminRequired, handler.HandleMonthlySummary)

	return nil
}
