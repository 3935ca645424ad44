// Package router đăng ký các route kiểm tra trưng bày.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	inspectionhdl "github.com/PhuocTran96/store-inspector-sub000/internal/api/inspection/handler"
	"github.com/PhuocTran96/store-inspector-sub000/internal/api/middleware"
	apirouter "github.com/PhuocTran96/store-inspector-sub000/internal/api/router"
)

// Register đăng ký các route inspection lên v1.
func Register(v1 fiber.Router) error {
	handler, err := inspectionhdl.NewInspectionHandler()
	if err != nil {
		return fmt.Errorf("tạo InspectionHandler: %w", err)
	}

	authRequired := []fiber.Handler{middleware.AuthMiddleware("")}
	adminRequired := []fiber.Handler{middleware.AuthMiddleware(middleware.RoleAdmin)}

	// Finalize: ghi bền vững cả hai pha của một phiên
	apirouter.RegisterRouteWithMiddleware(v1, "/inspections", fiber.MethodPost, "/finalize", authRequired, handler.HandleFinalize)

	// Lịch sử phiên của chính người dùng
	apirouter.RegisterRouteWithMiddleware(v1, "/inspections", fiber.MethodGet, "/history", authRequired, handler.HandleHistory)

	// Ngành hàng đủ điều kiện cho pha after của một phiên
	apirouter.RegisterRouteWithMiddleware(v1, "/inspections", fiber.MethodGet, "/sessions/:sessionId/before-categories", authRequired, handler.HandleBeforeCategories)

	// Admin: lịch sử mọi người dùng + xóa submission kèm ảnh
	apirouter.RegisterRouteWithMiddleware(v1, "/inspections", fiber.MethodGet, "/admin/history", adminRequired, handler.HandleAdminHistory)
	apirouter.RegisterRouteWithMiddleware(v1, "/inspections", fiber.MethodDelete, "/admin/delete", adminRequired, handler.HandleAdminDelete)

	return nil
}
