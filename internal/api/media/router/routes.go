// Package router đăng ký các route upload/xóa ảnh.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	mediahdl "github.com/PhuocTran96/store-inspector-sub000/internal/api/media/handler"
	"github.com/PhuocTran96/store-inspector-sub000/internal/api/middleware"
	apirouter "github.com/PhuocTran96/store-inspector-sub000/internal/api/router"
)

// Register đăng ký các route media lên v1.
func Register(v1 fiber.Router) error {
	handler, err := mediahdl.NewMediaHandler()
	if err != nil {
		return fmt.Errorf("tạo MediaHandler: %w", err)
	}

	authRequired := []fiber.Handler{middleware.AuthMiddleware("")}
	adminRequired := []fiber.Handler{middleware.AuthMiddleware(middleware.RoleAdmin)}

	// Field staff upload ảnh trước khi finalize phiên
	apirouter.RegisterRouteWithMiddleware(v1, "/media", fiber.MethodPost, "/images", authRequired, handler.HandleUpload)

	// Chỉ admin được xóa ảnh trực tiếp
	apirouter.RegisterRouteWithMiddleware(v1, "/media", fiber.MethodDelete, "/images", adminRequired, handler.HandleDelete)

	return nil
}
