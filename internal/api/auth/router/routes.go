// Package router đăng ký các route xác thực và quản lý người dùng.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authhdl "github.com/PhuocTran96/store-inspector-sub000/internal/api/auth/handler"
	"github.com/PhuocTran96/store-inspector-sub000/internal/api/middleware"
	apirouter "github.com/PhuocTran96/store-inspector-sub000/internal/api/router"
)

// Register đăng ký các route auth lên v1.
func Register(v1 fiber.Router) error {
	handler, err := authhdl.NewAuthHandler()
	if err != nil {
		return fmt.Errorf("tạo AuthHandler: %w", err)
	}

	authRequired := []fiber.Handler{middleware.AuthMiddleware("")}
	adminRequired := []fiber.Handler{middleware.AuthMiddleware(middleware.RoleAdmin)}

	// Đăng nhập không cần token
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", fiber.MethodPost, "/login", nil, handler.HandleLogin)

	// Route của người dùng đã đăng nhập
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", fiber.MethodGet, "/me", authRequired, handler.HandleGetMe)
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", fiber.MethodPost, "/change-password", authRequired, handler.HandleChangePassword)

	// Quản lý người dùng (admin). insert-one dùng handler riêng để băm mật khẩu.
	apirouter.RegisterRouteWithMiddleware(v1, "/users", fiber.MethodPost, "/insert-one", adminRequired, handler.HandleCreateUser)
	crudConfig := apirouter.ReadWriteConfig
	crudConfig.InsertOne = false
	crudConfig.InsertMany = false
	apirouter.RegisterCRUDRoutes(v1, "/users", handler, crudConfig, adminRequired, adminRequired)

	return nil
}
