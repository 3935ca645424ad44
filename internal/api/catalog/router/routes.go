// Package router đăng ký các route danh mục: stores, categories.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	cataloghdl "github.com/PhuocTran96/store-inspector-sub000/internal/api/catalog/handler"
	"github.com/PhuocTran96/store-inspector-sub000/internal/api/middleware"
	apirouter "github.com/PhuocTran96/store-inspector-sub000/internal/api/router"
)

// Register đăng ký các route danh mục lên v1.
// Người dùng thường chỉ đọc; mọi thao tác ghi yêu cầu admin.
func Register(v1 fiber.Router) error {
	storeHandler, err := cataloghdl.NewStoreHandler()
	if err != nil {
		return fmt.Errorf("tạo StoreHandler: %w", err)
	}
	categoryHandler, err := cataloghdl.NewCategoryHandler()
	if err != nil {
		return fmt.Errorf("tạo CategoryHandler: %w", err)
	}

	authRequired := []fiber.Handler{middleware.AuthMiddleware("")}
	adminRequired := []fiber.Handler{middleware.AuthMiddleware(middleware.RoleAdmin)}

	apirouter.RegisterCRUDRoutes(v1, "/stores", storeHandler, apirouter.ReadWriteConfig, authRequired, adminRequired)
	apirouter.RegisterCRUDRoutes(v1, "/categories", categoryHandler, apirouter.ReadWriteConfig, authRequired, adminRequired)

	// Danh sách ngành hàng cho màn hình chọn của field staff
	apirouter.RegisterRouteWithMiddleware(v1, "/categories", fiber.MethodGet, "/active", authRequired, categoryHandler.HandleActiveOrdered)

	return nil
}
