// Package router chứa hạ tầng đăng ký route: prefix chuẩn, đăng ký route
// kèm middleware và bộ route CRUD generic theo cấu hình.
package router

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/PhuocTran96/store-inspector-sub000/internal/logger"
)

// RoutePrefix chứa các prefix chuẩn của API.
var RoutePrefix = struct {
	Base string
	V1   string
}{
	Base: "/api",
	V1:   "/api/v1",
}

// RegisterRouteWithMiddleware đăng ký một route kèm danh sách middleware.
//
// Lưu ý: với Fiber v3, truyền middleware trực tiếp vào router.Get(path, mw, handler)
// không đảm bảo middleware được gọi; phải tạo group và Use middleware trên group
// trước khi đăng ký route.
func RegisterRouteWithMiddleware(router fiber.Router, prefix, method, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	group := router.Group(prefix)
	for _, mw := range middlewares {
		group.Use(mw)
	}

	switch strings.ToUpper(method) {
	case fiber.MethodGet:
		group.Get(path, handler)
	case fiber.MethodPost:
		group.Post(path, handler)
	case fiber.MethodPut:
		group.Put(path, handler)
	case fiber.MethodPatch:
		group.Patch(path, handler)
	case fiber.MethodDelete:
		group.Delete(path, handler)
	default:
		logger.GetAppLogger().
			WithField("method", method).
			WithField("path", prefix+path).
			Warn("Bỏ qua route với HTTP method không hỗ trợ")
	}
}

// ============================================
// CRUD ROUTES
// ============================================

// CRUDHandler là bộ handler CRUD chuẩn mà BaseHandler cung cấp.
type CRUDHandler interface {
	HandleInsertOne(c fiber.Ctx) error
	HandleInsertMany(c fiber.Ctx) error
	HandleFindOne(c fiber.Ctx) error
	HandleFind(c fiber.Ctx) error
	HandleFindById(c fiber.Ctx) error
	HandleFindWithPagination(c fiber.Ctx) error
	HandleUpdateById(c fiber.Ctx) error
	HandleDeleteById(c fiber.Ctx) error
	HandleDeleteMany(c fiber.Ctx) error
	HandleCount(c fiber.Ctx) error
	HandleDistinct(c fiber.Ctx) error
}

// CRUDConfig bật/tắt từng thao tác CRUD khi đăng ký route.
type CRUDConfig struct {
	InsertOne          bool
	InsertMany         bool
	FindOne            bool
	Find               bool
	FindById           bool
	FindWithPagination bool
	UpdateById         bool
	DeleteById         bool
	DeleteMany         bool
	Count              bool
	Distinct           bool
}

// ReadOnlyConfig chỉ bật các thao tác đọc.
var ReadOnlyConfig = CRUDConfig{
	FindOne:            true,
	Find:               true,
	FindById:           true,
	FindWithPagination: true,
	Count:              true,
	Distinct:           true,
}

// ReadWriteConfig bật toàn bộ thao tác.
var ReadWriteConfig = CRUDConfig{
	InsertOne:          true,
	InsertMany:         true,
	FindOne:            true,
	Find:               true,
	FindById:           true,
	FindWithPagination: true,
	UpdateById:         true,
	DeleteById:         true,
	DeleteMany:         true,
	Count:              true,
	Distinct:           true,
}

// RegisterCRUDRoutes đăng ký bộ route CRUD chuẩn dưới prefix cho trước.
// readMiddlewares áp dụng cho thao tác đọc, writeMiddlewares cho thao tác ghi.
func RegisterCRUDRoutes(router fiber.Router, prefix string, h CRUDHandler, config CRUDConfig, readMiddlewares, writeMiddlewares []fiber.Handler) {
	if config.InsertOne {
		RegisterRouteWithMiddleware(router, prefix, fiber.MethodPost, "/insert-one", writeMiddlewares, h.HandleInsertOne)
	}
	if config.InsertMany {
		RegisterRouteWithMiddleware(router, prefix, fiber.MethodPost, "/insert-many", writeMiddlewares, h.HandleInsertMany)
	}
	if config.FindOne {
		RegisterRouteWithMiddleware(router, prefix, fiber.MethodGet, "/find-one", readMiddlewares, h.HandleFindOne)
	}
	if config.Find {
		RegisterRouteWithMiddleware(router, prefix, fiber.MethodGet, "/find", readMiddlewares, h.HandleFind)
	}
	if config.FindById {
		RegisterRouteWithMiddleware(router, prefix, fiber.MethodGet, "/find-by-id/:id", readMiddlewares, h.HandleFindById)
	}
	if config.FindWithPagination {
		RegisterRouteWithMiddleware(router, prefix, fiber.MethodGet, "/find-with-pagination", readMiddlewares, h.HandleFindWithPagination)
	}
	if config.UpdateById {
		RegisterRouteWithMiddleware(router, prefix, fiber.MethodPut, "/update-by-id/:id", writeMiddlewares, h.HandleUpdateById)
	}
	if config.DeleteById {
		RegisterRouteWithMiddleware(router, prefix, fiber.MethodDelete, "/delete-by-id/:id", writeMiddlewares, h.HandleDeleteById)
	}
	if config.DeleteMany {
		RegisterRouteWithMiddleware(router, prefix, fiber.MethodDelete, "/delete-many", writeMiddlewares, h.HandleDeleteMany)
	}
	if config.Count {
		RegisterRouteWithMiddleware(router, prefix, fiber.MethodGet, "/count", readMiddlewares, h.HandleCount)
	}
	if config.Distinct {
		RegisterRouteWithMiddleware(router, prefix, fiber.MethodGet, "/distinct", readMiddlewares, h.HandleDistinct)
	}
}
