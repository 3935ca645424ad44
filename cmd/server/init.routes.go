package main

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	authrouter "github.com/PhuocTran96/store-inspector-sub000/internal/api/auth/router"
	catalogrouter "github.com/PhuocTran96/store-inspector-sub000/internal/api/catalog/router"
	inspectionrouter "github.com/PhuocTran96/store-inspector-sub000/internal/api/inspection/router"
	mcprouter "github.com/PhuocTran96/store-inspector-sub000/internal/api/mcp/router"
	mediarouter "github.com/PhuocTran96/store-inspector-sub000/internal/api/media/router"
	reportrouter "github.com/PhuocTran96/store-inspector-sub000/internal/api/report/router"
	apirouter "github.com/PhuocTran96/store-inspector-sub000/internal/api/router"
)

// SetupRoutes đăng ký toàn bộ route của ứng dụng.
func SetupRoutes(app *fiber.App) {
	// Health check, không cần xác thực
	app.Get("/api/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	v1 := app.Group(apirouter.RoutePrefix.V1)

	registrars := []struct {
		name     string
		register func(fiber.Router) error
	}{
		{"auth", authrouter.Register},
		{"catalog", catalogrouter.Register},
		{"inspection", inspectionrouter.Register},
		{"mcp", mcprouter.Register},
		{"report", reportrouter.Register},
		{"media", mediarouter.Register},
	}

	for _, r := range registrars {
		if err := r.register(v1); err != nil {
			logrus.Fatalf("Không thể đăng ký route %s: %v", r.name, err)
		}
		logrus.Infof("Đã đăng ký route %s", r.name)
	}
}
