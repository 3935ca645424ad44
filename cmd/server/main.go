package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/PhuocTran96/store-inspector-sub000/internal/delivery"
	"github.com/PhuocTran96/store-inspector-sub000/internal/global"
	"github.com/PhuocTran96/store-inspector-sub000/internal/logger"
	"github.com/PhuocTran96/store-inspector-sub000/internal/worker"
)

// initLogger khởi tạo logger cho toàn bộ ứng dụng.
func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Không thể khởi tạo logger: %v", err))
	}
	logger.GetAppLogger().Info("Logger đã sẵn sàng")
}

// startWorkers chạy các background worker: delivery processor, job reset
// item processing bị treo và worker dọn hàng đợi cũ.
func startWorkers(ctx context.Context) {
	log := logger.GetAppLogger()

	queue, err := delivery.NewQueue()
	if err != nil {
		log.WithError(err).Error("Không thể tạo delivery queue, bỏ qua các background worker")
		return
	}

	processor := delivery.NewProcessor(queue, global.ServerConfig)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("📦 [DELIVERY] Processor goroutine panic")
			}
		}()
		log.Info("📦 [DELIVERY] Processor bắt đầu chạy")
		processor.Start(ctx)
	}()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("📦 [DELIVERY] Stale job goroutine panic")
			}
		}()
		processor.StartStaleJob(ctx)
	}()

	cleanup := worker.NewQueueCleanupWorker(queue, 1*time.Hour, 7*24*time.Hour)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("🧹 [QUEUE_CLEANUP] Worker goroutine panic")
			}
		}()
		cleanup.Start(ctx)
	}()
}

// resolvePath trả về đường dẫn tuyệt đối tính từ thư mục gốc dự án
// (thư mục chứa config/env).
func resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	currentDir, err := os.Getwd()
	if err != nil {
		return path
	}
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(currentDir, path)
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return path
		}
		currentDir = parentDir
	}
}

// mainThread khởi tạo và chạy Fiber server trên main goroutine.
func mainThread() {
	app := InitFiberApp()
	cfg := global.ServerConfig
	log := logger.GetAppLogger()

	if cfg.EnableTLS && cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		certPath := resolvePath(cfg.TLSCertFile)
		keyPath := resolvePath(cfg.TLSKeyFile)

		cert, err := tls.LoadX509KeyPair(certPath, keyPath)
		if err != nil {
			log.Fatalf("Không thể load TLS certificate: %v", err)
		}

		ln, err := net.Listen("tcp", cfg.Address)
		if err != nil {
			log.Fatalf("Không thể tạo listener: %v", err)
		}

		tlsListener := tls.NewListener(ln, &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		})

		log.WithField("address", cfg.Address).Info("Server khởi động với HTTPS/TLS")
		if err := app.Listener(tlsListener); err != nil {
			log.Fatalf("Fiber Listener lỗi: %v", err)
		}
		return
	}

	log.WithField("address", cfg.Address).Info("Server khởi động với HTTP")
	if err := app.Listen(cfg.Address, fiber.ListenConfig{}); err != nil {
		log.Fatalf("Fiber Listen lỗi: %v", err)
	}
}

func main() {
	initLogger()
	defer logger.Close()

	InitGlobal()
	InitRegistry()
	InitDefaultData()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startWorkers(ctx)

	mainThread()
}
