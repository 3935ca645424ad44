package main

import (
	"context"
	"os"

	"go.mongodb.org/mongo-driver/bson"

	authdto "github.com/PhuocTran96/store-inspector-sub000/internal/api/auth/dto"
	authsvc "github.com/PhuocTran96/store-inspector-sub000/internal/api/auth/service"
	"github.com/PhuocTran96/store-inspector-sub000/internal/api/middleware"
	"github.com/PhuocTran96/store-inspector-sub000/internal/global"
	"github.com/PhuocTran96/store-inspector-sub000/internal/logger"
)

// InitDefaultData tạo tài khoản admin mặc định khi chạy ở chế độ
// khởi tạo (INITMODE=true) và chưa có admin nào trong hệ thống.
// Mật khẩu lấy từ ADMIN_INIT_PASSWORD; thiếu thì bỏ qua để không tạo
// tài khoản với mật khẩu đoán được.
func InitDefaultData() {
	log := logger.GetAppLogger()

	if !global.ServerConfig.InitMode {
		return
	}
	log.Info("🔄 [INIT] Bắt đầu khởi tạo dữ liệu mặc định...")

	userSvc, err := authsvc.NewAuthUserService()
	if err != nil {
		log.Fatalf("Không thể tạo AuthUserService: %v", err)
	}

	ctx := context.Background()
	count, err := userSvc.CountDocuments(ctx, bson.M{"role": middleware.RoleAdmin})
	if err != nil {
		log.Fatalf("Không thể kiểm tra admin hiện có: %v", err)
	}
	if count > 0 {
		log.Info("✅ [INIT] Đã có admin, bỏ qua tạo tài khoản mặc định")
		return
	}

	password := os.Getenv("ADMIN_INIT_PASSWORD")
	if password == "" {
		log.Warn("⚠️ [INIT] Thiếu ADMIN_INIT_PASSWORD, bỏ qua tạo admin mặc định")
		return
	}

	admin, err := userSvc.CreateUser(ctx, &authdto.UserCreateInput{
		Username:    "admin",
		Password:    password,
		DisplayName: "Administrator",
		Role:        middleware.RoleAdmin,
	})
	if err != nil {
		log.Fatalf("Không thể tạo admin mặc định: %v", err)
	}

	log.Infof("✅ [INIT] Đã tạo admin mặc định (ID: %s)", admin.ID.Hex())
}
