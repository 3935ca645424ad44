// Package database quản lý kết nối MongoDB và khởi tạo index
// cho các collection dựa trên struct tag của model.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/PhuocTran96/store-inspector-sub000/config"
	"github.com/PhuocTran96/store-inspector-sub000/internal/logger"
)

// GetInstance tạo kết nối MongoDB mới từ cấu hình và kiểm tra bằng Ping.
func GetInstance(c *config.Configuration) (*mongo.Client, error) {
	if c == nil {
		return nil, fmt.Errorf("cấu hình không được để trống")
	}

	clientOpts := options.Client().
		ApplyURI(c.MongoDB_ConnectionURI).
		SetMaxPoolSize(50).
		SetMinPoolSize(10).
		SetConnectTimeout(5 * time.Second).
		SetSocketTimeout(10 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("không thể kết nối MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("không thể ping MongoDB: %w", err)
	}

	logger.GetAppLogger().WithField("database", c.MongoDB_DBName).Info("✅ Kết nối MongoDB thành công")
	return client, nil
}
