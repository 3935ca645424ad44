// Package storage bọc MinIO làm object store cho ảnh chụp trước/sau.
// Upload trả về URL public; xóa là best-effort (lỗi chỉ ghi log).
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/PhuocTran96/store-inspector-sub000/config"
	"github.com/PhuocTran96/store-inspector-sub000/internal/common"
	"github.com/PhuocTran96/store-inspector-sub000/internal/logger"
)

// ObjectStore là client MinIO của ứng dụng.
type ObjectStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

var (
	instance *ObjectStore
	initOnce sync.Once
	initErr  error
)

// GetInstance trả về ObjectStore singleton, khởi tạo ở lần gọi đầu.
func GetInstance(cfg *config.Configuration) (*ObjectStore, error) {
	initOnce.Do(func() {
		instance, initErr = newObjectStore(cfg)
	})
	return instance, initErr
}

func newObjectStore(cfg *config.Configuration) (*ObjectStore, error) {
	if cfg.MinIO_Endpoint == "" {
		return nil, fmt.Errorf("thiếu cấu hình MINIO_ENDPOINT")
	}

	client, err := minio.New(cfg.MinIO_Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO_AccessKey, cfg.MinIO_SecretKey, ""),
		Secure: cfg.MinIO_UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("không thể khởi tạo MinIO client: %w", err)
	}

	publicURL := cfg.MinIO_PublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.MinIO_UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.MinIO_Endpoint, cfg.MinIO_Bucket)
	}

	store := &ObjectStore{
		client:    client,
		bucket:    cfg.MinIO_Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}

	if err := store.ensureBucket(context.Background()); err != nil {
		return nil, err
	}

	logger.GetAppLogger().
		WithField("endpoint", cfg.MinIO_Endpoint).
		WithField("bucket", cfg.MinIO_Bucket).
		Info("✅ Kết nối MinIO thành công")
	return store, nil
}

// ensureBucket tạo bucket nếu chưa tồn tại.
func (s *ObjectStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("không thể kiểm tra bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("không thể tạo bucket %s: %w", s.bucket, err)
	}
	return nil
}

// PutImage upload một ảnh và trả về URL public.
// Tên object: images/<năm>/<tháng>/<uuid>.<ext>
func (s *ObjectStore) PutImage(ctx context.Context, data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", common.NewError(common.ErrCodeValidationInput, "Dữ liệu ảnh rỗng", common.StatusBadRequest, nil)
	}

	now := time.Now().UTC()
	objectName := fmt.Sprintf("images/%04d/%02d/%s%s",
		now.Year(), int(now.Month()), uuid.NewString(), extensionFor(contentType))

	_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("không thể upload ảnh %s: %w", objectName, err)
	}

	return s.publicURL + "/" + objectName, nil
}

// DeleteImage xóa ảnh theo URL. Best-effort: lỗi được ghi log và trả về
// để caller quyết định, nhưng không bao giờ được chặn nghiệp vụ chính.
func (s *ObjectStore) DeleteImage(ctx context.Context, url string) error {
	objectName := s.objectNameFromURL(url)
	if objectName == "" {
		logger.GetAppLogger().WithField("url", url).Warn("Bỏ qua xóa ảnh: URL không thuộc bucket")
		return nil
	}

	err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		logger.GetErrorLogger().WithError(err).
			WithField("object", objectName).
			Warn("Không thể xóa ảnh khỏi object store")
		return err
	}
	return nil
}

// objectNameFromURL tách tên object từ URL public của ảnh.
func (s *ObjectStore) objectNameFromURL(url string) string {
	prefix := s.publicURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return ""
	}
	return strings.TrimPrefix(url, prefix)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
