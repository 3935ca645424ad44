// Package mediahdl - Handler upload/xóa ảnh kiểm tra trưng bày.
package mediahdl

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/PhuocTran96/store-inspector-sub000/internal/api/base/handler"
	"github.com/PhuocTran96/store-inspector-sub000/internal/common"
	"github.com/PhuocTran96/store-inspector-sub000/internal/global"
	"github.com/PhuocTran96/store-inspector-sub000/internal/logger"
	"github.com/PhuocTran96/store-inspector-sub000/internal/storage"
)

// Giới hạn upload cho một request.
const (
	MaxFilesPerUpload = 8
	MaxFileSizeBytes  = 10 << 20 // 10MB mỗi file
)

// MediaHandler xử lý upload ảnh lên object store trước khi finalize.
type MediaHandler struct{}

// NewMediaHandler tạo MediaHandler mới.
func NewMediaHandler() (*MediaHandler, error) {
	return &MediaHandler{}, nil
}

// HandleUpload xử lý POST /media/images: nhận tối đa 8 file qua
// multipart field "files". File lỗi được bỏ qua kèm cảnh báo, các file
// còn lại vẫn upload; trả về danh sách URL public.
func (h *MediaHandler) HandleUpload(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		form, err := c.MultipartForm()
		if err != nil {
			return basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat,
				"Body phải là multipart/form-data", common.StatusBadRequest, nil))
		}

		files := form.File["files"]
		if len(files) == 0 {
			return basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput,
				"Thiếu file upload (field \"files\")", common.StatusBadRequest, nil))
		}
		if len(files) > MaxFilesPerUpload {
			return basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput,
				fmt.Sprintf("Tối đa %d file cho một lần upload", MaxFilesPerUpload), common.StatusBadRequest, nil))
		}

		store, err := storage.GetInstance(global.ServerConfig)
		if err != nil {
			return basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeSystem,
				"Object store chưa sẵn sàng", common.StatusInternalServerError, nil))
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		var urls []string
		var warnings []string
		for _, fileHeader := range files {
			url, err := uploadOne(ctx, store, fileHeader)
			if err != nil {
				logger.GetErrorLogger().WithError(err).
					WithField("file", fileHeader.Filename).
					Warn("Bỏ qua file upload lỗi")
				warnings = append(warnings, fmt.Sprintf("%s: %v", fileHeader.Filename, err))
				continue
			}
			urls = append(urls, url)
		}

		if len(urls) == 0 {
			return basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput,
				"Không upload được file nào", common.StatusBadRequest, map[string]interface{}{
					"warnings": warnings,
				}))
		}

		logger.LogAction(c, logger.AuditAction{
			Action:   "UPLOAD",
			Resource: "image",
			Detail:   map[string]interface{}{"uploaded": len(urls), "failed": len(warnings)},
		})
		return basehdl.HandleResponse(c, fiber.Map{
			"urls":     urls,
			"warnings": warnings,
		}, nil)
	})
}

func uploadOne(ctx context.Context, store *storage.ObjectStore, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > MaxFileSizeBytes {
		return "", fmt.Errorf("file vượt quá %dMB", MaxFileSizeBytes>>20)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("không thể mở file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxFileSizeBytes+1))
	if err != nil {
		return "", fmt.Errorf("không thể đọc file: %w", err)
	}
	if len(data) > MaxFileSizeBytes {
		return "", fmt.Errorf("file vượt quá %dMB", MaxFileSizeBytes>>20)
	}

	contentType := fileHeader.Header.Get("Content-Type")
	return store.PutImage(ctx, data, contentType)
}

// HandleDelete xử lý DELETE /media/images: xóa ảnh theo danh sách URL,
// best-effort: URL lỗi được báo lại nhưng không chặn các URL còn lại.
func (h *MediaHandler) HandleDelete(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input struct {
			URLs []string `json:"urls" validate:"required,min=1,max=100"`
		}
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		store, err := storage.GetInstance(global.ServerConfig)
		if err != nil {
			return basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeSystem,
				"Object store chưa sẵn sàng", common.StatusInternalServerError, nil))
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		deleted := 0
		var warnings []string
		for _, url := range input.URLs {
			if err := store.DeleteImage(ctx, url); err != nil {
				warnings = append(warnings, url)
				continue
			}
			deleted++
		}

		logger.LogCRUD(c, "DELETE", "image", map[string]interface{}{
			"deleted": deleted,
			"failed":  len(warnings),
		})
		return basehdl.HandleResponse(c, fiber.Map{
			"deleted":  deleted,
			"warnings": warnings,
		}, nil)
	})
}
