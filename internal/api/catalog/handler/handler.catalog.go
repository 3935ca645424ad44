// Package cataloghdl - Handler CRUD cho danh mục cửa hàng/ngành hàng.
package cataloghdl

import (
	"context"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/PhuocTran96/store-inspector-sub000/internal/api/base/handler"
	catalogdto "github.com/PhuocTran96/store-inspector-sub000/internal/api/catalog/dto"
	catalogmodels "github.com/PhuocTran96/store-inspector-sub000/internal/api/catalog/models"
	catalogsvc "github.com/PhuocTran96/store-inspector-sub000/internal/api/catalog/service"
)

// StoreHandler xử lý API danh mục cửa hàng.
type StoreHandler struct {
	*basehdl.BaseHandler[catalogmodels.Store, catalogdto.StoreCreateInput, catalogdto.StoreUpdateInput]
}

// NewStoreHandler tạo StoreHandler mới.
func NewStoreHandler() (*StoreHandler, error) {
	service, err := catalogsvc.NewStoreService()
	if err != nil {
		return nil, err
	}
	return &StoreHandler{
		BaseHandler: basehdl.NewBaseHandler[catalogmodels.Store, catalogdto.StoreCreateInput, catalogdto.StoreUpdateInput](service),
	}, nil
}

// CategoryHandler xử lý API danh mục ngành hàng.
type CategoryHandler struct {
	*basehdl.BaseHandler[catalogmodels.Category, catalogdto.CategoryCreateInput, catalogdto.CategoryUpdateInput]
	service *catalogsvc.CategoryService
}

// NewCategoryHandler tạo CategoryHandler mới.
func NewCategoryHandler() (*CategoryHandler, error) {
	service, err := catalogsvc.NewCategoryService()
	if err != nil {
		return nil, err
	}
	return &CategoryHandler{
		BaseHandler: basehdl.NewBaseHandler[catalogmodels.Category, catalogdto.CategoryCreateInput, catalogdto.CategoryUpdateInput](service),
		service:     service,
	}, nil
}

// HandleActiveOrdered xử lý GET /categories/active: danh sách ngành hàng
// đang hoạt động theo thứ tự hiển thị, cho màn hình chọn ngành hàng.
func (h *CategoryHandler) HandleActiveOrdered(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		categories, err := h.service.FindActiveOrdered(context.Background())
		return basehdl.HandleResponse(c, categories, err)
	})
}
