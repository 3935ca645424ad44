package catalogsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/PhuocTran96/store-inspector-sub000/internal/api/base/service"
	catalogmodels "github.com/PhuocTran96/store-inspector-sub000/internal/api/catalog/models"
	"github.com/PhuocTran96/store-inspector-sub000/internal/common"
	"github.com/PhuocTran96/store-inspector-sub000/internal/global"
)

// CategoryService xử lý CRUD danh mục ngành hàng.
type CategoryService struct {
	*basesvc.BaseServiceMongoImpl[catalogmodels.Category]
}

// NewCategoryService tạo CategoryService mới.
func NewCategoryService() (*CategoryService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Categories)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Categories, common.ErrNotFound)
	}
	return &CategoryService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[catalogmodels.Category](coll),
	}, nil
}

// FindActiveOrdered trả về các ngành hàng đang hoạt động theo thứ tự hiển thị.
func (s *CategoryService) FindActiveOrdered(ctx context.Context) ([]catalogmodels.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	return s.Find(ctx, bson.M{"active": true}, opts)
}
