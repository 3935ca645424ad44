// Package catalogsvc - Service danh mục cửa hàng và ngành hàng.
// Danh mục luôn đọc trực tiếp từ MongoDB, không giữ cache trong process.
package catalogsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	basesvc "github.com/PhuocTran96/store-inspector-sub000/internal/api/base/service"
	catalogmodels "github.com/PhuocTran96/store-inspector-sub000/internal/api/catalog/models"
	"github.com/PhuocTran96/store-inspector-sub000/internal/common"
	"github.com/PhuocTran96/store-inspector-sub000/internal/global"
)

// StoreService xử lý CRUD danh mục cửa hàng.
type StoreService struct {
	*basesvc.BaseServiceMongoImpl[catalogmodels.Store]
}

// NewStoreService tạo StoreService mới.
func NewStoreService() (*StoreService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Stores)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Stores, common.ErrNotFound)
	}
	return &StoreService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[catalogmodels.Store](coll),
	}, nil
}

// FindByStoreCode tìm cửa hàng theo mã nghiệp vụ.
func (s *StoreService) FindByStoreCode(ctx context.Context, storeCode string) (catalogmodels.Store, error) {
	return s.FindOne(ctx, bson.M{"storeCode": storeCode}, nil)
}
