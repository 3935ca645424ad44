package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/PhuocTran96/store-inspector-sub000/config"
	authmodels "github.com/PhuocTran96/store-inspector-sub000/internal/api/auth/models"
	catalogmodels "github.com/PhuocTran96/store-inspector-sub000/internal/api/catalog/models"
	inspectionmodels "github.com/PhuocTran96/store-inspector-sub000/internal/api/inspection/models"
	mcpmodels "github.com/PhuocTran96/store-inspector-sub000/internal/api/mcp/models"
	"github.com/PhuocTran96/store-inspector-sub000/internal/database"
	"github.com/PhuocTran96/store-inspector-sub000/internal/delivery"
	"github.com/PhuocTran96/store-inspector-sub000/internal/global"
)

// InitRegistry đăng ký các collection MongoDB vào registry dùng chung
// và tạo index cho từng collection.
func InitRegistry() {
	if err := initCollections(global.MongoDB_Session, global.ServerConfig); err != nil {
		logrus.Fatalf("Không thể khởi tạo collections: %v", err)
	}
	logrus.Info("Đã khởi tạo collection registry")

	initIndexes()
}

func initCollections(client *mongo.Client, cfg *config.Configuration) error {
	db := client.Database(cfg.MongoDB_DBName)
	colNames := []string{
		global.MongoDB_ColNames.AuthUsers,
		global.MongoDB_ColNames.Stores,
		global.MongoDB_ColNames.Categories,
		global.MongoDB_ColNames.Submissions,
		global.MongoDB_ColNames.VisitPlans,
		global.MongoDB_ColNames.DeliveryQueue,
	}

	for _, name := range colNames {
		if registered := global.RegistryCollections.Register(name, db.Collection(name)); registered {
			logrus.Infof("Đã đăng ký collection %s", name)
		} else {
			logrus.Warnf("Collection %s đã được đăng ký trước đó", name)
		}
	}
	return nil
}

// initIndexes tạo index theo tag `index` trên các model. Lỗi tạo index
// chỉ ghi log: collection đã có dữ liệu xung đột không được chặn server.
func initIndexes() {
	ctx := context.Background()

	models := []struct {
		colName string
		model   interface{}
	}{
		{global.MongoDB_ColNames.AuthUsers, authmodels.AuthUser{}},
		{global.MongoDB_ColNames.Stores, catalogmodels.Store{}},
		{global.MongoDB_ColNames.Categories, catalogmodels.Category{}},
		{global.MongoDB_ColNames.Submissions, inspectionmodels.Submission{}},
		{global.MongoDB_ColNames.VisitPlans, mcpmodels.VisitPlanEntry{}},
		{global.MongoDB_ColNames.DeliveryQueue, delivery.QueueItem{}},
	}

	for _, m := range models {
		coll, exist := global.RegistryCollections.Get(m.colName)
		if !exist {
			logrus.Errorf("Không tìm thấy collection %s khi tạo index", m.colName)
			continue
		}
		if err := database.CreateIndexes(ctx, coll, m.model); err != nil {
			logrus.WithError(err).Errorf("Không thể tạo index cho collection %s", m.colName)
		}
	}
	logrus.Info("Đã tạo index cho các collection")
}
