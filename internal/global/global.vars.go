// Package global giữ các biến dùng chung toàn ứng dụng:
// cấu hình server, kết nối MongoDB, registry collection và validator.
package global

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/PhuocTran96/store-inspector-sub000/config"
	"github.com/PhuocTran96/store-inspector-sub000/internal/registry"
)

// colNames liệt kê tên các collection MongoDB của ứng dụng.
type colNames struct {
	AuthUsers     string // Người dùng hệ thống
	Stores        string // Danh mục cửa hàng
	Categories    string // Danh mục ngành hàng trưng bày
	Submissions   string // Bản ghi chụp trước/sau theo phiên
	VisitPlans    string // Kế hoạch viếng thăm (MCP)
	DeliveryQueue string // Hàng đợi gửi thông báo
}

var (
	// ServerConfig là cấu hình ứng dụng, gán trong InitGlobal
	ServerConfig *config.Configuration

	// MongoDB_Session là client MongoDB dùng chung
	MongoDB_Session *mongo.Client

	// MongoDB_ColNames chứa tên các collection
	MongoDB_ColNames = colNames{
		AuthUsers:     "auth_users",
		Stores:        "stores",
		Categories:    "categories",
		Submissions:   "submissions",
		VisitPlans:    "visit_plans",
		DeliveryQueue: "delivery_queue",
	}

	// RegistryCollections quản lý các *mongo.Collection theo tên
	RegistryCollections = registry.NewRegistry[*mongo.Collection]()
)
