// Package catalogmodels chứa model dữ liệu tham chiếu: cửa hàng và ngành hàng.
package catalogmodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store là một cửa hàng trong danh mục (collection stores).
// StoreCode là mã nghiệp vụ dùng để đối chiếu với kế hoạch viếng thăm.
type Store struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	StoreCode string             `json:"storeCode" bson:"storeCode" index:"single:1,unique"`
	StoreName string             `json:"storeName" bson:"storeName"`
	Region    string             `json:"region" bson:"region,omitempty" index:"single:1"`
	TdsName   string             `json:"tdsName" bson:"tdsName,omitempty"` // Giám sát phụ trách cửa hàng
	Active    bool               `json:"active" bson:"active"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt" index:"single:-1"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
