package catalogmodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category là một ngành hàng trưng bày (collection categories).
// Order quyết định thứ tự hiển thị trên client.
type Category struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name" index:"single:1,unique"`
	Order     int                `json:"order" bson:"order"`
	Active    bool               `json:"active" bson:"active"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
