// Package utility chứa các hàm tiện ích: chuyển đổi bson, ObjectID và
// xử lý ngày theo UTC.
package utility

import (
	"go.mongodb.org/mongo-driver/bson"
)

// ToMap chuyển một struct (có bson tag) thành map[string]interface{}
// qua vòng marshal/unmarshal bson, giữ đúng tên field trong MongoDB.
func ToMap(data interface{}) (map[string]interface{}, error) {
	raw, err := bson.Marshal(data)
	if err != nil {
		return nil, err
	}
	var result map[string]interface{}
	if err := bson.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ConvertStruct copy dữ liệu từ src sang dst qua bson
// (hai struct phải có bson tag tương thích). dst phải là con trỏ.
func ConvertStruct(src interface{}, dst interface{}) error {
	raw, err := bson.Marshal(src)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, dst)
}
