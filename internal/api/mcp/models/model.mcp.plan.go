// Package mcpmodels chứa model kế hoạch viếng thăm (collection visit_plans).
package mcpmodels

import (
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VisitPlanEntry là một dòng kế hoạch: user này phải viếng thăm cửa hàng
// này vào ngày này, với trọng số Value.
//
// Dữ liệu tham chiếu nhập từ nhiều nguồn nên lưu trữ không đồng nhất:
// ngày có thể nằm ở field date/Date/visitDate (datetime, chuỗi hoặc số),
// storeCode có thể là chuỗi hoặc số. UnmarshalBSON chuẩn hóa tất cả về
// một dạng duy nhất ngay tại ranh giới decode; phần còn lại của hệ thống
// chỉ thấy struct canonical này.
type VisitPlanEntry struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username  string             `json:"username" bson:"username" index:"single:1,compound:uq_plan"`
	StoreCode string             `json:"storeCode" bson:"storeCode" index:"compound:uq_plan,unique"`
	Date      int64              `json:"date" bson:"date" index:"single:1,compound:uq_plan"` // 00:00 UTC của ngày kế hoạch (UnixMilli)
	Value     float64            `json:"value" bson:"value"`                                 // Trọng số/chỉ tiêu của lượt viếng thăm
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}

// dateFieldNames là các tên field ngày gặp trong dữ liệu legacy.
// Mỗi document chỉ có một trong các field này.
var dateFieldNames = []string{"date", "Date", "visitDate"}

// UnmarshalBSON decode chịu lỗi định dạng: thử lần lượt các tên field và
// kiểu dữ liệu legacy, quy tất cả về dạng canonical.
func (p *VisitPlanEntry) UnmarshalBSON(data []byte) error {
	raw := bson.Raw(data)

	if v, err := raw.LookupErr("_id"); err == nil {
		if oid, ok := v.ObjectIDOK(); ok {
			p.ID = oid
		}
	}

	p.Username = lookupString(raw, "username", "Username", "user")
	p.StoreCode = lookupStoreCode(raw, "storeCode", "StoreCode", "store_code", "storeId")
	p.Date = lookupDateMs(raw, dateFieldNames...)
	p.Value = lookupNumber(raw, "value", "Value")

	if v, err := raw.LookupErr("createdAt"); err == nil {
		p.CreatedAt, _ = v.AsInt64OK()
	}
	if v, err := raw.LookupErr("updatedAt"); err == nil {
		p.UpdatedAt, _ = v.AsInt64OK()
	}
	return nil
}

func lookupString(raw bson.Raw, names ...string) string {
	for _, name := range names {
		if v, err := raw.LookupErr(name); err == nil {
			if s, ok := v.StringValueOK(); ok {
				return s
			}
		}
	}
	return ""
}

// lookupStoreCode đọc storeCode dù được lưu là chuỗi hay số.
func lookupStoreCode(raw bson.Raw, names ...string) string {
	for _, name := range names {
		v, err := raw.LookupErr(name)
		if err != nil {
			continue
		}
		switch v.Type {
		case bsontype.String:
			if s, ok := v.StringValueOK(); ok {
				return strings.TrimSpace(s)
			}
		case bsontype.Int32:
			return strconv.FormatInt(int64(v.Int32()), 10)
		case bsontype.Int64:
			return strconv.FormatInt(v.Int64(), 10)
		case bsontype.Double:
			return strconv.FormatFloat(v.Double(), 'f', -1, 64)
		}
	}
	return ""
}

// lookupDateMs đọc ngày kế hoạch từ field đầu tiên tìm thấy, chấp nhận
// datetime, UnixMilli dạng số hoặc chuỗi "2006-01-02"/"02/01/2006".
func lookupDateMs(raw bson.Raw, names ...string) int64 {
	for _, name := range names {
		v, err := raw.LookupErr(name)
		if err != nil {
			continue
		}
		switch v.Type {
		case bsontype.DateTime:
			return v.DateTime()
		case bsontype.Int64:
			return v.Int64()
		case bsontype.Int32:
			return int64(v.Int32())
		case bsontype.Double:
			return int64(v.Double())
		case bsontype.String:
			if ms, ok := ParseDateString(v.StringValue()); ok {
				return ms
			}
		}
	}
	return 0
}

func lookupNumber(raw bson.Raw, names ...string) float64 {
	for _, name := range names {
		v, err := raw.LookupErr(name)
		if err != nil {
			continue
		}
		switch v.Type {
		case bsontype.Double:
			return v.Double()
		case bsontype.Int32:
			return float64(v.Int32())
		case bsontype.Int64:
			return float64(v.Int64())
		case bsontype.String:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v.StringValue()), 64); err == nil {
				return f
			}
		}
	}
	return 0
}
