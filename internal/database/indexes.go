package database

import (
	"context"
	"reflect"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/PhuocTran96/store-inspector-sub000/internal/logger"
)

// compoundSpec gom các field tham gia cùng một compound index.
type compoundSpec struct {
	keys   bson.D
	unique bool
	sparse bool
}

// CreateIndexes tạo index cho collection dựa trên tag `index` của model.
//
// Cú pháp tag (các directive phân cách bằng dấu phẩy):
//
//	index:"single:1"                       - index đơn tăng dần
//	index:"single:-1"                      - index đơn giảm dần
//	index:"compound:ten_index"             - tham gia compound index (thứ tự theo field)
//	index:"single:1,unique"                - index đơn unique
//	index:"compound:uq_x,unique,sparse"    - compound unique sparse
//
// Tên field trong index lấy từ bson tag của struct.
func CreateIndexes(ctx context.Context, collection *mongo.Collection, modelStruct interface{}) error {
	t := reflect.TypeOf(modelStruct)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var indexModels []mongo.IndexModel
	compounds := make(map[string]*compoundSpec)
	var compoundOrder []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("index")
		if tag == "" {
			continue
		}

		bsonName := bsonFieldName(field)
		if bsonName == "" || bsonName == "-" {
			continue
		}

		var singleOrder int
		var compoundNames []string
		unique, sparse := false, false

		for _, directive := range strings.Split(tag, ",") {
			directive = strings.TrimSpace(directive)
			switch {
			case directive == "unique":
				unique = true
			case directive == "sparse":
				sparse = true
			case strings.HasPrefix(directive, "single:"):
				if strings.TrimPrefix(directive, "single:") == "-1" {
					singleOrder = -1
				} else {
					singleOrder = 1
				}
			case strings.HasPrefix(directive, "compound:"):
				name := strings.TrimPrefix(directive, "compound:")
				if name != "" {
					compoundNames = append(compoundNames, name)
				}
			}
		}

		if singleOrder != 0 {
			opts := options.Index()
			if unique {
				opts.SetUnique(true)
			}
			if sparse {
				opts.SetSparse(true)
			}
			indexModels = append(indexModels, mongo.IndexModel{
				Keys:    bson.D{{Key: bsonName, Value: singleOrder}},
				Options: opts,
			})
		}

		for _, name := range compoundNames {
			spec, ok := compounds[name]
			if !ok {
				spec = &compoundSpec{}
				compounds[name] = spec
				compoundOrder = append(compoundOrder, name)
			}
			spec.keys = append(spec.keys, bson.E{Key: bsonName, Value: 1})
			spec.unique = spec.unique || unique
			spec.sparse = spec.sparse || sparse
		}
	}

	for _, name := range compoundOrder {
		spec := compounds[name]
		opts := options.Index().SetName(name)
		if spec.unique {
			opts.SetUnique(true)
		}
		if spec.sparse {
			opts.SetSparse(true)
		}
		indexModels = append(indexModels, mongo.IndexModel{
			Keys:    spec.keys,
			Options: opts,
		})
	}

	if len(indexModels) == 0 {
		return nil
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		logger.GetErrorLogger().WithError(err).
			WithField("collection", collection.Name()).
			Error("Không thể tạo index")
		return err
	}

	logger.GetAppLogger().
		WithField("collection", collection.Name()).
		WithField("count", len(indexModels)).
		Debug("Đã tạo index cho collection")
	return nil
}

// bsonFieldName trả về tên field trong MongoDB từ bson tag.
func bsonFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("bson")
	if tag == "" {
		return strings.ToLower(field.Name)
	}
	parts := strings.Split(tag, ",")
	return parts[0]
}
