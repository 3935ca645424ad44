// Package basesvc cung cấp service CRUD generic trên MongoDB.
// Mọi service domain nhúng BaseServiceMongoImpl[T] để có sẵn bộ thao tác
// chuẩn (insert/find/update/delete/phân trang/upsert) với timestamp tự động
// và lỗi đã được chuyển về common.Error.
package basesvc

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "github.com/PhuocTran96/store-inspector-sub000/internal/api/base/models"
	"github.com/PhuocTran96/store-inspector-sub000/internal/common"
	"github.com/PhuocTran96/store-inspector-sub000/internal/utility"
)

// ============================================
// INTERFACE
// ============================================

// BaseServiceMongo là bộ thao tác CRUD chuẩn trên một collection.
type BaseServiceMongo[T any] interface {
	InsertOne(ctx context.Context, data T) (T, error)
	InsertMany(ctx context.Context, data []T) ([]T, error)

	FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error)
	FindOneById(ctx context.Context, id interface{}) (T, error)
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error)
	FindManyByIds(ctx context.Context, ids []interface{}) ([]T, error)
	FindWithPagination(ctx context.Context, filter interface{}, page, limit int64, opts *options.FindOptions) (*basemodels.PaginateResult[T], error)

	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts *options.UpdateOptions) (T, error)
	UpdateMany(ctx context.Context, filter interface{}, update interface{}) (int64, error)
	UpdateById(ctx context.Context, id interface{}, update interface{}) (T, error)
	FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts *options.FindOneAndUpdateOptions) (T, error)

	DeleteOne(ctx context.Context, filter interface{}) error
	DeleteMany(ctx context.Context, filter interface{}) (int64, error)
	DeleteById(ctx context.Context, id interface{}) error

	Upsert(ctx context.Context, filter interface{}, data T) (T, error)

	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	Distinct(ctx context.Context, fieldName string, filter interface{}) ([]interface{}, error)
	DocumentExists(ctx context.Context, filter interface{}) (bool, error)

	Collection() *mongo.Collection
}

// ============================================
// IMPLEMENTATION
// ============================================

// BaseServiceMongoImpl triển khai BaseServiceMongo trên một *mongo.Collection.
type BaseServiceMongoImpl[T any] struct {
	collection *mongo.Collection
}

// NewBaseServiceMongo tạo base service mới cho collection.
func NewBaseServiceMongo[T any](collection *mongo.Collection) *BaseServiceMongoImpl[T] {
	return &BaseServiceMongoImpl[T]{collection: collection}
}

// Collection trả về collection gốc cho các truy vấn đặc thù của domain.
func (s *BaseServiceMongoImpl[T]) Collection() *mongo.Collection {
	return s.collection
}

// prepareInsertDoc chuyển model thành map, gắn timestamp và loại bỏ
// các field chuỗi rỗng để không phá các unique index sparse.
func prepareInsertDoc[T any](data T) (map[string]interface{}, error) {
	doc, err := utility.ToMap(data)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, "Không thể chuyển đổi dữ liệu", common.StatusBadRequest, nil)
	}

	now := time.Now().UnixMilli()
	if v, ok := doc["createdAt"]; !ok || v == int64(0) {
		doc["createdAt"] = now
	}
	doc["updatedAt"] = now

	for key, value := range doc {
		if str, ok := value.(string); ok && str == "" {
			delete(doc, key)
		}
	}
	// _id rỗng để MongoDB tự sinh
	if id, ok := doc["_id"]; ok {
		if oid, isOid := id.(interface{ IsZero() bool }); isOid && oid.IsZero() {
			delete(doc, "_id")
		}
	}
	return doc, nil
}

// InsertOne thêm một document, tự gắn createdAt/updatedAt.
func (s *BaseServiceMongoImpl[T]) InsertOne(ctx context.Context, data T) (T, error) {
	var zero T

	doc, err := prepareInsertDoc(data)
	if err != nil {
		return zero, err
	}

	result, err := s.collection.InsertOne(ctx, doc)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}

	return s.FindOneById(ctx, result.InsertedID)
}

// InsertMany thêm nhiều document trong một lần ghi.
func (s *BaseServiceMongoImpl[T]) InsertMany(ctx context.Context, data []T) ([]T, error) {
	if len(data) == 0 {
		return nil, common.NewError(common.ErrCodeValidationInput, "Danh sách dữ liệu rỗng", common.StatusBadRequest, nil)
	}

	docs := make([]interface{}, 0, len(data))
	for _, item := range data {
		doc, err := prepareInsertDoc(item)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	result, err := s.collection.InsertMany(ctx, docs)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	return s.FindManyByIds(ctx, result.InsertedIDs)
}

// FindOne tìm một document theo filter.
func (s *BaseServiceMongoImpl[T]) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error) {
	var result T
	err := s.collection.FindOne(ctx, normalizeFilter(filter), opts).Decode(&result)
	if err != nil {
		var zero T
		return zero, common.ConvertMongoError(err)
	}
	return result, nil
}

// FindOneById tìm một document theo _id.
func (s *BaseServiceMongoImpl[T]) FindOneById(ctx context.Context, id interface{}) (T, error) {
	return s.FindOne(ctx, bson.M{"_id": id}, nil)
}

// Find tìm nhiều document theo filter.
func (s *BaseServiceMongoImpl[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	cursor, err := s.collection.Find(ctx, normalizeFilter(filter), opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var results []T
	if err := cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return results, nil
}

// FindManyByIds tìm các document theo danh sách _id.
func (s *BaseServiceMongoImpl[T]) FindManyByIds(ctx context.Context, ids []interface{}) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	return s.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, nil)
}

// FindWithPagination tìm theo filter với phân trang chuẩn.
func (s *BaseServiceMongoImpl[T]) FindWithPagination(ctx context.Context, filter interface{}, page, limit int64, opts *options.FindOptions) (*basemodels.PaginateResult[T], error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 1000 {
		limit = 1000
	}

	normalized := normalizeFilter(filter)

	total, err := s.collection.CountDocuments(ctx, normalized)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	if opts == nil {
		opts = options.Find()
	}
	opts.SetSkip((page - 1) * limit).SetLimit(limit)

	items, err := s.Find(ctx, normalized, opts)
	if err != nil {
		return nil, err
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	return &basemodels.PaginateResult[T]{
		Items:      items,
		Page:       page,
		Limit:      limit,
		ItemCount:  int64(len(items)),
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// UpdateOne cập nhật một document, tự gắn updatedAt.
func (s *BaseServiceMongoImpl[T]) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts *options.UpdateOptions) (T, error) {
	var zero T

	normalized := normalizeFilter(filter)
	updateDoc := withUpdatedAt(update)

	result, err := s.collection.UpdateOne(ctx, normalized, updateDoc, opts)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}
	if result.MatchedCount == 0 && result.UpsertedCount == 0 {
		return zero, common.ErrNotFound
	}

	return s.FindOne(ctx, normalized, nil)
}

// UpdateMany cập nhật nhiều document, trả về số document đã sửa.
func (s *BaseServiceMongoImpl[T]) UpdateMany(ctx context.Context, filter interface{}, update interface{}) (int64, error) {
	result, err := s.collection.UpdateMany(ctx, normalizeFilter(filter), withUpdatedAt(update))
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return result.ModifiedCount, nil
}

// UpdateById cập nhật một document theo _id.
func (s *BaseServiceMongoImpl[T]) UpdateById(ctx context.Context, id interface{}, update interface{}) (T, error) {
	return s.UpdateOne(ctx, bson.M{"_id": id}, update, nil)
}

// FindOneAndUpdate cập nhật và trả về document (mặc định bản sau cập nhật).
func (s *BaseServiceMongoImpl[T]) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts *options.FindOneAndUpdateOptions) (T, error) {
	var result T

	if opts == nil {
		opts = options.FindOneAndUpdate().SetReturnDocument(options.After)
	}

	err := s.collection.FindOneAndUpdate(ctx, normalizeFilter(filter), withUpdatedAt(update), opts).Decode(&result)
	if err != nil {
		var zero T
		return zero, common.ConvertMongoError(err)
	}
	return result, nil
}

// DeleteOne xóa một document theo filter.
func (s *BaseServiceMongoImpl[T]) DeleteOne(ctx context.Context, filter interface{}) error {
	result, err := s.collection.DeleteOne(ctx, normalizeFilter(filter))
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if result.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

// DeleteMany xóa nhiều document, trả về số document đã xóa.
func (s *BaseServiceMongoImpl[T]) DeleteMany(ctx context.Context, filter interface{}) (int64, error) {
	result, err := s.collection.DeleteMany(ctx, normalizeFilter(filter))
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return result.DeletedCount, nil
}

// DeleteById xóa một document theo _id.
func (s *BaseServiceMongoImpl[T]) DeleteById(ctx context.Context, id interface{}) error {
	return s.DeleteOne(ctx, bson.M{"_id": id})
}

// Upsert cập nhật document thỏa filter hoặc thêm mới nếu chưa có.
func (s *BaseServiceMongoImpl[T]) Upsert(ctx context.Context, filter interface{}, data T) (T, error) {
	var zero T

	doc, err := utility.ToMap(data)
	if err != nil {
		return zero, common.NewError(common.ErrCodeValidationFormat, "Không thể chuyển đổi dữ liệu", common.StatusBadRequest, nil)
	}

	now := time.Now().UnixMilli()
	delete(doc, "_id")
	delete(doc, "createdAt")
	doc["updatedAt"] = now

	update := bson.M{
		"$set":         doc,
		"$setOnInsert": bson.M{"createdAt": now},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var result T
	err = s.collection.FindOneAndUpdate(ctx, normalizeFilter(filter), update, opts).Decode(&result)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}
	return result, nil
}

// CountDocuments đếm số document thỏa filter.
func (s *BaseServiceMongoImpl[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, normalizeFilter(filter))
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return count, nil
}

// Distinct trả về các giá trị khác nhau của một field.
func (s *BaseServiceMongoImpl[T]) Distinct(ctx context.Context, fieldName string, filter interface{}) ([]interface{}, error) {
	values, err := s.collection.Distinct(ctx, fieldName, normalizeFilter(filter))
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return values, nil
}

// DocumentExists kiểm tra có document nào thỏa filter không.
func (s *BaseServiceMongoImpl[T]) DocumentExists(ctx context.Context, filter interface{}) (bool, error) {
	err := s.collection.FindOne(ctx, normalizeFilter(filter), options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, common.ConvertMongoError(err)
	}
	return true, nil
}

// ============================================
// HELPERS
// ============================================

// normalizeFilter đảm bảo filter nil trở thành filter rỗng.
func normalizeFilter(filter interface{}) interface{} {
	if filter == nil {
		return bson.M{}
	}
	return filter
}

// withUpdatedAt bổ sung updatedAt vào $set của update document.
func withUpdatedAt(update interface{}) interface{} {
	now := time.Now().UnixMilli()

	switch u := update.(type) {
	case bson.M:
		if setDoc, ok := u["$set"].(bson.M); ok {
			setDoc["updatedAt"] = now
			return u
		}
		if _, hasOperator := firstOperatorKey(u); hasOperator {
			u["$set"] = bson.M{"updatedAt": now}
			return u
		}
		// update dạng document thường -> bọc vào $set
		u["updatedAt"] = now
		return bson.M{"$set": u}
	case map[string]interface{}:
		return withUpdatedAt(bson.M(u))
	default:
		return update
	}
}

func firstOperatorKey(m bson.M) (string, bool) {
	for k := range m {
		if len(k) > 0 && k[0] == '$' {
			return k, true
		}
	}
	return "", false
}
