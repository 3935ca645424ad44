package delivery

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/PhuocTran96/store-inspector-sub000/internal/api/base/service"
	"github.com/PhuocTran96/store-inspector-sub000/internal/common"
	"github.com/PhuocTran96/store-inspector-sub000/internal/global"
	"github.com/PhuocTran96/store-inspector-sub000/internal/logger"
)

// Queue là service thao tác với collection delivery_queue.
type Queue struct {
	*basesvc.BaseServiceMongoImpl[QueueItem]
}

// NewQueue tạo Queue mới trên collection đã đăng ký.
func NewQueue() (*Queue, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.DeliveryQueue)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.DeliveryQueue, common.ErrNotFound)
	}
	return &Queue{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[QueueItem](coll),
	}, nil
}

// Enqueue đưa một thông báo vào hàng đợi. Không bao giờ chặn nghiệp vụ
// chính: caller chỉ cần ghi log khi enqueue lỗi.
func (q *Queue) Enqueue(ctx context.Context, item QueueItem) error {
	item.Status = StatusPending
	item.RetryCount = 0
	if item.MaxRetries <= 0 {
		item.MaxRetries = 3
	}
	item.NextRetryAt = 0

	_, err := q.InsertOne(ctx, item)
	if err != nil {
		logger.GetErrorLogger().WithError(err).
			WithField("channel", item.Channel).
			Error("📦 [DELIVERY] Không thể enqueue thông báo")
		return err
	}

	logger.GetAppLogger().
		WithField("channel", item.Channel).
		Debug("📦 [DELIVERY] Đã enqueue thông báo")
	return nil
}

// DequeueBatch lấy tối đa limit item pending đến hạn và chuyển sang processing.
func (q *Queue) DequeueBatch(ctx context.Context, limit int) ([]QueueItem, error) {
	now := time.Now().UnixMilli()
	filter := bson.M{
		"status": StatusPending,
		"$or": []bson.M{
			{"nextRetryAt": bson.M{"$lte": now}},
			{"nextRetryAt": bson.M{"$exists": false}},
		},
	}
	opts := options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "createdAt", Value: 1}})

	pending, err := q.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var claimed []QueueItem
	for _, item := range pending {
		// Chuyển trạng thái có điều kiện để hai processor không cùng nhận một item
		updated, err := q.FindOneAndUpdate(ctx,
			bson.M{"_id": item.ID, "status": StatusPending},
			bson.M{"$set": bson.M{"status": StatusProcessing}},
			nil)
		if err != nil {
			continue
		}
		claimed = append(claimed, updated)
	}
	return claimed, nil
}

// MarkDelivered đánh dấu item đã gửi thành công.
func (q *Queue) MarkDelivered(ctx context.Context, item QueueItem) error {
	_, err := q.UpdateById(ctx, item.ID, bson.M{"$set": bson.M{
		"status":    StatusDelivered,
		"lastError": "",
	}})
	return err
}

// HandleRetryOrFail xử lý item gửi lỗi: tăng retryCount và đặt lịch thử lại
// với backoff lũy thừa; vượt maxRetries thì đánh dấu failed.
func (q *Queue) HandleRetryOrFail(ctx context.Context, item QueueItem, sendErr error) {
	item.RetryCount++

	if item.RetryCount >= item.MaxRetries {
		_, err := q.UpdateById(ctx, item.ID, bson.M{"$set": bson.M{
			"status":     StatusFailed,
			"retryCount": item.RetryCount,
			"lastError":  sendErr.Error(),
		}})
		if err != nil {
			logger.GetErrorLogger().WithError(err).Error("📦 [DELIVERY] Không thể đánh dấu item failed")
		}
		logger.GetErrorLogger().
			WithField("channel", item.Channel).
			WithField("retryCount", item.RetryCount).
			WithField("lastError", sendErr.Error()).
			Error("📦 [DELIVERY] Item vượt số lần thử tối đa, đánh dấu failed")
		return
	}

	// Backoff: 2^retryCount giây
	backoff := time.Duration(1<<uint(item.RetryCount)) * time.Second
	nextRetryAt := time.Now().Add(backoff).UnixMilli()

	_, err := q.UpdateById(ctx, item.ID, bson.M{"$set": bson.M{
		"status":      StatusPending,
		"retryCount":  item.RetryCount,
		"nextRetryAt": nextRetryAt,
		"lastError":   sendErr.Error(),
	}})
	if err != nil {
		logger.GetErrorLogger().WithError(err).Error("📦 [DELIVERY] Không thể đặt lịch thử lại")
	}
}

// ResetStaleProcessing trả các item kẹt ở processing quá lâu về pending
// (processor chết giữa chừng).
func (q *Queue) ResetStaleProcessing(ctx context.Context, olderThan time.Duration) (int64, error) {
	threshold := time.Now().Add(-olderThan).UnixMilli()
	return q.UpdateMany(ctx,
		bson.M{"status": StatusProcessing, "updatedAt": bson.M{"$lt": threshold}},
		bson.M{"$set": bson.M{"status": StatusPending}})
}

// CleanupOldItems xóa các item delivered/failed cũ hơn retention.
func (q *Queue) CleanupOldItems(ctx context.Context, retention time.Duration) (int64, error) {
	threshold := time.Now().Add(-retention).UnixMilli()
	return q.DeleteMany(ctx, bson.M{
		"status":    bson.M{"$in": []string{StatusDelivered, StatusFailed}},
		"updatedAt": bson.M{"$lt": threshold},
	})
}
