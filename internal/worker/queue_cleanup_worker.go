// Package worker chứa các worker nền chạy định kỳ.
package worker

import (
	"context"
	"time"

	"github.com/PhuocTran96/store-inspector-sub000/internal/delivery"
	"github.com/PhuocTran96/store-inspector-sub000/internal/logger"
)

// QueueCleanupWorker định kỳ xóa các item delivered/failed cũ
// khỏi hàng đợi thông báo.
type QueueCleanupWorker struct {
	queue     *delivery.Queue
	interval  time.Duration
	retention time.Duration
}

// NewQueueCleanupWorker tạo worker với chu kỳ và thời gian giữ item.
func NewQueueCleanupWorker(queue *delivery.Queue, interval, retention time.Duration) *QueueCleanupWorker {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if retention <= 0 {
		retention = 7 * 24 * time.Hour
	}
	return &QueueCleanupWorker{
		queue:     queue,
		interval:  interval,
		retention: retention,
	}
}

// Start chạy worker đến khi ctx bị hủy. Panic trong một tick được nuốt
// để worker tiếp tục chạy các tick sau.
func (w *QueueCleanupWorker) Start(ctx context.Context) {
	logger.GetAppLogger().
		WithField("interval", w.interval.String()).
		WithField("retention", w.retention.String()).
		Info("🧹 [QUEUE_CLEANUP] Worker bắt đầu chạy")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.GetAppLogger().Info("🧹 [QUEUE_CLEANUP] Worker dừng theo context")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						logger.GetErrorLogger().
							WithField("panic", r).
							Error("🧹 [QUEUE_CLEANUP] Panic trong tick, bỏ qua")
					}
				}()
				w.runOnce(ctx)
			}()
		}
	}
}

func (w *QueueCleanupWorker) runOnce(ctx context.Context) {
	count, err := w.queue.CleanupOldItems(ctx, w.retention)
	if err != nil {
		logger.GetErrorLogger().WithError(err).Error("🧹 [QUEUE_CLEANUP] Không thể dọn hàng đợi")
		return
	}
	if count > 0 {
		logger.GetAppLogger().
			WithField("deleted", count).
			Info("🧹 [QUEUE_CLEANUP] Đã dọn item cũ")
	}
}
