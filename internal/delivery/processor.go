package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/PhuocTran96/store-inspector-sub000/config"
	"github.com/PhuocTran96/store-inspector-sub000/internal/delivery/channels"
	"github.com/PhuocTran96/store-inspector-sub000/internal/logger"
)

// Processor dequeue và gửi thông báo qua kênh tương ứng.
type Processor struct {
	queue    *Queue
	telegram *channels.TelegramChannel
	email    *channels.EmailChannel

	interval  time.Duration
	batchSize int
}

// NewProcessor tạo processor với các kênh dựng từ cấu hình.
func NewProcessor(queue *Queue, cfg *config.Configuration) *Processor {
	return &Processor{
		queue:     queue,
		telegram:  channels.NewTelegramChannel(cfg.TelegramBotToken, cfg.TelegramChatIDs),
		email:     channels.NewEmailChannel(cfg.SMTP_Host, cfg.SMTP_Port, cfg.SMTP_User, cfg.SMTP_Password, cfg.SMTP_From),
		interval:  5 * time.Second,
		batchSize: 10,
	}
}

// Start chạy vòng lặp xử lý hàng đợi đến khi ctx bị hủy.
// Panic trong một tick không làm chết processor: vòng lặp tự khởi động lại
// với thời gian chờ tăng dần.
func (p *Processor) Start(ctx context.Context) {
	retryDelay := 5 * time.Second

	for {
		exited := p.runLoop(ctx)
		if exited {
			logger.GetAppLogger().Info("📦 [DELIVERY] Processor dừng theo context")
			return
		}

		logger.GetErrorLogger().
			WithField("retryDelay", retryDelay.String()).
			Error("📦 [DELIVERY] Processor gặp panic, khởi động lại")

		select {
		case <-ctx.Done():
			return
		case <-time.After(retryDelay):
		}
		if retryDelay < 60*time.Second {
			retryDelay *= 2
			if retryDelay > 60*time.Second {
				retryDelay = 60 * time.Second
			}
		}
	}
}

// runLoop trả về true khi thoát do context, false khi thoát do panic.
func (p *Processor) runLoop(ctx context.Context) (exitedByContext bool) {
	defer func() {
		if r := recover(); r != nil {
			exitedByContext = false
		}
	}()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return true
		case <-ticker.C:
			p.processBatch(ctx)
		}
	}
}

// processBatch xử lý một lô item; panic của từng item được cô lập.
func (p *Processor) processBatch(ctx context.Context) {
	items, err := p.queue.DequeueBatch(ctx, p.batchSize)
	if err != nil {
		logger.GetErrorLogger().WithError(err).Error("📦 [DELIVERY] Không thể dequeue")
		return
	}

	for _, item := range items {
		func(item QueueItem) {
			defer func() {
				if r := recover(); r != nil {
					p.queue.HandleRetryOrFail(ctx, item, fmt.Errorf("panic khi gửi: %v", r))
				}
			}()
			p.processItem(ctx, item)
		}(item)
	}
}

// processItem gửi một item qua kênh của nó và cập nhật trạng thái.
func (p *Processor) processItem(ctx context.Context, item QueueItem) {
	var sendErr error

	switch item.Channel {
	case ChannelTelegram:
		sendErr = p.telegram.Send(item.Recipient, item.Body)
	case ChannelEmail:
		sendErr = p.email.Send(item.Recipient, item.Subject, item.Body)
	default:
		sendErr = fmt.Errorf("kênh không hỗ trợ: %s", item.Channel)
	}

	if sendErr != nil {
		logger.GetAppLogger().
			WithField("channel", item.Channel).
			WithField("retryCount", item.RetryCount).
			WithField("error", sendErr.Error()).
			Warn("📦 [DELIVERY] Gửi thông báo thất bại")
		p.queue.HandleRetryOrFail(ctx, item, sendErr)
		return
	}

	if err := p.queue.MarkDelivered(ctx, item); err != nil {
		logger.GetErrorLogger().WithError(err).Error("📦 [DELIVERY] Không thể đánh dấu delivered")
		return
	}

	logger.GetAppLogger().
		WithField("channel", item.Channel).
		Info("📦 [DELIVERY] Đã gửi thông báo")
}

// StartStaleJob định kỳ trả các item kẹt ở processing về pending.
func (p *Processor) StartStaleJob(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := p.queue.ResetStaleProcessing(ctx, 5*time.Minute)
			if err != nil {
				logger.GetErrorLogger().WithError(err).Error("📦 [CLEANUP] Không thể reset item kẹt")
				continue
			}
			if count > 0 {
				logger.GetAppLogger().
					WithField("count", count).
					Warn("📦 [CLEANUP] Đã trả item kẹt về pending")
			}
		}
	}
}
