// Package delivery triển khai hàng đợi gửi thông báo bất đồng bộ:
// item được enqueue vào MongoDB, một processor nền dequeue và gửi qua
// kênh tương ứng (telegram, email) với retry có backoff.
package delivery

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái của một item trong hàng đợi.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusDelivered  = "delivered"
	StatusFailed     = "failed"
)

// Các kênh gửi được hỗ trợ.
const (
	ChannelTelegram = "telegram"
	ChannelEmail    = "email"
)

// QueueItem là một thông báo chờ gửi, lưu trong collection delivery_queue.
type QueueItem struct {
	ID          primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	Channel     string                 `json:"channel" bson:"channel" index:"single:1"`         // telegram | email
	Recipient   string                 `json:"recipient" bson:"recipient,omitempty"`            // chat id / địa chỉ email; rỗng = mặc định theo cấu hình
	Subject     string                 `json:"subject" bson:"subject,omitempty"`                // Tiêu đề (email)
	Body        string                 `json:"body" bson:"body"`                                // Nội dung đã render
	Meta        map[string]interface{} `json:"meta" bson:"meta,omitempty"`                      // Ngữ cảnh bổ sung (storeId, sessionId...)
	Status      string                 `json:"status" bson:"status" index:"single:1"`           // pending | processing | delivered | failed
	RetryCount  int                    `json:"retryCount" bson:"retryCount"`                    // Số lần đã thử lại
	MaxRetries  int                    `json:"maxRetries" bson:"maxRetries"`                    // Số lần thử tối đa
	NextRetryAt int64                  `json:"nextRetryAt" bson:"nextRetryAt" index:"single:1"` // Thời điểm được phép thử lại (UnixMilli)
	LastError   string                 `json:"lastError" bson:"lastError,omitempty"`            // Lỗi của lần gửi gần nhất
	CreatedAt   int64                  `json:"createdAt" bson:"createdAt" index:"single:-1"`
	UpdatedAt   int64                  `json:"updatedAt" bson:"updatedAt"`
}
