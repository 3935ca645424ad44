package logger

import (
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// asyncBufferSize là số entry tối đa chờ ghi; vượt quá thì entry bị bỏ
// để không chặn request.
const asyncBufferSize = 1000

// AsyncHook ghi log entry bất đồng bộ qua một goroutine riêng.
type AsyncHook struct {
	writer    io.Writer
	formatter logrus.Formatter
	entries   chan *logrus.Entry
	done      chan struct{}
	closeOnce sync.Once
}

// NewAsyncHook tạo AsyncHook mới và khởi động goroutine xử lý.
func NewAsyncHook(writer io.Writer, formatter logrus.Formatter) *AsyncHook {
	hook := &AsyncHook{
		writer:    writer,
		formatter: formatter,
		entries:   make(chan *logrus.Entry, asyncBufferSize),
		done:      make(chan struct{}),
	}
	go hook.processEntries()
	return hook
}

// Levels trả về tất cả các mức log.
func (h *AsyncHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire đưa entry vào buffer. Không bao giờ chặn: buffer đầy thì bỏ entry.
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	// Entry đã bị filter hook đánh dấu thì bỏ qua
	if _, filtered := entry.Data["_filtered"]; filtered {
		return nil
	}

	// Copy entry vì logrus tái sử dụng entry gốc
	clone := entry.Dup()
	clone.Level = entry.Level
	clone.Message = entry.Message

	select {
	case h.entries <- clone:
	default:
		// Buffer đầy, chấp nhận mất log thay vì chặn request
	}
	return nil
}

// processEntries chạy trong goroutine riêng, ghi lần lượt các entry.
func (h *AsyncHook) processEntries() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("async log hook panic: %v\n", r)
		}
	}()

	for {
		select {
		case entry, ok := <-h.entries:
			if !ok {
				return
			}
			h.write(entry)
		case <-h.done:
			// Xả nốt những entry còn lại rồi thoát
			for {
				select {
				case entry := <-h.entries:
					h.write(entry)
				default:
					return
				}
			}
		}
	}
}

func (h *AsyncHook) write(entry *logrus.Entry) {
	data, err := h.formatter.Format(entry)
	if err != nil {
		return
	}
	_, _ = h.writer.Write(data)
}

// Close dừng goroutine xử lý sau khi xả hết buffer.
func (h *AsyncHook) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
}

// FilterHook đánh dấu các entry không cần ghi (ví dụ health check spam).
type FilterHook struct{}

// NewFilterHook tạo FilterHook mới.
func NewFilterHook() *FilterHook {
	return &FilterHook{}
}

// Levels trả về tất cả các mức log.
func (h *FilterHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire đánh dấu entry cần bỏ qua bằng field _filtered.
func (h *FilterHook) Fire(entry *logrus.Entry) error {
	if path, ok := entry.Data["path"].(string); ok {
		if path == "/api/health" {
			entry.Data["_filtered"] = true
		}
	}
	return nil
}
