// Package channels chứa các kênh gửi thông báo cụ thể (telegram, email).
package channels

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TelegramChannel gửi tin nhắn qua Telegram Bot API.
type TelegramChannel struct {
	botToken       string
	defaultChatIDs []string
	httpClient     *http.Client
}

// NewTelegramChannel tạo kênh Telegram. chatIDs là danh sách chat mặc định
// (phân cách bằng dấu phẩy trong cấu hình).
func NewTelegramChannel(botToken, chatIDs string) *TelegramChannel {
	var ids []string
	for _, id := range strings.Split(chatIDs, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			ids = append(ids, id)
		}
	}
	return &TelegramChannel{
		botToken:       botToken,
		defaultChatIDs: ids,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured cho biết kênh đã đủ cấu hình để gửi chưa.
func (t *TelegramChannel) Configured() bool {
	return t.botToken != "" && len(t.defaultChatIDs) > 0
}

// Send gửi text đến recipient (chat id); recipient rỗng thì gửi đến
// toàn bộ chat mặc định. Gửi lỗi ở bất kỳ chat nào thì trả lỗi để retry.
func (t *TelegramChannel) Send(recipient, text string) error {
	if t.botToken == "" {
		return fmt.Errorf("thiếu cấu hình TELEGRAM_BOT_TOKEN")
	}

	chatIDs := t.defaultChatIDs
	if recipient != "" {
		chatIDs = []string{recipient}
	}
	if len(chatIDs) == 0 {
		return fmt.Errorf("không có chat id nào để gửi")
	}

	for _, chatID := range chatIDs {
		if err := t.sendMessage(chatID, text); err != nil {
			return err
		}
	}
	return nil
}

func (t *TelegramChannel) sendMessage(chatID, text string) error {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.botToken)

	payload, err := json.Marshal(map[string]interface{}{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	})
	if err != nil {
		return err
	}

	resp, err := t.httpClient.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("không thể gọi Telegram API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("Telegram API trả về %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
