package channels

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// EmailChannel gửi email qua SMTP.
type EmailChannel struct {
	host     string
	port     int
	user     string
	password string
	from     string
}

// NewEmailChannel tạo kênh email từ cấu hình SMTP.
func NewEmailChannel(host string, port int, user, password, from string) *EmailChannel {
	return &EmailChannel{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		from:     from,
	}
}

// Configured cho biết kênh đã đủ cấu hình để gửi chưa.
func (e *EmailChannel) Configured() bool {
	return e.host != "" && e.from != ""
}

// Send gửi một email HTML đến recipient.
func (e *EmailChannel) Send(recipient, subject, body string) error {
	if !e.Configured() {
		return fmt.Errorf("thiếu cấu hình SMTP")
	}
	if recipient == "" {
		return fmt.Errorf("thiếu địa chỉ người nhận")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", e.from)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(e.host, e.port, e.user, e.password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("không thể gửi email: %w", err)
	}
	return nil
}
