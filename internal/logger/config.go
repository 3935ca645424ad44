package logger

import (
	"os"
	"strconv"
)

// LogConfig chứa cấu hình cho hệ thống logging
type LogConfig struct {
	Level      string // Mức log: debug, info, warn, error
	Format     string // Định dạng: text hoặc json
	Output     string // Nơi ghi: console, file, both
	MaxSize    int    // Kích thước tối đa của file log (MB) trước khi rotate
	MaxBackups int    // Số file backup giữ lại
	MaxAge     int    // Số ngày giữ file log
	Compress   bool   // Nén file log cũ

	LogPath         string // Thư mục chứa file log
	AppFile         string // Tên file log ứng dụng
	AuditFile       string // Tên file log audit
	PerformanceFile string // Tên file log hiệu năng
	ErrorFile       string // Tên file log lỗi
}

// DefaultConfig trả về cấu hình mặc định theo môi trường (GO_ENV).
// Các biến môi trường LOG_* (nếu có) sẽ ghi đè giá trị mặc định.
func DefaultConfig() *LogConfig {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	cfg := &LogConfig{
		Level:           "debug",
		Format:          "text",
		Output:          "both",
		MaxSize:         100,
		MaxBackups:      5,
		MaxAge:          30,
		Compress:        true,
		LogPath:         "logs",
		AppFile:         "app.log",
		AuditFile:       "audit.log",
		PerformanceFile: "performance.log",
		ErrorFile:       "error.log",
	}

	if env == "production" {
		cfg.Level = "info"
		cfg.Format = "json"
		cfg.Output = "file"
	}

	// Biến môi trường ghi đè
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("LOG_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("LOG_MAX_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxSize = n
		}
	}
	if v := os.Getenv("LOG_MAX_AGE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxAge = n
		}
	}

	return cfg
}
