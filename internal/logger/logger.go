// Package logger cung cấp hệ thống logging tập trung dựa trên logrus:
// nhiều named logger (app, audit, error), ghi file có rotation (lumberjack)
// và hook ghi log bất đồng bộ để không chặn request.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	config  *LogConfig
	rootDir string

	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex

	asyncHooks []*AsyncHook
)

// Init khởi tạo hệ thống logging với cấu hình cho trước.
// Gọi một lần duy nhất ở đầu main trước mọi GetLogger.
func Init(cfg *LogConfig) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	config = cfg

	if err := initRootDir(); err != nil {
		return fmt.Errorf("không thể xác định thư mục gốc cho log: %w", err)
	}

	logDir := filepath.Join(rootDir, config.LogPath)
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("không thể tạo thư mục log %s: %w", logDir, err)
	}

	return nil
}

// initRootDir xác định thư mục gốc để chứa log: ưu tiên LOG_ROOT_DIR,
// sau đó là thư mục chứa executable, cuối cùng là working directory.
func initRootDir() error {
	if dir := os.Getenv("LOG_ROOT_DIR"); dir != "" {
		rootDir = dir
		return nil
	}

	exePath, err := os.Executable()
	if err == nil {
		exeDir := filepath.Dir(exePath)
		// go run đặt binary trong thư mục tạm, khi đó dùng working dir
		if !isTempDir(exeDir) {
			rootDir = exeDir
			return nil
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	rootDir = wd
	return nil
}

func isTempDir(dir string) bool {
	tmp := os.TempDir()
	rel, err := filepath.Rel(tmp, dir)
	if err != nil {
		return false
	}
	return rel == "." || !filepath.IsAbs(rel) && rel[0] != '.'
}

// GetLogger trả về logger theo tên, tạo lazy nếu chưa có.
// Tên logger đồng thời là tên file log (ví dụ "app" -> app.log).
func GetLogger(name string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if entry, ok := loggers[name]; ok {
		return entry
	}

	entry := createLogger(name)
	loggers[name] = entry
	return entry
}

// GetAppLogger trả về logger chính của ứng dụng.
func GetAppLogger() *logrus.Entry {
	return GetLogger("app")
}

// GetAuditLogger trả về logger ghi audit trail.
func GetAuditLogger() *logrus.Entry {
	return GetLogger("audit")
}

// GetErrorLogger trả về logger chuyên ghi lỗi.
func GetErrorLogger() *logrus.Entry {
	return GetLogger("error")
}

// createLogger tạo logger mới với formatter, file writer và async hook.
func createLogger(name string) *logrus.Entry {
	if config == nil {
		config = DefaultConfig()
	}

	log := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	callerPrettyfier := func(f *runtime.Frame) (string, string) {
		return "", fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
	}

	if config.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat:  "2006-01-02 15:04:05.000",
			CallerPrettyfier: callerPrettyfier,
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:    true,
			TimestampFormat:  "2006-01-02 15:04:05.000",
			CallerPrettyfier: callerPrettyfier,
		})
	}
	log.SetReportCaller(true)

	var writers []io.Writer
	if config.Output == "console" || config.Output == "both" {
		writers = append(writers, os.Stdout)
	}
	if config.Output == "file" || config.Output == "both" {
		fileName := name + ".log"
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(rootDir, config.LogPath, fileName),
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAge,
			Compress:   config.Compress,
		})
	}
	if len(writers) == 0 {
		writers = append(writers, os.Stdout)
	}

	// Ghi log qua async hook để không chặn caller;
	// output trực tiếp bị tắt để tránh ghi hai lần.
	asyncHook := NewAsyncHook(io.MultiWriter(writers...), log.Formatter)
	log.AddHook(NewFilterHook())
	log.AddHook(asyncHook)
	log.SetOutput(io.Discard)

	asyncHooks = append(asyncHooks, asyncHook)

	return log.WithField("service", name)
}

// Close xả hết log đang chờ trong các async hook. Gọi khi shutdown.
func Close() {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	for _, hook := range asyncHooks {
		hook.Close()
	}
	asyncHooks = nil
}
