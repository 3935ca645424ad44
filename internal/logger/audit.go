package logger

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// AuditAction mô tả một hành động cần ghi audit trail.
type AuditAction struct {
	Action    string // Tên hành động: LOGIN, FINALIZE, DELETE...
	Resource  string // Tài nguyên tác động: submission, visit_plan...
	UserID    string // ID người thực hiện
	Username  string // Tên người thực hiện
	RequestID string // X-Request-ID của request
	Detail    map[string]interface{}
}

// WithRequest trả về entry gắn sẵn thông tin định danh request.
func WithRequest(c fiber.Ctx) *logrus.Entry {
	return GetAppLogger().WithFields(logrus.Fields{
		"requestId": c.Get("X-Request-ID"),
		"ip":        c.IP(),
		"method":    c.Method(),
		"path":      c.Path(),
	})
}

// LogAction ghi một hành động vào audit log, bổ sung thông tin từ request.
func LogAction(c fiber.Ctx, action AuditAction) {
	if action.UserID == "" {
		if userID, ok := c.Locals("userID").(string); ok {
			action.UserID = userID
		}
	}
	if action.Username == "" {
		if username, ok := c.Locals("username").(string); ok {
			action.Username = username
		}
	}
	if action.RequestID == "" {
		action.RequestID = c.Get("X-Request-ID")
	}

	fields := logrus.Fields{
		"action":    action.Action,
		"resource":  action.Resource,
		"userId":    action.UserID,
		"username":  action.Username,
		"requestId": action.RequestID,
		"ip":        c.IP(),
		"method":    c.Method(),
		"path":      c.Path(),
		"at":        time.Now().UnixMilli(),
	}
	for k, v := range action.Detail {
		fields["detail_"+k] = v
	}

	GetAuditLogger().WithFields(fields).Info("audit")
}

// LogCRUD ghi audit cho một thao tác CRUD chuẩn.
func LogCRUD(c fiber.Ctx, operation, resource string, detail map[string]interface{}) {
	LogAction(c, AuditAction{
		Action:   operation,
		Resource: resource,
		Detail:   detail,
	})
}

// LogAuth ghi audit cho các sự kiện xác thực (login, logout, từ chối).
func LogAuth(c fiber.Ctx, event, username string, success bool) {
	LogAction(c, AuditAction{
		Action:   event,
		Resource: "auth",
		Username: username,
		Detail: map[string]interface{}{
			"success": success,
		},
	})
}
