// Package middleware chứa các middleware xác thực/phân quyền cho API.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"

	basehdl "github.com/PhuocTran96/store-inspector-sub000/internal/api/base/handler"
	"github.com/PhuocTran96/store-inspector-sub000/internal/common"
	"github.com/PhuocTran96/store-inspector-sub000/internal/global"
	"github.com/PhuocTran96/store-inspector-sub000/internal/logger"
)

// TokenClaims là claims trong JWT của ứng dụng.
type TokenClaims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// RoleUser và RoleAdmin là hai vai trò của hệ thống.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// AuthMiddleware xác thực Bearer token và (nếu requiredRole khác rỗng)
// kiểm tra vai trò người dùng. Thông tin user được gắn vào c.Locals.
func AuthMiddleware(requiredRole string) fiber.Handler {
	return func(c fiber.Ctx) error {
		claims, err := parseBearerToken(c)
		if err != nil {
			logger.GetAuditLogger().
				WithField("path", c.Path()).
				WithField("ip", c.IP()).
				Warn("Từ chối request: token không hợp lệ")
			return basehdl.HandleResponse(c, nil, err)
		}

		if requiredRole == RoleAdmin && claims.Role != RoleAdmin {
			logger.LogAuth(c, "ACCESS_DENIED", claims.Username, false)
			return basehdl.HandleResponse(c, nil, common.ErrForbidden)
		}

		c.Locals("userID", claims.UserID)
		c.Locals("username", claims.Username)
		c.Locals("role", claims.Role)
		return c.Next()
	}
}

// parseBearerToken đọc và xác thực JWT từ header Authorization.
func parseBearerToken(c fiber.Ctx) (*TokenClaims, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, common.ErrTokenMissing
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, common.ErrTokenInvalid
	}

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrTokenInvalid
		}
		return []byte(global.ServerConfig.JwtSecret), nil
	})
	if err != nil {
		if strings.Contains(err.Error(), "expired") {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, common.ErrTokenInvalid
	}

	return claims, nil
}
