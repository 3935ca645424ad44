// Package authhdl - Handler cho các API xác thực và quản lý người dùng.
package authhdl

import (
	"context"

	"github.com/gofiber/fiber/v3"

	authdto "github.com/PhuocTran96/store-inspector-sub000/internal/api/auth/dto"
	authmodels "github.com/PhuocTran96/store-inspector-sub000/internal/api/auth/models"
	authsvc "github.com/PhuocTran96/store-inspector-sub000/internal/api/auth/service"
	basehdl "github.com/PhuocTran96/store-inspector-sub000/internal/api/base/handler"
	"github.com/PhuocTran96/store-inspector-sub000/internal/common"
	"github.com/PhuocTran96/store-inspector-sub000/internal/logger"
)

// AuthHandler xử lý login, thông tin cá nhân và CRUD người dùng (admin).
type AuthHandler struct {
	*basehdl.BaseHandler[authmodels.AuthUser, authdto.UserCreateInput, authdto.UserUpdateInput]
	service *authsvc.AuthUserService
}

// NewAuthHandler tạo AuthHandler mới.
func NewAuthHandler() (*AuthHandler, error) {
	service, err := authsvc.NewAuthUserService()
	if err != nil {
		return nil, err
	}
	return &AuthHandler{
		BaseHandler: basehdl.NewBaseHandler[authmodels.AuthUser, authdto.UserCreateInput, authdto.UserUpdateInput](service),
		service:     service,
	}, nil
}

// HandleLogin xử lý POST /auth/login.
func (h *AuthHandler) HandleLogin(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input authdto.LoginInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		result, err := h.service.Login(context.Background(), &input)
		logger.LogAuth(c, "LOGIN", input.Username, err == nil)
		return basehdl.HandleResponse(c, result, err)
	})
}

// HandleGetMe xử lý GET /auth/me.
func (h *AuthHandler) HandleGetMe(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, _ := c.Locals("userID").(string)
		if userID == "" {
			return basehdl.HandleResponse(c, nil, common.ErrTokenMissing)
		}
		info, err := h.service.GetMe(context.Background(), userID)
		return basehdl.HandleResponse(c, info, err)
	})
}

// HandleChangePassword xử lý POST /auth/change-password.
func (h *AuthHandler) HandleChangePassword(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, _ := c.Locals("userID").(string)
		if userID == "" {
			return basehdl.HandleResponse(c, nil, common.ErrTokenMissing)
		}

		var input authdto.ChangePasswordInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		err := h.service.ChangePassword(context.Background(), userID, &input)
		logger.LogAction(c, logger.AuditAction{Action: "CHANGE_PASSWORD", Resource: "auth"})
		return basehdl.HandleResponse(c, fiber.Map{"changed": err == nil}, err)
	})
}

// HandleCreateUser xử lý POST /users/insert-one (admin): ghi đè CRUD mặc định
// để băm mật khẩu trước khi lưu.
func (h *AuthHandler) HandleCreateUser(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input authdto.UserCreateInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		user, err := h.service.CreateUser(context.Background(), &input)
		logger.LogCRUD(c, "CREATE", "auth_user", map[string]interface{}{"username": input.Username})
		return basehdl.HandleResponse(c, user, err)
	})
}
