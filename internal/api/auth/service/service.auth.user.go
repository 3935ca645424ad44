// Package authsvc - Service người dùng và phát hành JWT.
package authsvc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	authdto "github.com/PhuocTran96/store-inspector-sub000/internal/api/auth/dto"
	authmodels "github.com/PhuocTran96/store-inspector-sub000/internal/api/auth/models"
	basesvc "github.com/PhuocTran96/store-inspector-sub000/internal/api/base/service"
	"github.com/PhuocTran96/store-inspector-sub000/internal/api/middleware"
	"github.com/PhuocTran96/store-inspector-sub000/internal/common"
	"github.com/PhuocTran96/store-inspector-sub000/internal/global"
	"github.com/PhuocTran96/store-inspector-sub000/internal/utility"
)

// tokenTTL là thời gian sống của access token.
const tokenTTL = 72 * time.Hour

// AuthUserService xử lý đăng nhập, phát hành token và CRUD người dùng.
type AuthUserService struct {
	*basesvc.BaseServiceMongoImpl[authmodels.AuthUser]
}

// NewAuthUserService tạo AuthUserService mới.
func NewAuthUserService() (*AuthUserService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.AuthUsers)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.AuthUsers, common.ErrNotFound)
	}
	return &AuthUserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[authmodels.AuthUser](coll),
	}, nil
}

// Login kiểm tra thông tin đăng nhập và phát hành JWT.
func (s *AuthUserService) Login(ctx context.Context, input *authdto.LoginInput) (*authdto.LoginResult, error) {
	user, err := s.FindOne(ctx, bson.M{"username": strings.ToLower(input.Username)}, nil)
	if err != nil {
		// Không phân biệt "không tồn tại" với "sai mật khẩu" trong response
		return nil, common.ErrInvalidCredentials
	}
	if !user.Active {
		return nil, common.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, common.NewError(common.ErrCodeSystem, "Không thể phát hành token", common.StatusInternalServerError, nil)
	}

	return &authdto.LoginResult{
		Token: token,
		User:  toUserInfo(user),
	}, nil
}

// issueToken ký JWT HS256 chứa userId/username/role.
func (s *AuthUserService) issueToken(user authmodels.AuthUser) (string, error) {
	now := time.Now()
	claims := middleware.TokenClaims{
		UserID:   user.ID.Hex(),
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(global.ServerConfig.JwtSecret))
}

// CreateUser tạo người dùng mới với mật khẩu đã băm bcrypt.
func (s *AuthUserService) CreateUser(ctx context.Context, input *authdto.UserCreateInput) (*authmodels.AuthUser, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.NewError(common.ErrCodeSystem, "Không thể băm mật khẩu", common.StatusInternalServerError, nil)
	}

	user := authmodels.AuthUser{
		Username:     strings.ToLower(input.Username),
		DisplayName:  input.DisplayName,
		TdsName:      input.TdsName,
		Role:         input.Role,
		PasswordHash: string(hash),
		Active:       true,
	}

	created, err := s.InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ChangePassword đổi mật khẩu sau khi kiểm tra mật khẩu cũ.
func (s *AuthUserService) ChangePassword(ctx context.Context, userID string, input *authdto.ChangePasswordInput) error {
	user, err := s.FindOne(ctx, bson.M{"_id": utility.String2ObjectID(userID)}, nil)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.OldPassword)); err != nil {
		return common.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return common.NewError(common.ErrCodeSystem, "Không thể băm mật khẩu", common.StatusInternalServerError, nil)
	}

	_, err = s.UpdateById(ctx, user.ID, bson.M{"$set": bson.M{"passwordHash": string(hash)}})
	return err
}

// GetMe trả về thông tin người dùng hiện tại.
func (s *AuthUserService) GetMe(ctx context.Context, userID string) (*authdto.UserInfo, error) {
	user, err := s.FindOne(ctx, bson.M{"_id": utility.String2ObjectID(userID)}, nil)
	if err != nil {
		return nil, err
	}
	info := toUserInfo(user)
	return &info, nil
}

func toUserInfo(user authmodels.AuthUser) authdto.UserInfo {
	return authdto.UserInfo{
		ID:          user.ID.Hex(),
		Username:    user.Username,
		DisplayName: user.DisplayName,
		TdsName:     user.TdsName,
		Role:        user.Role,
	}
}
