package service

import (
	"context"
	"strings"
	"time"

	"github.com/foodgram-next/internal/cache"
	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

// AuthService 管理员账号与登录
type AuthService struct {
	cfg       *config.Config
	adminRepo repository.AdminRepository
	tokens    tokenIssuer
}

// NewAuthService 创建管理员认证服务
func NewAuthService(cfg *config.Config, adminRepo repository.AdminRepository) *AuthService {
	return &AuthService{
		cfg:       cfg,
		adminRepo: adminRepo,
		tokens:    newTokenIssuer(cfg.JWT, AdminTokenAudience),
	}
}

// JWTClaims 管理员令牌声明
type JWTClaims struct {
	AdminID      uint   `json:"admin_id"`
	Username     string `json:"username"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// ValidatePassword 管理员密码策略，用户名参与相似度检查
func (s *AuthService) ValidatePassword(username, password string) error {
	if s == nil || s.cfg == nil {
		return nil
	}
	return CheckPassword(s.cfg.Security.PasswordPolicy, password, username)
}

// GenerateJWT 签发管理员令牌
func (s *AuthService) GenerateJWT(admin *models.Admin) (string, time.Time, error) {
	registered := s.tokens.registered(admin.ID, time.Now())
	token, err := s.tokens.sign(JWTClaims{
		AdminID:          admin.ID,
		Username:         admin.Username,
		TokenVersion:     admin.TokenVersion,
		RegisteredClaims: registered,
	})
	if err != nil {
		return "", time.Time{}, err
	}
	return token, registered.ExpiresAt.Time, nil
}

// Login 校验密码后签发令牌并记录登录时间；停用账号在密码正确后才提示
func (s *AuthService) Login(username, password string) (*models.Admin, string, time.Time, error) {
	admin, err := s.adminRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if admin == nil || !passwordMatches(admin.PasswordHash, password) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if admin.Disabled {
		return nil, "", time.Time{}, ErrAdminDisabled
	}

	token, expiresAt, err := s.GenerateJWT(admin)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	now := time.Now()
	admin.LastLoginAt = &now
	if err := s.adminRepo.Update(admin); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.StoreAdmin(context.Background(), admin)
	return admin, token, expiresAt, nil
}

// ListAdmins 管理员列表
func (s *AuthService) ListAdmins() ([]models.Admin, error) {
	return s.adminRepo.List()
}

// CreateAdmin 创建普通管理员
func (s *AuthService) CreateAdmin(username, password string) (*models.Admin, error) {
	username = strings.TrimSpace(username)
	if !usernamePattern.MatchString(username) {
		return nil, ErrUsernameInvalid
	}
	if exist, err := s.adminRepo.GetByUsername(username); err != nil {
		return nil, err
	} else if exist != nil {
		return nil, ErrAdminExists
	}
	if err := s.ValidatePassword(username, password); err != nil {
		return nil, err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	admin := &models.Admin{Username: username, PasswordHash: hash}
	if err := s.adminRepo.Create(admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// SetAdminDisabled 停用或启用其他管理员
func (s *AuthService) SetAdminDisabled(operatorID, adminID uint, disabled bool) error {
	if operatorID == adminID {
		return ErrCannotModifySelf
	}
	if _, err := s.mustGet(adminID); err != nil {
		return err
	}
	if err := s.adminRepo.SetDisabled(adminID, disabled); err != nil {
		return err
	}
	_ = cache.ForgetAdmin(context.Background(), adminID)
	return nil
}

// ChangePassword 修改密码后已签发令牌全部失效
func (s *AuthService) ChangePassword(adminID uint, oldPassword, newPassword string) error {
	admin, err := s.mustGet(adminID)
	if err != nil {
		return err
	}
	if !passwordMatches(admin.PasswordHash, oldPassword) {
		return ErrInvalidPassword
	}
	if err := s.ValidatePassword(admin.Username, newPassword); err != nil {
		return err
	}
	if admin.PasswordHash, err = hashPassword(newPassword); err != nil {
		return err
	}
	now := time.Now()
	admin.TokenVersion++
	admin.TokenInvalidBefore = &now
	if err := s.adminRepo.Update(admin); err != nil {
		return err
	}
	_ = cache.StoreAdmin(context.Background(), admin)
	return nil
}

func (s *AuthService) mustGet(adminID uint) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrNotFound
	}
	return admin, nil
}
