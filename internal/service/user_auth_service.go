package service

import (
	"context"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/foodgram-next/internal/cache"
	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/constants"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

const (
	maxEmailLength    = 254
	maxUsernameLength = 150
	maxNameLength     = 150
)

// UserAuthService 用户注册、登录与令牌吊销
type UserAuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	tokens   tokenIssuer
}

// NewUserAuthService 创建用户认证服务
func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository) *UserAuthService {
	return &UserAuthService{
		cfg:      cfg,
		userRepo: userRepo,
		tokens:   newTokenIssuer(cfg.UserJWT, UserTokenAudience),
	}
}

// UserJWTClaims 用户令牌声明
type UserJWTClaims struct {
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// RegisterInput 注册参数
type RegisterInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
}

// GenerateUserJWT 签发用户令牌
func (s *UserAuthService) GenerateUserJWT(user *models.User) (string, time.Time, error) {
	registered := s.tokens.registered(user.ID, time.Now())
	token, err := s.tokens.sign(UserJWTClaims{
		UserID:           user.ID,
		Email:            user.Email,
		TokenVersion:     user.TokenVersion,
		RegisteredClaims: registered,
	})
	if err != nil {
		return "", time.Time{}, err
	}
	return token, registered.ExpiresAt.Time, nil
}

// Register 邮箱与用户名唯一，me 为保留用户名
func (s *UserAuthService) Register(input RegisterInput) (*models.User, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	username, err := normalizeUsername(input.Username)
	if err != nil {
		return nil, err
	}
	firstName, err := normalizeName("first_name", input.FirstName)
	if err != nil {
		return nil, err
	}
	lastName, err := normalizeName("last_name", input.LastName)
	if err != nil {
		return nil, err
	}
	if err := CheckPassword(s.cfg.Security.PasswordPolicy, input.Password, email, username, firstName, lastName); err != nil {
		return nil, err
	}

	if exist, err := s.userRepo.GetByEmail(email); err != nil {
		return nil, err
	} else if exist != nil {
		return nil, ErrEmailExists
	}
	if exist, err := s.userRepo.GetByUsername(username); err != nil {
		return nil, err
	} else if exist != nil {
		return nil, ErrUsernameExists
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:        email,
		Username:     username,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hash,
		Status:       constants.UserStatusActive,
	}
	if err := s.userRepo.Create(user); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return user, nil
}

// Login 邮箱不合法与密码错误统一返回 ErrInvalidCredentials
func (s *UserAuthService) Login(email, password string) (*models.User, string, time.Time, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil || !passwordMatches(user.PasswordHash, password) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if !strings.EqualFold(user.Status, constants.UserStatusActive) {
		return nil, "", time.Time{}, ErrUserDisabled
	}

	token, expiresAt, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.StoreUser(context.Background(), user)
	return user, token, expiresAt, nil
}

// Logout 吊销该用户已签发的全部令牌
func (s *UserAuthService) Logout(userID uint) error {
	user, err := s.mustGet(userID)
	if err != nil {
		return err
	}
	return s.revokeTokens(user)
}

// ChangePassword 旧密码校验通过后更新，并吊销旧令牌
func (s *UserAuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.mustGet(userID)
	if err != nil {
		return err
	}
	if !passwordMatches(user.PasswordHash, oldPassword) {
		return ErrInvalidPassword
	}
	if err := CheckPassword(s.cfg.Security.PasswordPolicy, newPassword, user.Email, user.Username, user.FirstName, user.LastName); err != nil {
		return err
	}
	if user.PasswordHash, err = hashPassword(newPassword); err != nil {
		return err
	}
	return s.revokeTokens(user)
}

func (s *UserAuthService) mustGet(userID uint) (*models.User, error) {
	if userID == 0 {
		return nil, ErrNotFound
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *UserAuthService) revokeTokens(user *models.User) error {
	now := time.Now()
	user.TokenVersion++
	user.TokenInvalidBefore = &now
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	_ = cache.StoreUser(context.Background(), user)
	return nil
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" || len(normalized) > maxEmailLength {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(normalized)
	if err != nil || addr.Address != normalized {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

func normalizeUsername(username string) (string, error) {
	trimmed := strings.TrimSpace(username)
	if utf8.RuneCountInString(trimmed) > maxUsernameLength || !usernamePattern.MatchString(trimmed) {
		return "", ErrUsernameInvalid
	}
	if strings.EqualFold(trimmed, constants.ReservedUsernameMe) {
		return "", ErrUsernameReserved
	}
	return trimmed, nil
}

func normalizeName(field, raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return "", newValidationError(field, "validation."+field+"_invalid", maxNameLength)
	}
	return name, nil
}
