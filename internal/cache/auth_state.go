package cache

import (
	"context"
	"strings"
	"time"

	"github.com/foodgram-next/internal/constants"
	"github.com/foodgram-next/internal/models"
)

// TokenState 账号令牌校验所需的最小快照，修改密码或禁用账号时失效
type TokenState struct {
	Subject      uint   `json:"subject"`
	Active       bool   `json:"active"`
	IsSuper      bool   `json:"is_super,omitempty"`
	TokenVersion uint64 `json:"token_version"`
	NotBefore    int64  `json:"not_before,omitempty"`
}

var (
	userTokens  = slot[uint, TokenState]{prefix: "auth:user", ttl: 10 * time.Minute}
	adminTokens = slot[uint, TokenState]{prefix: "auth:admin", ttl: 10 * time.Minute}
)

// Accepts 令牌版本一致且签发时间不早于 NotBefore；issuedAt 为 0 表示令牌未带 iat
func (s *TokenState) Accepts(version uint64, issuedAt int64) bool {
	if s == nil || s.TokenVersion != version {
		return false
	}
	if s.NotBefore <= 0 {
		return true
	}
	return issuedAt > 0 && issuedAt >= s.NotBefore
}

// UserTokenState 由用户记录生成快照
func UserTokenState(user *models.User) *TokenState {
	if user == nil {
		return nil
	}
	return &TokenState{
		Subject:      user.ID,
		Active:       strings.EqualFold(strings.TrimSpace(user.Status), constants.UserStatusActive),
		TokenVersion: user.TokenVersion,
		NotBefore:    unixOrZero(user.TokenInvalidBefore),
	}
}

// AdminTokenState 由管理员记录生成快照
func AdminTokenState(admin *models.Admin) *TokenState {
	if admin == nil {
		return nil
	}
	return &TokenState{
		Subject:      admin.ID,
		Active:       !admin.Disabled,
		IsSuper:      admin.IsSuper,
		TokenVersion: admin.TokenVersion,
		NotBefore:    unixOrZero(admin.TokenInvalidBefore),
	}
}

// ResolveUser 优先读缓存，未命中时回源并回填；记录不存在时返回 nil
func ResolveUser(ctx context.Context, userID uint, fetch func(uint) (*models.User, error)) (*TokenState, error) {
	if state, hit, err := userTokens.load(ctx, userID); err == nil && hit {
		return state, nil
	}
	user, err := fetch(userID)
	if err != nil || user == nil {
		return nil, err
	}
	state := UserTokenState(user)
	_ = userTokens.store(ctx, userID, state, 0)
	return state, nil
}

// ResolveAdmin 同 ResolveUser，作用于管理员
func ResolveAdmin(ctx context.Context, adminID uint, fetch func(uint) (*models.Admin, error)) (*TokenState, error) {
	if state, hit, err := adminTokens.load(ctx, adminID); err == nil && hit {
		return state, nil
	}
	admin, err := fetch(adminID)
	if err != nil || admin == nil {
		return nil, err
	}
	state := AdminTokenState(admin)
	_ = adminTokens.store(ctx, adminID, state, 0)
	return state, nil
}

// StoreUser 登录或改密后刷新快照
func StoreUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return nil
	}
	return userTokens.store(ctx, user.ID, UserTokenState(user), 0)
}

// StoreAdmin 刷新管理员快照
func StoreAdmin(ctx context.Context, admin *models.Admin) error {
	if admin == nil {
		return nil
	}
	return adminTokens.store(ctx, admin.ID, AdminTokenState(admin), 0)
}

// ForgetUser 丢弃用户快照，下次请求回源
func ForgetUser(ctx context.Context, userID uint) error {
	return userTokens.drop(ctx, userID)
}

// ForgetAdmin 丢弃管理员快照
func ForgetAdmin(ctx context.Context, adminID uint) error {
	return adminTokens.drop(ctx, adminID)
}

func unixOrZero(t *time.Time) int64 {
	if t == nil || t.IsZero() {
		return 0
	}
	return t.Unix()
}
