package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/foodgram-next/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// 令牌受众，管理员与用户令牌互不通用
const (
	AdminTokenAudience = "foodgram-admin"
	UserTokenAudience  = "foodgram-user"
)

var errEmptySecret = errors.New("jwt secret is empty")

// tokenIssuer HS256 令牌签发
type tokenIssuer struct {
	secret   string
	ttl      time.Duration
	audience string
}

func newTokenIssuer(cfg config.JWTConfig, audience string) tokenIssuer {
	hours := cfg.ExpireHours
	if hours <= 0 {
		hours = 24
	}
	return tokenIssuer{secret: cfg.SecretKey, ttl: time.Duration(hours) * time.Hour, audience: audience}
}

func (t tokenIssuer) registered(subject uint, now time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   strconv.FormatUint(uint64(subject), 10),
		Audience:  jwt.ClaimStrings{t.audience},
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
}

func (t tokenIssuer) sign(claims jwt.Claims) (string, error) {
	if t.secret == "" {
		return "", errEmptySecret
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(t.secret))
}

func hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(hash), err
}

func passwordMatches(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
