package service

import (
	"errors"
	"testing"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

func newUserAuthTestService(t *testing.T) (*UserAuthService, repository.UserRepository) {
	t.Helper()
	repo := repository.NewUserRepository(openServiceTestDB(t))
	cfg := &config.Config{
		UserJWT: config.JWTConfig{SecretKey: "user-auth-test-secret-0123456789abcdef", ExpireHours: 1},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 8, RequireNumber: true},
		},
	}
	return NewUserAuthService(cfg, repo), repo
}

func registerMasha(t *testing.T, svc *UserAuthService) {
	t.Helper()
	_, err := svc.Register(RegisterInput{
		Email:     "  Masha@Example.com ",
		Username:  "masha",
		FirstName: "Мария",
		LastName:  "Иванова",
		Password:  "pelmeni2025",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
}

func TestRegisterNormalizesAndRejectsDuplicates(t *testing.T) {
	svc, repo := newUserAuthTestService(t)
	registerMasha(t, svc)

	user, err := repo.GetByEmail("masha@example.com")
	if err != nil || user == nil {
		t.Fatalf("registered user not found: %v", err)
	}
	if user.Email != "masha@example.com" || user.PasswordHash == "pelmeni2025" {
		t.Fatalf("unexpected stored user: %+v", user)
	}

	_, err = svc.Register(RegisterInput{Email: "masha@example.com", Username: "other", FirstName: "A", LastName: "B", Password: "pelmeni2025"})
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("want ErrEmailExists got %v", err)
	}
	_, err = svc.Register(RegisterInput{Email: "new@example.com", Username: "masha", FirstName: "A", LastName: "B", Password: "pelmeni2025"})
	if !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("want ErrUsernameExists got %v", err)
	}
	_, err = svc.Register(RegisterInput{Email: "me@example.com", Username: "me", FirstName: "A", LastName: "B", Password: "pelmeni2025"})
	if !errors.Is(err, ErrUsernameReserved) {
		t.Fatalf("want ErrUsernameReserved got %v", err)
	}
	_, err = svc.Register(RegisterInput{Email: "Bad <x@example.com>", Username: "bad", FirstName: "A", LastName: "B", Password: "pelmeni2025"})
	if !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("want ErrInvalidEmail got %v", err)
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc, _ := newUserAuthTestService(t)
	_, err := svc.Register(RegisterInput{Email: "oleg@example.com", Username: "oleg", FirstName: "Олег", LastName: "Петров", Password: "12345678"})
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("want ErrWeakPassword got %v", err)
	}
}

func TestLoginIssuesUserToken(t *testing.T) {
	svc, _ := newUserAuthTestService(t)
	registerMasha(t, svc)

	if _, _, _, err := svc.Login("masha@example.com", "wrong-pass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := svc.Login("not-an-email", "pelmeni2025"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("malformed email should be invalid credentials, got %v", err)
	}

	user, raw, expiresAt, err := svc.Login("MASHA@example.com", "pelmeni2025")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.LastLoginAt == nil || expiresAt.IsZero() {
		t.Fatalf("login should stamp last_login_at and expiry")
	}

	claims := &UserJWTClaims{}
	parser := jwt.NewParser(jwt.WithAudience(UserTokenAudience))
	if _, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("user-auth-test-secret-0123456789abcdef"), nil
	}); err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != "masha@example.com" || claims.ID == "" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginDisabledUser(t *testing.T) {
	svc, repo := newUserAuthTestService(t)
	registerMasha(t, svc)
	user, _ := repo.GetByEmail("masha@example.com")
	if err := repo.BatchUpdateStatus([]uint{user.ID}, "disabled"); err != nil {
		t.Fatalf("disable failed: %v", err)
	}
	if _, _, _, err := svc.Login("masha@example.com", "pelmeni2025"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("want ErrUserDisabled got %v", err)
	}
}

func TestChangePasswordRevokesTokens(t *testing.T) {
	svc, repo := newUserAuthTestService(t)
	registerMasha(t, svc)
	user, _ := repo.GetByEmail("masha@example.com")

	if err := svc.ChangePassword(user.ID, "nope12345", "vareniki2026"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("want ErrInvalidPassword got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "pelmeni2025", "vareniki2026"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	updated, _ := repo.GetByID(user.ID)
	if updated.TokenVersion != user.TokenVersion+1 || updated.TokenInvalidBefore == nil {
		t.Fatalf("tokens should be revoked, got version=%d", updated.TokenVersion)
	}
	if _, _, _, err := svc.Login("masha@example.com", "pelmeni2025"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password must stop working, got %v", err)
	}
	if _, _, _, err := svc.Login("masha@example.com", "vareniki2026"); err != nil {
		t.Fatalf("new password login failed: %v", err)
	}
}

func TestLogoutBumpsTokenVersion(t *testing.T) {
	svc, repo := newUserAuthTestService(t)
	registerMasha(t, svc)
	user, _ := repo.GetByEmail("masha@example.com")

	if err := svc.Logout(user.ID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	updated, _ := repo.GetByID(user.ID)
	if updated.TokenVersion != user.TokenVersion+1 {
		t.Fatalf("logout should bump token version")
	}
	if err := svc.Logout(9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound got %v", err)
	}
}
