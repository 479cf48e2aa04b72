package service

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/foodgram-next/internal/config"
)

// PasswordRuleError 密码策略未通过，Key 为 i18n 键
type PasswordRuleError struct {
	key  string
	args []interface{}
}

func (e *PasswordRuleError) Error() string { return "password rejected: " + e.key }

func (e *PasswordRuleError) Is(target error) bool { return target == ErrWeakPassword }

// Key i18n 键
func (e *PasswordRuleError) Key() string { return e.key }

// Args i18n 参数
func (e *PasswordRuleError) Args() []interface{} { return e.args }

func rejectPassword(key string, args ...interface{}) error {
	return &PasswordRuleError{key: key, args: args}
}

// passwordTraits 密码中出现的字符类别
type passwordTraits struct {
	runes   int
	upper   bool
	lower   bool
	digit   bool
	special bool
	numeric bool // 仅由数字组成
}

func scanPassword(password string) passwordTraits {
	traits := passwordTraits{runes: utf8.RuneCountInString(password), numeric: password != ""}
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			traits.upper = true
		case unicode.IsLower(r):
			traits.lower = true
		case unicode.IsDigit(r):
			traits.digit = true
			continue
		default:
			traits.special = true
		}
		traits.numeric = false
	}
	return traits
}

// CheckPassword 按配置校验密码；attrs 为账号自身字段（邮箱、用户名、姓名），密码不得与之相同或包含其本地部分
func CheckPassword(policy config.PasswordPolicyConfig, password string, attrs ...string) error {
	traits := scanPassword(password)
	if policy.MinLength > 0 && traits.runes < policy.MinLength {
		return rejectPassword("error.password_min_length", policy.MinLength)
	}
	if traits.numeric {
		return rejectPassword("error.password_numeric")
	}

	lowered := strings.ToLower(password)
	for _, attr := range attrs {
		attr = strings.ToLower(strings.TrimSpace(attr))
		if local, _, found := strings.Cut(attr, "@"); found {
			attr = local
		}
		if utf8.RuneCountInString(attr) < 3 {
			continue
		}
		if strings.Contains(lowered, attr) {
			return rejectPassword("error.password_too_similar")
		}
	}

	switch {
	case policy.RequireUpper && !traits.upper:
		return rejectPassword("error.password_require_upper")
	case policy.RequireLower && !traits.lower:
		return rejectPassword("error.password_require_lower")
	case policy.RequireNumber && !traits.digit:
		return rejectPassword("error.password_require_number")
	case policy.RequireSpecial && !traits.special:
		return rejectPassword("error.password_require_special")
	}
	return nil
}
