package service

import (
	"errors"
	"testing"

	"github.com/foodgram-next/internal/config"
)

func TestCheckPassword(t *testing.T) {
	policy := config.PasswordPolicyConfig{MinLength: 8, RequireLower: true, RequireNumber: true}

	cases := []struct {
		name     string
		password string
		attrs    []string
		wantKey  string
	}{
		{name: "ok", password: "borscht2024", attrs: []string{"cook@example.com", "cook"}},
		{name: "short", password: "ab1", wantKey: "error.password_min_length"},
		{name: "numeric", password: "1234567890", wantKey: "error.password_numeric"},
		{name: "contains email local part", password: "chef1985!x", attrs: []string{"chef@example.com"}, wantKey: "error.password_too_similar"},
		{name: "short attrs ignored", password: "ed123456x", attrs: []string{"ed"}},
		{name: "no digit", password: "onlyletters", wantKey: "error.password_require_number"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckPassword(policy, tc.password, tc.attrs...)
			if tc.wantKey == "" {
				if err != nil {
					t.Fatalf("want nil got %v", err)
				}
				return
			}
			var ruleErr *PasswordRuleError
			if !errors.As(err, &ruleErr) {
				t.Fatalf("want PasswordRuleError got %v", err)
			}
			if ruleErr.Key() != tc.wantKey {
				t.Fatalf("key want %s got %s", tc.wantKey, ruleErr.Key())
			}
			if !errors.Is(err, ErrWeakPassword) {
				t.Fatalf("rule error must match ErrWeakPassword")
			}
		})
	}
}

func TestCheckPasswordMinLengthArgs(t *testing.T) {
	err := CheckPassword(config.PasswordPolicyConfig{MinLength: 12}, "abc")
	var ruleErr *PasswordRuleError
	if !errors.As(err, &ruleErr) {
		t.Fatalf("want PasswordRuleError got %v", err)
	}
	if len(ruleErr.Args()) != 1 || ruleErr.Args()[0] != 12 {
		t.Fatalf("unexpected args: %v", ruleErr.Args())
	}
}
