package service

import (
	"errors"
	"testing"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/constants"
)

func TestCaptchaVerifySkipsDisabledScene(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{
		Provider: constants.CaptchaProviderImage,
		Scenes:   config.CaptchaSceneConfig{Login: false, Register: true},
	})
	if err := svc.Verify(constants.CaptchaSceneLogin, CaptchaVerifyPayload{}); err != nil {
		t.Fatalf("disabled scene should pass, got %v", err)
	}
	if err := svc.Verify(constants.CaptchaSceneRegister, CaptchaVerifyPayload{}); !errors.Is(err, ErrCaptchaRequired) {
		t.Fatalf("want ErrCaptchaRequired got %v", err)
	}
	if err := svc.Verify(constants.CaptchaSceneRegister, CaptchaVerifyPayload{CaptchaID: "x", CaptchaCode: "y"}); !errors.Is(err, ErrCaptchaInvalid) {
		t.Fatalf("want ErrCaptchaInvalid got %v", err)
	}
}

func TestCaptchaProviderNoneDisablesAllScenes(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{
		Provider: "turnstile",
		Scenes:   config.CaptchaSceneConfig{Login: true, Register: true},
	})
	if err := svc.Verify(constants.CaptchaSceneLogin, CaptchaVerifyPayload{}); err != nil {
		t.Fatalf("unsupported provider should fall back to none, got %v", err)
	}
	if _, err := svc.GenerateImageChallenge(); !errors.Is(err, ErrCaptchaConfigInvalid) {
		t.Fatalf("want ErrCaptchaConfigInvalid got %v", err)
	}
	setting := svc.PublicSetting()
	if setting.Provider != constants.CaptchaProviderNone || setting.Scenes[constants.CaptchaSceneLogin] {
		t.Fatalf("public setting mismatch: %+v", setting)
	}
}

func TestCaptchaGenerateImageChallenge(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{Provider: constants.CaptchaProviderImage})
	challenge, err := svc.GenerateImageChallenge()
	if err != nil {
		t.Fatalf("generate challenge failed: %v", err)
	}
	if challenge.CaptchaID == "" || challenge.ImageBase64 == "" {
		t.Fatalf("challenge should be filled: %+v", challenge)
	}
}
