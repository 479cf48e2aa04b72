package service

import (
	"strings"
	"sync"
	"time"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/constants"

	"github.com/mojocn/base64Captcha"
)

const captchaImageCharset = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// CaptchaVerifyPayload 验证码校验请求载荷
type CaptchaVerifyPayload struct {
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// CaptchaImageChallenge 图片验证码挑战
type CaptchaImageChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaPublicSetting 前端可见的验证码配置
type CaptchaPublicSetting struct {
	Provider string          `json:"provider"`
	Scenes   map[string]bool `json:"scenes"`
}

// CaptchaService 验证码服务，按场景开关决定是否校验
type CaptchaService struct {
	cfg config.CaptchaConfig

	mu         sync.Mutex
	imageStore base64Captcha.Store
}

// NewCaptchaService 创建验证码服务
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	return &CaptchaService{cfg: normalizeCaptchaConfig(cfg)}
}

// PublicSetting 获取公开配置
func (s *CaptchaService) PublicSetting() CaptchaPublicSetting {
	cfg := s.config()
	return CaptchaPublicSetting{
		Provider: cfg.Provider,
		Scenes: map[string]bool{
			constants.CaptchaSceneLogin:    cfg.Provider != constants.CaptchaProviderNone && cfg.Scenes.Login,
			constants.CaptchaSceneRegister: cfg.Provider != constants.CaptchaProviderNone && cfg.Scenes.Register,
		},
	}
}

// GenerateImageChallenge 生成图片验证码
func (s *CaptchaService) GenerateImageChallenge() (*CaptchaImageChallenge, error) {
	cfg := s.config()
	if cfg.Provider != constants.CaptchaProviderImage {
		return nil, ErrCaptchaConfigInvalid
	}

	driver := base64Captcha.NewDriverString(
		cfg.Image.Height,
		cfg.Image.Width,
		cfg.Image.NoiseCount,
		cfg.Image.ShowLine,
		cfg.Image.Length,
		captchaImageCharset,
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
	captcha := base64Captcha.NewCaptcha(driver, s.ensureImageStore())
	id, b64s, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaImageChallenge{
		CaptchaID:   strings.TrimSpace(id),
		ImageBase64: strings.TrimSpace(b64s),
	}, nil
}

// Verify 按场景校验验证码，场景未开启时直接通过
func (s *CaptchaService) Verify(scene string, payload CaptchaVerifyPayload) error {
	cfg := s.config()
	if !isCaptchaSceneEnabled(cfg, scene) {
		return nil
	}

	switch cfg.Provider {
	case constants.CaptchaProviderImage:
		captchaID := strings.TrimSpace(payload.CaptchaID)
		captchaCode := strings.TrimSpace(payload.CaptchaCode)
		if captchaID == "" || captchaCode == "" {
			return ErrCaptchaRequired
		}
		if !s.ensureImageStore().Verify(captchaID, captchaCode, true) {
			return ErrCaptchaInvalid
		}
		return nil
	default:
		return ErrCaptchaConfigInvalid
	}
}

func (s *CaptchaService) config() config.CaptchaConfig {
	if s == nil {
		return normalizeCaptchaConfig(config.CaptchaConfig{})
	}
	return s.cfg
}

func (s *CaptchaService) ensureImageStore() base64Captcha.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.imageStore == nil {
		s.imageStore = base64Captcha.NewMemoryStore(s.cfg.Image.MaxStore, time.Duration(s.cfg.Image.ExpireSeconds)*time.Second)
	}
	return s.imageStore
}

func isCaptchaSceneEnabled(cfg config.CaptchaConfig, scene string) bool {
	if cfg.Provider == constants.CaptchaProviderNone {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(scene)) {
	case constants.CaptchaSceneLogin:
		return cfg.Scenes.Login
	case constants.CaptchaSceneRegister:
		return cfg.Scenes.Register
	default:
		return false
	}
}

func normalizeCaptchaConfig(cfg config.CaptchaConfig) config.CaptchaConfig {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider != constants.CaptchaProviderImage {
		provider = constants.CaptchaProviderNone
	}
	cfg.Provider = provider
	cfg.Image.Length = clampInt(cfg.Image.Length, 4, 8, 5)
	cfg.Image.Width = clampInt(cfg.Image.Width, 80, 480, 240)
	cfg.Image.Height = clampInt(cfg.Image.Height, 30, 200, 80)
	cfg.Image.NoiseCount = clampInt(cfg.Image.NoiseCount, 0, 20, 2)
	cfg.Image.ShowLine = clampInt(cfg.Image.ShowLine, 0, 20, 2)
	cfg.Image.ExpireSeconds = clampInt(cfg.Image.ExpireSeconds, 30, 3600, 300)
	cfg.Image.MaxStore = clampInt(cfg.Image.MaxStore, 100, 100000, 10240)
	return cfg
}

func clampInt(value, min, max, fallback int) int {
	if value < min || value > max {
		return fallback
	}
	return value
}
