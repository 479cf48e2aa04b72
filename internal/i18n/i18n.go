package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

// 支持的语言
const (
	LocaleRU = "ru-RU"
	LocaleEN = "en-US"
	LocaleZH = "zh-CN"

	// DefaultLocale 无法识别请求语言时使用
	DefaultLocale = LocaleRU
)

const localeHeader = "X-Locale"

var (
	supportedLocales = []string{LocaleRU, LocaleEN, LocaleZH}
	matcher          = language.NewMatcher([]language.Tag{
		language.Russian,
		language.AmericanEnglish,
		language.SimplifiedChinese,
	})
)

// ResolveLocale 按 ?lang=、X-Locale、Accept-Language 的顺序解析请求语言
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	if raw := strings.TrimSpace(c.Query("lang")); raw != "" {
		return NormalizeLocale(raw)
	}
	if raw := strings.TrimSpace(c.GetHeader(localeHeader)); raw != "" {
		return NormalizeLocale(raw)
	}
	accept := strings.TrimSpace(c.GetHeader("Accept-Language"))
	if accept == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	return match(tags...)
}

// NormalizeLocale 将任意语言标签映射到受支持语言
func NormalizeLocale(raw string) string {
	tag, err := language.Parse(strings.TrimSpace(raw))
	if err != nil {
		return DefaultLocale
	}
	return match(tag)
}

func match(tags ...language.Tag) string {
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No || index < 0 || index >= len(supportedLocales) {
		return DefaultLocale
	}
	return supportedLocales[index]
}

// T 翻译 key，缺失时依次回退默认语言、英文、key 本身
func T(locale, key string) string {
	for _, candidate := range []string{locale, DefaultLocale, LocaleEN} {
		if messages, ok := catalogue[candidate]; ok {
			if msg, ok := messages[key]; ok {
				return msg
			}
		}
	}
	return key
}

// Sprintf 翻译并格式化
func Sprintf(locale, key string, args ...interface{}) string {
	msg := T(locale, key)
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
