package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// 通用
	ErrNotFound          = errors.New("not found")
	ErrInvalidPagination = errors.New("invalid pagination")

	// 认证与账号
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrWeakPassword       = errors.New("weak password")
	ErrUserDisabled       = errors.New("user disabled")
	ErrAdminDisabled      = errors.New("admin disabled")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrEmailExists        = errors.New("email already exists")
	ErrUsernameExists     = errors.New("username already exists")
	ErrUsernameInvalid    = errors.New("invalid username")
	ErrUsernameReserved   = errors.New("username reserved")
	ErrProfileInvalid     = errors.New("invalid profile")
	ErrAdminExists        = errors.New("admin already exists")
	ErrCannotModifySelf   = errors.New("cannot modify self")

	// 验证码
	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")

	// 字段校验，具体字段见 ValidationError
	ErrValidation = errors.New("validation failed")

	// 菜谱
	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrRecipeForbidden = errors.New("recipe forbidden")

	// 收藏 / 购物车
	ErrAlreadyInList       = errors.New("already in list")
	ErrNotInList           = errors.New("not in list")
	ErrUnknownListKind     = errors.New("unknown list kind")
	ErrShoppingListFailure = errors.New("shopping list export failed")

	// 订阅
	ErrAuthorNotFound     = errors.New("author not found")
	ErrSelfSubscribe      = errors.New("cannot subscribe to self")
	ErrAlreadySubscribed  = errors.New("already subscribed")
	ErrNotSubscribed      = errors.New("not subscribed")
	ErrInvalidRecipeLimit = errors.New("invalid recipes limit")

	// 标签 / 食材
	ErrTagNotFound          = errors.New("tag not found")
	ErrTagNameExists        = errors.New("tag name already exists")
	ErrSlugExists           = errors.New("slug already exists")
	ErrTagInUse             = errors.New("tag in use")
	ErrIngredientNotFound   = errors.New("ingredient not found")
	ErrIngredientExists     = errors.New("ingredient already exists")
	ErrIngredientInUse      = errors.New("ingredient in use")
	ErrIngredientCSVInvalid = errors.New("ingredient csv invalid")

	// 短链
	ErrShortLinkNotFound  = errors.New("short link not found")
	ErrShortLinkExhausted = errors.New("short link code space exhausted")

	// 图片
	ErrImageInvalid        = errors.New("image invalid")
	ErrImageTooLarge       = errors.New("image too large")
	ErrImageTypeNotAllowed = errors.New("image type not allowed")
	ErrImageDimensions     = errors.New("image dimensions too large")
	ErrStorageUnavailable  = errors.New("storage unavailable")
)

// ValidationError 字段级校验错误，Key 为 i18n 键
type ValidationError struct {
	Field string
	key   string
	args  []interface{}
}

func newValidationError(field, key string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, key: key, args: args}
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.key
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Key 返回 i18n 键
func (e *ValidationError) Key() string {
	return e.key
}

// Args 返回 i18n 参数
func (e *ValidationError) Args() []interface{} {
	return e.args
}

// isUniqueViolation 兼容 sqlite 与 postgres 的唯一约束冲突判断
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "sqlstate 23505")
}
