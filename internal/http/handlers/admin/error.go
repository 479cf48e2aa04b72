package admin

import (
	"github.com/foodgram-next/internal/authz"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/service"

	handlershared "github.com/foodgram-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type mappedHandlerError = handlershared.MappedError

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	handlershared.RespondWithMappedError(c, err, rules, fallbackCode, fallbackKey)
}

var adminAccountErrorRules = []mappedHandlerError{
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.admin_login_failed"},
	{Target: service.ErrAdminDisabled, Code: response.CodeUnauthorized, Key: "error.admin_disabled"},
	{Target: service.ErrInvalidPassword, Code: response.CodeBadRequest, Key: "error.password_invalid"},
	{Target: service.ErrWeakPassword, Code: response.CodeBadRequest, Key: "error.password_weak"},
	{Target: service.ErrUsernameInvalid, Code: response.CodeBadRequest, Key: "error.username_invalid"},
	{Target: service.ErrAdminExists, Code: response.CodeBadRequest, Key: "error.admin_exists"},
	{Target: service.ErrCannotModifySelf, Code: response.CodeBadRequest, Key: "error.cannot_modify_self"},
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.admin_not_found"},
}

var userErrorRules = []mappedHandlerError{
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
}

var recipeErrorRules = []mappedHandlerError{
	{Target: service.ErrRecipeNotFound, Code: response.CodeNotFound, Key: "error.recipe_not_found"},
}

var tagErrorRules = []mappedHandlerError{
	{Target: service.ErrTagNotFound, Code: response.CodeNotFound, Key: "error.tag_not_found"},
	{Target: service.ErrTagNameExists, Code: response.CodeBadRequest, Key: "error.tag_name_exists"},
	{Target: service.ErrSlugExists, Code: response.CodeBadRequest, Key: "error.slug_exists"},
	{Target: service.ErrTagInUse, Code: response.CodeBadRequest, Key: "error.tag_in_use"},
}

var ingredientErrorRules = []mappedHandlerError{
	{Target: service.ErrIngredientNotFound, Code: response.CodeNotFound, Key: "error.ingredient_not_found"},
	{Target: service.ErrIngredientExists, Code: response.CodeBadRequest, Key: "error.ingredient_exists"},
	{Target: service.ErrIngredientInUse, Code: response.CodeBadRequest, Key: "error.ingredient_in_use"},
	{Target: service.ErrIngredientCSVInvalid, Code: response.CodeBadRequest, Key: "error.ingredient_csv_invalid"},
}

var authzErrorRules = []mappedHandlerError{
	{Target: authz.ErrUnknownRole, Code: response.CodeBadRequest, Key: "error.role_unknown"},
	{Target: authz.ErrRoleRequired, Code: response.CodeBadRequest, Key: "error.role_unknown"},
	{Target: authz.ErrUnavailable, Code: response.CodeInternal, Key: "error.authz_failed"},
}
