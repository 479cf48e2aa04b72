package public

import (
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/service"

	handlershared "github.com/foodgram-next/internal/http/handlers/shared"
)

type mappedHandlerError = handlershared.MappedError

var imageErrorRules = []mappedHandlerError{
	{Target: service.ErrImageInvalid, Code: response.CodeBadRequest, Key: "error.image_invalid"},
	{Target: service.ErrImageTooLarge, Code: response.CodeBadRequest, Key: "error.image_too_large"},
	{Target: service.ErrImageTypeNotAllowed, Code: response.CodeBadRequest, Key: "error.image_type_not_allowed"},
	{Target: service.ErrImageDimensions, Code: response.CodeBadRequest, Key: "error.image_dimensions"},
	{Target: service.ErrStorageUnavailable, Code: response.CodeUnavailable, Key: "error.storage_unavailable"},
}

var registerErrorRules = []mappedHandlerError{
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_invalid"},
	{Target: service.ErrEmailExists, Code: response.CodeBadRequest, Key: "error.email_exists"},
	{Target: service.ErrUsernameInvalid, Code: response.CodeBadRequest, Key: "error.username_invalid"},
	{Target: service.ErrUsernameReserved, Code: response.CodeBadRequest, Key: "error.username_reserved"},
	{Target: service.ErrUsernameExists, Code: response.CodeBadRequest, Key: "error.username_exists"},
	{Target: service.ErrWeakPassword, Code: response.CodeBadRequest, Key: "error.password_weak"},
}

var loginErrorRules = []mappedHandlerError{
	{Target: service.ErrInvalidCredentials, Code: response.CodeBadRequest, Key: "error.login_failed"},
	{Target: service.ErrUserDisabled, Code: response.CodeUnauthorized, Key: "error.user_disabled"},
}

var userErrorRules = []mappedHandlerError{
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
	{Target: service.ErrInvalidPassword, Code: response.CodeBadRequest, Key: "error.password_invalid"},
	{Target: service.ErrWeakPassword, Code: response.CodeBadRequest, Key: "error.password_weak"},
}

var subscriptionErrorRules = []mappedHandlerError{
	{Target: service.ErrAuthorNotFound, Code: response.CodeNotFound, Key: "error.author_not_found"},
	{Target: service.ErrSelfSubscribe, Code: response.CodeBadRequest, Key: "error.self_subscribe"},
	{Target: service.ErrAlreadySubscribed, Code: response.CodeBadRequest, Key: "error.already_subscribed"},
	{Target: service.ErrNotSubscribed, Code: response.CodeBadRequest, Key: "error.not_subscribed"},
	{Target: service.ErrInvalidRecipeLimit, Code: response.CodeBadRequest, Key: "error.recipes_limit_invalid"},
}

var recipeErrorRules = []mappedHandlerError{
	{Target: service.ErrRecipeNotFound, Code: response.CodeNotFound, Key: "error.recipe_not_found"},
	{Target: service.ErrRecipeForbidden, Code: response.CodeForbidden, Key: "error.recipe_forbidden"},
	{Target: service.ErrValidation, Code: response.CodeBadRequest, Key: "error.validation_failed"},
}

var shortLinkErrorRules = []mappedHandlerError{
	{Target: service.ErrRecipeNotFound, Code: response.CodeNotFound, Key: "error.recipe_not_found"},
	{Target: service.ErrShortLinkNotFound, Code: response.CodeNotFound, Key: "error.short_link_not_found"},
}

var listKindErrorRules = []mappedHandlerError{
	{Target: service.ErrRecipeNotFound, Code: response.CodeNotFound, Key: "error.recipe_not_found"},
	{Target: service.ErrUnknownListKind, Code: response.CodeBadRequest, Key: "error.list_kind_invalid"},
}

// membershipErrorRules 收藏与购物车共用服务，错误文案按清单类型区分
func membershipErrorRules(kind models.MembershipKind) []mappedHandlerError {
	alreadyKey, missingKey := "error.already_in_favorites", "error.not_in_favorites"
	if kind == models.MembershipShoppingCart {
		alreadyKey, missingKey = "error.already_in_cart", "error.not_in_cart"
	}
	return handlershared.ConcatMappedErrors(listKindErrorRules, []mappedHandlerError{
		{Target: service.ErrAlreadyInList, Code: response.CodeBadRequest, Key: alreadyKey},
		{Target: service.ErrNotInList, Code: response.CodeBadRequest, Key: missingKey},
	})
}
