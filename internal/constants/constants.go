package constants

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 验证码场景常量
const (
	CaptchaSceneLogin    = "login"
	CaptchaSceneRegister = "register"
)

// 清单类型常量（收藏 / 购物车）
const (
	MembershipKindFavorite     = "favorite"
	MembershipKindShoppingCart = "shopping_cart"
)

// 存储驱动常量
const (
	StorageDriverLocal = "local"
	StorageDriverMinio = "minio"
)

// 图片场景常量
const (
	ImageSceneRecipe = "recipes"
	ImageSceneAvatar = "avatars"
)

// 异步任务常量
const (
	QueueDefault     = "default"
	TaskImageCleanup = "image:cleanup"
)

// 禁止使用的用户名
const ReservedUsernameMe = "me"

// 购物清单导出常量
const (
	ShoppingListHeader   = "Ваш список покупок:"
	ShoppingListFilename = "shopping_list.txt"
)
