package router

import (
	"strings"

	"github.com/foodgram-next/internal/cache"
	"github.com/foodgram-next/internal/config"
	adminhandlers "github.com/foodgram-next/internal/http/handlers/admin"
	publichandlers "github.com/foodgram-next/internal/http/handlers/public"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/i18n"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/metrics"
	"github.com/foodgram-next/internal/provider"
	"github.com/foodgram-next/internal/storage"

	"github.com/gin-gonic/gin"
)

// guards 各路由组使用的鉴权与限流中间件
type guards struct {
	user         gin.HandlerFunc
	optionalUser gin.HandlerFunc
	admin        gin.HandlerFunc
	rbac         gin.HandlerFunc
	userLogin    gin.HandlerFunc
	adminLogin   gin.HandlerFunc
	register     gin.HandlerFunc
}

func newGuards(cfg *config.Config, c *provider.Container) guards {
	prefix := strings.TrimSpace(cfg.Redis.Prefix)
	if prefix == "" {
		prefix = "fg"
	}
	client := cache.Client()
	return guards{
		user:         UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo),
		optionalUser: OptionalUserAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo),
		admin:        JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo),
		rbac:         AdminRBACMiddleware(c.AuthzService),
		userLogin: NewLoginThrottle(client, prefix+":throttle:login", cfg.Security.LoginRateLimit).
			Middleware(ThrottleByLoginField("email")),
		adminLogin: NewLoginThrottle(client, prefix+":throttle:admin_login", cfg.Security.LoginRateLimit).
			Middleware(ThrottleByLoginField("username")),
		register: NewLoginThrottle(client, prefix+":throttle:register", cfg.Security.LoginRateLimit).
			Middleware(ThrottleByIP),
	}
}

// SetupRouter 组装 gin 引擎
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestIDMiddleware(), LoggerMiddleware(log), CORSMiddleware(cfg.CORS))
	if cfg.Metrics.Enabled {
		r.Use(metrics.GinMiddleware())
		path := strings.TrimSpace(cfg.Metrics.Path)
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, metrics.Handler())
	}
	if local, ok := c.Storage.(*storage.LocalStorage); ok && strings.HasPrefix(local.PublicPath(), "/") {
		r.Static(local.PublicPath(), local.Dir())
	}

	pub := publichandlers.New(c)
	g := newGuards(cfg, c)

	r.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, i18n.T(i18n.ResolveLocale(ctx), "error.not_found"))
	})
	r.GET("/health", healthHandler(c))
	r.GET("/s/:code", pub.RedirectShortLink)

	api := r.Group("/api/v1")
	registerPublicRoutes(api, pub, g)
	registerAdminRoutes(api.Group("/admin"), adminhandlers.New(c), g, r)
	return r
}

func registerPublicRoutes(api *gin.RouterGroup, h *publichandlers.Handler, g guards) {
	api.GET("/captcha/config", h.GetCaptchaConfig)
	api.GET("/captcha/image", h.GetImageCaptcha)
	api.GET("/short-links/:code", h.ResolveShortLink)
	api.GET("/tags", h.ListTags)
	api.GET("/tags/:id", h.GetTag)
	api.GET("/ingredients", h.ListIngredients)
	api.GET("/ingredients/:id", h.GetIngredient)
	api.POST("/users", g.register, h.UserRegister)
	api.POST("/auth/token/login", g.userLogin, h.UserLogin)
	api.POST("/auth/token/logout", g.user, h.UserLogout)

	// 匿名可读，登录后补充 is_subscribed / is_favorited / is_in_shopping_cart
	optional := api.Group("", g.optionalUser)
	optional.GET("/users", h.ListUsers)
	optional.GET("/users/:id", h.GetUser)
	optional.GET("/recipes", h.ListRecipes)
	optional.GET("/recipes/:id", h.GetRecipe)
	optional.GET("/recipes/:id/get-link", h.GetRecipeLink)

	user := api.Group("", g.user)
	user.GET("/users/me", h.GetCurrentUser)
	user.PUT("/users/me/avatar", h.UpdateAvatar)
	user.DELETE("/users/me/avatar", h.DeleteAvatar)
	user.POST("/users/set_password", h.SetPassword)
	user.GET("/users/subscriptions", h.ListSubscriptions)
	user.POST("/users/:id/subscribe", h.Subscribe)
	user.DELETE("/users/:id/subscribe", h.Unsubscribe)

	user.POST("/recipes", h.CreateRecipe)
	user.PATCH("/recipes/:id", h.UpdateRecipe)
	user.DELETE("/recipes/:id", h.DeleteRecipe)
	user.POST("/recipes/:id/favorite", h.AddFavorite)
	user.DELETE("/recipes/:id/favorite", h.RemoveFavorite)
	user.POST("/recipes/:id/shopping_cart", h.AddToShoppingCart)
	user.DELETE("/recipes/:id/shopping_cart", h.RemoveFromShoppingCart)
	user.GET("/recipes/download_shopping_cart", h.DownloadShoppingCart)
	user.DELETE("/recipes/shopping_cart", h.ClearShoppingCart)
}

func registerAdminRoutes(admin *gin.RouterGroup, h *adminhandlers.Handler, g guards, engine *gin.Engine) {
	admin.POST("/login", g.adminLogin, h.AdminLogin)

	// 只需登录，不走 RBAC
	self := admin.Group("", g.admin)
	self.PUT("/password", h.UpdateAdminPassword)
	self.GET("/authz/me", h.GetAuthzMe)

	rbac := admin.Group("", g.admin, g.rbac)

	rbac.GET("/users", h.GetAdminUsers)
	rbac.GET("/users/:id", h.GetAdminUser)
	rbac.PUT("/users/batch-status", h.BatchUpdateUserStatus)

	rbac.GET("/recipes", h.GetAdminRecipes)
	rbac.GET("/recipes/:id", h.GetAdminRecipe)
	rbac.DELETE("/recipes/:id", h.DeleteAdminRecipe)

	rbac.GET("/tags", h.GetAdminTags)
	rbac.POST("/tags", h.CreateTag)
	rbac.PUT("/tags/:id", h.UpdateTag)
	rbac.DELETE("/tags/:id", h.DeleteTag)

	rbac.GET("/ingredients", h.GetAdminIngredients)
	rbac.GET("/ingredients/export", h.ExportIngredients)
	rbac.POST("/ingredients/import", h.ImportIngredients)
	rbac.GET("/ingredients/:id", h.GetAdminIngredient)
	rbac.POST("/ingredients", h.CreateIngredient)
	rbac.PUT("/ingredients/:id", h.UpdateIngredient)
	rbac.DELETE("/ingredients/:id", h.DeleteIngredient)

	rbac.GET("/authz/roles", h.ListAuthzRoles)
	rbac.GET("/authz/permissions/catalog", func(c *gin.Context) {
		response.Success(c, permissionCatalog(engine.Routes()))
	})
	rbac.GET("/authz/admins", h.ListAdmins)
	rbac.POST("/authz/admins", h.CreateAdmin)
	rbac.PUT("/authz/admins/:id/disabled", h.SetAdminDisabled)
	rbac.GET("/authz/admins/:id/roles", h.GetAuthzAdminRoles)
	rbac.PUT("/authz/admins/:id/roles", h.SetAuthzAdminRoles)
}
