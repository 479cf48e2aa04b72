package provider

import (
	"context"

	"github.com/foodgram-next/internal/authz"
	"github.com/foodgram-next/internal/cache"
	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/queue"
	"github.com/foodgram-next/internal/repository"
	"github.com/foodgram-next/internal/service"
	"github.com/foodgram-next/internal/storage"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	DB          *gorm.DB
	QueueClient *queue.Client
	Storage     storage.Storage

	// Repositories
	AdminRepo        repository.AdminRepository
	UserRepo         repository.UserRepository
	TagRepo          repository.TagRepository
	IngredientRepo   repository.IngredientRepository
	RecipeRepo       repository.RecipeRepository
	MembershipRepo   repository.MembershipRepository
	SubscriptionRepo repository.SubscriptionRepository
	ShortLinkRepo    repository.ShortLinkRepository
	ShoppingListRepo repository.ShoppingListRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	UserAuthService     *service.UserAuthService
	UserService         *service.UserService
	CaptchaService      *service.CaptchaService
	ImageService        *service.ImageService
	TagService          *service.TagService
	IngredientService   *service.IngredientService
	RecipeService       *service.RecipeService
	MembershipService   *service.MembershipService
	SubscriptionService *service.SubscriptionService
	ShortLinkService    *service.ShortLinkService
	ShoppingListService *service.ShoppingListService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	store, err := storage.New(context.Background(), cfg.Storage)
	if err != nil {
		logger.Errorw("provider_init_storage_failed", "driver", cfg.Storage.Driver, "error", err)
		panic(err)
	}

	return NewContainerWithDB(cfg, models.DB, store, queueClient)
}

// NewContainerWithDB 使用给定数据库与存储组装容器，queueClient 可为 nil
func NewContainerWithDB(cfg *config.Config, db *gorm.DB, store storage.Storage, queueClient *queue.Client) *Container {
	c := &Container{
		Config:      cfg,
		DB:          db,
		QueueClient: queueClient,
		Storage:     store,
	}

	// 1. 初始化 Repositories
	c.initRepositories(db)

	// 2. 初始化 Services
	c.initServices(db)

	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.TagRepo = repository.NewTagRepository(db)
	c.IngredientRepo = repository.NewIngredientRepository(db)
	c.RecipeRepo = repository.NewRecipeRepository(db)
	c.MembershipRepo = repository.NewMembershipRepository(db)
	c.SubscriptionRepo = repository.NewSubscriptionRepository(db)
	c.ShortLinkRepo = repository.NewShortLinkRepository(db)
	c.ShoppingListRepo = repository.NewShoppingListRepository(db)
}

func (c *Container) initServices(db *gorm.DB) {
	authzService, err := authz.NewService(db)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.ImageService = service.NewImageService(c.Config.Upload, c.Storage, c.QueueClient)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.UserService = service.NewUserService(c.UserRepo, c.SubscriptionRepo, c.RecipeRepo, c.MembershipRepo, c.ImageService)
	c.TagService = service.NewTagService(c.TagRepo)
	c.IngredientService = service.NewIngredientService(c.IngredientRepo)
	c.RecipeService = service.NewRecipeService(
		c.RecipeRepo,
		c.TagRepo,
		c.IngredientRepo,
		c.MembershipRepo,
		c.SubscriptionRepo,
		c.ShortLinkRepo,
		c.ImageService,
	)
	c.MembershipService = service.NewMembershipService(c.RecipeRepo, c.MembershipRepo, c.ImageService)
	c.SubscriptionService = service.NewSubscriptionService(c.UserRepo, c.SubscriptionRepo, c.RecipeRepo, c.ImageService)
	c.ShortLinkService = service.NewShortLinkService(c.ShortLinkRepo, c.RecipeRepo, c.Config.ShortLink)
	c.ShoppingListService = service.NewShoppingListService(c.ShoppingListRepo, c.Config.ShoppingList)
}
