package provider

import (
	"github.com/forkful/forkful/internal/authz"
	"github.com/forkful/forkful/internal/cache"
	"github.com/forkful/forkful/internal/config"
	"github.com/forkful/forkful/internal/logger"
	"github.com/forkful/forkful/internal/models"
	"github.com/forkful/forkful/internal/queue"
	"github.com/forkful/forkful/internal/repository"
	"github.com/forkful/forkful/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	StaffRepo               repository.StaffRepository
	UserRepo                repository.UserRepository
	CategoryRepo            repository.CategoryRepository
	ProductRepo             repository.ProductRepository
	CartRepo                repository.CartRepository
	OrderRepo               repository.OrderRepository
	TrackingRepo            repository.TrackingRepository
	AddressRepo             repository.AddressRepository
	PaymentMethodRepo       repository.PaymentMethodRepository
	FavoriteRepo            repository.FavoriteRepository
	NotificationSettingRepo repository.NotificationSettingRepository
	SettingRepo             repository.SettingRepository

	// Services
	AuthzService         *authz.Service
	AuthService          *service.AuthService
	UserAuthService      *service.UserAuthService
	PricingService       *service.PricingService
	MenuService          *service.MenuService
	CartService          *service.CartService
	OrderService         *service.OrderService
	TrackingService      *service.TrackingService
	AddressService       *service.AddressService
	PaymentMethodService *service.PaymentMethodService
	FavoriteService      *service.FavoriteService
	NotificationService  *service.NotificationService
	SettingService       *service.SettingService
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

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.StaffRepo = repository.NewStaffRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.TrackingRepo = repository.NewTrackingRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
	c.PaymentMethodRepo = repository.NewPaymentMethodRepository(db)
	c.FavoriteRepo = repository.NewFavoriteRepository(db)
	c.NotificationSettingRepo = repository.NewNotificationSettingRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.SettingService = service.NewSettingService(c.SettingRepo, c.Config.Store)
	c.AuthService = service.NewAuthService(c.Config, c.StaffRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.PricingService = service.NewPricingService(c.Config.Pricing)
	c.MenuService = service.NewMenuService(c.CategoryRepo, c.ProductRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.PricingService)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.TrackingRepo, c.CartRepo, c.ProductRepo, c.PricingService, c.QueueClient, c.Config.Fulfillment)
	c.TrackingService = service.NewTrackingService(c.OrderRepo, c.TrackingRepo, c.Config.Store, c.Config.Fulfillment)
	c.AddressService = service.NewAddressService(c.AddressRepo)
	c.PaymentMethodService = service.NewPaymentMethodService(c.PaymentMethodRepo)
	c.FavoriteService = service.NewFavoriteService(c.FavoriteRepo, c.OrderService)
	c.NotificationService = service.NewNotificationService(c.NotificationSettingRepo)
}
