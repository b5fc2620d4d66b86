package provider

import (
	"github.com/bookstore-next/internal/cache"
	"github.com/bookstore-next/internal/config"
	"github.com/bookstore-next/internal/logger"
	"github.com/bookstore-next/internal/models"
	"github.com/bookstore-next/internal/queue"
	"github.com/bookstore-next/internal/repository"
	"github.com/bookstore-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo            repository.UserRepository
	EmailVerifyCodeRepo repository.EmailVerifyCodeRepository
	BookRepo            repository.BookRepository
	CartRepo            repository.CartRepository
	WishlistRepo        repository.WishlistRepository
	OrderRepo           repository.OrderRepository
	ReviewRepo          repository.ReviewRepository
	AddressRepo         repository.AddressRepository

	// Services
	UserAuthService *service.UserAuthService
	EmailService    *service.EmailService
	CaptchaService  *service.CaptchaService
	UploadService   *service.UploadService
	BookService     *service.BookService
	CartService     *service.CartService
	OrderService    *service.OrderService
	ReviewService   *service.ReviewService
	WishlistService *service.WishlistService
	AddressService  *service.AddressService
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
	c.UserRepo = repository.NewUserRepository(db)
	c.EmailVerifyCodeRepo = repository.NewEmailVerifyCodeRepository(db)
	c.BookRepo = repository.NewBookRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
}

func (c *Container) initServices() {
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.UploadService = service.NewUploadService(c.Config)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.EmailVerifyCodeRepo, c.QueueClient)
	c.BookService = service.NewBookService(c.BookRepo, c.ReviewRepo, c.UserRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.BookRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CartRepo, c.BookRepo, c.AddressRepo, c.UserRepo, c.QueueClient)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.OrderRepo, c.BookRepo)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.BookRepo)
	c.AddressService = service.NewAddressService(c.AddressRepo)
}
