package router

import (
	"fmt"
	"strings"

	"github.com/bookstore-next/internal/cache"
	"github.com/bookstore-next/internal/config"
	"github.com/bookstore-next/internal/constants"
	adminhandlers "github.com/bookstore-next/internal/http/handlers/admin"
	publichandlers "github.com/bookstore-next/internal/http/handlers/public"
	sellerhandlers "github.com/bookstore-next/internal/http/handlers/seller"
	"github.com/bookstore-next/internal/logger"
	"github.com/bookstore-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/卖家/后台分组）
	publicHandler := publichandlers.New(c)
	sellerHandler := sellerhandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}
	verifyCodeRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:verify_code", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（上传的封面与头像）
	uploadDir := strings.TrimSpace(cfg.Upload.Dir)
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	r.Static("/uploads", uploadDir)

	authMiddleware := UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo)

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/books", publicHandler.ListBooks)
			public.GET("/books/:id", publicHandler.GetBook)
			public.GET("/books/:id/reviews", publicHandler.ListBookReviews)
			public.GET("/captcha", publicHandler.GetCaptchaSetting)
			public.GET("/captcha/image", publicHandler.GenerateCaptcha)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("identifier")), publicHandler.Login)
			auth.POST("/send-verify-email", RateLimitMiddleware(redisClient, verifyCodeRule, KeyByIPAndJSONField("email")), publicHandler.SendVerifyEmail)
			auth.POST("/verify-email", publicHandler.VerifyEmail)
			auth.POST("/forgot-password", RateLimitMiddleware(redisClient, verifyCodeRule, KeyByIPAndJSONField("email")), publicHandler.ForgotPassword)
			auth.POST("/reset-password", publicHandler.ResetPassword)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(authMiddleware)
		{
			user.GET("/me", publicHandler.GetProfile)
			user.PUT("/me/profile", publicHandler.UpdateProfile)
			user.PUT("/me/password", publicHandler.ChangePassword)
			user.POST("/upload", publicHandler.UploadFile)

			// 购物相关接口仅限顾客角色
			shopping := user.Group("")
			shopping.Use(RequireRole(constants.RoleCustomer))
			{
				shopping.GET("/cart", publicHandler.GetCart)
				shopping.GET("/cart/count", publicHandler.CartCount)
				shopping.POST("/cart/items", publicHandler.AddToCart)
				shopping.PUT("/cart/items", publicHandler.SetCartQuantity)
				shopping.POST("/cart/items/:book_id/increment", publicHandler.IncrementCartItem)
				shopping.POST("/cart/items/:book_id/decrement", publicHandler.DecrementCartItem)
				shopping.DELETE("/cart/items/:book_id", publicHandler.RemoveFromCart)
				shopping.DELETE("/cart", publicHandler.ClearCart)
				shopping.POST("/cart/sync", publicHandler.SyncCart)

				shopping.POST("/checkout", publicHandler.Checkout)
				shopping.GET("/orders", publicHandler.ListMyOrders)
				shopping.GET("/orders/:id", publicHandler.GetMyOrder)

				shopping.POST("/reviews", publicHandler.AddReview)
				shopping.POST("/reviews/quick", publicHandler.QuickReview)

				shopping.GET("/wishlist", publicHandler.GetWishlist)
				shopping.POST("/wishlist/items", publicHandler.AddToWishlist)
				shopping.DELETE("/wishlist/items/:book_id", publicHandler.RemoveFromWishlist)

				shopping.GET("/addresses", publicHandler.ListAddresses)
				shopping.POST("/addresses", publicHandler.UpsertAddress)
				shopping.DELETE("/addresses/:type", publicHandler.DeleteAddress)
			}
		}

		// 卖家接口
		seller := apiV1.Group("/seller")
		seller.Use(authMiddleware, RequireRole(constants.RoleVendor))
		{
			seller.GET("/books", sellerHandler.ListBooks)
			seller.GET("/books/count", sellerHandler.CountBooks)
			seller.GET("/books/:id", sellerHandler.GetBook)
			seller.POST("/books", sellerHandler.AddBook)
			seller.PUT("/books/:id", sellerHandler.UpdateBook)
			seller.POST("/books/:id/submit", sellerHandler.SubmitBook)
			seller.DELETE("/books/:id", sellerHandler.RemoveBook)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		admin.Use(authMiddleware, RequireRole(constants.RoleAdmin))
		{
			admin.GET("/verification/sellers", adminHandler.SellersForVerification)
			admin.GET("/verification/sellers/:seller_id/books", adminHandler.PendingBooksBySeller)
			admin.POST("/verification/books", adminHandler.VerifyBook)
			admin.GET("/users", adminHandler.ListUsers)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
