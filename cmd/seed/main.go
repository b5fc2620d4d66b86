package main

import (
	"fmt"

	"github.com/bookstore-next/internal/config"
	"github.com/bookstore-next/internal/constants"
	"github.com/bookstore-next/internal/logger"
	"github.com/bookstore-next/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加演示用户
	users := []struct {
		UserName string
		Email    string
		Password string
		Role     string
	}{
		{UserName: "admin", Email: "admin@bookstore.local", Password: "Admin@1234", Role: constants.RoleAdmin},
		{UserName: "vendor_demo", Email: "vendor@bookstore.local", Password: "Vendor@1234", Role: constants.RoleVendor},
		{UserName: "customer_demo", Email: "customer@bookstore.local", Password: "Customer@1234", Role: constants.RoleCustomer},
	}

	userIDs := map[string]uint{}
	for _, u := range users {
		var existing models.User
		if err := models.DB.Where("email = ?", u.Email).First(&existing).Error; err == nil {
			stdLog.Printf("User already exists: %s", u.Email)
			userIDs[u.Role] = existing.ID
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Printf("Failed to hash password for %s: %v", u.Email, err)
			continue
		}
		user := models.User{
			UserName:     u.UserName,
			Email:        u.Email,
			PasswordHash: string(hash),
			Role:         u.Role,
			IsVerified:   true,
		}
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Printf("Failed to create user %s: %v", u.Email, err)
			continue
		}
		userIDs[u.Role] = user.ID
		stdLog.Printf("Created user: %s (%s)", u.Email, u.Role)
	}

	vendorID := userIDs[constants.RoleVendor]
	if vendorID == 0 {
		stdLog.Fatalf("Vendor account missing, cannot seed books")
	}

	// 添加演示书籍（已审核通过，可直接在目录中浏览购买）
	books := []models.Book{
		{
			Name:        "The Go Programming Language",
			AuthorName:  "Alan A. A. Donovan",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(39.99)),
			Quantity:    25,
			Description: "The authoritative resource for writing clear and idiomatic Go.",
			SellerID:    vendorID,
			IsApproved:  true,
		},
		{
			Name:        "Designing Data-Intensive Applications",
			AuthorName:  "Martin Kleppmann",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(49.50)),
			Quantity:    12,
			Description: "The big ideas behind reliable, scalable, and maintainable systems.",
			SellerID:    vendorID,
			IsApproved:  true,
		},
		{
			Name:        "Clean Architecture",
			AuthorName:  "Robert C. Martin",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(32.00)),
			Quantity:    18,
			Description: "A craftsman's guide to software structure and design.",
			SellerID:    vendorID,
			IsApproved:  true,
		},
		{
			Name:        "The Pragmatic Programmer",
			AuthorName:  "David Thomas",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(44.95)),
			Quantity:    8,
			Description: "Your journey to mastery, 20th anniversary edition.",
			SellerID:    vendorID,
			IsApproved:  true,
		},
		{
			Name:           "Draft Notes on Distributed Systems",
			AuthorName:     "Vendor Demo",
			Price:          models.NewMoneyFromDecimal(decimal.NewFromFloat(9.99)),
			Quantity:       3,
			Description:    "A draft listing used to demo the approval workflow.",
			SellerID:       vendorID,
			IsApprovalSent: true,
		},
	}

	for _, book := range books {
		var existing models.Book
		if err := models.DB.Where("name = ? AND seller_id = ?", book.Name, book.SellerID).First(&existing).Error; err == nil {
			stdLog.Printf("Book already exists: %s", book.Name)
			continue
		}
		if err := models.DB.Create(&book).Error; err != nil {
			stdLog.Printf("Failed to create book %s: %v", book.Name, err)
			continue
		}
		stdLog.Printf("Created book: %s", book.Name)
	}

	fmt.Println("\nSeed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 3 Users (admin / vendor / customer)")
	fmt.Println("- 4 Approved books + 1 pending review book")
}
