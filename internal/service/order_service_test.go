package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bookstore-next/internal/constants"
	"github.com/bookstore-next/internal/models"
	"github.com/bookstore-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Book{},
		&models.CartItem{},
		&models.Address{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	svc := NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewBookRepository(db),
		repository.NewAddressRepository(db),
		repository.NewUserRepository(db),
		nil,
	)
	return svc, db
}

func createTestUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()
	user := &models.User{
		UserName:     strings.SplitN(email, "@", 2)[0],
		Email:        email,
		PasswordHash: "x",
		Role:         role,
		IsVerified:   true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func createApprovedBook(t *testing.T, db *gorm.DB, sellerID uint, name string, price string, quantity int) *models.Book {
	t.Helper()
	money, err := models.NewMoneyFromString(price)
	if err != nil {
		t.Fatalf("parse price failed: %v", err)
	}
	book := &models.Book{
		Name:       name,
		AuthorName: "Test Author",
		Price:      money,
		Quantity:   quantity,
		SellerID:   sellerID,
		IsApproved: true,
	}
	if err := db.Create(book).Error; err != nil {
		t.Fatalf("create book failed: %v", err)
	}
	return book
}

func addCartItem(t *testing.T, db *gorm.DB, userID, bookID uint, quantity int) {
	t.Helper()
	item := &models.CartItem{UserID: userID, BookID: bookID, Quantity: quantity}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}
}

func TestCheckoutCreatesOrderAndClearsCart(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	seller := createTestUser(t, db, "seller_checkout@example.com", constants.RoleVendor)
	buyer := createTestUser(t, db, "buyer_checkout@example.com", constants.RoleCustomer)
	book := createApprovedBook(t, db, seller.ID, "Checkout Book", "19.90", 5)
	addCartItem(t, db, buyer.ID, book.ID, 3)

	home := &models.Address{UserID: buyer.ID, Type: constants.AddressTypeHome, Street: "1 Main St", City: "Springfield"}
	if err := db.Create(home).Error; err != nil {
		t.Fatalf("create address failed: %v", err)
	}

	order, err := svc.Checkout(buyer.ID)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.Status != constants.OrderStatusPlaced {
		t.Fatalf("expected placed status, got %s", order.Status)
	}
	if !strings.HasPrefix(order.OrderNo, "BK") {
		t.Fatalf("unexpected order no: %s", order.OrderNo)
	}
	want := decimal.RequireFromString("59.70")
	if !order.TotalAmount.Decimal.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, order.TotalAmount.Decimal)
	}
	if order.AddressID == nil || *order.AddressID != home.ID {
		t.Fatalf("expected home address attached, got %+v", order.AddressID)
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 3 || order.Items[0].BookName != "Checkout Book" {
		t.Fatalf("unexpected order items: %+v", order.Items)
	}

	var stored models.Book
	if err := db.First(&stored, book.ID).Error; err != nil {
		t.Fatalf("reload book failed: %v", err)
	}
	if stored.Quantity != 2 {
		t.Fatalf("expected stock 2 after checkout, got %d", stored.Quantity)
	}

	var cartCount int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", buyer.ID).Count(&cartCount).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if cartCount != 0 {
		t.Fatalf("expected empty cart after checkout, got %d items", cartCount)
	}
}

func TestCheckoutInsufficientStockRollsBackEverything(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	seller := createTestUser(t, db, "seller_rollback@example.com", constants.RoleVendor)
	buyer := createTestUser(t, db, "buyer_rollback@example.com", constants.RoleCustomer)
	bookA := createApprovedBook(t, db, seller.ID, "In Stock Book", "10.00", 5)
	bookB := createApprovedBook(t, db, seller.ID, "Scarce Book", "15.00", 2)
	addCartItem(t, db, buyer.ID, bookA.ID, 2)
	addCartItem(t, db, buyer.ID, bookB.ID, 3)

	_, err := svc.Checkout(buyer.ID)
	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}
	if stockErr.BookName != "Scarce Book" {
		t.Fatalf("expected scarce book in error, got %s", stockErr.BookName)
	}
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected error to match ErrInsufficientStock")
	}

	// 整单失败：库存、购物车、订单均不应有任何改动
	var storedA, storedB models.Book
	if err := db.First(&storedA, bookA.ID).Error; err != nil {
		t.Fatalf("reload book A failed: %v", err)
	}
	if err := db.First(&storedB, bookB.ID).Error; err != nil {
		t.Fatalf("reload book B failed: %v", err)
	}
	if storedA.Quantity != 5 || storedB.Quantity != 2 {
		t.Fatalf("expected stock unchanged (5, 2), got (%d, %d)", storedA.Quantity, storedB.Quantity)
	}

	var cartCount, orderCount int64
	db.Model(&models.CartItem{}).Where("user_id = ?", buyer.ID).Count(&cartCount)
	db.Model(&models.Order{}).Count(&orderCount)
	if cartCount != 2 {
		t.Fatalf("expected cart intact with 2 items, got %d", cartCount)
	}
	if orderCount != 0 {
		t.Fatalf("expected no orders created, got %d", orderCount)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	buyer := createTestUser(t, db, "buyer_empty@example.com", constants.RoleCustomer)

	_, err := svc.Checkout(buyer.ID)
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}

func TestCheckoutWithoutAddressLeavesOrderUnaddressed(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	seller := createTestUser(t, db, "seller_noaddr@example.com", constants.RoleVendor)
	buyer := createTestUser(t, db, "buyer_noaddr@example.com", constants.RoleCustomer)
	book := createApprovedBook(t, db, seller.ID, "No Address Book", "5.00", 1)
	addCartItem(t, db, buyer.ID, book.ID, 1)

	order, err := svc.Checkout(buyer.ID)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.AddressID != nil {
		t.Fatalf("expected nil address id, got %v", *order.AddressID)
	}
}

func TestGetOrderScopedToOwner(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	seller := createTestUser(t, db, "seller_scope@example.com", constants.RoleVendor)
	buyer := createTestUser(t, db, "buyer_scope@example.com", constants.RoleCustomer)
	other := createTestUser(t, db, "other_scope@example.com", constants.RoleCustomer)
	book := createApprovedBook(t, db, seller.ID, "Scoped Book", "8.00", 2)
	addCartItem(t, db, buyer.ID, book.ID, 1)

	order, err := svc.Checkout(buyer.ID)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if _, err := svc.GetOrder(buyer.ID, order.ID); err != nil {
		t.Fatalf("owner should read own order: %v", err)
	}
	if _, err := svc.GetOrder(other.ID, order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for other user, got %v", err)
	}
}

func TestGenerateOrderNoUnique(t *testing.T) {
	seen := make(map[string]struct{}, 20)
	for i := 0; i < 20; i++ {
		no, err := generateOrderNo()
		if err != nil {
			t.Fatalf("generate order no failed: %v", err)
		}
		if !strings.HasPrefix(no, "BK") {
			t.Fatalf("unexpected prefix: %s", no)
		}
		if _, dup := seen[no]; dup {
			t.Fatalf("duplicate order no generated: %s", no)
		}
		seen[no] = struct{}{}
	}
}
