package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bookstore-next/internal/constants"
	"github.com/bookstore-next/internal/models"
	"github.com/bookstore-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Book{}, &models.CartItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewCartService(
		repository.NewCartRepository(db),
		repository.NewBookRepository(db),
	)
	return svc, db
}

func TestAddToCartDuplicate(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	seller := createTestUser(t, db, "cart_seller_dup@example.com", constants.RoleVendor)
	buyer := createTestUser(t, db, "cart_buyer_dup@example.com", constants.RoleCustomer)
	book := createApprovedBook(t, db, seller.ID, "Cart Book", "10.00", 5)

	if _, err := svc.Add(buyer.ID, book.ID, 2); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	item, err := svc.Add(buyer.ID, book.ID, 1)
	if !errors.Is(err, ErrAlreadyInCart) {
		t.Fatalf("expected ErrAlreadyInCart, got %v", err)
	}
	// 重复添加保持原有数量不变
	if item == nil || item.Quantity != 2 {
		t.Fatalf("expected existing item with quantity 2, got %+v", item)
	}
}

func TestAddToCartStockBound(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	seller := createTestUser(t, db, "cart_seller_stock@example.com", constants.RoleVendor)
	buyer := createTestUser(t, db, "cart_buyer_stock@example.com", constants.RoleCustomer)
	book := createApprovedBook(t, db, seller.ID, "Low Stock Book", "10.00", 2)

	_, err := svc.Add(buyer.ID, book.ID, 3)
	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}
	if stockErr.BookName != "Low Stock Book" {
		t.Fatalf("unexpected book name in error: %s", stockErr.BookName)
	}
}

func TestAddToCartUnavailableBook(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	seller := createTestUser(t, db, "cart_seller_avail@example.com", constants.RoleVendor)
	buyer := createTestUser(t, db, "cart_buyer_avail@example.com", constants.RoleCustomer)

	draft := &models.Book{Name: "Draft Cart Book", AuthorName: "A", SellerID: seller.ID, Quantity: 3}
	if err := db.Create(draft).Error; err != nil {
		t.Fatalf("create draft failed: %v", err)
	}
	if _, err := svc.Add(buyer.ID, draft.ID, 1); !errors.Is(err, ErrBookNotAvailable) {
		t.Fatalf("expected ErrBookNotAvailable, got %v", err)
	}

	soldOut := createApprovedBook(t, db, seller.ID, "Sold Out Book", "10.00", 0)
	if _, err := svc.Add(buyer.ID, soldOut.ID, 1); !errors.Is(err, ErrBookOutOfStock) {
		t.Fatalf("expected ErrBookOutOfStock, got %v", err)
	}

	if _, err := svc.Add(buyer.ID, 99999, 1); !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}

func TestSetQuantityBoundedByLiveStock(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	seller := createTestUser(t, db, "cart_seller_set@example.com", constants.RoleVendor)
	buyer := createTestUser(t, db, "cart_buyer_set@example.com", constants.RoleCustomer)
	book := createApprovedBook(t, db, seller.ID, "Set Quantity Book", "10.00", 5)

	if _, err := svc.Add(buyer.ID, book.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	item, err := svc.SetQuantity(buyer.ID, book.ID, 5)
	if err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	if item.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", item.Quantity)
	}

	// 库存被其他订单扣走后，超量设置按当前库存拒绝
	if err := db.Model(&models.Book{}).Where("id = ?", book.ID).Update("quantity", 2).Error; err != nil {
		t.Fatalf("shrink stock failed: %v", err)
	}
	_, err = svc.SetQuantity(buyer.ID, book.ID, 4)
	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}
}

func TestSetQuantityZeroRemovesItem(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	seller := createTestUser(t, db, "cart_seller_zero@example.com", constants.RoleVendor)
	buyer := createTestUser(t, db, "cart_buyer_zero@example.com", constants.RoleCustomer)
	book := createApprovedBook(t, db, seller.ID, "Zero Book", "10.00", 5)

	if _, err := svc.Add(buyer.ID, book.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	item, err := svc.SetQuantity(buyer.ID, book.ID, 0)
	if err != nil {
		t.Fatalf("set zero failed: %v", err)
	}
	if item != nil {
		t.Fatalf("expected nil item after removal, got %+v", item)
	}

	count, err := svc.Count(buyer.ID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty cart, got %d items", count)
	}

	if _, err := svc.SetQuantity(buyer.ID, book.ID, 1); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound after removal, got %v", err)
	}
}

func TestDecrementToZeroRemovesItem(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	seller := createTestUser(t, db, "cart_seller_dec@example.com", constants.RoleVendor)
	buyer := createTestUser(t, db, "cart_buyer_dec@example.com", constants.RoleCustomer)
	book := createApprovedBook(t, db, seller.ID, "Decrement Book", "10.00", 5)

	if _, err := svc.Add(buyer.ID, book.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	item, err := svc.Decrement(buyer.ID, book.ID)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if item != nil {
		t.Fatalf("expected item removed at zero, got %+v", item)
	}
}

func TestSyncSkipsUnusableEntries(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	seller := createTestUser(t, db, "cart_seller_sync@example.com", constants.RoleVendor)
	buyer := createTestUser(t, db, "cart_buyer_sync@example.com", constants.RoleCustomer)
	good := createApprovedBook(t, db, seller.ID, "Sync Good", "10.00", 5)
	scarce := createApprovedBook(t, db, seller.ID, "Sync Scarce", "10.00", 1)
	existing := createApprovedBook(t, db, seller.ID, "Sync Existing", "10.00", 5)

	if _, err := svc.Add(buyer.ID, existing.ID, 3); err != nil {
		t.Fatalf("seed existing failed: %v", err)
	}

	// 库存不足、已存在、不存在的条目都应被跳过而不是中断同步
	items, err := svc.Sync(buyer.ID, []SyncItem{
		{BookID: good.ID, Quantity: 2},
		{BookID: scarce.ID, Quantity: 5},
		{BookID: existing.ID, Quantity: 1},
		{BookID: 99999, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 cart items after sync, got %d", len(items))
	}
	for _, item := range items {
		if item.BookID == existing.ID && item.Quantity != 3 {
			t.Fatalf("expected existing item quantity kept at 3, got %d", item.Quantity)
		}
	}
}
