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

func setupWishlistServiceTest(t *testing.T) (*WishlistService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:wishlist_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Book{}, &models.WishListItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewWishlistService(
		repository.NewWishlistRepository(db),
		repository.NewBookRepository(db),
	)
	return svc, db
}

func TestWishlistAddDuplicate(t *testing.T) {
	svc, db := setupWishlistServiceTest(t)
	seller := createTestUser(t, db, "wish_seller_dup@example.com", constants.RoleVendor)
	buyer := createTestUser(t, db, "wish_buyer_dup@example.com", constants.RoleCustomer)
	book := createApprovedBook(t, db, seller.ID, "Wished Book", "10.00", 5)

	item, err := svc.Add(buyer.ID, book.ID)
	if err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if item.BookID != book.ID {
		t.Fatalf("unexpected item: %+v", item)
	}
	if item.CreatedAt.IsZero() || item.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps set, got %+v", item)
	}

	if _, err := svc.Add(buyer.ID, book.ID); !errors.Is(err, ErrAlreadyInWishlist) {
		t.Fatalf("expected ErrAlreadyInWishlist, got %v", err)
	}
}

func TestWishlistAddUnapprovedBook(t *testing.T) {
	svc, db := setupWishlistServiceTest(t)
	seller := createTestUser(t, db, "wish_seller_draft@example.com", constants.RoleVendor)
	buyer := createTestUser(t, db, "wish_buyer_draft@example.com", constants.RoleCustomer)

	draft := &models.Book{Name: "Draft Wish Book", AuthorName: "A", SellerID: seller.ID, Quantity: 3}
	if err := db.Create(draft).Error; err != nil {
		t.Fatalf("create draft failed: %v", err)
	}

	if _, err := svc.Add(buyer.ID, draft.ID); !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound for draft, got %v", err)
	}
	if _, err := svc.Add(buyer.ID, 99999); !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound for missing book, got %v", err)
	}
}

func TestWishlistRemove(t *testing.T) {
	svc, db := setupWishlistServiceTest(t)
	seller := createTestUser(t, db, "wish_seller_rm@example.com", constants.RoleVendor)
	buyer := createTestUser(t, db, "wish_buyer_rm@example.com", constants.RoleCustomer)
	book := createApprovedBook(t, db, seller.ID, "Removable Book", "10.00", 5)

	if err := svc.Remove(buyer.ID, book.ID); !errors.Is(err, ErrNotInWishlist) {
		t.Fatalf("expected ErrNotInWishlist, got %v", err)
	}

	if _, err := svc.Add(buyer.ID, book.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.Remove(buyer.ID, book.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	items, err := svc.List(buyer.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty wishlist, got %d items", len(items))
	}
}

func TestWishlistListScopedToUser(t *testing.T) {
	svc, db := setupWishlistServiceTest(t)
	seller := createTestUser(t, db, "wish_seller_list@example.com", constants.RoleVendor)
	buyerA := createTestUser(t, db, "wish_buyer_list_a@example.com", constants.RoleCustomer)
	buyerB := createTestUser(t, db, "wish_buyer_list_b@example.com", constants.RoleCustomer)
	bookA := createApprovedBook(t, db, seller.ID, "Wish A", "10.00", 5)
	bookB := createApprovedBook(t, db, seller.ID, "Wish B", "12.00", 5)

	if _, err := svc.Add(buyerA.ID, bookA.ID); err != nil {
		t.Fatalf("add A failed: %v", err)
	}
	if _, err := svc.Add(buyerA.ID, bookB.ID); err != nil {
		t.Fatalf("add B failed: %v", err)
	}
	if _, err := svc.Add(buyerB.ID, bookA.ID); err != nil {
		t.Fatalf("add for other user failed: %v", err)
	}

	items, err := svc.List(buyerA.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items for buyer A, got %d", len(items))
	}
}
