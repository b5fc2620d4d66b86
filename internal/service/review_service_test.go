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

func setupReviewServiceTest(t *testing.T) (*ReviewService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:review_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Book{}, &models.Order{}, &models.OrderItem{}, &models.Review{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewReviewService(
		repository.NewReviewRepository(db),
		repository.NewOrderRepository(db),
		repository.NewBookRepository(db),
	)
	return svc, db
}

func createPurchase(t *testing.T, db *gorm.DB, userID uint, book *models.Book, quantity int) {
	t.Helper()
	order := &models.Order{
		OrderNo:     fmt.Sprintf("BKTEST%d%d", userID, time.Now().UnixNano()),
		UserID:      userID,
		Status:      constants.OrderStatusPlaced,
		TotalAmount: book.Price,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	item := &models.OrderItem{
		OrderID:    order.ID,
		BookID:     book.ID,
		BookName:   book.Name,
		AuthorName: book.AuthorName,
		Price:      book.Price,
		Quantity:   quantity,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create order item failed: %v", err)
	}
}

func TestAddReviewRequiresPurchase(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	seller := createTestUser(t, db, "review_seller_gate@example.com", constants.RoleVendor)
	buyer := createTestUser(t, db, "review_buyer_gate@example.com", constants.RoleCustomer)
	book := createApprovedBook(t, db, seller.ID, "Gated Book", "10.00", 5)

	if _, err := svc.Add(buyer.ID, book.ID, 5, "great"); !errors.Is(err, ErrNotPurchased) {
		t.Fatalf("expected ErrNotPurchased, got %v", err)
	}

	createPurchase(t, db, buyer.ID, book, 1)
	review, err := svc.Add(buyer.ID, book.ID, 5, "great")
	if err != nil {
		t.Fatalf("review after purchase failed: %v", err)
	}
	if review.Rating != 5 || review.BookID != book.ID {
		t.Fatalf("unexpected review: %+v", review)
	}
}

func TestAddReviewOncePerUserAndBook(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	seller := createTestUser(t, db, "review_seller_dup@example.com", constants.RoleVendor)
	buyer := createTestUser(t, db, "review_buyer_dup@example.com", constants.RoleCustomer)
	book := createApprovedBook(t, db, seller.ID, "Once Book", "10.00", 5)
	createPurchase(t, db, buyer.ID, book, 1)

	if _, err := svc.Add(buyer.ID, book.ID, 4, "good"); err != nil {
		t.Fatalf("first review failed: %v", err)
	}
	if _, err := svc.Add(buyer.ID, book.ID, 2, "changed my mind"); !errors.Is(err, ErrAlreadyReviewed) {
		t.Fatalf("expected ErrAlreadyReviewed, got %v", err)
	}
}

func TestAddReviewRatingRange(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	seller := createTestUser(t, db, "review_seller_rate@example.com", constants.RoleVendor)
	buyer := createTestUser(t, db, "review_buyer_rate@example.com", constants.RoleCustomer)
	book := createApprovedBook(t, db, seller.ID, "Rated Book", "10.00", 5)
	createPurchase(t, db, buyer.ID, book, 1)

	if _, err := svc.Add(buyer.ID, book.ID, 0, ""); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating for 0, got %v", err)
	}
	if _, err := svc.Add(buyer.ID, book.ID, 6, ""); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating for 6, got %v", err)
	}
}

func TestQuickReviewTargetsLatestPurchase(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	seller := createTestUser(t, db, "review_seller_quick@example.com", constants.RoleVendor)
	buyer := createTestUser(t, db, "review_buyer_quick@example.com", constants.RoleCustomer)
	first := createApprovedBook(t, db, seller.ID, "First Purchase", "10.00", 5)
	latest := createApprovedBook(t, db, seller.ID, "Latest Purchase", "12.00", 5)

	createPurchase(t, db, buyer.ID, first, 1)
	createPurchase(t, db, buyer.ID, latest, 1)

	review, err := svc.QuickReview(buyer.ID, 4, "quick note")
	if err != nil {
		t.Fatalf("quick review failed: %v", err)
	}
	if review.BookID != latest.ID {
		t.Fatalf("expected quick review on latest purchase %d, got %d", latest.ID, review.BookID)
	}
}

func TestQuickReviewWithoutPurchase(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	buyer := createTestUser(t, db, "review_buyer_none@example.com", constants.RoleCustomer)

	if _, err := svc.QuickReview(buyer.ID, 4, ""); !errors.Is(err, ErrNotPurchased) {
		t.Fatalf("expected ErrNotPurchased, got %v", err)
	}
}

func TestListByBookSummarizesRatings(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	seller := createTestUser(t, db, "review_seller_sum@example.com", constants.RoleVendor)
	buyerA := createTestUser(t, db, "review_buyer_sum_a@example.com", constants.RoleCustomer)
	buyerB := createTestUser(t, db, "review_buyer_sum_b@example.com", constants.RoleCustomer)
	book := createApprovedBook(t, db, seller.ID, "Summarized Book", "10.00", 5)
	createPurchase(t, db, buyerA.ID, book, 1)
	createPurchase(t, db, buyerB.ID, book, 1)

	if _, err := svc.Add(buyerA.ID, book.ID, 5, "excellent"); err != nil {
		t.Fatalf("review A failed: %v", err)
	}
	if _, err := svc.Add(buyerB.ID, book.ID, 3, "fine"); err != nil {
		t.Fatalf("review B failed: %v", err)
	}

	reviews, total, summary, err := svc.ListByBook(book.ID, 1, 10)
	if err != nil {
		t.Fatalf("list reviews failed: %v", err)
	}
	if total != 2 || len(reviews) != 2 {
		t.Fatalf("expected 2 reviews, got total=%d len=%d", total, len(reviews))
	}
	if summary.ReviewCount != 2 || summary.AverageScore != 4 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}
