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

func setupBookServiceTest(t *testing.T) (*BookService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:book_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Book{}, &models.Review{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewBookService(
		repository.NewBookRepository(db),
		repository.NewReviewRepository(db),
		repository.NewUserRepository(db),
	)
	return svc, db
}

func assertBookState(t *testing.T, book *models.Book, want string) {
	t.Helper()
	if got := BookState(book); got != want {
		t.Fatalf("expected state %s, got %s (approved=%v sent=%v)", want, got, book.IsApproved, book.IsApprovalSent)
	}
	if book.IsApproved && book.IsApprovalSent {
		t.Fatalf("approved and approval_sent must never both be true")
	}
}

func TestSubmitAndApproveFlow(t *testing.T) {
	svc, db := setupBookServiceTest(t)
	seller := createTestUser(t, db, "seller_flow@example.com", constants.RoleVendor)

	book, err := svc.AddBook(seller.ID, BookInput{Name: "Flow Book", AuthorName: "A. Uthor", Price: "12.50", Quantity: 4})
	if err != nil {
		t.Fatalf("add book failed: %v", err)
	}
	assertBookState(t, book, constants.BookStateDraft)

	book, err = svc.SubmitForApproval(seller.ID, book.ID)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	assertBookState(t, book, constants.BookStatePendingReview)

	book, err = svc.VerifyBook(book.ID, seller.ID, constants.BookVerifyActionApprove)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	assertBookState(t, book, constants.BookStateApproved)
}

func TestRejectReturnsToDraftAndCountsRejections(t *testing.T) {
	svc, db := setupBookServiceTest(t)
	seller := createTestUser(t, db, "seller_reject@example.com", constants.RoleVendor)
	book, err := svc.AddBook(seller.ID, BookInput{Name: "Reject Book", AuthorName: "A. Uthor", Price: "9.99", Quantity: 1})
	if err != nil {
		t.Fatalf("add book failed: %v", err)
	}

	for want := 1; want <= 2; want++ {
		if _, err := svc.SubmitForApproval(seller.ID, book.ID); err != nil {
			t.Fatalf("submit %d failed: %v", want, err)
		}
		book, err = svc.VerifyBook(book.ID, 0, constants.BookVerifyActionReject)
		if err != nil {
			t.Fatalf("reject %d failed: %v", want, err)
		}
		assertBookState(t, book, constants.BookStateDraft)
		if book.RejectionCount != want {
			t.Fatalf("expected rejection count %d, got %d", want, book.RejectionCount)
		}
	}
}

func TestUpdateNonDraftBookRevertsToDraft(t *testing.T) {
	svc, db := setupBookServiceTest(t)
	seller := createTestUser(t, db, "seller_update@example.com", constants.RoleVendor)
	book, _ := svc.AddBook(seller.ID, BookInput{Name: "Update Book", AuthorName: "A. Uthor", Price: "20.00", Quantity: 2})

	// 驳回一次再通过，制造非零驳回计数的已通过书籍
	if _, err := svc.SubmitForApproval(seller.ID, book.ID); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := svc.VerifyBook(book.ID, seller.ID, constants.BookVerifyActionReject); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if _, err := svc.SubmitForApproval(seller.ID, book.ID); err != nil {
		t.Fatalf("resubmit failed: %v", err)
	}
	book, err := svc.VerifyBook(book.ID, seller.ID, constants.BookVerifyActionApprove)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if book.RejectionCount != 1 {
		t.Fatalf("expected rejection count 1, got %d", book.RejectionCount)
	}

	book, err = svc.UpdateBook(seller.ID, book.ID, BookInput{Name: "Update Book v2", AuthorName: "A. Uthor", Price: "21.00", Quantity: 2})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	assertBookState(t, book, constants.BookStateDraft)
	if book.RejectionCount != 0 {
		t.Fatalf("expected rejection count reset to 0, got %d", book.RejectionCount)
	}
}

func TestSubmitPendingBookRejected(t *testing.T) {
	svc, db := setupBookServiceTest(t)
	seller := createTestUser(t, db, "seller_double@example.com", constants.RoleVendor)
	book, _ := svc.AddBook(seller.ID, BookInput{Name: "Double Submit", AuthorName: "A. Uthor", Price: "5.00", Quantity: 1})

	if _, err := svc.SubmitForApproval(seller.ID, book.ID); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if _, err := svc.SubmitForApproval(seller.ID, book.ID); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("expected ErrInvalidStateTransition, got %v", err)
	}
}

func TestApproveDraftBookRejected(t *testing.T) {
	svc, db := setupBookServiceTest(t)
	seller := createTestUser(t, db, "seller_draft@example.com", constants.RoleVendor)
	book, _ := svc.AddBook(seller.ID, BookInput{Name: "Draft Book", AuthorName: "A. Uthor", Price: "5.00", Quantity: 1})

	if _, err := svc.VerifyBook(book.ID, seller.ID, constants.BookVerifyActionApprove); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("expected ErrInvalidStateTransition, got %v", err)
	}
	if _, err := svc.VerifyBook(book.ID, seller.ID, "publish"); !errors.Is(err, ErrInvalidVerifyAction) {
		t.Fatalf("expected ErrInvalidVerifyAction, got %v", err)
	}
}

func TestBookOwnershipEnforced(t *testing.T) {
	svc, db := setupBookServiceTest(t)
	seller := createTestUser(t, db, "seller_owner@example.com", constants.RoleVendor)
	intruder := createTestUser(t, db, "seller_intruder@example.com", constants.RoleVendor)
	book, _ := svc.AddBook(seller.ID, BookInput{Name: "Owned Book", AuthorName: "A. Uthor", Price: "5.00", Quantity: 1})

	if _, err := svc.UpdateBook(intruder.ID, book.ID, BookInput{Name: "Hijack", AuthorName: "X", Price: "1.00"}); !errors.Is(err, ErrNotBookOwner) {
		t.Fatalf("expected ErrNotBookOwner, got %v", err)
	}
	if err := svc.RemoveBook(intruder.ID, book.ID); !errors.Is(err, ErrNotBookOwner) {
		t.Fatalf("expected ErrNotBookOwner on remove, got %v", err)
	}
}

func TestRemoveBookWithoutOrdersDeletesRow(t *testing.T) {
	svc, db := setupBookServiceTest(t)
	seller := createTestUser(t, db, "seller_remove_clean@example.com", constants.RoleVendor)
	book, _ := svc.AddBook(seller.ID, BookInput{Name: "Disposable Book", AuthorName: "A", Price: "5.00", Quantity: 3})

	if err := svc.RemoveBook(seller.ID, book.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	var count int64
	if err := db.Unscoped().Model(&models.Book{}).Where("id = ?", book.ID).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected row removed when no order history, found %d", count)
	}
}

func TestRemoveBookWithOrdersKeepsSnapshotRow(t *testing.T) {
	svc, db := setupBookServiceTest(t)
	seller := createTestUser(t, db, "seller_remove_sold@example.com", constants.RoleVendor)
	buyer := createTestUser(t, db, "buyer_remove_sold@example.com", constants.RoleCustomer)
	book := createApprovedBook(t, db, seller.ID, "Sold Book", "5.00", 3)
	createPurchase(t, db, buyer.ID, book, 1)

	if err := svc.RemoveBook(seller.ID, book.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	// 有订单快照关联时保留行记录，清零库存并撤销上架状态
	var stored models.Book
	if err := db.First(&stored, book.ID).Error; err != nil {
		t.Fatalf("expected row kept for order history: %v", err)
	}
	if stored.Quantity != 0 {
		t.Fatalf("expected quantity zeroed, got %d", stored.Quantity)
	}
	assertBookState(t, &stored, constants.BookStateDraft)
}

func TestAddBookValidation(t *testing.T) {
	svc, db := setupBookServiceTest(t)
	seller := createTestUser(t, db, "seller_valid@example.com", constants.RoleVendor)

	if _, err := svc.AddBook(seller.ID, BookInput{Name: "", AuthorName: "A", Price: "1.00"}); !errors.Is(err, ErrBookFieldsMissing) {
		t.Fatalf("expected ErrBookFieldsMissing, got %v", err)
	}
	if _, err := svc.AddBook(seller.ID, BookInput{Name: "B", AuthorName: "A", Price: "not-a-price"}); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
	if _, err := svc.AddBook(seller.ID, BookInput{Name: "B", AuthorName: "A", Price: "-3.00"}); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice for negative price, got %v", err)
	}
	if _, err := svc.AddBook(seller.ID, BookInput{Name: "B", AuthorName: "A", Price: "3.00", Quantity: -1}); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestGetPublicBookHidesUnapproved(t *testing.T) {
	svc, db := setupBookServiceTest(t)
	seller := createTestUser(t, db, "seller_public@example.com", constants.RoleVendor)
	draft, _ := svc.AddBook(seller.ID, BookInput{Name: "Hidden Book", AuthorName: "A. Uthor", Price: "5.00", Quantity: 1})

	if _, err := svc.GetPublicBook(draft.ID); !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound for draft, got %v", err)
	}

	approved := createApprovedBook(t, db, seller.ID, "Visible Book", "7.00", 2)
	item, err := svc.GetPublicBook(approved.ID)
	if err != nil {
		t.Fatalf("expected approved book visible, got %v", err)
	}
	if item.Name != "Visible Book" {
		t.Fatalf("unexpected book: %+v", item)
	}
}

func TestListCatalogOnlyApproved(t *testing.T) {
	svc, db := setupBookServiceTest(t)
	seller := createTestUser(t, db, "seller_catalog@example.com", constants.RoleVendor)
	createApprovedBook(t, db, seller.ID, "Catalog Book", "7.00", 2)
	if _, err := svc.AddBook(seller.ID, BookInput{Name: "Draft Catalog", AuthorName: "A", Price: "1.00", Quantity: 1}); err != nil {
		t.Fatalf("add draft failed: %v", err)
	}

	items, total, err := svc.ListCatalog(CatalogInput{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list catalog failed: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Name != "Catalog Book" {
		t.Fatalf("expected only approved book in catalog, got total=%d items=%+v", total, items)
	}
}

func TestSellersForVerification(t *testing.T) {
	svc, db := setupBookServiceTest(t)
	sellerA := createTestUser(t, db, "seller_ver_a@example.com", constants.RoleVendor)
	sellerB := createTestUser(t, db, "seller_ver_b@example.com", constants.RoleVendor)

	bookA, _ := svc.AddBook(sellerA.ID, BookInput{Name: "Pending A", AuthorName: "A", Price: "1.00", Quantity: 1})
	if _, err := svc.SubmitForApproval(sellerA.ID, bookA.ID); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := svc.AddBook(sellerB.ID, BookInput{Name: "Draft B", AuthorName: "B", Price: "1.00", Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	sellers, err := svc.SellersForVerification()
	if err != nil {
		t.Fatalf("sellers for verification failed: %v", err)
	}
	if len(sellers) != 1 || sellers[0].ID != sellerA.ID {
		t.Fatalf("expected only seller A pending, got %+v", sellers)
	}

	pending, total, err := svc.PendingBooksBySeller(sellerA.ID, 1, 10)
	if err != nil {
		t.Fatalf("pending books failed: %v", err)
	}
	if total != 1 || len(pending) != 1 || pending[0].Name != "Pending A" {
		t.Fatalf("unexpected pending books: %+v", pending)
	}
}
