package service

import (
	"strings"
	"time"

	"github.com/bookstore-next/internal/constants"
	"github.com/bookstore-next/internal/models"
	"github.com/bookstore-next/internal/repository"
)

// BookService 书籍服务
type BookService struct {
	bookRepo   repository.BookRepository
	reviewRepo repository.ReviewRepository
	userRepo   repository.UserRepository
}

// NewBookService 创建书籍服务
func NewBookService(bookRepo repository.BookRepository, reviewRepo repository.ReviewRepository, userRepo repository.UserRepository) *BookService {
	return &BookService{
		bookRepo:   bookRepo,
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
	}
}

// allowedBookTransitions 书籍审核状态机
// draft -> pending_review（送审）
// pending_review -> approved（通过）/ draft（驳回）
// approved -> draft（卖家编辑或下架）
var allowedBookTransitions = map[string][]string{
	constants.BookStateDraft:         {constants.BookStatePendingReview},
	constants.BookStatePendingReview: {constants.BookStateApproved, constants.BookStateDraft},
	constants.BookStateApproved:      {constants.BookStateDraft},
}

// BookState 根据标记推导书籍状态
func BookState(book *models.Book) string {
	switch {
	case book == nil:
		return constants.BookStateDraft
	case book.IsApproved:
		return constants.BookStateApproved
	case book.IsApprovalSent:
		return constants.BookStatePendingReview
	default:
		return constants.BookStateDraft
	}
}

func transitionAllowed(from, to string) bool {
	for _, next := range allowedBookTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// applyBookState 将推导状态写回标记位
func applyBookState(book *models.Book, state string) {
	book.IsApproved = state == constants.BookStateApproved
	book.IsApprovalSent = state == constants.BookStatePendingReview
}

// BookInput 书籍录入字段
type BookInput struct {
	Name        string
	AuthorName  string
	Price       string
	Quantity    int
	Description string
	ImageURL    string
}

func (i BookInput) validate() (models.Money, error) {
	if strings.TrimSpace(i.Name) == "" || strings.TrimSpace(i.AuthorName) == "" {
		return models.Money{}, ErrBookFieldsMissing
	}
	price, err := models.NewMoneyFromString(strings.TrimSpace(i.Price))
	if err != nil || price.IsNegative() {
		return models.Money{}, ErrInvalidPrice
	}
	if i.Quantity < 0 {
		return models.Money{}, ErrInvalidQuantity
	}
	return price, nil
}

// AddBook 卖家新增书籍，初始为草稿状态
func (s *BookService) AddBook(sellerID uint, input BookInput) (*models.Book, error) {
	price, err := input.validate()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	book := &models.Book{
		Name:        strings.TrimSpace(input.Name),
		AuthorName:  strings.TrimSpace(input.AuthorName),
		Price:       price,
		Quantity:    input.Quantity,
		Description: strings.TrimSpace(input.Description),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		SellerID:    sellerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.bookRepo.Create(book); err != nil {
		return nil, err
	}
	return book, nil
}

// UpdateBook 卖家编辑书籍
// 已送审或已通过的书籍被编辑后回到草稿状态，驳回计数清零，需重新送审
func (s *BookService) UpdateBook(sellerID, bookID uint, input BookInput) (*models.Book, error) {
	book, err := s.ownedBook(sellerID, bookID)
	if err != nil {
		return nil, err
	}
	price, err := input.validate()
	if err != nil {
		return nil, err
	}

	book.Name = strings.TrimSpace(input.Name)
	book.AuthorName = strings.TrimSpace(input.AuthorName)
	book.Price = price
	book.Quantity = input.Quantity
	book.Description = strings.TrimSpace(input.Description)
	if strings.TrimSpace(input.ImageURL) != "" {
		book.ImageURL = strings.TrimSpace(input.ImageURL)
	}
	if BookState(book) != constants.BookStateDraft {
		applyBookState(book, constants.BookStateDraft)
		book.RejectionCount = 0
	}
	book.UpdatedAt = time.Now()

	if err := s.bookRepo.Update(book); err != nil {
		return nil, err
	}
	return book, nil
}

// SubmitForApproval 卖家送审书籍
func (s *BookService) SubmitForApproval(sellerID, bookID uint) (*models.Book, error) {
	book, err := s.ownedBook(sellerID, bookID)
	if err != nil {
		return nil, err
	}

	from := BookState(book)
	if !transitionAllowed(from, constants.BookStatePendingReview) {
		return nil, ErrInvalidStateTransition
	}
	applyBookState(book, constants.BookStatePendingReview)
	book.UpdatedAt = time.Now()

	if err := s.bookRepo.Update(book); err != nil {
		return nil, err
	}
	return book, nil
}

// RemoveBook 卖家下架书籍
// 存在历史订单时保留行记录供订单快照关联，清零库存并撤销上架状态；无订单则直接删除
func (s *BookService) RemoveBook(sellerID, bookID uint) error {
	book, err := s.ownedBook(sellerID, bookID)
	if err != nil {
		return err
	}

	hasOrders, err := s.bookRepo.HasOrderItems(book.ID)
	if err != nil {
		return err
	}
	if !hasOrders {
		return s.bookRepo.Delete(book.ID)
	}

	if BookState(book) != constants.BookStateDraft {
		applyBookState(book, constants.BookStateDraft)
	}
	book.Quantity = 0
	book.UpdatedAt = time.Now()
	return s.bookRepo.Update(book)
}

// ownedBook 取书并校验归属
func (s *BookService) ownedBook(sellerID, bookID uint) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	if book.SellerID != sellerID {
		return nil, ErrNotBookOwner
	}
	return book, nil
}

// BookListItem 目录项，附带评分汇总
type BookListItem struct {
	models.Book
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

// CatalogInput 目录查询输入
type CatalogInput struct {
	Page     int
	PageSize int
	Search   string
	Sort     string
}

// ListCatalog 顾客浏览目录，仅展示审核通过的书籍
func (s *BookService) ListCatalog(input CatalogInput) ([]BookListItem, int64, error) {
	books, total, err := s.bookRepo.List(repository.BookListFilter{
		Page:         input.Page,
		PageSize:     input.PageSize,
		Search:       strings.TrimSpace(input.Search),
		Sort:         input.Sort,
		OnlyApproved: true,
		WithSeller:   true,
	})
	if err != nil {
		return nil, 0, err
	}
	items, err := s.attachRatings(books)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// attachRatings 批量查询评分汇总并挂到目录项上
func (s *BookService) attachRatings(books []models.Book) ([]BookListItem, error) {
	ids := make([]uint, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
	}
	summaries, err := s.reviewRepo.SummaryForBooks(ids)
	if err != nil {
		return nil, err
	}
	items := make([]BookListItem, 0, len(books))
	for _, b := range books {
		item := BookListItem{Book: b}
		if summary, ok := summaries[b.ID]; ok {
			item.AverageRating = summary.AverageScore
			item.ReviewCount = summary.ReviewCount
		}
		items = append(items, item)
	}
	return items, nil
}

// GetPublicBook 顾客查看书籍详情，未上架书籍视为不存在
func (s *BookService) GetPublicBook(bookID uint) (*BookListItem, error) {
	book, err := s.bookRepo.GetByID(bookID)
	if err != nil {
		return nil, err
	}
	if book == nil || !book.IsApproved {
		return nil, ErrBookNotFound
	}
	items, err := s.attachRatings([]models.Book{*book})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

// ListSellerBooks 卖家查看自己的书籍列表
func (s *BookService) ListSellerBooks(sellerID uint, page, pageSize int) ([]models.Book, int64, error) {
	return s.bookRepo.List(repository.BookListFilter{
		Page:     page,
		PageSize: pageSize,
		SellerID: sellerID,
	})
}

// CountSellerBooks 卖家书籍总数
func (s *BookService) CountSellerBooks(sellerID uint) (int64, error) {
	return s.bookRepo.CountBySeller(sellerID)
}

// GetSellerBook 卖家查看自己某本书
func (s *BookService) GetSellerBook(sellerID, bookID uint) (*models.Book, error) {
	return s.ownedBook(sellerID, bookID)
}

// SellersForVerification 管理员获取有待审书籍的卖家列表
func (s *BookService) SellersForVerification() ([]models.User, error) {
	sellerIDs, err := s.bookRepo.ListPendingSellerIDs()
	if err != nil {
		return nil, err
	}
	if len(sellerIDs) == 0 {
		return []models.User{}, nil
	}
	return s.userRepo.ListByIDs(sellerIDs)
}

// PendingBooksBySeller 管理员查看某卖家的待审书籍
func (s *BookService) PendingBooksBySeller(sellerID uint, page, pageSize int) ([]models.Book, int64, error) {
	return s.bookRepo.List(repository.BookListFilter{
		Page:        page,
		PageSize:    pageSize,
		SellerID:    sellerID,
		PendingOnly: true,
	})
}

// VerifyBook 管理员审核书籍
// approve：通过并清除送审标记；reject：回到草稿并累计驳回次数
func (s *BookService) VerifyBook(bookID, sellerID uint, action string) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(bookID)
	if err != nil {
		return nil, err
	}
	if book == nil || (sellerID != 0 && book.SellerID != sellerID) {
		return nil, ErrBookNotFound
	}

	from := BookState(book)
	switch strings.ToLower(strings.TrimSpace(action)) {
	case constants.BookVerifyActionApprove:
		if !transitionAllowed(from, constants.BookStateApproved) {
			return nil, ErrInvalidStateTransition
		}
		applyBookState(book, constants.BookStateApproved)
	case constants.BookVerifyActionReject:
		if from != constants.BookStatePendingReview {
			return nil, ErrInvalidStateTransition
		}
		applyBookState(book, constants.BookStateDraft)
		book.RejectionCount++
	default:
		return nil, ErrInvalidVerifyAction
	}
	book.UpdatedAt = time.Now()

	if err := s.bookRepo.Update(book); err != nil {
		return nil, err
	}
	return book, nil
}
