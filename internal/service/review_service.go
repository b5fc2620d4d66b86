package service

import (
	"strings"
	"time"

	"github.com/bookstore-next/internal/models"
	"github.com/bookstore-next/internal/repository"
)

// ReviewService 评价服务
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	orderRepo  repository.OrderRepository
	bookRepo   repository.BookRepository
}

// NewReviewService 创建评价服务
func NewReviewService(reviewRepo repository.ReviewRepository, orderRepo repository.OrderRepository, bookRepo repository.BookRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		orderRepo:  orderRepo,
		bookRepo:   bookRepo,
	}
}

// Add 发表评价
// 仅允许评价自己购买过的书籍，且每人每本书只能评价一次
func (s *ReviewService) Add(userID, bookID uint, rating int, content string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	book, err := s.bookRepo.GetByID(bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, ErrBookNotFound
	}

	purchased, err := s.orderRepo.HasPurchased(userID, bookID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, ErrNotPurchased
	}

	exists, err := s.reviewRepo.ExistsByUserAndBook(userID, bookID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	now := time.Now()
	review := &models.Review{
		BookID:    bookID,
		UserID:    userID,
		Rating:    rating,
		Content:   strings.TrimSpace(content),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

// QuickReview 快捷评价：评价最近一次购买的书籍
func (s *ReviewService) QuickReview(userID uint, rating int, content string) (*models.Review, error) {
	item, err := s.orderRepo.LatestPurchasedItem(userID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotPurchased
	}
	return s.Add(userID, item.BookID, rating, content)
}

// ListByBook 某本书的评价列表与评分汇总
func (s *ReviewService) ListByBook(bookID uint, page, pageSize int) ([]models.Review, int64, repository.RatingSummary, error) {
	reviews, total, err := s.reviewRepo.ListByBook(repository.ReviewListFilter{
		Page:     page,
		PageSize: pageSize,
		BookID:   bookID,
	})
	if err != nil {
		return nil, 0, repository.RatingSummary{}, err
	}
	summaries, err := s.reviewRepo.SummaryForBooks([]uint{bookID})
	if err != nil {
		return nil, 0, repository.RatingSummary{}, err
	}
	return reviews, total, summaries[bookID], nil
}
