package repository

import (
	"github.com/bookstore-next/internal/models"

	"gorm.io/gorm"
)

// RatingSummary 书籍评分聚合
type RatingSummary struct {
	BookID       uint    `json:"book_id"`
	AverageScore float64 `json:"average_score"`
	ReviewCount  int64   `json:"review_count"`
}

// ReviewRepository 评价数据访问接口
type ReviewRepository interface {
	Create(review *models.Review) error
	ExistsByUserAndBook(userID, bookID uint) (bool, error)
	ListByBook(filter ReviewListFilter) ([]models.Review, int64, error)
	SummaryForBooks(bookIDs []uint) (map[uint]RatingSummary, error)
	WithTx(tx *gorm.DB) ReviewRepository
}

// GormReviewRepository GORM 实现
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓库
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// WithTx 绑定事务
func (r *GormReviewRepository) WithTx(tx *gorm.DB) ReviewRepository {
	if tx == nil {
		return r
	}
	return &GormReviewRepository{db: tx}
}

// Create 创建评价
func (r *GormReviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// ExistsByUserAndBook 判断用户是否已评价过指定书籍
func (r *GormReviewRepository) ExistsByUserAndBook(userID, bookID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Review{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByBook 获取书籍评价列表
func (r *GormReviewRepository) ListByBook(filter ReviewListFilter) ([]models.Review, int64, error) {
	query := r.db.Model(&models.Review{}).Where("book_id = ?", filter.BookID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var reviews []models.Review
	if err := query.Preload("User").Order("id desc").Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// SummaryForBooks 批量聚合书籍评分
func (r *GormReviewRepository) SummaryForBooks(bookIDs []uint) (map[uint]RatingSummary, error) {
	result := make(map[uint]RatingSummary, len(bookIDs))
	if len(bookIDs) == 0 {
		return result, nil
	}
	var rows []RatingSummary
	if err := r.db.Model(&models.Review{}).
		Select("book_id, AVG(rating) AS average_score, COUNT(*) AS review_count").
		Where("book_id IN ?", bookIDs).
		Group("book_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.BookID] = row
	}
	return result, nil
}
