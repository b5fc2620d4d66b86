package repository

import (
	"github.com/bookstore-next/internal/models"

	"gorm.io/gorm"
)

// WishlistRepository 心愿单数据访问接口
type WishlistRepository interface {
	ListByUser(userID uint) ([]models.WishListItem, error)
	Exists(userID, bookID uint) (bool, error)
	Create(item *models.WishListItem) error
	DeleteByUserAndBook(userID, bookID uint) error
	WithTx(tx *gorm.DB) WishlistRepository
}

// GormWishlistRepository GORM 实现
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository 创建心愿单仓库
func NewWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// WithTx 绑定事务
func (r *GormWishlistRepository) WithTx(tx *gorm.DB) WishlistRepository {
	if tx == nil {
		return r
	}
	return &GormWishlistRepository{db: tx}
}

// ListByUser 获取用户心愿单
func (r *GormWishlistRepository) ListByUser(userID uint) ([]models.WishListItem, error) {
	var items []models.WishListItem
	if err := r.db.Preload("Book").Where("user_id = ?", userID).Order("id desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Exists 判断书籍是否已在心愿单
func (r *GormWishlistRepository) Exists(userID, bookID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.WishListItem{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 添加心愿单项
func (r *GormWishlistRepository) Create(item *models.WishListItem) error {
	return r.db.Create(item).Error
}

// DeleteByUserAndBook 移除心愿单项
func (r *GormWishlistRepository) DeleteByUserAndBook(userID, bookID uint) error {
	return r.db.Where("user_id = ? AND book_id = ?", userID, bookID).Delete(&models.WishListItem{}).Error
}
