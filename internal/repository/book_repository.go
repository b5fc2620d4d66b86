package repository

import (
	"errors"
	"strings"

	"github.com/bookstore-next/internal/models"

	"gorm.io/gorm"
)

// BookRepository 书籍数据访问接口
type BookRepository interface {
	List(filter BookListFilter) ([]models.Book, int64, error)
	GetByID(id uint) (*models.Book, error)
	ListByIDs(ids []uint) ([]models.Book, error)
	Create(book *models.Book) error
	Update(book *models.Book) error
	Delete(id uint) error
	CountBySeller(sellerID uint) (int64, error)
	DecrementStock(bookID uint, quantity int) (int64, error)
	HasOrderItems(bookID uint) (bool, error)
	ListPendingSellerIDs() ([]uint, error)
	WithTx(tx *gorm.DB) BookRepository
}

// GormBookRepository GORM 实现
type GormBookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建书籍仓库
func NewBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

// WithTx 绑定事务
func (r *GormBookRepository) WithTx(tx *gorm.DB) BookRepository {
	if tx == nil {
		return r
	}
	return &GormBookRepository{db: tx}
}

// List 书籍列表
func (r *GormBookRepository) List(filter BookListFilter) ([]models.Book, int64, error) {
	var books []models.Book

	query := r.db.Model(&models.Book{})
	if filter.WithSeller {
		query = query.Preload("Seller")
	}
	if filter.OnlyApproved {
		query = query.Where("is_approved = ?", true)
	}
	if filter.PendingOnly {
		query = query.Where("is_approval_sent = ?", true)
	}
	if filter.SellerID != 0 {
		query = query.Where("seller_id = ?", filter.SellerID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		condition, argCount := buildLikeCondition(r.db, []string{"name", "author_name"})
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order(bookOrderClause(filter.Sort)).Find(&books).Error; err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

func bookOrderClause(sort string) string {
	switch strings.ToLower(strings.TrimSpace(sort)) {
	case "price_asc":
		return "price ASC, id ASC"
	case "price_desc":
		return "price DESC, id ASC"
	case "name_asc":
		return "name ASC, id ASC"
	case "name_desc":
		return "name DESC, id ASC"
	default:
		return "created_at DESC, id DESC"
	}
}

// GetByID 根据 ID 获取书籍
func (r *GormBookRepository) GetByID(id uint) (*models.Book, error) {
	var book models.Book
	if err := r.db.First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &book, nil
}

// ListByIDs 批量获取书籍
func (r *GormBookRepository) ListByIDs(ids []uint) ([]models.Book, error) {
	if len(ids) == 0 {
		return []models.Book{}, nil
	}
	var books []models.Book
	if err := r.db.Where("id IN ?", ids).Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// Create 创建书籍
func (r *GormBookRepository) Create(book *models.Book) error {
	return r.db.Create(book).Error
}

// Update 更新书籍
func (r *GormBookRepository) Update(book *models.Book) error {
	return r.db.Save(book).Error
}

// Delete 物理删除书籍，调用方需先确认不存在订单快照关联
func (r *GormBookRepository) Delete(id uint) error {
	return r.db.Unscoped().Delete(&models.Book{}, id).Error
}

// CountBySeller 统计卖家名下书籍数量
func (r *GormBookRepository) CountBySeller(sellerID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Book{}).Where("seller_id = ?", sellerID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DecrementStock 条件扣减库存
// 仅当剩余库存足够时生效，返回受影响行数供调用方判断是否扣减成功
func (r *GormBookRepository) DecrementStock(bookID uint, quantity int) (int64, error) {
	if bookID == 0 || quantity <= 0 {
		return 0, errors.New("invalid stock decrement params")
	}
	result := r.db.Model(&models.Book{}).
		Where("id = ? AND quantity >= ?", bookID, quantity).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// HasOrderItems 判断书籍是否存在历史订单项
func (r *GormBookRepository) HasOrderItems(bookID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.OrderItem{}).Where("book_id = ?", bookID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListPendingSellerIDs 获取存在待审核书籍的卖家 ID 列表
func (r *GormBookRepository) ListPendingSellerIDs() ([]uint, error) {
	var ids []uint
	if err := r.db.Model(&models.Book{}).
		Where("is_approval_sent = ?", true).
		Distinct("seller_id").
		Pluck("seller_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
