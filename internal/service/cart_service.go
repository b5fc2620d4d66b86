package service

import (
	"time"

	"github.com/bookstore-next/internal/models"
	"github.com/bookstore-next/internal/repository"
)

// CartService 购物车服务
type CartService struct {
	cartRepo repository.CartRepository
	bookRepo repository.BookRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, bookRepo repository.BookRepository) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		bookRepo: bookRepo,
	}
}

// availableBook 取可售书籍：必须审核通过且有库存
func (s *CartService) availableBook(bookID uint) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	if !book.IsApproved {
		return nil, ErrBookNotAvailable
	}
	if book.Quantity <= 0 {
		return nil, ErrBookOutOfStock
	}
	return book, nil
}

// Add 加入购物车
// 已在购物车中的书籍不重复添加，由调用方提示重复（208）
func (s *CartService) Add(userID, bookID uint, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		quantity = 1
	}
	book, err := s.availableBook(bookID)
	if err != nil {
		return nil, err
	}
	if quantity > book.Quantity {
		return nil, &InsufficientStockError{BookName: book.Name}
	}

	exist, err := s.cartRepo.GetByUserAndBook(userID, bookID)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return exist, ErrAlreadyInCart
	}

	now := time.Now()
	item := &models.CartItem{
		UserID:    userID,
		BookID:    bookID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}
	item.Book = book
	return item, nil
}

// SetQuantity 设置购物车中某本书的数量
// 数量不得超过当前库存；设置为 0 或负数即移除该行
func (s *CartService) SetQuantity(userID, bookID uint, quantity int) (*models.CartItem, error) {
	item, err := s.cartRepo.GetByUserAndBook(userID, bookID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}

	if quantity <= 0 {
		if err := s.cartRepo.DeleteByUserAndBook(userID, bookID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	book, err := s.availableBook(bookID)
	if err != nil {
		return nil, err
	}
	if quantity > book.Quantity {
		return nil, &InsufficientStockError{BookName: book.Name}
	}

	if err := s.cartRepo.UpdateQuantity(item.ID, quantity); err != nil {
		return nil, err
	}
	item.Quantity = quantity
	item.Book = book
	return item, nil
}

// Increment 购物车数量加一
func (s *CartService) Increment(userID, bookID uint) (*models.CartItem, error) {
	item, err := s.cartRepo.GetByUserAndBook(userID, bookID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	return s.SetQuantity(userID, bookID, item.Quantity+1)
}

// Decrement 购物车数量减一，减到 0 即移除
func (s *CartService) Decrement(userID, bookID uint) (*models.CartItem, error) {
	item, err := s.cartRepo.GetByUserAndBook(userID, bookID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	return s.SetQuantity(userID, bookID, item.Quantity-1)
}

// Remove 从购物车移除书籍
func (s *CartService) Remove(userID, bookID uint) error {
	item, err := s.cartRepo.GetByUserAndBook(userID, bookID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrCartItemNotFound
	}
	return s.cartRepo.DeleteByUserAndBook(userID, bookID)
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	return s.cartRepo.ClearByUser(userID)
}

// List 购物车内容
func (s *CartService) List(userID uint) ([]models.CartItem, error) {
	return s.cartRepo.ListByUser(userID)
}

// Count 购物车行数
func (s *CartService) Count(userID uint) (int64, error) {
	return s.cartRepo.CountByUser(userID)
}

// SyncItem 客户端本地购物车条目
type SyncItem struct {
	BookID   uint `json:"book_id"`
	Quantity int  `json:"quantity"`
}

// Sync 合并客户端本地购物车
// 已存在的条目保持服务端数量不变；不可售或库存不足的条目跳过
func (s *CartService) Sync(userID uint, items []SyncItem) ([]models.CartItem, error) {
	for _, entry := range items {
		if entry.BookID == 0 || entry.Quantity <= 0 {
			continue
		}
		if _, err := s.Add(userID, entry.BookID, entry.Quantity); err != nil {
			switch err.(type) {
			case *InsufficientStockError:
				continue
			}
			switch err {
			case ErrAlreadyInCart, ErrBookNotFound, ErrBookNotAvailable, ErrBookOutOfStock:
				continue
			default:
				return nil, err
			}
		}
	}
	return s.cartRepo.ListByUser(userID)
}
