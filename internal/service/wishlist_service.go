package service

import (
	"time"

	"github.com/bookstore-next/internal/models"
	"github.com/bookstore-next/internal/repository"
)

// WishlistService 心愿单服务
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	bookRepo     repository.BookRepository
}

// NewWishlistService 创建心愿单服务
func NewWishlistService(wishlistRepo repository.WishlistRepository, bookRepo repository.BookRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		bookRepo:     bookRepo,
	}
}

// Add 加入心愿单，重复加入由调用方提示（208）
func (s *WishlistService) Add(userID, bookID uint) (*models.WishListItem, error) {
	book, err := s.bookRepo.GetByID(bookID)
	if err != nil {
		return nil, err
	}
	if book == nil || !book.IsApproved {
		return nil, ErrBookNotFound
	}

	exists, err := s.wishlistRepo.Exists(userID, bookID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyInWishlist
	}

	now := time.Now()
	item := &models.WishListItem{
		UserID:    userID,
		BookID:    bookID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.wishlistRepo.Create(item); err != nil {
		return nil, err
	}
	item.Book = book
	return item, nil
}

// Remove 从心愿单移除
func (s *WishlistService) Remove(userID, bookID uint) error {
	exists, err := s.wishlistRepo.Exists(userID, bookID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotInWishlist
	}
	return s.wishlistRepo.DeleteByUserAndBook(userID, bookID)
}

// List 心愿单内容
func (s *WishlistService) List(userID uint) ([]models.WishListItem, error) {
	return s.wishlistRepo.ListByUser(userID)
}
