package service

import (
	"errors"
	"fmt"
)

// 领域哨兵错误，由 handler 层映射为响应码
var (
	ErrNotFound     = errors.New("resource not found")
	ErrBookNotFound = errors.New("book not found")

	// 目录与审核
	ErrBookNotAvailable       = errors.New("book not available")
	ErrBookOutOfStock         = errors.New("book out of stock")
	ErrBookFieldsMissing      = errors.New("book name and author are required")
	ErrInvalidPrice           = errors.New("invalid price")
	ErrInvalidQuantity        = errors.New("invalid quantity")
	ErrInvalidStateTransition = errors.New("invalid approval state transition")
	ErrInvalidVerifyAction    = errors.New("invalid verification action")
	ErrNotBookOwner           = errors.New("book belongs to another seller")

	// 购物车与下单
	ErrAlreadyInCart     = errors.New("book already in cart")
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrCartEmpty         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrOrderNotFound     = errors.New("order not found")

	// 评价
	ErrNotPurchased    = errors.New("book not purchased")
	ErrAlreadyReviewed = errors.New("book already reviewed")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")

	// 心愿单
	ErrAlreadyInWishlist = errors.New("book already in wishlist")
	ErrNotInWishlist     = errors.New("book not in wishlist")

	// 地址
	ErrInvalidAddressType = errors.New("invalid address type")

	// 账号
	ErrEmailExists        = errors.New("email already registered")
	ErrUserNameExists     = errors.New("username already taken")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrWeakPassword       = errors.New("password does not meet policy")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrPasswordTransport  = errors.New("invalid password payload")
	ErrProfileEmpty       = errors.New("no profile fields to update")

	// 邮箱验证码
	ErrEmailServiceNotConfigured  = errors.New("email service not configured")
	ErrInvalidVerifyPurpose       = errors.New("invalid verify purpose")
	ErrVerifyCodeInvalid          = errors.New("verify code invalid")
	ErrVerifyCodeExpired          = errors.New("verify code expired")
	ErrVerifyCodeAttemptsExceeded = errors.New("verify code attempts exceeded")
	ErrVerifyCodeTooFrequent      = errors.New("verify code requested too frequently")

	// 登录验证码
	ErrCaptchaRequired = errors.New("captcha required")
	ErrCaptchaInvalid  = errors.New("captcha invalid")
)

// InsufficientStockError 库存不足错误，携带书名用于提示
type InsufficientStockError struct {
	BookName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %s", e.BookName)
}

// Is 支持 errors.Is(err, ErrInsufficientStock)
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
