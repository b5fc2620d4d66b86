package public

import (
	"errors"

	"github.com/bookstore-next/internal/http/response"
	"github.com/bookstore-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CartAddRequest 加购请求
type CartAddRequest struct {
	BookID   uint `json:"book_id" binding:"required"`
	Quantity int  `json:"quantity"`
}

// CartQuantityRequest 设置数量请求
type CartQuantityRequest struct {
	BookID   uint `json:"book_id" binding:"required"`
	Quantity int  `json:"quantity"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	items, err := h.CartService.List(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "get cart failed", err)
		return
	}
	response.Success(c, gin.H{"items": items})
}

// CartCount 购物车行数
func (h *Handler) CartCount(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	count, err := h.CartService.Count(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "get cart count failed", err)
		return
	}
	response.Success(c, gin.H{"count": count})
}

// AddToCart 加入购物车，已在购物车中返回 208
func (h *Handler) AddToCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	item, err := h.CartService.Add(uid, req.BookID, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyInCart) {
			response.AlreadyReported(c, "book already in cart", gin.H{"item": item})
			return
		}
		var stockErr *service.InsufficientStockError
		if errors.As(err, &stockErr) {
			respondError(c, response.CodeExpectationFailed, stockErr.Error(), nil)
			return
		}
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "add to cart failed")
		return
	}
	response.Created(c, gin.H{"item": item})
}

// SetCartQuantity 设置购物车数量，数量为 0 即移除
func (h *Handler) SetCartQuantity(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	item, err := h.CartService.SetQuantity(uid, req.BookID, req.Quantity)
	if err != nil {
		var stockErr *service.InsufficientStockError
		if errors.As(err, &stockErr) {
			respondError(c, response.CodeExpectationFailed, stockErr.Error(), nil)
			return
		}
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "update cart failed")
		return
	}
	if item == nil {
		response.SuccessWithMsg(c, "item removed", gin.H{"removed": true})
		return
	}
	response.Success(c, gin.H{"item": item})
}

// IncrementCartItem 购物车数量加一
func (h *Handler) IncrementCartItem(c *gin.Context) {
	h.stepCartItem(c, true)
}

// DecrementCartItem 购物车数量减一
func (h *Handler) DecrementCartItem(c *gin.Context) {
	h.stepCartItem(c, false)
}

func (h *Handler) stepCartItem(c *gin.Context, up bool) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	var item interface{}
	var err error
	if up {
		item, err = h.CartService.Increment(uid, bookID)
	} else {
		item, err = h.CartService.Decrement(uid, bookID)
	}
	if err != nil {
		var stockErr *service.InsufficientStockError
		if errors.As(err, &stockErr) {
			respondError(c, response.CodeExpectationFailed, stockErr.Error(), nil)
			return
		}
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "update cart failed")
		return
	}
	response.Success(c, gin.H{"item": item})
}

// RemoveFromCart 从购物车移除书籍
func (h *Handler) RemoveFromCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	if err := h.CartService.Remove(uid, bookID); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "remove from cart failed")
		return
	}
	response.SuccessWithMsg(c, "item removed", gin.H{"removed": true})
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(uid); err != nil {
		respondError(c, response.CodeInternal, "clear cart failed", err)
		return
	}
	response.SuccessWithMsg(c, "cart cleared", gin.H{"cleared": true})
}

// SyncCart 合并客户端本地购物车
func (h *Handler) SyncCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req struct {
		Items []service.SyncItem `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	items, err := h.CartService.Sync(uid, req.Items)
	if err != nil {
		respondError(c, response.CodeInternal, "sync cart failed", err)
		return
	}
	response.Success(c, gin.H{"items": items})
}
