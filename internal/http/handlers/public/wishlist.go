package public

import (
	"errors"

	"github.com/bookstore-next/internal/http/response"
	"github.com/bookstore-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetWishlist 获取心愿单
func (h *Handler) GetWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	items, err := h.WishlistService.List(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "get wishlist failed", err)
		return
	}
	response.Success(c, gin.H{"items": items})
}

// AddToWishlist 加入心愿单，重复加入返回 208
func (h *Handler) AddToWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req struct {
		BookID uint `json:"book_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	item, err := h.WishlistService.Add(uid, req.BookID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyInWishlist):
			response.AlreadyReported(c, "book already in wishlist", nil)
		case errors.Is(err, service.ErrBookNotFound):
			respondError(c, response.CodeNotFound, "book not found", nil)
		default:
			respondError(c, response.CodeInternal, "add to wishlist failed", err)
		}
		return
	}
	response.Created(c, gin.H{"item": item})
}

// RemoveFromWishlist 从心愿单移除
func (h *Handler) RemoveFromWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	if err := h.WishlistService.Remove(uid, bookID); err != nil {
		if errors.Is(err, service.ErrNotInWishlist) {
			respondError(c, response.CodeNotFound, "book not in wishlist", nil)
			return
		}
		respondError(c, response.CodeInternal, "remove from wishlist failed", err)
		return
	}
	response.SuccessWithMsg(c, "item removed", gin.H{"removed": true})
}
