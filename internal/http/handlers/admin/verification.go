package admin

import (
	"errors"
	"strconv"

	handlershared "github.com/bookstore-next/internal/http/handlers/shared"
	"github.com/bookstore-next/internal/http/response"
	"github.com/bookstore-next/internal/service"

	"github.com/gin-gonic/gin"
)

// SellerSummary 待审卖家摘要
type SellerSummary struct {
	ID        uint   `json:"id"`
	UserName  string `json:"user_name"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// SellersForVerification 有待审书籍的卖家列表
func (h *Handler) SellersForVerification(c *gin.Context) {
	sellers, err := h.BookService.SellersForVerification()
	if err != nil {
		respondError(c, response.CodeInternal, "list sellers failed", err)
		return
	}

	summaries := make([]SellerSummary, 0, len(sellers))
	for _, seller := range sellers {
		summaries = append(summaries, SellerSummary{
			ID:        seller.ID,
			UserName:  seller.UserName,
			Email:     seller.Email,
			FirstName: seller.FirstName,
			LastName:  seller.LastName,
		})
	}
	response.Success(c, gin.H{"sellers": summaries})
}

// PendingBooksBySeller 某卖家的待审书籍
func (h *Handler) PendingBooksBySeller(c *gin.Context) {
	rawID := c.Param("seller_id")
	sellerID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || sellerID == 0 {
		respondError(c, response.CodeBadRequest, "invalid seller id", nil)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	books, total, err := h.BookService.PendingBooksBySeller(uint(sellerID), page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "list pending books failed", err)
		return
	}

	response.SuccessWithPage(c, gin.H{"books": books}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.TotalPages(total, pageSize),
	})
}

// BookVerificationRequest 审核请求
type BookVerificationRequest struct {
	BookID   uint   `json:"book_id" binding:"required"`
	SellerID uint   `json:"seller_id"`
	Action   string `json:"action" binding:"required"`
}

// VerifyBook 审核书籍（approve/reject）
func (h *Handler) VerifyBook(c *gin.Context) {
	var req BookVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	book, err := h.BookService.VerifyBook(req.BookID, req.SellerID, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotFound):
			respondError(c, response.CodeNotFound, "book not found", nil)
		case errors.Is(err, service.ErrInvalidVerifyAction):
			respondError(c, response.CodeBadRequest, "invalid verification action", nil)
		case errors.Is(err, service.ErrInvalidStateTransition):
			respondError(c, response.CodeConflict, "book is not pending review", nil)
		default:
			respondError(c, response.CodeInternal, "verify book failed", err)
		}
		return
	}
	response.Success(c, gin.H{"book": book})
}

// ListUsers 用户列表
func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	users, total, err := h.UserAuthService.ListUsers(page, pageSize, c.Query("keyword"), c.Query("role"))
	if err != nil {
		respondError(c, response.CodeInternal, "list users failed", err)
		return
	}

	type userRow struct {
		ID         uint   `json:"id"`
		UserName   string `json:"user_name"`
		Email      string `json:"email"`
		Role       string `json:"role"`
		IsVerified bool   `json:"is_verified"`
	}
	rows := make([]userRow, 0, len(users))
	for _, user := range users {
		rows = append(rows, userRow{
			ID:         user.ID,
			UserName:   user.UserName,
			Email:      user.Email,
			Role:       user.Role,
			IsVerified: user.IsVerified,
		})
	}

	response.SuccessWithPage(c, gin.H{"users": rows}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.TotalPages(total, pageSize),
	})
}
