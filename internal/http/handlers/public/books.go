package public

import (
	"strconv"

	handlershared "github.com/bookstore-next/internal/http/handlers/shared"
	"github.com/bookstore-next/internal/http/response"
	"github.com/bookstore-next/internal/service"

	"github.com/gin-gonic/gin"
)

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid id", nil)
		return 0, false
	}
	return uint(id), true
}

func parseQueryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// ListBooks 浏览书籍目录
func (h *Handler) ListBooks(c *gin.Context) {
	page, pageSize := handlershared.NormalizePagination(
		parseQueryInt(c, "page", 1),
		parseQueryInt(c, "page_size", 20),
	)

	items, total, err := h.BookService.ListCatalog(service.CatalogInput{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "list books failed", err)
		return
	}

	response.SuccessWithPage(c, gin.H{"books": items}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.TotalPages(total, pageSize),
	})
}

// GetBook 书籍详情
func (h *Handler) GetBook(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.BookService.GetPublicBook(bookID)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "get book failed")
		return
	}
	response.Success(c, gin.H{"book": item})
}

// ListBookReviews 书籍评价列表
func (h *Handler) ListBookReviews(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	page, pageSize := handlershared.NormalizePagination(
		parseQueryInt(c, "page", 1),
		parseQueryInt(c, "page_size", 20),
	)

	reviews, total, summary, err := h.ReviewService.ListByBook(bookID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "list reviews failed", err)
		return
	}

	response.SuccessWithPage(c, gin.H{
		"reviews":        reviews,
		"average_rating": summary.AverageScore,
		"review_count":   summary.ReviewCount,
	}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.TotalPages(total, pageSize),
	})
}
