package seller

import (
	"errors"
	"strconv"

	handlershared "github.com/bookstore-next/internal/http/handlers/shared"
	"github.com/bookstore-next/internal/http/response"
	"github.com/bookstore-next/internal/service"

	"github.com/gin-gonic/gin"
)

// BookRequest 书籍录入请求
type BookRequest struct {
	Name        string `json:"name" binding:"required"`
	AuthorName  string `json:"author_name" binding:"required"`
	Price       string `json:"price" binding:"required"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

func parseBookID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid book id", nil)
		return 0, false
	}
	return uint(id), true
}

func respondBookError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, service.ErrBookNotFound):
		respondError(c, response.CodeNotFound, "book not found", nil)
	case errors.Is(err, service.ErrNotBookOwner):
		respondError(c, response.CodeForbidden, "book belongs to another seller", nil)
	case errors.Is(err, service.ErrBookFieldsMissing):
		respondError(c, response.CodeBadRequest, "book name and author are required", nil)
	case errors.Is(err, service.ErrInvalidPrice):
		respondError(c, response.CodeBadRequest, "invalid price", nil)
	case errors.Is(err, service.ErrInvalidQuantity):
		respondError(c, response.CodeBadRequest, "invalid quantity", nil)
	case errors.Is(err, service.ErrInvalidStateTransition):
		respondError(c, response.CodeConflict, "invalid approval state transition", nil)
	default:
		respondError(c, response.CodeInternal, fallbackMsg, err)
	}
}

// AddBook 新增书籍，初始为草稿
func (h *Handler) AddBook(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	book, err := h.BookService.AddBook(sellerID, service.BookInput{
		Name:        req.Name,
		AuthorName:  req.AuthorName,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		respondBookError(c, err, "add book failed")
		return
	}
	response.Created(c, gin.H{"book": book})
}

// UpdateBook 编辑书籍，已送审或已上架的书籍会回到草稿
func (h *Handler) UpdateBook(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	bookID, ok := parseBookID(c)
	if !ok {
		return
	}
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	book, err := h.BookService.UpdateBook(sellerID, bookID, service.BookInput{
		Name:        req.Name,
		AuthorName:  req.AuthorName,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		respondBookError(c, err, "update book failed")
		return
	}
	response.Success(c, gin.H{"book": book})
}

// SubmitBook 送审书籍
func (h *Handler) SubmitBook(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	bookID, ok := parseBookID(c)
	if !ok {
		return
	}

	book, err := h.BookService.SubmitForApproval(sellerID, bookID)
	if err != nil {
		respondBookError(c, err, "submit book failed")
		return
	}
	response.Success(c, gin.H{"book": book})
}

// RemoveBook 下架书籍
func (h *Handler) RemoveBook(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	bookID, ok := parseBookID(c)
	if !ok {
		return
	}

	if err := h.BookService.RemoveBook(sellerID, bookID); err != nil {
		respondBookError(c, err, "remove book failed")
		return
	}
	response.SuccessWithMsg(c, "book removed", gin.H{"removed": true})
}

// ListBooks 卖家书籍列表
func (h *Handler) ListBooks(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	books, total, err := h.BookService.ListSellerBooks(sellerID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "list books failed", err)
		return
	}

	response.SuccessWithPage(c, gin.H{"books": books}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.TotalPages(total, pageSize),
	})
}

// GetBook 卖家查看自己的书籍详情
func (h *Handler) GetBook(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	bookID, ok := parseBookID(c)
	if !ok {
		return
	}

	book, err := h.BookService.GetSellerBook(sellerID, bookID)
	if err != nil {
		respondBookError(c, err, "get book failed")
		return
	}
	response.Success(c, gin.H{"book": book})
}

// CountBooks 卖家书籍总数
func (h *Handler) CountBooks(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	count, err := h.BookService.CountSellerBooks(sellerID)
	if err != nil {
		respondError(c, response.CodeInternal, "count books failed", err)
		return
	}
	response.Success(c, gin.H{"count": count})
}
