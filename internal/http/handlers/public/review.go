package public

import (
	"github.com/bookstore-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ReviewRequest 评价请求
type ReviewRequest struct {
	BookID  uint   `json:"book_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required"`
	Content string `json:"content"`
}

// QuickReviewRequest 快捷评价请求
type QuickReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Content string `json:"content"`
}

// AddReview 发表评价，仅限已购书籍，每本书一条
func (h *Handler) AddReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	review, err := h.ReviewService.Add(uid, req.BookID, req.Rating, req.Content)
	if err != nil {
		respondWithMappedError(c, err, reviewErrorRules, response.CodeInternal, "add review failed")
		return
	}
	response.Created(c, gin.H{"review": review})
}

// QuickReview 快捷评价最近一次购买的书籍
func (h *Handler) QuickReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req QuickReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	review, err := h.ReviewService.QuickReview(uid, req.Rating, req.Content)
	if err != nil {
		respondWithMappedError(c, err, reviewErrorRules, response.CodeInternal, "add review failed")
		return
	}
	response.Created(c, gin.H{"review": review})
}
