package public

import (
	"github.com/bookstore-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// UploadFile 上传文件（头像、封面）
func (h *Handler) UploadFile(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "file required", err)
		return
	}

	url, err := h.UploadService.SaveFile(file, c.PostForm("scene"))
	if err != nil {
		respondError(c, response.CodeBadRequest, err.Error(), nil)
		return
	}
	response.Success(c, gin.H{"url": url})
}
