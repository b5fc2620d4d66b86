package public

import (
	"github.com/bookstore-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCaptchaSetting 下发验证码配置
func (h *Handler) GetCaptchaSetting(c *gin.Context) {
	response.Success(c, gin.H{"enabled": h.CaptchaService.Enabled()})
}

// GenerateCaptcha 生成图片验证码
func (h *Handler) GenerateCaptcha(c *gin.Context) {
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondError(c, response.CodeBadRequest, "captcha not enabled", err)
		return
	}
	response.Success(c, challenge)
}
