package public

import (
	"errors"
	"time"

	"github.com/bookstore-next/internal/http/response"
	"github.com/bookstore-next/internal/models"
	"github.com/bookstore-next/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	UserName     string `json:"user_name"`
	Email        string `json:"email" binding:"required"`
	Password     string `json:"password" binding:"required"`
	Role         string `json:"role"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	MobileNumber string `json:"mobile_number"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Identifier  string `json:"identifier" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Role        string `json:"role"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// UserProfileResponse 用户信息响应
type UserProfileResponse struct {
	ID           uint       `json:"id"`
	UserName     string     `json:"user_name"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	MobileNumber string     `json:"mobile_number"`
	ImageURL     string     `json:"image_url"`
	IsVerified   bool       `json:"is_verified"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func buildUserProfile(user *models.User) UserProfileResponse {
	return UserProfileResponse{
		ID:           user.ID,
		UserName:     user.UserName,
		Email:        user.Email,
		Role:         user.Role,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		MobileNumber: user.MobileNumber,
		ImageURL:     user.ImageURL,
		IsVerified:   user.IsVerified,
		LastLoginAt:  user.LastLoginAt,
		CreatedAt:    user.CreatedAt,
	}
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	user, err := h.UserAuthService.Register(service.RegisterInput{
		UserName:     req.UserName,
		Email:        req.Email,
		Password:     req.Password,
		Role:         req.Role,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		MobileNumber: req.MobileNumber,
	})
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "register failed")
		return
	}

	response.Created(c, gin.H{"user": buildUserProfile(user)})
}

// Login 用户登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if err := h.CaptchaService.Verify(service.CaptchaVerifyPayload{
		CaptchaID:   req.CaptchaID,
		CaptchaCode: req.CaptchaCode,
	}); err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "login failed")
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(req.Identifier, req.Password, req.Role)
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "login failed")
		return
	}

	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"user":       buildUserProfile(user),
	})
}

// SendVerifyEmail 重新发送注册验证邮件
func (h *Handler) SendVerifyEmail(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if err := h.UserAuthService.SendVerifyEmail(req.Email); err != nil {
		// 不暴露账号是否存在
		if errors.Is(err, service.ErrNotFound) {
			response.Accepted(c, "verification email queued")
			return
		}
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "send verification failed")
		return
	}
	response.Accepted(c, "verification email queued")
}

// VerifyEmail 校验注册验证码
func (h *Handler) VerifyEmail(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if err := h.UserAuthService.VerifyEmail(req.Email, req.Code); err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "verify email failed")
		return
	}
	response.SuccessWithMsg(c, "email verified", nil)
}

// ForgotPassword 发起密码重置
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if err := h.UserAuthService.ForgotPassword(req.Email); err != nil {
		// 不暴露账号是否存在
		if errors.Is(err, service.ErrNotFound) {
			response.Accepted(c, "reset email queued")
			return
		}
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "forgot password failed")
		return
	}
	response.Accepted(c, "reset email queued")
}

// ResetPassword 重置密码
func (h *Handler) ResetPassword(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required"`
		Code        string `json:"code" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if err := h.UserAuthService.ResetPassword(req.Email, req.Code, req.NewPassword); err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "reset password failed")
		return
	}
	response.Accepted(c, "password reset")
}

// ChangePassword 登录态修改密码
func (h *Handler) ChangePassword(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if err := h.UserAuthService.ChangePassword(uid, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPassword):
			respondError(c, response.CodeBadRequest, "invalid password", nil)
		default:
			respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "change password failed")
		}
		return
	}
	response.SuccessWithMsg(c, "password changed", nil)
}

// GetProfile 获取当前用户信息
func (h *Handler) GetProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetUserByID(uid)
	if err != nil || user == nil {
		respondError(c, response.CodeNotFound, "account not found", err)
		return
	}
	response.Success(c, gin.H{"user": buildUserProfile(user)})
}

// UpdateProfileRequest 更新资料请求
type UpdateProfileRequest struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	MobileNumber *string `json:"mobile_number"`
	ImageURL     *string `json:"image_url"`
}

// UpdateProfile 更新当前用户资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	user, err := h.UserAuthService.UpdateProfile(uid, service.UpdateProfileInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		MobileNumber: req.MobileNumber,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileEmpty):
			respondError(c, response.CodeBadRequest, "no profile fields to update", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "account not found", nil)
		default:
			respondError(c, response.CodeInternal, "update profile failed", err)
		}
		return
	}
	response.Success(c, gin.H{"user": buildUserProfile(user)})
}
