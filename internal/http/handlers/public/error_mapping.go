package public

import (
	"errors"

	"github.com/bookstore-next/internal/http/response"
	"github.com/bookstore-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target  error
	code    int
	message string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.message, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var authErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, message: "invalid email address"},
	{target: service.ErrInvalidRole, code: response.CodeBadRequest, message: "invalid role"},
	{target: service.ErrWeakPassword, code: response.CodeBadRequest, message: "password does not meet policy"},
	{target: service.ErrPasswordTransport, code: response.CodeBadRequest, message: "invalid password payload"},
	{target: service.ErrEmailExists, code: response.CodeConflict, message: "email already registered"},
	{target: service.ErrUserNameExists, code: response.CodeConflict, message: "username already taken"},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, message: "invalid credentials"},
	{target: service.ErrEmailNotVerified, code: response.CodeForbidden, message: "email not verified"},
	{target: service.ErrVerifyCodeInvalid, code: response.CodeBadRequest, message: "verification code invalid"},
	{target: service.ErrVerifyCodeExpired, code: response.CodeBadRequest, message: "verification code expired"},
	{target: service.ErrVerifyCodeAttemptsExceeded, code: response.CodeTooManyRequests, message: "too many attempts"},
	{target: service.ErrVerifyCodeTooFrequent, code: response.CodeTooManyRequests, message: "requested too frequently"},
	{target: service.ErrCaptchaRequired, code: response.CodeBadRequest, message: "captcha required"},
	{target: service.ErrCaptchaInvalid, code: response.CodeBadRequest, message: "captcha invalid"},
	{target: service.ErrNotFound, code: response.CodeNotFound, message: "account not found"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrBookNotFound, code: response.CodeNotFound, message: "book not found"},
	{target: service.ErrBookNotAvailable, code: response.CodeBadRequest, message: "book not available"},
	{target: service.ErrBookOutOfStock, code: response.CodeExpectationFailed, message: "book out of stock"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, message: "cart item not found"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, message: "cart is empty"},
}

var reviewErrorRules = []mappedHandlerError{
	{target: service.ErrBookNotFound, code: response.CodeNotFound, message: "book not found"},
	{target: service.ErrInvalidRating, code: response.CodeBadRequest, message: "rating must be between 1 and 5"},
	{target: service.ErrNotPurchased, code: response.CodeForbidden, message: "only purchased books can be reviewed"},
	{target: service.ErrAlreadyReviewed, code: response.CodeConflict, message: "book already reviewed"},
}

var addressErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidAddressType, code: response.CodeBadRequest, message: "invalid address type"},
	{target: service.ErrNotFound, code: response.CodeNotFound, message: "address not found"},
}
