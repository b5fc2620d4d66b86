package seller

import (
	handlershared "github.com/bookstore-next/internal/http/handlers/shared"
	"github.com/bookstore-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// Handler 卖家接口处理器入口
type Handler struct {
	*provider.Container
}

// New 创建卖家处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func getSellerID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "user_id")
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}
