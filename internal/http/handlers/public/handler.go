package public

import "github.com/bookstore-next/internal/provider"

// Handler 前台接口处理器入口
// 说明：该处理器用于顾客侧与公开 API。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
