package public

import "github.com/blogicum-next/internal/provider"

// Handler 博客公开/用户侧接口处理器入口
type Handler struct {
	*provider.Container
}

// New 创建处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
