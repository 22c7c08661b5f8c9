package public

import (
	"strconv"

	handlershared "github.com/blogicum-next/internal/http/handlers/shared"
	"github.com/blogicum-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "user_id")
}

// getOptionalUserID 匿名访问返回 0，不产生错误响应
func getOptionalUserID(c *gin.Context) uint {
	value, exists := c.Get("user_id")
	if !exists {
		return 0
	}
	if id, ok := value.(uint); ok {
		return id
	}
	return 0
}

func getUsername(c *gin.Context) string {
	value, exists := c.Get("username")
	if !exists {
		return ""
	}
	if username, ok := value.(string); ok {
		return username
	}
	return ""
}

// parseUintParam 解析路径中的数字参数，非法时返回 404
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.NotFound(c, "资源不存在")
		return 0, false
	}
	return uint(id), true
}

// parsePageQuery 解析分页查询参数，默认页大小取业务配置 blog.page_size
func (h *Handler) parsePageQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))
	defaultPageSize := 0
	if h.Config != nil {
		defaultPageSize = h.Config.Blog.PageSize
	}
	return handlershared.NormalizePaginationWithDefault(page, pageSize, defaultPageSize)
}
