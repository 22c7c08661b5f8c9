package public

import (
	"errors"

	"github.com/blogicum-next/internal/http/response"
	"github.com/blogicum-next/internal/service"

	"github.com/gin-gonic/gin"
)

// Index 首页文章列表
func (h *Handler) Index(c *gin.Context) {
	page, pageSize := h.parsePageQuery(c)
	views, total, err := h.PostService.ListIndex(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "获取文章列表失败", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"posts": views}, pagination(page, pageSize, total))
}

// CategoryPosts 分类页文章列表
func (h *Handler) CategoryPosts(c *gin.Context) {
	page, pageSize := h.parsePageQuery(c)
	category, views, total, err := h.PostService.ListByCategory(c.Param("slug"), page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "分类不存在")
			return
		}
		respondError(c, response.CodeInternal, "获取分类文章失败", err)
		return
	}
	response.SuccessWithPage(c, gin.H{
		"category": category,
		"posts":    views,
	}, pagination(page, pageSize, total))
}

// PostDetail 文章详情，评论按创建时间正序
func (h *Handler) PostDetail(c *gin.Context) {
	postID, ok := parseUintParam(c, "post_id")
	if !ok {
		return
	}
	post, comments, err := h.PostService.GetVisible(postID, getOptionalUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "文章不存在")
			return
		}
		respondError(c, response.CodeInternal, "获取文章失败", err)
		return
	}
	response.Success(c, gin.H{
		"post":     post,
		"comments": comments,
	})
}

func pagination(page, pageSize int, total int64) response.Pagination {
	totalPage := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		totalPage++
	}
	return response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	}
}
