package public

import (
	"errors"
	"fmt"

	"github.com/blogicum-next/internal/http/response"
	"github.com/blogicum-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CommentFormRequest 创建/编辑评论请求
type CommentFormRequest struct {
	Text string `form:"text" json:"text"`
}

func bindCommentInput(c *gin.Context) (string, bool) {
	var req CommentFormRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return "", false
	}
	return req.Text, true
}

// respondCommentOwnershipError 评论不存在返回 404，非作者硬性拒绝 403
func respondCommentOwnershipError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, "评论不存在")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, "只有评论作者可以执行此操作")
	case errors.Is(err, service.ErrTextRequired):
		respondError(c, response.CodeBadRequest, "评论内容不能为空", nil)
	default:
		respondError(c, response.CodeInternal, "操作失败", err)
	}
}

// CommentCreateForm 评论表单页：返回被评论的文章
func (h *Handler) CommentCreateForm(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	postID, ok := parseUintParam(c, "post_id")
	if !ok {
		return
	}
	post, _, err := h.PostService.GetVisible(postID, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "文章不存在")
			return
		}
		respondError(c, response.CodeInternal, "获取文章失败", err)
		return
	}
	response.Success(c, gin.H{"post": post})
}

// CommentCreate 创建评论，作者强制为会话用户，成功后跳转到详情页
func (h *Handler) CommentCreate(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	postID, ok := parseUintParam(c, "post_id")
	if !ok {
		return
	}
	text, ok := bindCommentInput(c)
	if !ok {
		return
	}
	if _, err := h.CommentService.Create(postID, userID, text); err != nil {
		respondCommentOwnershipError(c, err)
		return
	}
	response.Redirect(c, fmt.Sprintf("/posts/%d/", postID))
}

// CommentEditForm 编辑表单页：返回待编辑评论
func (h *Handler) CommentEditForm(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	if _, ok := parseUintParam(c, "post_id"); !ok {
		return
	}
	commentID, ok := parseUintParam(c, "comment_id")
	if !ok {
		return
	}
	comment, err := h.CommentService.GetForAuthor(commentID, userID)
	if err != nil {
		respondCommentOwnershipError(c, err)
		return
	}
	response.Success(c, gin.H{"comment": comment})
}

// CommentEdit 编辑评论，成功后跳转到详情页
func (h *Handler) CommentEdit(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	postID, ok := parseUintParam(c, "post_id")
	if !ok {
		return
	}
	commentID, ok := parseUintParam(c, "comment_id")
	if !ok {
		return
	}
	text, ok := bindCommentInput(c)
	if !ok {
		return
	}
	if _, err := h.CommentService.Update(commentID, userID, text); err != nil {
		respondCommentOwnershipError(c, err)
		return
	}
	response.Redirect(c, fmt.Sprintf("/posts/%d/", postID))
}

// CommentDeleteForm 删除确认页：返回待删除评论
func (h *Handler) CommentDeleteForm(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	if _, ok := parseUintParam(c, "post_id"); !ok {
		return
	}
	commentID, ok := parseUintParam(c, "comment_id")
	if !ok {
		return
	}
	comment, err := h.CommentService.GetForAuthor(commentID, userID)
	if err != nil {
		respondCommentOwnershipError(c, err)
		return
	}
	response.Success(c, gin.H{"comment": comment})
}

// CommentDelete 删除评论，成功后跳转到详情页
func (h *Handler) CommentDelete(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	postID, ok := parseUintParam(c, "post_id")
	if !ok {
		return
	}
	commentID, ok := parseUintParam(c, "comment_id")
	if !ok {
		return
	}
	if err := h.CommentService.Delete(commentID, userID); err != nil {
		respondCommentOwnershipError(c, err)
		return
	}
	response.Redirect(c, fmt.Sprintf("/posts/%d/", postID))
}
