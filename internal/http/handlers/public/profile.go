package public

import (
	"errors"

	"github.com/blogicum-next/internal/constants"
	"github.com/blogicum-next/internal/http/response"
	"github.com/blogicum-next/internal/service"

	"github.com/gin-gonic/gin"
)

// Profile 个人主页：作者信息 + 文章列表
func (h *Handler) Profile(c *gin.Context) {
	page, pageSize := h.parsePageQuery(c)
	author, views, total, err := h.PostService.ListByAuthor(c.Param("username"), getOptionalUserID(c), page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "用户不存在")
			return
		}
		respondError(c, response.CodeInternal, "获取个人主页失败", err)
		return
	}
	response.SuccessWithPage(c, gin.H{
		"profile": author,
		"posts":   views,
	}, pagination(page, pageSize, total))
}

// ProfileFormRequest 资料编辑请求
type ProfileFormRequest struct {
	Username  string `form:"username" json:"username"`
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
	Email     string `form:"email" json:"email"`
}

// ProfileEditForm 资料编辑表单页：返回会话用户当前资料
// 路径中的用户名不参与目标选择，编辑对象始终是会话用户。
func (h *Handler) ProfileEditForm(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserService.GetByID(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "获取用户资料失败", err)
		return
	}
	response.Success(c, gin.H{"profile": user})
}

// ProfileEdit 更新会话用户资料，成功后跳转到首页
func (h *Handler) ProfileEdit(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req ProfileFormRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	_, err := h.UserService.UpdateProfile(userID, service.ProfileUpdateInput{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameInvalid):
			respondError(c, response.CodeBadRequest, "用户名包含不允许的字符", nil)
		case errors.Is(err, service.ErrUsernameTaken):
			respondError(c, response.CodeBadRequest, "用户名已被占用", nil)
		case errors.Is(err, service.ErrNotFound):
			response.NotFound(c, "用户不存在")
		default:
			respondError(c, response.CodeInternal, "更新资料失败", err)
		}
		return
	}
	response.Redirect(c, constants.RouteIndex)
}
