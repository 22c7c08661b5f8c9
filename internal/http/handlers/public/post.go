package public

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blogicum-next/internal/http/response"
	"github.com/blogicum-next/internal/service"

	"github.com/gin-gonic/gin"
)

// PostFormRequest 创建/编辑文章请求
type PostFormRequest struct {
	Title       string `form:"title" json:"title"`
	Text        string `form:"text" json:"text"`
	PubDate     string `form:"pub_date" json:"pub_date"`
	IsPublished *bool  `form:"is_published" json:"is_published"`
	CategoryID  *uint  `form:"category_id" json:"category_id"`
	LocationID  *uint  `form:"location_id" json:"location_id"`
}

var pubDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parsePubDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range pubDateLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized pub_date: %q", raw)
}

// bindPostInput 绑定表单/JSON 并处理可选的 multipart 配图
func (h *Handler) bindPostInput(c *gin.Context) (service.PostInput, bool) {
	var req PostFormRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return service.PostInput{}, false
	}

	pubDate, err := parsePubDate(req.PubDate)
	if err != nil {
		respondError(c, response.CodeBadRequest, "发布时间格式错误", err)
		return service.PostInput{}, false
	}

	isPublished := true
	if req.IsPublished != nil {
		isPublished = *req.IsPublished
	}

	input := service.PostInput{
		Title:       req.Title,
		Text:        req.Text,
		PubDate:     pubDate,
		IsPublished: isPublished,
		CategoryID:  req.CategoryID,
		LocationID:  req.LocationID,
	}

	if file, fileErr := c.FormFile("image"); fileErr == nil && file != nil {
		path, uploadErr := h.UploadService.SavePostImage(file)
		if uploadErr != nil {
			respondPostInputError(c, uploadErr)
			return service.PostInput{}, false
		}
		input.Image = path
	}
	return input, true
}

// PostCreateForm 创建表单页：返回可选分类与地点
func (h *Handler) PostCreateForm(c *gin.Context) {
	categories, locations, err := h.PostService.FormChoices()
	if err != nil {
		respondError(c, response.CodeInternal, "获取表单数据失败", err)
		return
	}
	response.Success(c, gin.H{
		"categories": categories,
		"locations":  locations,
	})
}

// PostCreate 创建文章，作者强制为会话用户，成功后跳转到个人主页
func (h *Handler) PostCreate(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	input, ok := h.bindPostInput(c)
	if !ok {
		return
	}
	if _, err := h.PostService.Create(userID, input); err != nil {
		respondPostInputError(c, err)
		return
	}
	response.Redirect(c, "/profile/"+getUsername(c)+"/")
}

// respondPostOwnershipError 文章不存在返回 404，非作者跳转回详情页
func respondPostOwnershipError(c *gin.Context, postID uint, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, "文章不存在")
	case errors.Is(err, service.ErrNotOwner):
		response.Redirect(c, fmt.Sprintf("/posts/%d/", postID))
	default:
		respondError(c, response.CodeInternal, "操作失败", err)
	}
}

// PostEditForm 编辑表单页：返回待编辑文章与表单可选项
func (h *Handler) PostEditForm(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	postID, ok := parseUintParam(c, "post_id")
	if !ok {
		return
	}
	post, err := h.PostService.GetForAuthor(postID, userID)
	if err != nil {
		respondPostOwnershipError(c, postID, err)
		return
	}
	categories, locations, err := h.PostService.FormChoices()
	if err != nil {
		respondError(c, response.CodeInternal, "获取表单数据失败", err)
		return
	}
	response.Success(c, gin.H{
		"post":       post,
		"categories": categories,
		"locations":  locations,
	})
}

// PostEdit 编辑文章，成功后跳转到详情页
func (h *Handler) PostEdit(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	postID, ok := parseUintParam(c, "post_id")
	if !ok {
		return
	}
	// 先做归属检查再绑定表单，非作者不消费请求体也不落盘配图
	if _, err := h.PostService.GetForAuthor(postID, userID); err != nil {
		respondPostOwnershipError(c, postID, err)
		return
	}
	input, ok := h.bindPostInput(c)
	if !ok {
		return
	}
	if _, err := h.PostService.Update(postID, userID, input); err != nil {
		if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrNotOwner) {
			respondPostOwnershipError(c, postID, err)
			return
		}
		respondPostInputError(c, err)
		return
	}
	response.Redirect(c, fmt.Sprintf("/posts/%d/", postID))
}

// PostDeleteForm 删除确认页：返回待删除文章
func (h *Handler) PostDeleteForm(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	postID, ok := parseUintParam(c, "post_id")
	if !ok {
		return
	}
	post, err := h.PostService.GetForAuthor(postID, userID)
	if err != nil {
		respondPostOwnershipError(c, postID, err)
		return
	}
	response.Success(c, gin.H{"post": post})
}

// PostDelete 删除文章，成功后跳转到个人主页
func (h *Handler) PostDelete(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	postID, ok := parseUintParam(c, "post_id")
	if !ok {
		return
	}
	if err := h.PostService.Delete(postID, userID); err != nil {
		respondPostOwnershipError(c, postID, err)
		return
	}
	response.Redirect(c, "/profile/"+getUsername(c)+"/")
}
