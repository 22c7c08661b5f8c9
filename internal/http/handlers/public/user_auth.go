package public

import (
	"strings"
	"time"

	"github.com/blogicum-next/internal/constants"
	"github.com/blogicum-next/internal/http/response"
	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	Username    string `form:"username" json:"username"`
	Password    string `form:"password" json:"password"`
	FirstName   string `form:"first_name" json:"first_name"`
	LastName    string `form:"last_name" json:"last_name"`
	Email       string `form:"email" json:"email"`
	CaptchaID   string `form:"captcha_id" json:"captcha_id"`
	CaptchaCode string `form:"captcha_code" json:"captcha_code"`
}

// UserRegister 用户注册，成功后直接建立会话并跳转首页
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	if h.CaptchaService != nil {
		if err := h.CaptchaService.Verify(service.CaptchaVerifyPayload{
			CaptchaID:   req.CaptchaID,
			CaptchaCode: req.CaptchaCode,
		}); err != nil {
			respondWithMappedError(c, err, registerErrorRules, response.CodeInternal, "验证码校验失败")
			return
		}
	}

	user, err := h.UserService.Register(service.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		respondWithMappedError(c, err, registerErrorRules, response.CodeInternal, "注册失败")
		return
	}

	if !h.issueSession(c, user) {
		return
	}
	response.Redirect(c, constants.RouteIndex)
}

// UserLoginRequest 登录请求
type UserLoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// UserLogin 用户登录，成功后跳转 next 或首页
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	user, err := h.UserService.Authenticate(req.Username, req.Password)
	if err != nil {
		response.Unauthorized(c, "用户名或密码错误")
		return
	}

	if !h.issueSession(c, user) {
		return
	}
	response.Redirect(c, safeNextLocation(c.Query("next")))
}

// UserLogout 退出登录，清除会话 Cookie 后跳转首页
func (h *Handler) UserLogout(c *gin.Context) {
	c.SetCookie(h.Config.UserJWT.CookieName, "", -1, "/", "", false, true)
	response.Redirect(c, constants.RouteIndex)
}

func (h *Handler) issueSession(c *gin.Context, user *models.User) bool {
	token, expiresAt, err := h.AuthService.GenerateSessionToken(user)
	if err != nil {
		respondError(c, response.CodeInternal, "签发会话失败", err)
		return false
	}
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetCookie(h.Config.UserJWT.CookieName, token, maxAge, "/", "", false, true)
	return true
}

// safeNextLocation 只接受站内相对路径，防止开放跳转
func safeNextLocation(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return constants.RouteIndex
	}
	return next
}
