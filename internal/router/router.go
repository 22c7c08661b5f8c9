package router

import (
	"fmt"
	"strings"

	"github.com/blogicum-next/internal/cache"
	"github.com/blogicum-next/internal/config"
	publichandlers "github.com/blogicum-next/internal/http/handlers/public"
	"github.com/blogicum-next/internal/logger"
	"github.com/blogicum-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "blg"
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "登录尝试过于频繁",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 上传图片的静态文件服务
	uploadDir := strings.TrimSpace(cfg.Upload.Dir)
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	r.Static("/uploads", uploadDir)

	optionalAuth := OptionalSessionMiddleware(c.AuthService, cfg.UserJWT.CookieName)
	requireAuth := SessionAuthMiddleware(c.AuthService, cfg.UserJWT.CookieName)

	// 公开页面：匿名可访问，有会话时按会话用户计算可见性
	public := r.Group("", optionalAuth)
	{
		public.GET("/", handler.Index)
		public.GET("/category/:slug/", handler.CategoryPosts)
		public.GET("/posts/:post_id/", handler.PostDetail)
		public.GET("/profile/:username/", handler.Profile)
	}

	// 登录用户页面：未登录时 302 跳转登录页
	authed := r.Group("", requireAuth)
	{
		authed.GET("/posts/create/", handler.PostCreateForm)
		authed.POST("/posts/create/", handler.PostCreate)
		authed.GET("/posts/:post_id/edit/", handler.PostEditForm)
		authed.POST("/posts/:post_id/edit/", handler.PostEdit)
		authed.GET("/posts/:post_id/delete/", handler.PostDeleteForm)
		authed.POST("/posts/:post_id/delete/", handler.PostDelete)
		authed.GET("/posts/:post_id/comment/", handler.CommentCreateForm)
		authed.POST("/posts/:post_id/comment/", handler.CommentCreate)
		authed.GET("/posts/:post_id/edit_comment/:comment_id/edit/", handler.CommentEditForm)
		authed.POST("/posts/:post_id/edit_comment/:comment_id/edit/", handler.CommentEdit)
		authed.GET("/posts/:post_id/delete_comment/:comment_id/delete/", handler.CommentDeleteForm)
		authed.POST("/posts/:post_id/delete_comment/:comment_id/delete/", handler.CommentDelete)
		authed.GET("/profile/:username/edit/", handler.ProfileEditForm)
		authed.POST("/profile/:username/edit/", handler.ProfileEdit)
	}

	// 认证接口
	auth := r.Group("/auth")
	{
		auth.POST("/registration/", handler.UserRegister)
		auth.POST("/login/", RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndBodyField("username")), handler.UserLogin)
		auth.POST("/logout/", handler.UserLogout)
		auth.GET("/captcha/image", handler.CaptchaImage)
	}

	return r
}
