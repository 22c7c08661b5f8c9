package provider

import (
	"github.com/blogicum-next/internal/cache"
	"github.com/blogicum-next/internal/config"
	"github.com/blogicum-next/internal/logger"
	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/repository"
	"github.com/blogicum-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config

	// Repositories
	UserRepo     repository.UserRepository
	CategoryRepo repository.CategoryRepository
	LocationRepo repository.LocationRepository
	PostRepo     repository.PostRepository
	CommentRepo  repository.CommentRepository

	// Services
	AuthService    *service.AuthService
	UserService    *service.UserService
	PostService    *service.PostService
	CommentService *service.CommentService
	CaptchaService *service.CaptchaService
	UploadService  *service.UploadService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{Config: cfg}
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.LocationRepo = repository.NewLocationRepository(db)
	c.PostRepo = repository.NewPostRepository(db)
	c.CommentRepo = repository.NewCommentRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config)
	c.UserService = service.NewUserService(c.UserRepo, c.AuthService)
	c.PostService = service.NewPostService(c.PostRepo, c.CategoryRepo, c.LocationRepo, c.UserRepo, c.CommentRepo)
	c.CommentService = service.NewCommentService(c.CommentRepo, c.PostRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.UploadService = service.NewUploadService(c.Config.Upload)
}
