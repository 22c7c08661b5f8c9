package service

import (
	"strings"
	"time"

	"github.com/blogicum-next/internal/constants"
	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/repository"
)

// PostService 文章业务服务
type PostService struct {
	postRepo     repository.PostRepository
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
	userRepo     repository.UserRepository
	commentRepo  repository.CommentRepository
}

// NewPostService 创建文章服务
func NewPostService(
	postRepo repository.PostRepository,
	categoryRepo repository.CategoryRepository,
	locationRepo repository.LocationRepository,
	userRepo repository.UserRepository,
	commentRepo repository.CommentRepository,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		userRepo:     userRepo,
		commentRepo:  commentRepo,
	}
}

// PostView 列表页文章视图，附带评论数
type PostView struct {
	models.Post
	CommentCount int64 `json:"comment_count"`
}

// PostInput 创建/更新文章输入
type PostInput struct {
	Title       string
	Text        string
	PubDate     time.Time
	IsPublished bool
	CategoryID  *uint
	LocationID  *uint
	Image       string
}

// ListIndex 首页文章列表
// 规则：已发布、发布时间已到（含当下）、所属分类已发布；
// 按发布时间倒序，再按分类与标题排序。
func (s *PostService) ListIndex(page, pageSize int) ([]PostView, int64, error) {
	now := time.Now()
	filter := repository.PostListFilter{
		Page:                     page,
		PageSize:                 normalizePageSize(pageSize),
		PublishedOnly:            true,
		PubDateAtOrBefore:        &now,
		RequireCategoryPublished: true,
		OrderBy:                  "posts.pub_date DESC, posts.category_id, posts.title",
	}
	posts, total, err := s.postRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.attachCommentCounts(posts)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// ListByCategory 分类页文章列表
// 分类本身必须存在且已发布，否则视为不存在；
// 文章过滤使用严格的 pub_date < now，且不再重复检查分类发布状态。
func (s *PostService) ListByCategory(slug string, page, pageSize int) (*models.Category, []PostView, int64, error) {
	category, err := s.categoryRepo.GetBySlug(strings.TrimSpace(slug), true)
	if err != nil {
		return nil, nil, 0, err
	}
	if category == nil {
		return nil, nil, 0, ErrNotFound
	}

	now := time.Now()
	filter := repository.PostListFilter{
		Page:          page,
		PageSize:      normalizePageSize(pageSize),
		CategoryID:    category.ID,
		PublishedOnly: true,
		PubDateBefore: &now,
		OrderBy:       "posts.pub_date DESC",
	}
	posts, total, err := s.postRepo.List(filter)
	if err != nil {
		return nil, nil, 0, err
	}
	views, err := s.attachCommentCounts(posts)
	if err != nil {
		return nil, nil, 0, err
	}
	return category, views, total, nil
}

// ListByAuthor 个人主页文章列表
// 主页主人看自己的全部文章；其他访问者只能看到已发布且
// pub_date < now（严格早于当下）的文章。
func (s *PostService) ListByAuthor(username string, viewerID uint, page, pageSize int) (*models.User, []PostView, int64, error) {
	author, err := s.userRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, nil, 0, err
	}
	if author == nil {
		return nil, nil, 0, ErrNotFound
	}

	filter := repository.PostListFilter{
		Page:     page,
		PageSize: normalizePageSize(pageSize),
		AuthorID: author.ID,
		OrderBy:  "posts.pub_date DESC",
	}
	if viewerID != author.ID {
		now := time.Now()
		filter.PublishedOnly = true
		filter.PubDateBefore = &now
	}
	posts, total, err := s.postRepo.List(filter)
	if err != nil {
		return nil, nil, 0, err
	}
	views, err := s.attachCommentCounts(posts)
	if err != nil {
		return nil, nil, 0, err
	}
	return author, views, total, nil
}

// GetVisible 获取文章详情及其评论（正序）
// 对访问者不可见的文章一律返回 ErrNotFound，避免暴露其存在。
func (s *PostService) GetVisible(postID, viewerID uint) (*models.Post, []models.Comment, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, nil, err
	}
	if post == nil || !PostVisibleTo(post, viewerID, time.Now()) {
		return nil, nil, ErrNotFound
	}

	comments, err := s.commentRepo.ListByPost(repository.CommentListFilter{PostID: post.ID})
	if err != nil {
		return nil, nil, err
	}
	return post, comments, nil
}

// GetForAuthor 获取待编辑/删除的文章
// 文章不存在返回 ErrNotFound；非作者返回 ErrNotOwner，由接口层转为跳转。
func (s *PostService) GetForAuthor(postID, requesterID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if post.AuthorID != requesterID {
		return nil, ErrNotOwner
	}
	return post, nil
}

// Create 创建文章，作者强制为请求者
func (s *PostService) Create(authorID uint, input PostInput) (*models.Post, error) {
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	post := models.Post{
		Title:       strings.TrimSpace(input.Title),
		Text:        input.Text,
		PubDate:     input.PubDate,
		IsPublished: input.IsPublished,
		Image:       input.Image,
		AuthorID:    authorID,
		CategoryID:  input.CategoryID,
		LocationID:  input.LocationID,
	}
	if err := s.postRepo.Create(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Update 更新文章，仅限作者本人
func (s *PostService) Update(postID, requesterID uint, input PostInput) (*models.Post, error) {
	post, err := s.GetForAuthor(postID, requesterID)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	post.Title = strings.TrimSpace(input.Title)
	post.Text = input.Text
	post.PubDate = input.PubDate
	post.IsPublished = input.IsPublished
	post.CategoryID = input.CategoryID
	post.LocationID = input.LocationID
	if input.Image != "" {
		post.Image = input.Image
	}
	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete 删除文章（评论级联删除），仅限作者本人
func (s *PostService) Delete(postID, requesterID uint) error {
	post, err := s.GetForAuthor(postID, requesterID)
	if err != nil {
		return err
	}
	return s.postRepo.Delete(post.ID)
}

// FormChoices 创建/编辑表单可选的分类与地点
func (s *PostService) FormChoices() ([]models.Category, []models.Location, error) {
	categories, err := s.categoryRepo.List(true)
	if err != nil {
		return nil, nil, err
	}
	locations, err := s.locationRepo.List(true)
	if err != nil {
		return nil, nil, err
	}
	return categories, locations, nil
}

func (s *PostService) validateInput(input *PostInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(input.Text) == "" {
		return ErrTextRequired
	}
	if input.PubDate.IsZero() {
		return ErrPubDateRequired
	}
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(*input.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return ErrCategoryInvalid
		}
	}
	if input.LocationID != nil {
		location, err := s.locationRepo.GetByID(*input.LocationID)
		if err != nil {
			return err
		}
		if location == nil {
			return ErrLocationInvalid
		}
	}
	return nil
}

func (s *PostService) attachCommentCounts(posts []models.Post) ([]PostView, error) {
	ids := make([]uint, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.ID)
	}
	counts, err := s.postRepo.CommentCounts(ids)
	if err != nil {
		return nil, err
	}
	views := make([]PostView, 0, len(posts))
	for _, post := range posts {
		views = append(views, PostView{Post: post, CommentCount: counts[post.ID]})
	}
	return views, nil
}

func normalizePageSize(pageSize int) int {
	if pageSize <= 0 {
		return constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		return constants.MaxPageSize
	}
	return pageSize
}
