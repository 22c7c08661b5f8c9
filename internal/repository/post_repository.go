package repository

import (
	"errors"

	"github.com/blogicum-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository 文章数据访问接口
type PostRepository interface {
	List(filter PostListFilter) ([]models.Post, int64, error)
	GetByID(id uint) (*models.Post, error)
	Create(post *models.Post) error
	Update(post *models.Post) error
	Delete(id uint) error
	CommentCounts(postIDs []uint) (map[uint]int64, error)
}

// GormPostRepository GORM 实现
type GormPostRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建文章仓库
func NewPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// List 文章列表，预加载作者、分类与地点
func (r *GormPostRepository) List(filter PostListFilter) ([]models.Post, int64, error) {
	query := r.db.Model(&models.Post{})

	if filter.AuthorID > 0 {
		query = query.Where("posts.author_id = ?", filter.AuthorID)
	}
	if filter.CategoryID > 0 {
		query = query.Where("posts.category_id = ?", filter.CategoryID)
	}
	if filter.PublishedOnly {
		query = query.Where("posts.is_published = ?", true)
	}
	if filter.PubDateAtOrBefore != nil {
		query = query.Where("posts.pub_date <= ?", *filter.PubDateAtOrBefore)
	}
	if filter.PubDateBefore != nil {
		query = query.Where("posts.pub_date < ?", *filter.PubDateBefore)
	}
	if filter.RequireCategoryPublished {
		// 内连接：无分类的文章同样被排除
		query = query.Joins("JOIN categories ON categories.id = posts.category_id").
			Where("categories.is_published = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "posts.pub_date DESC"
	}

	var posts []models.Post
	if err := query.Order(orderBy).
		Preload("Author").
		Preload("Category").
		Preload("Location").
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetByID 根据 ID 获取文章，预加载关联记录
func (r *GormPostRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.
		Preload("Author").
		Preload("Category").
		Preload("Location").
		First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// Create 创建文章，只写外键列，不级联写入关联对象
func (r *GormPostRepository) Create(post *models.Post) error {
	return r.db.Omit(clause.Associations).Create(post).Error
}

// Update 更新文章
func (r *GormPostRepository) Update(post *models.Post) error {
	return r.db.Omit(clause.Associations).Save(post).Error
}

// Delete 删除文章并级联删除其评论
func (r *GormPostRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}

// CommentCounts 批量统计文章评论数，单条聚合查询避免逐篇计数
func (r *GormPostRepository) CommentCounts(postIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}
	type row struct {
		PostID uint
		Total  int64
	}
	var rows []row
	if err := r.db.Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, item := range rows {
		counts[item.PostID] = item.Total
	}
	return counts, nil
}
