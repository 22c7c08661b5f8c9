package repository

import (
	"errors"

	"github.com/blogicum-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository 评论数据访问接口
type CommentRepository interface {
	ListByPost(filter CommentListFilter) ([]models.Comment, error)
	GetByID(id uint) (*models.Comment, error)
	Create(comment *models.Comment) error
	Update(comment *models.Comment) error
	Delete(id uint) error
}

// GormCommentRepository GORM 实现
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 创建评论仓库
func NewCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// ListByPost 文章评论列表，默认按创建时间正序
func (r *GormCommentRepository) ListByPost(filter CommentListFilter) ([]models.Comment, error) {
	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "created_at"
	}
	var comments []models.Comment
	if err := r.db.Where("post_id = ?", filter.PostID).
		Order(orderBy).
		Preload("Author").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// GetByID 根据 ID 获取评论
func (r *GormCommentRepository) GetByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.Preload("Author").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// Create 创建评论
func (r *GormCommentRepository) Create(comment *models.Comment) error {
	return r.db.Omit(clause.Associations).Create(comment).Error
}

// Update 更新评论
func (r *GormCommentRepository) Update(comment *models.Comment) error {
	return r.db.Omit(clause.Associations).Save(comment).Error
}

// Delete 删除评论
func (r *GormCommentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}
