package service

import (
	"strings"

	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/repository"
)

// CommentService 评论业务服务
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// NewCommentService 创建评论服务
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

// Create 为文章创建评论，作者强制为请求者
func (s *CommentService) Create(postID, authorID uint, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrTextRequired
	}
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	comment := models.Comment{
		Text:     text,
		PostID:   post.ID,
		AuthorID: authorID,
	}
	if err := s.commentRepo.Create(&comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetForAuthor 获取待编辑/删除的评论
// 评论不存在返回 ErrNotFound；非作者返回 ErrForbidden（硬性拒绝）。
func (s *CommentService) GetForAuthor(commentID, requesterID uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrNotFound
	}
	if comment.AuthorID != requesterID {
		return nil, ErrForbidden
	}
	return comment, nil
}

// Update 更新评论，仅限作者本人
func (s *CommentService) Update(commentID, requesterID uint, text string) (*models.Comment, error) {
	comment, err := s.GetForAuthor(commentID, requesterID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrTextRequired
	}
	comment.Text = text
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete 删除评论，仅限作者本人
func (s *CommentService) Delete(commentID, requesterID uint) error {
	comment, err := s.GetForAuthor(commentID, requesterID)
	if err != nil {
		return err
	}
	return s.commentRepo.Delete(comment.ID)
}
