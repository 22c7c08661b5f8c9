package service

import (
	"time"

	"github.com/blogicum-next/internal/models"
)

// PostVisibleTo 判断文章对给定访问者是否可见
// 公开可见要求：已发布、发布时间已到、所属分类（若有）已发布；
// 不满足时仅作者本人可见。调用方需保证 Category 已预加载。
func PostVisibleTo(post *models.Post, viewerID uint, now time.Time) bool {
	if post == nil {
		return false
	}
	if post.IsPublished && !post.PubDate.After(now) && categoryVisible(post) {
		return true
	}
	return viewerID != 0 && viewerID == post.AuthorID
}

func categoryVisible(post *models.Post) bool {
	if post.CategoryID == nil {
		return true
	}
	return post.Category != nil && post.Category.IsPublished
}
