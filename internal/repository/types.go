package repository

import "time"

// PostListFilter 查询文章列表的过滤条件
// 各列表页的可见性规则组合由业务层决定，这里只负责拼装查询。
type PostListFilter struct {
	Page                     int
	PageSize                 int
	AuthorID                 uint
	CategoryID               uint
	PublishedOnly            bool       // 仅已发布文章
	PubDateAtOrBefore        *time.Time // pub_date <= t
	PubDateBefore            *time.Time // pub_date < t
	RequireCategoryPublished bool       // 关联分类必须已发布（内连接）
	OrderBy                  string
}

// CommentListFilter 查询评论列表的过滤条件
type CommentListFilter struct {
	PostID  uint
	OrderBy string
}
