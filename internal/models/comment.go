package models

import "time"

// Comment 评论表
// 文章或作者删除时评论级联删除；展示时按创建时间正序。
type Comment struct {
	ID        uint      `gorm:"primarykey" json:"id"`            // 主键
	Text      string    `gorm:"type:text;not null" json:"text"`  // 评论内容
	PostID    uint      `gorm:"not null;index" json:"post_id"`   // 所属文章
	Post      Post      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"` // 评论作者
	Author    User      `gorm:"constraint:OnDelete:CASCADE" json:"author"`
	CreatedAt time.Time `gorm:"index" json:"created_at"` // 创建时间
}

// TableName 指定表名
func (Comment) TableName() string {
	return "comments"
}
