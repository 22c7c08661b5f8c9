package models

import "time"

// Post 文章表
// 分类与地点可为空，关联记录删除时外键置空；作者删除时文章级联删除。
type Post struct {
	ID          uint      `gorm:"primarykey" json:"id"`                   // 主键
	Title       string    `gorm:"size:256;not null" json:"title"`         // 标题
	Text        string    `gorm:"type:text;not null" json:"text"`         // 正文
	PubDate     time.Time `gorm:"index;not null" json:"pub_date"`         // 发布时间（可设为未来实现定时发布）
	IsPublished bool      `gorm:"default:false;index" json:"is_published"` // 是否发布
	Image       string    `gorm:"default:''" json:"image"`                // 配图路径（可选）
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`        // 作者
	Author      User      `gorm:"constraint:OnDelete:CASCADE" json:"author"`
	CategoryID  *uint     `gorm:"index" json:"category_id"` // 分类（可空）
	Category    *Category `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`
	LocationID  *uint     `json:"location_id"` // 地点（可空）
	Location    *Location `gorm:"constraint:OnDelete:SET NULL" json:"location,omitempty"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"` // 创建时间
}

// TableName 指定表名
func (Post) TableName() string {
	return "posts"
}
