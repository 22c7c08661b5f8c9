package models

import "time"

// Location 地点表
type Location struct {
	ID          uint      `gorm:"primarykey" json:"id"`             // 主键
	Name        string    `gorm:"size:256;not null" json:"name"`    // 地点名称
	IsPublished bool      `gorm:"default:false" json:"is_published"` // 是否发布
	CreatedAt   time.Time `json:"created_at"`                       // 创建时间
}

// TableName 指定表名
func (Location) TableName() string {
	return "locations"
}
