package models

import "time"

// Tag 菜谱标签
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(32);uniqueIndex;not null" json:"name"`
	Slug      string    `gorm:"type:varchar(32);uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"-"`
}

// TableName 指定表名
func (Tag) TableName() string {
	return "tags"
}
