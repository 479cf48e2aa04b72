package models

import "time"

// ShortLink 菜谱短链，code -> recipe_id
type ShortLink struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Code      string    `gorm:"type:varchar(16);uniqueIndex;not null" json:"code"`
	RecipeID  uint      `gorm:"not null;uniqueIndex" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
	Recipe    *Recipe   `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (ShortLink) TableName() string {
	return "short_links"
}
