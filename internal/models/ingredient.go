package models

import "time"

// Ingredient 食材，(name, measurement_unit) 全局唯一
type Ingredient struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	Name            string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_ingredient_name_unit;index" json:"name"`
	MeasurementUnit string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_ingredient_name_unit" json:"measurement_unit"`
	CreatedAt       time.Time `json:"-"`
}

// TableName 指定表名
func (Ingredient) TableName() string {
	return "ingredients"
}
