package model

import "gorm.io/gorm"

type Category struct {
	CategoryID string  `gorm:"column:id_category;type:varchar(36);primaryKey" json:"id"`
	Title      string  `gorm:"column:title;type:text;not null;uniqueIndex" json:"title"`
	Places     []Place `gorm:"foreignKey:CategoryID;references:CategoryID" json:"places,omitempty"`
	Timestamps
}

func (Category) TableName() string {
	return "category"
}

func (category *Category) BeforeCreate(*gorm.DB) error {
	category.CategoryID = newID(category.CategoryID)
	return nil
}
