package model

import "gorm.io/gorm"

type Picture struct {
	PictureID string `gorm:"column:id_picture;type:varchar(36);primaryKey" json:"id"`
	PublicID  string `gorm:"column:public_id;type:text;not null" json:"public_id"`
	SecureURL string `gorm:"column:secure_url;type:text;not null" json:"secure_url"`
	Timestamps
}

func (Picture) TableName() string {
	return "picture"
}

func (picture *Picture) BeforeCreate(*gorm.DB) error {
	picture.PictureID = newID(picture.PictureID)
	return nil
}
