package model

import "gorm.io/gorm"

// Interest is a tag shared by places and users; titles are unique
type Interest struct {
	InterestID string `gorm:"column:id_interest;type:varchar(36);primaryKey" json:"id"`
	Title      string `gorm:"column:title;type:text;not null;uniqueIndex" json:"title"`
	Timestamps
}

func (Interest) TableName() string {
	return "interest"
}

func (interest *Interest) BeforeCreate(*gorm.DB) error {
	interest.InterestID = newID(interest.InterestID)
	return nil
}

// InterestTitles returns the titles of interests, in order
func InterestTitles(interests []Interest) []string {
	titles := make([]string, 0, len(interests))
	for _, interest := range interests {
		titles = append(titles, interest.Title)
	}
	return titles
}
