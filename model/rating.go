package model

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/juju/errors"
	"gorm.io/gorm"
)

const (
	MinRatingScore = 1
	MaxRatingScore = 5
)

// Rating is immutable once aggregated; only its author may delete it
type Rating struct {
	RatingID string `gorm:"column:id_rating;type:varchar(36);primaryKey" json:"id"`
	Score    int    `gorm:"column:score;type:integer;not null" json:"rating" validate:"min=1,max=5"`
	Comment  string `gorm:"column:comment;type:text;not null" json:"comment" validate:"min=2,max=150"`
	PlaceID  string `gorm:"column:id_place;type:varchar(36);not null;index" json:"place_id"`
	UserID   string `gorm:"column:id_user;type:varchar(36);not null;index" json:"user_id"`
	Place    *Place `gorm:"foreignKey:PlaceID;references:PlaceID" json:"place,omitempty" validate:"-"`
	User     *User  `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty" validate:"-"`
	Timestamps
}

func (Rating) TableName() string {
	return "rating"
}

func (rating *Rating) BeforeCreate(*gorm.DB) error {
	rating.RatingID = newID(rating.RatingID)
	return nil
}

// CreateRatingRequest is the body of a "rate a place" request
type CreateRatingRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,min=2,max=150"`
}

// RatingResult is what creating a rating produces: the stored rating and
// the owning place and author with their rating collections reloaded
type RatingResult struct {
	Rating Rating `json:"rating"`
	Place  Place  `json:"place"`
	User   User   `json:"user"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator instance
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Validate checks score and comment bounds
func (rating *Rating) Validate() error {
	if err := Validator().Struct(rating); err != nil {
		return errors.NewNotValid(err, "invalid rating")
	}
	return nil
}
