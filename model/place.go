package model

import "gorm.io/gorm"

// Place is a point of interest. AverageRating and NumOfRatings are derived
// from the persisted ratings and only written by the rating aggregator.
type Place struct {
	PlaceID       string        `gorm:"column:id_place;type:varchar(36);primaryKey" json:"id"`
	Name          string        `gorm:"column:name;type:text;not null" json:"name"`
	Country       string        `gorm:"column:country;type:text;not null" json:"country"`
	Description   *string       `gorm:"column:description;type:text" json:"description,omitempty"` // can be nil, pointer
	Location      *Location     `gorm:"column:location;type:text;serializer:json" json:"location,omitempty"`
	Demographics  *Demographics `gorm:"column:demographics;type:text;serializer:json" json:"demographics,omitempty"`
	AverageRating float64       `gorm:"column:average_rating;type:double precision;not null;default:0" json:"average_rating"`
	NumOfRatings  int           `gorm:"column:num_of_ratings;type:integer;not null;default:0" json:"num_of_ratings"`
	// AggregateVersion is bumped on every aggregate write and guards the
	// conditional update against concurrent writers
	AggregateVersion int        `gorm:"column:aggregate_version;type:integer;not null;default:0" json:"-"`
	CategoryID       *string    `gorm:"column:id_category;type:varchar(36)" json:"category_id,omitempty"`
	Category         *Category  `gorm:"foreignKey:CategoryID;references:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"category,omitempty"`
	PictureID        *string    `gorm:"column:id_picture;type:varchar(36)" json:"-"`
	Picture          *Picture   `gorm:"foreignKey:PictureID;references:PictureID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"picture,omitempty"`
	Interests        []Interest `gorm:"many2many:place_interest;joinForeignKey:PlaceID;joinReferences:InterestID" json:"interests,omitempty"`
	Ratings          []Rating   `gorm:"foreignKey:PlaceID;references:PlaceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"ratings,omitempty"`
	Timestamps
}

func (Place) TableName() string {
	return "place"
}

func (place *Place) BeforeCreate(*gorm.DB) error {
	place.PlaceID = newID(place.PlaceID)
	return nil
}

// PlaceAggregate is the derived rating summary of a place
type PlaceAggregate struct {
	PlaceID       string  `json:"place_id"`
	NumOfRatings  int     `json:"num_of_ratings"`
	AverageRating float64 `json:"average_rating"`
}
