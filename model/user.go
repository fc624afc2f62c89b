package model

import "gorm.io/gorm"

const (
	RoleTourist = "TOURIST"
	RoleAdmin   = "ADMIN"
)

type User struct {
	UserID       string        `gorm:"column:id_user;type:varchar(36);primaryKey" json:"id"`
	Name         string        `gorm:"column:name;type:text;not null" json:"name"`
	Email        string        `gorm:"column:email;type:text;not null;uniqueIndex" json:"email"`
	FirebaseUID  string        `gorm:"column:firebase_uid;type:text;not null;uniqueIndex" json:"-"`
	Bio          *string       `gorm:"column:bio;type:text" json:"bio,omitempty"`
	Role         string        `gorm:"column:role;type:text;not null;default:TOURIST" json:"role"`
	Location     *Location     `gorm:"column:location;type:text;serializer:json" json:"location,omitempty"`
	Demographics *Demographics `gorm:"column:demographics;type:text;serializer:json" json:"demographics,omitempty"`
	Interests    []Interest    `gorm:"many2many:user_interest;joinForeignKey:UserID;joinReferences:InterestID" json:"interests,omitempty"`
	Ratings      []Rating      `gorm:"foreignKey:UserID;references:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"ratings,omitempty"`
	// LikedPlaces and VisitedPlaces are ordered place id lists
	LikedPlaces   []string `gorm:"column:liked_places;type:text;serializer:json" json:"liked_places"`
	VisitedPlaces []string `gorm:"column:visited_places;type:text;serializer:json" json:"visited_places"`
	Timestamps
}

func (User) TableName() string {
	return "user"
}

func (user *User) BeforeCreate(*gorm.DB) error {
	user.UserID = newID(user.UserID)
	if user.Role == "" {
		user.Role = RoleTourist
	}
	return nil
}

// PlacesHistory is the liked and visited places of a user
type PlacesHistory struct {
	LikedPlaces   []Place `json:"liked_places"`
	VisitedPlaces []Place `json:"visited_places"`
}
