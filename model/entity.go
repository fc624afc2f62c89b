package model

import (
	"time"

	"github.com/google/uuid"
)

// newID returns id unchanged, or a fresh uuid when it is empty
func newID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

type Timestamps struct {
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}
