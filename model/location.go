package model

// Location is stored as a json column on places and users
type Location struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// Demographics is an optional snapshot attached to places and users
type Demographics struct {
	Age      int    `json:"age" validate:"gte=0,lte=150"`
	Location string `json:"location" validate:"max=64"`
	Gender   string `json:"gender" validate:"max=64"`
}
