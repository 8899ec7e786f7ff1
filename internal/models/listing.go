package models

import (
	"time"
)

// Geometry is a WGS84 point derived from the listing's location and country
// at write time. A listing is never persisted without it.
type Geometry struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Image is a remote-hosted asset: the public URL plus the object key needed
// to delete it from the image host.
type Image struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

type Listing struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Location    string     `json:"location"`
	Country     string     `json:"country"`
	Geometry    Geometry   `json:"geometry"`
	Image       Image      `json:"image"`
	OwnerID     int        `json:"owner_id"`
	Owner       User       `json:"owner"`
	Reviews     []Review   `json:"reviews,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// ListingPage is one page of the listings index.
type ListingPage struct {
	Listings   []Listing `json:"listings"`
	Page       int       `json:"page"`
	TotalPages int       `json:"total_pages"`
	Total      int       `json:"total"`
}
