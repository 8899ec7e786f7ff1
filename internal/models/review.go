package models

import (
	"time"
)

type Review struct {
	ID        int       `json:"id"`
	ListingID int       `json:"listing_id,omitempty"`
	AuthorID  int       `json:"author_id,omitempty"`
	Comment   string    `json:"comment"`
	Rating    int       `json:"rating"`
	Author    User      `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}
