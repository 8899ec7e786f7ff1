package models

import (
	"errors"
)

var (
	ErrNoRecord           = errors.New("models: no matching record found")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrDuplicateUsername  = errors.New("models: duplicate username")
	ErrListingNotFound    = errors.New("listing not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrNotOwner           = errors.New("models: operation requires ownership")
	ErrNoGeocodeResult    = errors.New("models: no geocoding result for location")
	ErrImageRequired      = errors.New("models: listing image upload is required")
	ErrNoSession          = errors.New("session not found")
)
