package services

import (
	"context"

	"wanderstay/internal/models"
)

// Collaborator interfaces for the service layer. Repositories, the geocoder
// and the image host all sit behind them so ownership and cascade rules can
// be exercised without live backends.

type ListingStore interface {
	CreateListing(ctx context.Context, l models.Listing) (models.Listing, error)
	GetListingByID(ctx context.Context, id int) (models.Listing, error)
	GetListings(ctx context.Context, limit, offset int) ([]models.Listing, error)
	CountListings(ctx context.Context) (int, error)
	UpdateListing(ctx context.Context, l models.Listing) (models.Listing, error)
	DeleteListing(ctx context.Context, id int) error
}

type ReviewStore interface {
	CreateReview(ctx context.Context, rev models.Review) (models.Review, error)
	GetReviewByID(ctx context.Context, id int) (models.Review, error)
	GetReviewsByListingID(ctx context.Context, listingID int) ([]models.Review, error)
	DeleteReview(ctx context.Context, id int) error
	DeleteReviewsByListingID(ctx context.Context, listingID int) error
}

type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUserByID(ctx context.Context, id int) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
}

// Geocoder converts a human-readable location into WGS84 coordinates.
type Geocoder interface {
	Forward(ctx context.Context, query string) (lon, lat float64, err error)
}

// ImageStore is the remote image host.
type ImageStore interface {
	Upload(file []byte, key, contentType string) (url string, err error)
	Delete(key string) error
}

// ImageUpload is a file received from a multipart form.
type ImageUpload struct {
	Data        []byte
	Filename    string
	ContentType string
}
