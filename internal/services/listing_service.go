package services

import (
	"context"
	"fmt"
	"log"

	"wanderstay/internal/models"
	"wanderstay/utils"
)

// PageSize is the fixed number of listings per index page.
const PageSize = 12

type ListingService struct {
	ListingRepo ListingStore
	ReviewRepo  ReviewStore
	Geocoder    Geocoder
	Images      ImageStore
	ErrorLog    *log.Logger
}

// ListingInput is the validated, not-yet-sanitized form body of a listing.
type ListingInput struct {
	Title       string
	Description string
	Price       float64
	Location    string
	Country     string
}

func (in *ListingInput) sanitize() {
	in.Title = utils.SanitizeInput(in.Title)
	in.Description = utils.SanitizeInput(in.Description)
	in.Location = utils.SanitizeInput(in.Location)
	in.Country = utils.SanitizeInput(in.Country)
}

// ListListings returns one page of listings with totals. Persistence
// failures degrade to an empty page rather than an error: the index stays
// up even when the store is not.
func (s *ListingService) ListListings(ctx context.Context, page int) models.ListingPage {
	if page < 1 {
		page = 1
	}
	total, err := s.ListingRepo.CountListings(ctx)
	if err != nil {
		s.logf("ListListings: count: %v", err)
		return models.ListingPage{Listings: []models.Listing{}, Page: 1, TotalPages: 1}
	}
	listings, err := s.ListingRepo.GetListings(ctx, PageSize, (page-1)*PageSize)
	if err != nil {
		s.logf("ListListings: fetch page %d: %v", page, err)
		return models.ListingPage{Listings: []models.Listing{}, Page: 1, TotalPages: 1}
	}
	return models.ListingPage{
		Listings:   listings,
		Page:       page,
		TotalPages: totalPages(total),
		Total:      total,
	}
}

func totalPages(total int) int {
	return (total + PageSize - 1) / PageSize
}

// CreateListing geocodes the location, pushes the image to the remote host
// and persists the listing owned by currentUser. An empty geocode result or
// a missing upload is a hard failure: no partial listing is created.
func (s *ListingService) CreateListing(ctx context.Context, in ListingInput, upload *ImageUpload, currentUser models.User) (models.Listing, error) {
	if upload == nil || len(upload.Data) == 0 {
		return models.Listing{}, models.ErrImageRequired
	}
	in.sanitize()

	lon, lat, err := s.Geocoder.Forward(ctx, fmt.Sprintf("%s, %s", in.Location, in.Country))
	if err != nil {
		return models.Listing{}, err
	}

	key := utils.ObjectKey("listings", upload.Filename)
	url, err := s.Images.Upload(upload.Data, key, upload.ContentType)
	if err != nil {
		return models.Listing{}, fmt.Errorf("upload listing image: %w", err)
	}

	listing := models.Listing{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Location:    in.Location,
		Country:     in.Country,
		Geometry:    models.Geometry{Longitude: lon, Latitude: lat},
		Image:       models.Image{URL: url, Key: key},
		OwnerID:     currentUser.ID,
		Owner:       currentUser,
	}
	created, err := s.ListingRepo.CreateListing(ctx, listing)
	if err != nil {
		// The remote asset has no listing to belong to; clean it up.
		if derr := s.Images.Delete(key); derr != nil {
			s.logf("CreateListing: orphaned image %s: %v", key, derr)
		}
		return models.Listing{}, err
	}
	return created, nil
}

// GetListing returns a listing with its owner and its reviews, each review
// populated with its author.
func (s *ListingService) GetListing(ctx context.Context, id int) (models.Listing, error) {
	listing, err := s.ListingRepo.GetListingByID(ctx, id)
	if err != nil {
		return models.Listing{}, err
	}
	reviews, err := s.ReviewRepo.GetReviewsByListingID(ctx, id)
	if err != nil {
		return models.Listing{}, err
	}
	listing.Reviews = reviews
	return listing, nil
}

// UpdateListing re-geocodes on every edit and, when a new image is
// supplied, deletes the previous remote asset before the reference is
// replaced. Only the owner may update.
func (s *ListingService) UpdateListing(ctx context.Context, id int, in ListingInput, upload *ImageUpload, currentUser models.User) (models.Listing, error) {
	listing, err := s.ListingRepo.GetListingByID(ctx, id)
	if err != nil {
		return models.Listing{}, err
	}
	if listing.OwnerID != currentUser.ID {
		return models.Listing{}, models.ErrNotOwner
	}
	in.sanitize()

	lon, lat, err := s.Geocoder.Forward(ctx, fmt.Sprintf("%s, %s", in.Location, in.Country))
	if err != nil {
		return models.Listing{}, err
	}

	listing.Title = in.Title
	listing.Description = in.Description
	listing.Price = in.Price
	listing.Location = in.Location
	listing.Country = in.Country
	listing.Geometry = models.Geometry{Longitude: lon, Latitude: lat}

	if upload != nil && len(upload.Data) > 0 {
		key := utils.ObjectKey("listings", upload.Filename)
		url, err := s.Images.Upload(upload.Data, key, upload.ContentType)
		if err != nil {
			return models.Listing{}, fmt.Errorf("upload listing image: %w", err)
		}
		if listing.Image.Key != "" {
			if derr := s.Images.Delete(listing.Image.Key); derr != nil {
				s.logf("UpdateListing %d: delete old image %s: %v", id, listing.Image.Key, derr)
			}
		}
		listing.Image = models.Image{URL: url, Key: key}
	}

	return s.ListingRepo.UpdateListing(ctx, listing)
}

// DeleteListing runs the cascade as a compensating-action sequence:
// best-effort remote image cleanup, then the dependent reviews, then the
// authoritative delete of the listing row. Only the owner may delete.
func (s *ListingService) DeleteListing(ctx context.Context, id int, currentUser models.User) error {
	listing, err := s.ListingRepo.GetListingByID(ctx, id)
	if err != nil {
		return err
	}
	if listing.OwnerID != currentUser.ID {
		return models.ErrNotOwner
	}

	if listing.Image.Key != "" {
		if err := s.Images.Delete(listing.Image.Key); err != nil {
			// Remote cleanup is best effort; the local delete still wins.
			s.logf("DeleteListing %d: delete image %s: %v", id, listing.Image.Key, err)
		}
	}
	if err := s.ReviewRepo.DeleteReviewsByListingID(ctx, id); err != nil {
		return fmt.Errorf("delete reviews of listing %d: %w", id, err)
	}
	return s.ListingRepo.DeleteListing(ctx, id)
}

func (s *ListingService) logf(format string, args ...any) {
	if s.ErrorLog != nil {
		s.ErrorLog.Printf(format, args...)
	}
}
