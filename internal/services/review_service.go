package services

import (
	"context"

	"wanderstay/internal/models"
	"wanderstay/utils"
)

type ReviewService struct {
	ReviewRepo  ReviewStore
	ListingRepo ListingStore
}

// CreateReview attaches a review authored by currentUser to a listing. The
// listing must still exist when the insert commits.
func (s *ReviewService) CreateReview(ctx context.Context, listingID int, comment string, rating int, currentUser models.User) (models.Review, error) {
	review := models.Review{
		ListingID: listingID,
		AuthorID:  currentUser.ID,
		Comment:   utils.SanitizeInput(comment),
		Rating:    rating,
		Author:    currentUser,
	}
	return s.ReviewRepo.CreateReview(ctx, review)
}

// DeleteReview removes a single review. The caller must be the review's
// author or the listing's owner.
func (s *ReviewService) DeleteReview(ctx context.Context, listingID, reviewID int, currentUser models.User) error {
	review, err := s.ReviewRepo.GetReviewByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.ListingID != listingID {
		return models.ErrReviewNotFound
	}
	if review.AuthorID != currentUser.ID {
		listing, err := s.ListingRepo.GetListingByID(ctx, listingID)
		if err != nil {
			return err
		}
		if listing.OwnerID != currentUser.ID {
			return models.ErrNotOwner
		}
	}
	return s.ReviewRepo.DeleteReview(ctx, reviewID)
}
