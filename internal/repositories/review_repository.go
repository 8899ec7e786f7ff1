package repositories

import (
	"context"
	"database/sql"

	"wanderstay/internal/models"
)

type ReviewRepository struct {
	DB *sql.DB
}

// CreateReview inserts the review in a transaction that re-verifies the
// listing still exists, so no review ever outlives or precedes its listing.
func (r *ReviewRepository) CreateReview(ctx context.Context, rev models.Review) (models.Review, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Review{}, err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM listings WHERE id = $1`, rev.ListingID).Scan(&exists)
	if err == sql.ErrNoRows {
		return models.Review{}, models.ErrListingNotFound
	}
	if err != nil {
		return models.Review{}, err
	}

	query := `
		INSERT INTO reviews (listing_id, author_id, comment, rating, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`
	err = tx.QueryRowContext(ctx, query,
		rev.ListingID, rev.AuthorID, rev.Comment, rev.Rating,
	).Scan(&rev.ID, &rev.CreatedAt)
	if err != nil {
		return models.Review{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Review{}, err
	}
	return rev, nil
}

func (r *ReviewRepository) GetReviewByID(ctx context.Context, id int) (models.Review, error) {
	query := `
		SELECT r.id, r.listing_id, r.author_id, r.comment, r.rating, u.username, r.created_at
		FROM reviews r
		JOIN users u ON r.author_id = u.id
		WHERE r.id = $1
	`
	var rev models.Review
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&rev.ID, &rev.ListingID, &rev.AuthorID, &rev.Comment, &rev.Rating,
		&rev.Author.Username, &rev.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return models.Review{}, models.ErrReviewNotFound
	}
	if err != nil {
		return models.Review{}, err
	}
	rev.Author.ID = rev.AuthorID
	return rev, nil
}

func (r *ReviewRepository) GetReviewsByListingID(ctx context.Context, listingID int) ([]models.Review, error) {
	query := `
		SELECT r.id, r.listing_id, r.author_id, r.comment, r.rating, u.username, r.created_at
		FROM reviews r
		JOIN users u ON r.author_id = u.id
		WHERE r.listing_id = $1
		ORDER BY r.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rev models.Review
		err := rows.Scan(
			&rev.ID, &rev.ListingID, &rev.AuthorID, &rev.Comment, &rev.Rating,
			&rev.Author.Username, &rev.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		rev.Author.ID = rev.AuthorID
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) DeleteReview(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrReviewNotFound
	}
	return nil
}

// DeleteReviewsByListingID removes every review of a listing as part of the
// cascade when the listing itself is deleted.
func (r *ReviewRepository) DeleteReviewsByListingID(ctx context.Context, listingID int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM reviews WHERE listing_id = $1`, listingID)
	return err
}
