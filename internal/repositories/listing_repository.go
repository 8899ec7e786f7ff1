package repositories

import (
	"context"
	"database/sql"
	"time"

	"wanderstay/internal/models"
)

type ListingRepository struct {
	DB *sql.DB
}

func (r *ListingRepository) CreateListing(ctx context.Context, l models.Listing) (models.Listing, error) {
	query := `
		INSERT INTO listings
			(title, description, price, location, country, longitude, latitude, image_url, image_key, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_at
	`
	err := r.DB.QueryRowContext(ctx, query,
		l.Title, l.Description, l.Price, l.Location, l.Country,
		l.Geometry.Longitude, l.Geometry.Latitude,
		l.Image.URL, l.Image.Key, l.OwnerID,
	).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return models.Listing{}, err
	}
	return l, nil
}

func (r *ListingRepository) GetListingByID(ctx context.Context, id int) (models.Listing, error) {
	query := `
		SELECT l.id, l.title, l.description, l.price, l.location, l.country,
		       l.longitude, l.latitude, l.image_url, l.image_key, l.owner_id,
		       u.username, l.created_at, l.updated_at
		FROM listings l
		JOIN users u ON l.owner_id = u.id
		WHERE l.id = $1
	`
	var l models.Listing
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&l.ID, &l.Title, &l.Description, &l.Price, &l.Location, &l.Country,
		&l.Geometry.Longitude, &l.Geometry.Latitude,
		&l.Image.URL, &l.Image.Key, &l.OwnerID,
		&l.Owner.Username, &l.CreatedAt, &l.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return models.Listing{}, models.ErrListingNotFound
	}
	if err != nil {
		return models.Listing{}, err
	}
	l.Owner.ID = l.OwnerID
	return l, nil
}

// GetListings returns one page in insertion order, each row annotated with
// its owner's username.
func (r *ListingRepository) GetListings(ctx context.Context, limit, offset int) ([]models.Listing, error) {
	query := `
		SELECT l.id, l.title, l.description, l.price, l.location, l.country,
		       l.longitude, l.latitude, l.image_url, l.image_key, l.owner_id,
		       u.username, l.created_at, l.updated_at
		FROM listings l
		JOIN users u ON l.owner_id = u.id
		ORDER BY l.id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := []models.Listing{}
	for rows.Next() {
		var l models.Listing
		err := rows.Scan(
			&l.ID, &l.Title, &l.Description, &l.Price, &l.Location, &l.Country,
			&l.Geometry.Longitude, &l.Geometry.Latitude,
			&l.Image.URL, &l.Image.Key, &l.OwnerID,
			&l.Owner.Username, &l.CreatedAt, &l.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		l.Owner.ID = l.OwnerID
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func (r *ListingRepository) CountListings(ctx context.Context) (int, error) {
	var total int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM listings`).Scan(&total)
	return total, err
}

func (r *ListingRepository) UpdateListing(ctx context.Context, l models.Listing) (models.Listing, error) {
	query := `
		UPDATE listings
		SET title = $1, description = $2, price = $3, location = $4, country = $5,
		    longitude = $6, latitude = $7, image_url = $8, image_key = $9, updated_at = $10
		WHERE id = $11
	`
	updatedAt := time.Now()
	l.UpdatedAt = &updatedAt
	result, err := r.DB.ExecContext(ctx, query,
		l.Title, l.Description, l.Price, l.Location, l.Country,
		l.Geometry.Longitude, l.Geometry.Latitude,
		l.Image.URL, l.Image.Key, l.UpdatedAt, l.ID,
	)
	if err != nil {
		return models.Listing{}, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return models.Listing{}, err
	}
	if rowsAffected == 0 {
		return models.Listing{}, models.ErrListingNotFound
	}
	return r.GetListingByID(ctx, l.ID)
}

func (r *ListingRepository) DeleteListing(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrListingNotFound
	}
	return nil
}
