package services

import (
	"context"
	"fmt"

	"wanderstay/internal/models"
)

// In-memory fakes for the collaborator interfaces. Each one records the
// calls it sees so tests can assert on ordering and side effects.

type fakeListingStore struct {
	listings   map[int]models.Listing
	nextID     int
	listErr    error
	countErr   error
	createErr  error
	calls      []string
	sharedCall *[]string
}

func newFakeListingStore() *fakeListingStore {
	return &fakeListingStore{listings: map[int]models.Listing{}, nextID: 1}
}

func (f *fakeListingStore) record(call string) {
	f.calls = append(f.calls, call)
	if f.sharedCall != nil {
		*f.sharedCall = append(*f.sharedCall, call)
	}
}

func (f *fakeListingStore) CreateListing(ctx context.Context, l models.Listing) (models.Listing, error) {
	f.record("create")
	if f.createErr != nil {
		return models.Listing{}, f.createErr
	}
	l.ID = f.nextID
	f.nextID++
	f.listings[l.ID] = l
	return l, nil
}

func (f *fakeListingStore) GetListingByID(ctx context.Context, id int) (models.Listing, error) {
	l, ok := f.listings[id]
	if !ok {
		return models.Listing{}, models.ErrListingNotFound
	}
	return l, nil
}

func (f *fakeListingStore) GetListings(ctx context.Context, limit, offset int) ([]models.Listing, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	all := make([]models.Listing, 0, len(f.listings))
	for id := 1; id < f.nextID; id++ {
		if l, ok := f.listings[id]; ok {
			all = append(all, l)
		}
	}
	if offset >= len(all) {
		return []models.Listing{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeListingStore) CountListings(ctx context.Context) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return len(f.listings), nil
}

func (f *fakeListingStore) UpdateListing(ctx context.Context, l models.Listing) (models.Listing, error) {
	f.record("update")
	if _, ok := f.listings[l.ID]; !ok {
		return models.Listing{}, models.ErrListingNotFound
	}
	f.listings[l.ID] = l
	return l, nil
}

func (f *fakeListingStore) DeleteListing(ctx context.Context, id int) error {
	f.record("delete listing")
	if _, ok := f.listings[id]; !ok {
		return models.ErrListingNotFound
	}
	delete(f.listings, id)
	return nil
}

type fakeReviewStore struct {
	reviews    map[int]models.Review
	nextID     int
	deleteErr  error
	sharedCall *[]string
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{reviews: map[int]models.Review{}, nextID: 1}
}

func (f *fakeReviewStore) record(call string) {
	if f.sharedCall != nil {
		*f.sharedCall = append(*f.sharedCall, call)
	}
}

func (f *fakeReviewStore) CreateReview(ctx context.Context, rev models.Review) (models.Review, error) {
	rev.ID = f.nextID
	f.nextID++
	f.reviews[rev.ID] = rev
	return rev, nil
}

func (f *fakeReviewStore) GetReviewByID(ctx context.Context, id int) (models.Review, error) {
	rev, ok := f.reviews[id]
	if !ok {
		return models.Review{}, models.ErrReviewNotFound
	}
	return rev, nil
}

func (f *fakeReviewStore) GetReviewsByListingID(ctx context.Context, listingID int) ([]models.Review, error) {
	out := []models.Review{}
	for id := 1; id < f.nextID; id++ {
		if rev, ok := f.reviews[id]; ok && rev.ListingID == listingID {
			out = append(out, rev)
		}
	}
	return out, nil
}

func (f *fakeReviewStore) DeleteReview(ctx context.Context, id int) error {
	if _, ok := f.reviews[id]; !ok {
		return models.ErrReviewNotFound
	}
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviewStore) DeleteReviewsByListingID(ctx context.Context, listingID int) error {
	f.record("delete reviews")
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for id, rev := range f.reviews {
		if rev.ListingID == listingID {
			delete(f.reviews, id)
		}
	}
	return nil
}

type fakeGeocoder struct {
	lon, lat float64
	err      error
	queries  []string
}

func (f *fakeGeocoder) Forward(ctx context.Context, query string) (float64, float64, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return 0, 0, f.err
	}
	return f.lon, f.lat, nil
}

type fakeImageStore struct {
	uploaded   []string
	deleted    []string
	uploadErr  error
	sharedCall *[]string
}

func (f *fakeImageStore) Upload(file []byte, key, contentType string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploaded = append(f.uploaded, key)
	return fmt.Sprintf("https://img.example.com/%s", key), nil
}

func (f *fakeImageStore) Delete(key string) error {
	f.deleted = append(f.deleted, key)
	if f.sharedCall != nil {
		*f.sharedCall = append(*f.sharedCall, "delete image")
	}
	return nil
}

type fakeUserStore struct {
	users  map[int]models.User
	nextID int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int]models.User{}, nextID: 1}
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	for _, u := range f.users {
		if u.Username == user.Username {
			return models.User{}, models.ErrDuplicateUsername
		}
		if u.Email == user.Email {
			return models.User{}, models.ErrDuplicateEmail
		}
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id int) (models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return models.User{}, models.ErrNoRecord
	}
	return u, nil
}

func (f *fakeUserStore) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, models.ErrNoRecord
}
