package validation

import (
	"errors"
	"strings"
	"testing"
)

func listingPayload() ListingPayload {
	price := 120.0
	return ListingPayload{
		Title:       "Seaside cottage",
		Description: "A small cottage right on the beach.",
		Price:       &price,
		Location:    "Calangute",
		Country:     "India",
	}
}

func violations(t *testing.T, err error) []string {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	return verr.Messages
}

func TestValidateListingOK(t *testing.T) {
	p := listingPayload()
	if err := ValidateListing(&p); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
}

func TestValidateListingReportsEveryViolation(t *testing.T) {
	p := ListingPayload{
		Title:       "ab",       // too short
		Description: "too shor", // 9 chars, below 10
		Price:       nil,        // missing
		Location:    "x",        // too short
		Country:     "",         // missing
	}
	err := ValidateListing(&p)
	msgs := violations(t, err)
	if len(msgs) != 5 {
		t.Fatalf("expected 5 violations, got %d: %v", len(msgs), msgs)
	}
	joined := strings.Join(msgs, "; ")
	for _, field := range []string{"title", "description", "price", "location", "country"} {
		if !strings.Contains(joined, field) {
			t.Errorf("expected a violation mentioning %q, got %q", field, joined)
		}
	}
}

func TestValidateListingPriceRange(t *testing.T) {
	p := listingPayload()
	over := 1000001.0
	p.Price = &over
	if err := ValidateListing(&p); err == nil {
		t.Fatal("expected violation for price above 1,000,000")
	}

	zero := 0.0
	p = listingPayload()
	p.Price = &zero
	if err := ValidateListing(&p); err != nil {
		t.Fatalf("price 0 must be allowed, got %v", err)
	}
}

func TestValidateListingTrims(t *testing.T) {
	p := listingPayload()
	p.Title = "  Seaside cottage  "
	if err := ValidateListing(&p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Title != "Seaside cottage" {
		t.Fatalf("expected trimmed title, got %q", p.Title)
	}
}

func TestValidateReview(t *testing.T) {
	tests := []struct {
		name    string
		payload ReviewPayload
		wantErr bool
	}{
		{"ok", ReviewPayload{Comment: "Lovely place", Rating: 5}, false},
		{"rating low", ReviewPayload{Comment: "Lovely place", Rating: 0}, true},
		{"rating high", ReviewPayload{Comment: "Lovely place", Rating: 6}, true},
		{"comment short", ReviewPayload{Comment: "ab", Rating: 3}, true},
		{"comment long", ReviewPayload{Comment: strings.Repeat("x", 501), Rating: 3}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReview(&tt.payload)
			if tt.wantErr && err == nil {
				t.Fatal("expected violation, got none")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected violation: %v", err)
			}
		})
	}
}

func TestValidateSignup(t *testing.T) {
	p := SignupPayload{Username: "ann1", Email: "Ann@X.com", Password: "secret1"}
	if err := ValidateSignup(&p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Email != "ann@x.com" {
		t.Fatalf("expected lower-cased email, got %q", p.Email)
	}

	bad := SignupPayload{Username: "a!", Email: "not-an-email", Password: "short"}
	err := ValidateSignup(&bad)
	msgs := violations(t, err)
	if len(msgs) != 3 {
		t.Fatalf("expected 3 violations, got %d: %v", len(msgs), msgs)
	}
}

func TestValidateLogin(t *testing.T) {
	p := LoginPayload{Username: "ann1", Password: "whatever"}
	if err := ValidateLogin(&p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	empty := LoginPayload{}
	if err := ValidateLogin(&empty); err == nil {
		t.Fatal("expected violations for empty login")
	}
}
