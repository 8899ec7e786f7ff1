package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"wanderstay/internal/models"
	"wanderstay/internal/services"
	"wanderstay/internal/session"
	"wanderstay/internal/validation"
)

type ListingHandler struct {
	Service  *services.ListingService
	Sessions *session.Manager
}

func (h *ListingHandler) Index(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	result := h.Service.ListListings(r.Context(), page)

	data := newTemplateData(r, h.Sessions, "All listings")
	data.Page = &result
	render(w, "listings_index.html", data)
}

func (h *ListingHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	render(w, "listings_new.html", newTemplateData(r, h.Sessions, "New listing"))
}

func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	currentUser, ok := UserFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil { // 32MB
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	payload := listingPayloadFromForm(r)
	if err := validation.ValidateListing(&payload); err != nil {
		if !flashValidation(r, h.Sessions, err) {
			flash(r, h.Sessions, "error", "Invalid listing")
		}
		http.Redirect(w, r, "/listings/new", http.StatusSeeOther)
		return
	}

	upload, err := readImageUpload(r)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			flash(r, h.Sessions, "error", "a listing image upload is required")
		} else {
			flash(r, h.Sessions, "error", "Could not read the uploaded image")
		}
		http.Redirect(w, r, "/listings/new", http.StatusSeeOther)
		return
	}

	_, err = h.Service.CreateListing(r.Context(), listingInput(payload), upload, currentUser)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNoGeocodeResult):
			flash(r, h.Sessions, "error", "Location could not be geocoded, check location and country")
			http.Redirect(w, r, "/listings/new", http.StatusSeeOther)
		default:
			log.Printf("Error creating listing: %v", err)
			flash(r, h.Sessions, "error", "Failed to create listing")
			http.Redirect(w, r, "/listings", http.StatusSeeOther)
		}
		return
	}

	flash(r, h.Sessions, "success", "New Listing Created")
	http.Redirect(w, r, "/listings", http.StatusSeeOther)
}

func (h *ListingHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := listingID(r, ":id")
	if err != nil {
		flash(r, h.Sessions, "error", "Listing does not exist")
		http.Redirect(w, r, "/listings", http.StatusSeeOther)
		return
	}

	listing, err := h.Service.GetListing(r.Context(), id)
	if err != nil {
		if !errors.Is(err, models.ErrListingNotFound) {
			log.Printf("Error fetching listing %d: %v", id, err)
			flash(r, h.Sessions, "error", "Failed to fetch listing details")
		} else {
			flash(r, h.Sessions, "error", "Listing does not exist")
		}
		http.Redirect(w, r, "/listings", http.StatusSeeOther)
		return
	}

	data := newTemplateData(r, h.Sessions, listing.Title)
	data.Listing = &listing
	render(w, "listings_show.html", data)
}

func (h *ListingHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	currentUser, _ := UserFrom(r.Context())
	id, err := listingID(r, ":id")
	if err != nil {
		flash(r, h.Sessions, "error", "Listing does not exist")
		http.Redirect(w, r, "/listings", http.StatusSeeOther)
		return
	}

	listing, err := h.Service.GetListing(r.Context(), id)
	if err != nil {
		flash(r, h.Sessions, "error", "Listing does not exist")
		http.Redirect(w, r, "/listings", http.StatusSeeOther)
		return
	}
	if listing.OwnerID != currentUser.ID {
		flash(r, h.Sessions, "error", "You do not have permission to edit this listing")
		http.Redirect(w, r, fmt.Sprintf("/listings/%d", id), http.StatusSeeOther)
		return
	}

	data := newTemplateData(r, h.Sessions, "Edit "+listing.Title)
	data.Listing = &listing
	render(w, "listings_edit.html", data)
}

func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	currentUser, ok := UserFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := listingID(r, ":id")
	if err != nil {
		flash(r, h.Sessions, "error", "Listing does not exist")
		http.Redirect(w, r, "/listings", http.StatusSeeOther)
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	payload := listingPayloadFromForm(r)
	if err := validation.ValidateListing(&payload); err != nil {
		if !flashValidation(r, h.Sessions, err) {
			flash(r, h.Sessions, "error", "Invalid listing")
		}
		http.Redirect(w, r, fmt.Sprintf("/listings/%d/edit", id), http.StatusSeeOther)
		return
	}

	upload, err := optionalImageUpload(r)
	if err != nil {
		flash(r, h.Sessions, "error", "Could not read the uploaded image")
		http.Redirect(w, r, fmt.Sprintf("/listings/%d/edit", id), http.StatusSeeOther)
		return
	}

	_, err = h.Service.UpdateListing(r.Context(), id, listingInput(payload), upload, currentUser)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrListingNotFound):
			flash(r, h.Sessions, "error", "Listing not found")
			http.Redirect(w, r, "/listings", http.StatusSeeOther)
		case errors.Is(err, models.ErrNotOwner):
			flash(r, h.Sessions, "error", "You do not have permission to edit this listing")
			http.Redirect(w, r, fmt.Sprintf("/listings/%d", id), http.StatusSeeOther)
		case errors.Is(err, models.ErrNoGeocodeResult):
			flash(r, h.Sessions, "error", "Location could not be geocoded, check location and country")
			http.Redirect(w, r, fmt.Sprintf("/listings/%d/edit", id), http.StatusSeeOther)
		default:
			log.Printf("Error updating listing %d: %v", id, err)
			flash(r, h.Sessions, "error", "Failed to update listing")
			http.Redirect(w, r, "/listings", http.StatusSeeOther)
		}
		return
	}

	flash(r, h.Sessions, "success", "Listing Updated")
	http.Redirect(w, r, fmt.Sprintf("/listings/%d", id), http.StatusSeeOther)
}

func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	currentUser, ok := UserFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := listingID(r, ":id")
	if err != nil {
		flash(r, h.Sessions, "error", "Listing does not exist")
		http.Redirect(w, r, "/listings", http.StatusSeeOther)
		return
	}

	if err := h.Service.DeleteListing(r.Context(), id, currentUser); err != nil {
		switch {
		case errors.Is(err, models.ErrListingNotFound):
			flash(r, h.Sessions, "error", "Listing does not exist")
		case errors.Is(err, models.ErrNotOwner):
			flash(r, h.Sessions, "error", "You do not have permission to delete this listing")
		default:
			log.Printf("Error deleting listing %d: %v", id, err)
			flash(r, h.Sessions, "error", "Failed to delete listing")
		}
		http.Redirect(w, r, "/listings", http.StatusSeeOther)
		return
	}

	flash(r, h.Sessions, "success", "Listing deleted successfully")
	http.Redirect(w, r, "/listings", http.StatusSeeOther)
}

// ----------------------------
// Form helpers
// ----------------------------

func listingID(r *http.Request, param string) (int, error) {
	return strconv.Atoi(r.URL.Query().Get(param))
}

func listingPayloadFromForm(r *http.Request) validation.ListingPayload {
	payload := validation.ListingPayload{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Location:    r.FormValue("location"),
		Country:     r.FormValue("country"),
	}
	if raw := r.FormValue("price"); raw != "" {
		if price, err := strconv.ParseFloat(raw, 64); err == nil {
			payload.Price = &price
		}
	}
	return payload
}

func listingInput(p validation.ListingPayload) services.ListingInput {
	in := services.ListingInput{
		Title:       p.Title,
		Description: p.Description,
		Location:    p.Location,
		Country:     p.Country,
	}
	if p.Price != nil {
		in.Price = *p.Price
	}
	return in
}

// optionalImageUpload reads the image field when present. A form without
// the field is not an error; a field that cannot be read is.
func optionalImageUpload(r *http.Request) (*services.ImageUpload, error) {
	upload, err := readImageUpload(r)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	return upload, err
}

func readImageUpload(r *http.Request) (*services.ImageUpload, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &services.ImageUpload{
		Data:        data,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}, nil
}
