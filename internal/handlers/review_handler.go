package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"wanderstay/internal/models"
	"wanderstay/internal/services"
	"wanderstay/internal/session"
	"wanderstay/internal/validation"
)

type ReviewHandler struct {
	Service  *services.ReviewService
	Sessions *session.Manager
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	currentUser, ok := UserFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	listingID, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		flash(r, h.Sessions, "error", "Listing does not exist")
		http.Redirect(w, r, "/listings", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	payload := validation.ReviewPayload{
		Comment: r.PostFormValue("comment"),
	}
	if rating, err := strconv.Atoi(r.PostFormValue("rating")); err == nil {
		payload.Rating = rating
	}
	if err := validation.ValidateReview(&payload); err != nil {
		if !flashValidation(r, h.Sessions, err) {
			flash(r, h.Sessions, "error", "Invalid review")
		}
		http.Redirect(w, r, fmt.Sprintf("/listings/%d", listingID), http.StatusSeeOther)
		return
	}

	_, err = h.Service.CreateReview(r.Context(), listingID, payload.Comment, payload.Rating, currentUser)
	if err != nil {
		if errors.Is(err, models.ErrListingNotFound) {
			flash(r, h.Sessions, "error", "Listing does not exist")
			http.Redirect(w, r, "/listings", http.StatusSeeOther)
			return
		}
		log.Printf("CreateReview error: %v", err)
		flash(r, h.Sessions, "error", "Failed to add review")
		http.Redirect(w, r, fmt.Sprintf("/listings/%d", listingID), http.StatusSeeOther)
		return
	}

	flash(r, h.Sessions, "success", "Review added successfully")
	http.Redirect(w, r, fmt.Sprintf("/listings/%d", listingID), http.StatusSeeOther)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	currentUser, ok := UserFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	listingID, err := strconv.Atoi(r.URL.Query().Get(":listingId"))
	if err != nil {
		flash(r, h.Sessions, "error", "Listing does not exist")
		http.Redirect(w, r, "/listings", http.StatusSeeOther)
		return
	}
	reviewID, err := strconv.Atoi(r.URL.Query().Get(":reviewId"))
	if err != nil {
		flash(r, h.Sessions, "error", "Review does not exist")
		http.Redirect(w, r, fmt.Sprintf("/listings/%d", listingID), http.StatusSeeOther)
		return
	}

	if err := h.Service.DeleteReview(r.Context(), listingID, reviewID, currentUser); err != nil {
		switch {
		case errors.Is(err, models.ErrReviewNotFound):
			flash(r, h.Sessions, "error", "Review does not exist")
		case errors.Is(err, models.ErrNotOwner):
			flash(r, h.Sessions, "error", "You do not have permission to delete this review")
		default:
			log.Printf("DeleteReview error: %v", err)
			flash(r, h.Sessions, "error", "Failed to delete review")
		}
		http.Redirect(w, r, fmt.Sprintf("/listings/%d", listingID), http.StatusSeeOther)
		return
	}

	flash(r, h.Sessions, "success", "Review deleted successfully")
	http.Redirect(w, r, fmt.Sprintf("/listings/%d", listingID), http.StatusSeeOther)
}
