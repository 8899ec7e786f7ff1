package handlers

import (
	"errors"
	"log"
	"net/http"

	"wanderstay/internal/models"
	"wanderstay/internal/session"
	"wanderstay/internal/validation"
	"wanderstay/utils"
)

// templateData is what every rendered page receives.
type templateData struct {
	Title       string
	Flashes     []session.Flash
	CurrentUser *models.User
	Listing     *models.Listing
	Page        *models.ListingPage
}

func newTemplateData(r *http.Request, sessions *session.Manager, title string) templateData {
	data := templateData{Title: title}
	sid := SessionIDFrom(r.Context())
	if sid != "" {
		if flashes, err := sessions.PopFlashes(r.Context(), sid); err == nil {
			data.Flashes = flashes
		}
	}
	if user, ok := UserFrom(r.Context()); ok {
		data.CurrentUser = &user
	}
	return data
}

func render(w http.ResponseWriter, name string, data templateData) {
	utils.Render(w, name, data)
}

// flash queues a one-time message on the request's session; a request
// without a session just drops it.
func flash(r *http.Request, sessions *session.Manager, kind, message string) {
	sid := SessionIDFrom(r.Context())
	if sid == "" {
		return
	}
	if err := sessions.AddFlash(r.Context(), sid, kind, message); err != nil {
		log.Printf("flash: %v", err)
	}
}

// flashValidation queues every violation, not just the first one.
func flashValidation(r *http.Request, sessions *session.Manager, err error) bool {
	var verr *validation.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	for _, msg := range verr.Messages {
		flash(r, sessions, "error", msg)
	}
	return true
}
