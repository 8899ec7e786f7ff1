package main

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"wanderstay/internal/models"
	"wanderstay/internal/session"
	"wanderstay/utils"
)

// errorPageData carries the layout's fields too, so the shared template
// renders without a session.
type errorPageData struct {
	Title       string
	Status      int
	Message     string
	Flashes     []session.Flash
	CurrentUser *models.User
}

// serverError logs the failure with a stack trace and renders the generic
// error page.
func (app *application) serverError(w http.ResponseWriter, err error) {
	trace := fmt.Sprintf("%s\n%s", err.Error(), debug.Stack())
	app.errorLog.Output(2, trace)

	w.WriteHeader(http.StatusInternalServerError)
	utils.Render(w, "error.html", errorPageData{
		Title:   "Something went wrong",
		Status:  http.StatusInternalServerError,
		Message: "Something went wrong",
	})
}

// notFound renders the structured page for unknown routes.
func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	utils.Render(w, "error.html", errorPageData{
		Title:   "Page not found",
		Status:  http.StatusNotFound,
		Message: "Page not found: " + r.URL.Path,
	})
}
