package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, methodOverride, app.loadSession)
	authMiddleware := standardMiddleware.Append(app.requireAuth)

	mux := pat.New()

	// Identity
	mux.Get("/signup", standardMiddleware.ThenFunc(app.userHandler.SignupForm))
	mux.Post("/signup", standardMiddleware.ThenFunc(app.userHandler.Signup))
	mux.Get("/login", standardMiddleware.ThenFunc(app.userHandler.LoginForm))
	mux.Post("/login", standardMiddleware.ThenFunc(app.userHandler.Login))
	mux.Get("/logout", standardMiddleware.ThenFunc(app.userHandler.Logout))

	// Listings. /listings/new must be registered ahead of /listings/:id.
	mux.Get("/listings/new", authMiddleware.ThenFunc(app.listingHandler.NewForm))
	mux.Get("/listings/:id/edit", authMiddleware.ThenFunc(app.listingHandler.EditForm))
	mux.Get("/listings/:id", standardMiddleware.ThenFunc(app.listingHandler.Show))
	mux.Get("/listings", standardMiddleware.ThenFunc(app.listingHandler.Index))
	mux.Post("/listings", authMiddleware.ThenFunc(app.listingHandler.Create))
	mux.Put("/listings/:id", authMiddleware.ThenFunc(app.listingHandler.Update))
	mux.Del("/listings/:id", authMiddleware.ThenFunc(app.listingHandler.Delete))

	// Reviews
	mux.Post("/listings/:id/reviews", authMiddleware.ThenFunc(app.reviewHandler.Create))
	mux.Del("/listings/:listingId/reviews/:reviewId", authMiddleware.ThenFunc(app.reviewHandler.Delete))

	// Trailing-slash pattern: catches every request no other route claimed,
	// one registration per method pat dispatches on.
	mux.Get("/", standardMiddleware.ThenFunc(app.home))
	mux.Post("/", standardMiddleware.ThenFunc(app.notFound))
	mux.Put("/", standardMiddleware.ThenFunc(app.notFound))
	mux.Del("/", standardMiddleware.ThenFunc(app.notFound))

	return mux
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/" {
		http.Redirect(w, r, "/listings", http.StatusSeeOther)
		return
	}
	app.notFound(w, r)
}
