package main

import (
	"fmt"
	"net/http"
	"strings"

	"wanderstay/internal/handlers"
	"wanderstay/internal/models"
	"wanderstay/internal/session"
)

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.infoLog.Printf("%s - %s %s %s", r.RemoteAddr, r.Proto, r.Method, r.URL.RequestURI())
		next.ServeHTTP(w, r)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverError(w, fmt.Errorf("%s", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// methodOverride lets a browser form express PUT and DELETE through a
// hidden _method field (or query parameter) on a POST.
func methodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			m := r.URL.Query().Get("_method")
			if m == "" && strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
				// ParseForm leaves multipart bodies untouched, so this is
				// safe ahead of the upload handlers.
				if err := r.ParseForm(); err == nil {
					m = r.PostForm.Get("_method")
				}
			}
			switch strings.ToUpper(m) {
			case http.MethodPut:
				r.Method = http.MethodPut
			case http.MethodDelete:
				r.Method = http.MethodDelete
			}
		}
		next.ServeHTTP(w, r)
	})
}

// loadSession resolves the session cookie, creating an anonymous session
// for first-time visitors, and puts the session id and the current user
// (when logged in) on the request context.
func (app *application) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var sid string
		if c, err := r.Cookie(session.CookieName); err == nil && c.Value != "" {
			if id, ok := app.sessions.Verify(c.Value); ok {
				sid = id
			}
		}

		var userID int
		if sid != "" {
			uid, err := app.sessions.UserID(ctx, sid)
			if err != nil {
				sid = "" // expired or tampered, start over
			} else {
				userID = uid
			}
		}
		if sid == "" {
			newSID, err := app.sessions.Create(ctx, 0)
			if err != nil {
				app.errorLog.Printf("create session: %v", err)
				next.ServeHTTP(w, r)
				return
			}
			sid = newSID
			app.sessions.WriteCookie(w, sid)
		}

		ctx = handlers.WithSessionID(ctx, sid)
		if userID != 0 {
			user, err := app.userService.GetUser(ctx, userID)
			if err == nil {
				ctx = handlers.WithUser(ctx, user)
			} else if err != models.ErrNoRecord {
				app.errorLog.Printf("load session user %d: %v", userID, err)
			}
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAuth short-circuits before any mutating operation when no
// identity is present, capturing where the visitor was headed so login can
// send them back.
func (app *application) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := handlers.UserFrom(r.Context()); !ok {
			sid := handlers.SessionIDFrom(r.Context())
			if sid != "" {
				if r.Method == http.MethodGet {
					app.sessions.SetRedirect(r.Context(), sid, r.URL.RequestURI())
				}
				app.sessions.AddFlash(r.Context(), sid, "error", "You must be logged in")
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
