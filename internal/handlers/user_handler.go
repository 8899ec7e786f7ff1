package handlers

import (
	"errors"
	"log"
	"net/http"

	"wanderstay/internal/models"
	"wanderstay/internal/services"
	"wanderstay/internal/session"
	"wanderstay/internal/validation"
)

type UserHandler struct {
	Service  *services.UserService
	Sessions *session.Manager
}

func (h *UserHandler) SignupForm(w http.ResponseWriter, r *http.Request) {
	render(w, "signup.html", newTemplateData(r, h.Sessions, "Sign up"))
}

func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	payload := validation.SignupPayload{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	if err := validation.ValidateSignup(&payload); err != nil {
		if !flashValidation(r, h.Sessions, err) {
			flash(r, h.Sessions, "error", "Invalid signup request")
		}
		http.Redirect(w, r, "/signup", http.StatusSeeOther)
		return
	}

	user, err := h.Service.Signup(r.Context(), models.SignupRequest{
		Username: payload.Username,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrDuplicateUsername):
			flash(r, h.Sessions, "error", "username is already taken")
		case errors.Is(err, models.ErrDuplicateEmail):
			flash(r, h.Sessions, "error", "email is already registered")
		default:
			log.Printf("Signup error: %v", err)
			flash(r, h.Sessions, "error", "Failed to sign up")
		}
		http.Redirect(w, r, "/signup", http.StatusSeeOther)
		return
	}

	h.establishSession(w, r, user, "Welcome to Wanderstay, "+user.Username, "/listings")
}

func (h *UserHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	render(w, "login.html", newTemplateData(r, h.Sessions, "Log in"))
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	payload := validation.LoginPayload{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	if err := validation.ValidateLogin(&payload); err != nil {
		if !flashValidation(r, h.Sessions, err) {
			flash(r, h.Sessions, "error", "Invalid login request")
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := h.Service.Authenticate(r.Context(), models.LoginRequest{
		Username: payload.Username,
		Password: payload.Password,
	})
	if err != nil {
		if !errors.Is(err, models.ErrInvalidCredentials) {
			log.Printf("Login error: %v", err)
		}
		// One message for unknown user and wrong password alike.
		flash(r, h.Sessions, "error", "Invalid username or password")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	// Replay the destination captured before the login redirect.
	dest := "/listings"
	if sid := SessionIDFrom(r.Context()); sid != "" {
		if saved, err := h.Sessions.PopRedirect(r.Context(), sid); err == nil && saved != "" {
			dest = saved
		}
	}
	h.establishSession(w, r, user, "Welcome back, "+user.Username, dest)
}

// Logout terminates the session. Logging out while logged out is a no-op
// that still lands on the listings page.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sid := SessionIDFrom(r.Context())
	if sid != "" {
		if err := h.Sessions.Destroy(r.Context(), sid); err != nil {
			log.Printf("Logout error: %v", err)
		}
	}
	// Fresh anonymous session so the goodbye flash has somewhere to live.
	newSID, err := h.Sessions.Create(r.Context(), 0)
	if err != nil {
		h.Sessions.ClearCookie(w)
		http.Redirect(w, r, "/listings", http.StatusSeeOther)
		return
	}
	h.Sessions.WriteCookie(w, newSID)
	r = r.WithContext(WithSessionID(r.Context(), newSID))
	flash(r, h.Sessions, "success", "You are logged out")
	http.Redirect(w, r, "/listings", http.StatusSeeOther)
}

func (h *UserHandler) establishSession(w http.ResponseWriter, r *http.Request, user models.User, greeting, dest string) {
	oldSID := SessionIDFrom(r.Context())
	sid, err := h.Sessions.Elevate(r.Context(), oldSID, user.ID)
	if err != nil {
		log.Printf("establish session: %v", err)
		http.Error(w, "Failed to establish session", http.StatusInternalServerError)
		return
	}
	h.Sessions.WriteCookie(w, sid)
	r = r.WithContext(WithSessionID(r.Context(), sid))
	flash(r, h.Sessions, "success", greeting)
	http.Redirect(w, r, dest, http.StatusSeeOther)
}
