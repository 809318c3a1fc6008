package handlers

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	applog "chaoscatering/internal/log"
	"chaoscatering/internal/views/pages"
)

const (
	msgSignupEmail    = "Use a valid email address so the kitchen can reach you."
	msgSignupPassword = "Choose a password of at least 8 characters."
	msgSignupMismatch = "The two passwords don't match."
	msgSignupTaken    = "A kitchen account already uses that email. Sign in instead."
	msgSignupFailed   = "The kitchen account could not be set up just now. Please try again."
)

// Signup registers a new chef for the back office and signs them in.
func Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if ActiveSession(r) {
			redirectToApp(w, r)
			return
		}
		renderSignup(w, r, "", "", "")
	case http.MethodPost:
		if sessionManager == nil || database == nil {
			applog.Debug(ctx, "registration unavailable", "hasSession", sessionManager != nil, "hasDatabase", database != nil)
			http.Error(w, "registration not available", http.StatusServiceUnavailable)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}

		name := strings.TrimSpace(r.PostFormValue("name"))
		email := strings.TrimSpace(r.PostFormValue("email"))
		password := r.PostFormValue("password")
		if message := validateSignup(email, password, r.PostFormValue("confirm_password")); message != "" {
			renderSignup(w, r, message, name, email)
			return
		}

		switch _, err := findUserByEmail(r, email); {
		case err == nil:
			renderSignup(w, r, msgSignupTaken, name, email)
			return
		case !errors.Is(err, gorm.ErrRecordNotFound):
			applog.Error(ctx, "failed to look up chef account", "error", err)
			renderSignup(w, r, msgSignupFailed, name, email)
			return
		}

		user, err := createUser(r, email, name, password)
		if err != nil {
			applog.Error(ctx, "failed to create chef account", "error", err)
			renderSignup(w, r, msgSignupFailed, name, email)
			return
		}
		if err := establishSession(r, user); err != nil {
			applog.Error(ctx, "failed to sign in new chef", "userID", user.ID, "error", err)
			renderSignup(w, r, msgSignupFailed, name, email)
			return
		}

		applog.Info(ctx, "chef account created", "userID", user.ID)
		redirectToApp(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// validateSignup returns the message to show for an unusable registration, or
// "" when the form can be saved.
func validateSignup(email, password, confirm string) string {
	switch {
	case email == "" || !strings.Contains(email, "@"):
		return msgSignupEmail
	case len(password) < 8:
		return msgSignupPassword
	case password != confirm:
		return msgSignupMismatch
	}
	return ""
}

func renderSignup(w http.ResponseWriter, r *http.Request, message, name, email string) {
	renderAuthPage(w, r, pages.Signup(message, name, email), pages.SignupPartial(message, name, email))
}
