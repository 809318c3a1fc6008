package handlers

import (
	"net/http"
	"strings"

	applog "chaoscatering/internal/log"
	"chaoscatering/internal/views/pages"
)

const (
	msgLoginMissing = "Enter the email and password for your kitchen account."
	msgLoginFailed  = "That sign-in didn't work. Check your details and try again."
)

// Login serves the back-office sign-in form. A chef who is already signed
// in goes straight to the menu.
func Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if ActiveSession(r) {
			redirectToApp(w, r)
			return
		}
		var message string
		if sessionManager != nil {
			message = sessionManager.PopString(ctx, sessionLoginMessageKey)
		}
		renderLogin(w, r, message, "")
	case http.MethodPost:
		if sessionManager == nil || database == nil {
			applog.Debug(ctx, "sign-in unavailable", "hasSession", sessionManager != nil, "hasDatabase", database != nil)
			http.Error(w, "authentication not available", http.StatusServiceUnavailable)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}
		email := strings.TrimSpace(r.PostFormValue("email"))
		password := r.PostFormValue("password")
		if email == "" || password == "" {
			renderLogin(w, r, msgLoginMissing, email)
			return
		}

		if !authenticate(w, r, email, password) {
			applog.Info(ctx, "sign-in rejected", "email", strings.ToLower(email))
			message := sessionManager.PopString(ctx, sessionLoginMessageKey)
			if message == "" {
				message = msgLoginFailed
			}
			renderLogin(w, r, message, email)
			return
		}

		applog.Info(ctx, "chef signed in", "email", strings.ToLower(email))
		redirectToApp(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func renderLogin(w http.ResponseWriter, r *http.Request, message, email string) {
	renderAuthPage(w, r, pages.Login(message, email), pages.LoginPartial(message, email))
}
