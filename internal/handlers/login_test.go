package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestSignupThenLogin(t *testing.T) {
	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	_, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)

	ctx, err := sm.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("failed to load session context: %v", err)
	}

	w := httptest.NewRecorder()
	Signup(w, formRequest(http.MethodPost, "/signup", url.Values{
		"name": {"Sam"}, "email": {"sam@example.com"}, "password": {"short"}, "confirm_password": {"short"},
	}).WithContext(ctx))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "at least 8 characters") {
		t.Fatalf("expected short password to be rejected, got %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	Signup(w, formRequest(http.MethodPost, "/signup", url.Values{
		"name": {"Sam"}, "email": {"sam@example.com"}, "password": {"mise-en-place"}, "confirm_password": {"mise-en-place"},
	}).WithContext(ctx))
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/app" {
		t.Fatalf("expected redirect to /app after signup, got %d %q", w.Code, w.Header().Get("Location"))
	}

	loginCtx, err := sm.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("failed to load session context: %v", err)
	}

	w = httptest.NewRecorder()
	Login(w, formRequest(http.MethodPost, "/login", url.Values{
		"email": {"SAM@example.com"}, "password": {"wrong-password"},
	}).WithContext(loginCtx))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Invalid email or password") {
		t.Fatalf("expected login failure message, got %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	Login(w, formRequest(http.MethodPost, "/login", url.Values{
		"email": {"SAM@example.com"}, "password": {"mise-en-place"},
	}).WithContext(loginCtx))
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after login, got %d", w.Code)
	}
	if !sm.GetBool(loginCtx, sessionAuthenticatedKey) {
		t.Fatal("expected session to be authenticated")
	}
}

func TestLoginWithoutDependencies(t *testing.T) {
	w := httptest.NewRecorder()
	Login(w, formRequest(http.MethodPost, "/login", url.Values{"email": {"a@b.c"}, "password": {"x"}}))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestValidateSignup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		email    string
		password string
		confirm  string
		want     string
	}{
		{name: "valid", email: "chef@kitchen.test", password: "mise-en-place", confirm: "mise-en-place"},
		{name: "missing email", password: "mise-en-place", confirm: "mise-en-place", want: msgSignupEmail},
		{name: "email without at", email: "chef.kitchen", password: "mise-en-place", confirm: "mise-en-place", want: msgSignupEmail},
		{name: "short password", email: "chef@kitchen.test", password: "short", confirm: "short", want: msgSignupPassword},
		{name: "mismatch", email: "chef@kitchen.test", password: "mise-en-place", confirm: "mise-en-plate", want: msgSignupMismatch},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := validateSignup(tt.email, tt.password, tt.confirm); got != tt.want {
				t.Fatalf("validateSignup() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoginAsksForKitchenCredentials(t *testing.T) {
	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	_, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)

	ctx, err := sm.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("failed to load session context: %v", err)
	}

	w := httptest.NewRecorder()
	req := formRequest(http.MethodPost, "/login", url.Values{"email": {"chef@kitchen.test"}}).WithContext(ctx)
	req.Header.Set("HX-Request", "true")
	Login(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), msgLoginMissing) {
		t.Fatalf("expected missing credentials message, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Fatalf("expected html content type, got %q", ct)
	}
}
