package handlers

import (
	"net/http"

	templpkg "github.com/a-h/templ"

	"chaoscatering/internal/views/pages"
)

// Dashboard renders the menu costing report once a user is authenticated.
func Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/app" && r.URL.Path != "/app/" {
		http.NotFound(w, r)
		return
	}
	if kitchen == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	snapshot := kitchen.Snapshot()
	data := pages.BuildMenuReport(snapshot.Dishes, snapshot.SubRecipes, snapshot.Catalog())

	var component templpkg.Component
	if isHTMX(r) {
		component = pages.MenuReportPartial(data)
	} else {
		component = pages.MenuReport(data)
	}
	renderComponent(w, r, component)
}

// Home sends visitors to the application or the sign-in page.
func Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if ActiveSession(r) {
		redirectToApp(w, r)
		return
	}
	redirectToLogin(w, r)
}
