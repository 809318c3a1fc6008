package handlers

import (
	"net/http"

	"github.com/a-h/templ"
)

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true" || r.Header.Get("HX-Boosted") == "true"
}

// renderAuthPage swaps only the form for htmx requests and renders the whole
// page otherwise.
func renderAuthPage(w http.ResponseWriter, r *http.Request, full, partial templ.Component) {
	if isHTMX(r) {
		renderComponent(w, r, partial)
		return
	}
	renderComponent(w, r, full)
}
