package handlers

import (
	"net/http"
	"time"
)

type healthResponse struct {
	Status  string    `json:"status"`
	Kitchen string    `json:"kitchen"`
	Time    time.Time `json:"time"`
}

// Health reports whether the server is up and the kitchen workspace loaded.
func Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Kitchen: "ready", Time: now().UTC()}
	if kitchen == nil {
		resp.Kitchen = "unavailable"
	}
	writeJSON(w, http.StatusOK, resp)
}
