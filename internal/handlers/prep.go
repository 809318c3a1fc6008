package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"chaoscatering/internal/costing"
	applog "chaoscatering/internal/log"
	"chaoscatering/internal/views/pages"
)

const (
	sessionPrepSelectionKey = "prep:selection"
	sessionPrepOverridesKey = "prep:overrides"
)

// prepSettings is the chef's prep choice. A nil Selected means every dish.
type prepSettings struct {
	Selected  []string           `json:"selected"`
	Overrides map[string]float64 `json:"overrides"`
}

type prepResponse struct {
	Selected  []string           `json:"selected"`
	Overrides map[string]float64 `json:"overrides"`
	List      costing.PrepList   `json:"list"`
}

func loadPrepSettings(ctx context.Context) prepSettings {
	settings := prepSettings{}
	if sessionManager == nil {
		return settings
	}
	if raw := sessionManager.GetString(ctx, sessionPrepSelectionKey); raw != "" {
		if err := json.Unmarshal([]byte(raw), &settings.Selected); err != nil {
			applog.Debug(ctx, "discarding unreadable prep selection", "error", err)
			settings.Selected = nil
		}
	}
	if raw := sessionManager.GetString(ctx, sessionPrepOverridesKey); raw != "" {
		if err := json.Unmarshal([]byte(raw), &settings.Overrides); err != nil {
			applog.Debug(ctx, "discarding unreadable prep overrides", "error", err)
			settings.Overrides = nil
		}
	}
	return settings
}

func storePrepSettings(ctx context.Context, settings prepSettings) error {
	if settings.Selected != nil {
		raw, err := json.Marshal(settings.Selected)
		if err != nil {
			return err
		}
		sessionManager.Put(ctx, sessionPrepSelectionKey, string(raw))
	}
	if settings.Overrides != nil {
		raw, err := json.Marshal(costing.DecodeOverrides(settings.Overrides).Encode())
		if err != nil {
			return err
		}
		sessionManager.Put(ctx, sessionPrepOverridesKey, string(raw))
	}
	return nil
}

// buildPrep aggregates the chef's selection and applies their overrides.
func buildPrep(ctx context.Context) prepResponse {
	settings := loadPrepSettings(ctx)
	snapshot := kitchen.Snapshot()

	wanted := make(map[string]bool, len(settings.Selected))
	for _, id := range settings.Selected {
		wanted[id] = true
	}

	// A nil selection means the whole menu. Stored ids of dishes deleted
	// since are dropped.
	selected := make(map[string]bool, len(snapshot.Dishes))
	ids := make([]string, 0, len(snapshot.Dishes))
	for _, dish := range snapshot.Dishes {
		if settings.Selected != nil && !wanted[dish.ID] {
			continue
		}
		selected[dish.ID] = true
		ids = append(ids, dish.ID)
	}

	overrides := costing.DecodeOverrides(settings.Overrides)
	list := costing.Aggregate(selected, snapshot.Dishes, snapshot.Catalog(), prepSections)
	return prepResponse{
		Selected:  ids,
		Overrides: overrides.Encode(),
		List:      overrides.Apply(list),
	}
}

// Prep serves /app/api/prep. GET returns the aggregated lists; POST stores a
// new selection and/or overrides in the session. Fields left out of the
// POST body keep their stored value.
func Prep(w http.ResponseWriter, r *http.Request) {
	if !kitchenReady(w, r) {
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, buildPrep(r.Context()))
	case http.MethodPost:
		if sessionManager == nil {
			writeJSONError(w, http.StatusServiceUnavailable, "sessions not available")
			return
		}
		var payload prepSettings
		if err := decodeJSON(r, &payload); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid request payload")
			return
		}
		if err := storePrepSettings(r.Context(), payload); err != nil {
			applog.Error(r.Context(), "failed to store prep settings", "error", err)
			writeJSONError(w, http.StatusInternalServerError, "unable to save prep settings")
			return
		}
		writeJSON(w, http.StatusOK, buildPrep(r.Context()))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// PrepSheet renders the printable prep sheet for the current selection.
func PrepSheet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if kitchen == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	prep := buildPrep(r.Context())
	renderComponent(w, r, pages.PrepSheet(pages.PrepSheetData{
		Date:   now(),
		Dishes: len(prep.Selected),
		List:   prep.List,
	}))
}
