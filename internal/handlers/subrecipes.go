package handlers

import (
	"net/http"

	"chaoscatering/internal/costing"
	applog "chaoscatering/internal/log"
	"chaoscatering/models"
)

type subRecipeResponse struct {
	models.SubRecipe
	BatchCost float64 `json:"batchCost"`
	UnitCost  float64 `json:"unitCost"`
}

func projectSubRecipe(sr models.SubRecipe, catalog costing.Catalog) subRecipeResponse {
	return subRecipeResponse{
		SubRecipe: sr,
		BatchCost: costing.BatchCost(sr, catalog),
		UnitCost:  costing.UnitCost(sr, catalog),
	}
}

// SubRecipeResource serves /app/api/sub-recipes.
func SubRecipeResource(w http.ResponseWriter, r *http.Request) {
	if !kitchenReady(w, r) {
		return
	}

	segments := resourcePath(r, "/app/api/sub-recipes")
	switch {
	case len(segments) == 0 && r.Method == http.MethodGet:
		snapshot := kitchen.Snapshot()
		catalog := snapshot.Catalog()
		out := make([]subRecipeResponse, 0, len(snapshot.SubRecipes))
		for _, sr := range snapshot.SubRecipes {
			out = append(out, projectSubRecipe(sr, catalog))
		}
		writeJSON(w, http.StatusOK, out)
	case len(segments) == 0 && r.Method == http.MethodPost:
		saveSubRecipe(w, r, "")
	case len(segments) == 0:
		w.WriteHeader(http.StatusMethodNotAllowed)
	case len(segments) > 1:
		http.NotFound(w, r)
	default:
		id := segments[0]
		switch r.Method {
		case http.MethodGet:
			sr, err := kitchen.SubRecipe(id)
			if err != nil {
				writeWorkspaceError(w, r, err, "load sub-recipe")
				return
			}
			writeJSON(w, http.StatusOK, projectSubRecipe(sr, kitchen.Snapshot().Catalog()))
		case http.MethodPut:
			saveSubRecipe(w, r, id)
		case http.MethodDelete:
			if err := kitchen.DeleteSubRecipe(r.Context(), id); err != nil {
				writeWorkspaceError(w, r, err, "delete sub-recipe")
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}
}

// saveSubRecipe creates a sub-recipe when id is empty and replaces it
// otherwise. The response is costed after the derived ingredient settled.
func saveSubRecipe(w http.ResponseWriter, r *http.Request, id string) {
	var payload models.SubRecipe
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(r.Context(), "invalid sub-recipe payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	var (
		sr     models.SubRecipe
		err    error
		status = http.StatusOK
	)
	if id == "" {
		sr, err = kitchen.CreateSubRecipe(r.Context(), payload)
		status = http.StatusCreated
	} else {
		sr, err = kitchen.UpdateSubRecipe(r.Context(), id, payload)
	}
	if err != nil {
		writeWorkspaceError(w, r, err, "save sub-recipe")
		return
	}
	writeJSON(w, status, projectSubRecipe(sr, kitchen.Snapshot().Catalog()))
}
