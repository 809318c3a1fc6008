package handlers

import (
	"net/http"

	"chaoscatering/internal/costing"
	applog "chaoscatering/internal/log"
	"chaoscatering/models"
)

type dishResponse struct {
	models.Dish
	costing.DishCost
}

// DishResource serves /app/api/dishes.
func DishResource(w http.ResponseWriter, r *http.Request) {
	if !kitchenReady(w, r) {
		return
	}

	segments := resourcePath(r, "/app/api/dishes")
	if len(segments) == 0 {
		switch r.Method {
		case http.MethodGet:
			listDishes(w, r)
		case http.MethodPost:
			saveDish(w, r, "")
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	id := segments[0]
	if len(segments) == 2 && segments[1] == "cost" {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		_, cost, err := kitchen.CostDish(id)
		if err != nil {
			writeWorkspaceError(w, r, err, "cost dish")
			return
		}
		writeJSON(w, http.StatusOK, cost)
		return
	}
	if len(segments) > 1 {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		dish, cost, err := kitchen.CostDish(id)
		if err != nil {
			writeWorkspaceError(w, r, err, "load dish")
			return
		}
		writeJSON(w, http.StatusOK, dishResponse{Dish: dish, DishCost: cost})
	case http.MethodPut:
		saveDish(w, r, id)
	case http.MethodDelete:
		if err := kitchen.DeleteDish(r.Context(), id); err != nil {
			writeWorkspaceError(w, r, err, "delete dish")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listDishes(w http.ResponseWriter, r *http.Request) {
	snapshot := kitchen.Snapshot()
	catalog := snapshot.Catalog()
	section := r.URL.Query().Get("section")

	out := make([]dishResponse, 0, len(snapshot.Dishes))
	for _, dish := range snapshot.Dishes {
		if section != "" && string(dish.Section) != section {
			continue
		}
		out = append(out, dishResponse{Dish: dish, DishCost: costing.CostDish(dish, catalog)})
	}
	writeJSON(w, http.StatusOK, out)
}

func saveDish(w http.ResponseWriter, r *http.Request, id string) {
	var payload models.Dish
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(r.Context(), "invalid dish payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	var (
		dish   models.Dish
		err    error
		status = http.StatusOK
	)
	if id == "" {
		dish, err = kitchen.CreateDish(r.Context(), payload)
		status = http.StatusCreated
	} else {
		dish, err = kitchen.UpdateDish(r.Context(), id, payload)
	}
	if err != nil {
		writeWorkspaceError(w, r, err, "save dish")
		return
	}

	_, cost, err := kitchen.CostDish(dish.ID)
	if err != nil {
		writeWorkspaceError(w, r, err, "cost dish")
		return
	}
	writeJSON(w, status, dishResponse{Dish: dish, DishCost: cost})
}
