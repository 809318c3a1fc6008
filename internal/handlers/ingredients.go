package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"chaoscatering/internal/ai"
	"chaoscatering/internal/costing"
	"chaoscatering/internal/invoice"
	applog "chaoscatering/internal/log"
	"chaoscatering/internal/workspace"
	"chaoscatering/models"
)

type ingredientResponse struct {
	models.Ingredient
	CostPerUnit     float64       `json:"costPerUnit"`
	VariancePercent *float64      `json:"variancePercent,omitempty"`
	Trend           invoice.Trend `json:"trend,omitempty"`
}

func projectIngredient(ing models.Ingredient) ingredientResponse {
	resp := ingredientResponse{Ingredient: ing, CostPerUnit: costing.CostPerRecipeUnit(ing)}
	if percent, trend, ok := invoice.IngredientVariance(ing); ok {
		resp.VariancePercent = &percent
		resp.Trend = trend
	}
	return resp
}

// IngredientResource serves /app/api/ingredients.
func IngredientResource(w http.ResponseWriter, r *http.Request) {
	if !kitchenReady(w, r) {
		return
	}

	segments := resourcePath(r, "/app/api/ingredients")
	if len(segments) == 0 {
		switch r.Method {
		case http.MethodGet:
			listIngredients(w, r)
		case http.MethodPost:
			createIngredient(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	id := segments[0]
	if len(segments) == 2 && segments[1] == "suggest-price" {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		suggestIngredientPrice(w, r, id)
		return
	}
	if len(segments) > 1 {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		ing, err := kitchen.Ingredient(id)
		if err != nil {
			writeWorkspaceError(w, r, err, "load ingredient")
			return
		}
		writeJSON(w, http.StatusOK, projectIngredient(ing))
	case http.MethodPut, http.MethodPatch:
		updateIngredient(w, r, id)
	case http.MethodDelete:
		if err := kitchen.DeleteIngredient(r.Context(), id); err != nil {
			writeWorkspaceError(w, r, err, "delete ingredient")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listIngredients(w http.ResponseWriter, r *http.Request) {
	snapshot := kitchen.Snapshot()
	query := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))

	out := make([]ingredientResponse, 0, len(snapshot.Ingredients))
	for _, ing := range snapshot.Ingredients {
		if query != "" && !strings.Contains(strings.ToLower(ing.Name), query) {
			continue
		}
		out = append(out, projectIngredient(ing))
	}
	writeJSON(w, http.StatusOK, out)
}

func createIngredient(w http.ResponseWriter, r *http.Request) {
	var draft costing.IngredientDraft
	if err := decodeJSON(r, &draft); err != nil {
		applog.Debug(r.Context(), "invalid ingredient payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	ing, err := kitchen.CreateIngredient(r.Context(), draft)
	if err != nil {
		writeWorkspaceError(w, r, err, "create ingredient")
		return
	}
	writeJSON(w, http.StatusCreated, projectIngredient(ing))
}

func updateIngredient(w http.ResponseWriter, r *http.Request, id string) {
	var patch costing.IngredientDraft
	if err := decodeJSON(r, &patch); err != nil {
		applog.Debug(r.Context(), "invalid ingredient patch", "error", err, "id", id)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	ing, err := kitchen.UpdateIngredient(r.Context(), id, patch)
	if err != nil {
		writeWorkspaceError(w, r, err, "update ingredient")
		return
	}
	writeJSON(w, http.StatusOK, projectIngredient(ing))
}

// suggestIngredientPrice asks the assistant for a market price and applies
// it as the ingredient's buying price.
func suggestIngredientPrice(w http.ResponseWriter, r *http.Request, id string) {
	if !assistantReady(w, r) {
		return
	}
	ctx := r.Context()

	current, err := kitchen.Ingredient(id)
	if err != nil {
		writeWorkspaceError(w, r, err, "load ingredient")
		return
	}
	if current.IsSubRecipe {
		writeWorkspaceError(w, r, workspace.ErrDerivedIngredient, "suggest price")
		return
	}

	suggestion, err := assistant.SuggestPrice(ctx, current.Name)
	if err != nil {
		if errors.Is(err, ai.ErrNoPrices) {
			writeJSONError(w, http.StatusNotFound, fmt.Sprintf("no market price found for %s", current.Name))
			return
		}
		applog.Error(ctx, "price suggestion failed", "error", err, "ingredient", current.Name)
		writeJSONError(w, http.StatusBadGateway, "price suggestion failed")
		return
	}

	patch := costing.IngredientDraft{BuyingPrice: &suggestion.Cost}
	if suggestion.Unit != "" {
		patch.BuyingUnit = &suggestion.Unit
	}
	if suggestion.BaseQty > 0 {
		patch.YieldAmount = &suggestion.BaseQty
	}

	ing, err := kitchen.UpdateIngredient(ctx, id, patch)
	if err != nil {
		writeWorkspaceError(w, r, err, "update ingredient")
		return
	}
	applog.Info(ctx, "market price applied", "ingredient", ing.Name, "price", ing.BuyingPrice, "unit", ing.BuyingUnit)
	writeJSON(w, http.StatusOK, projectIngredient(ing))
}
