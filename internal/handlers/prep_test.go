package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chaoscatering/internal/costing"
	"chaoscatering/models"
)

func sessionRequest(t *testing.T, ctx context.Context, req *http.Request) *http.Request {
	t.Helper()
	return req.WithContext(ctx)
}

func TestPrepDefaultsToWholeMenu(t *testing.T) {
	withTestKitchen(t, testKitchen())
	sm, cleanup := withTestSessionManager(t)
	t.Cleanup(cleanup)
	ctx, err := sm.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("failed to load session context: %v", err)
	}

	w := httptest.NewRecorder()
	Prep(w, sessionRequest(t, ctx, httptest.NewRequest(http.MethodGet, "/app/api/prep", nil)))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp prepResponse
	decodeBody(t, w, &resp)
	if len(resp.Selected) != 2 {
		t.Fatalf("expected every dish selected by default, got %v", resp.Selected)
	}
	if len(resp.List.Manufactured) != 1 || resp.List.Manufactured[0].IngredientID != "dough" || resp.List.Manufactured[0].Qty != 1 {
		t.Fatalf("unexpected production list %+v", resp.List.Manufactured)
	}
	pizza := resp.List.BySection[models.SectionPizza]
	if len(pizza) != 1 || pizza[0].IngredientID != "tomato" || pizza[0].Qty != 80 {
		t.Fatalf("unexpected pizza pull list %+v", pizza)
	}
	if _, tracked := resp.List.BySection[models.SectionDrinks]; tracked {
		t.Fatal("expected drinks not to be tracked")
	}
}

func TestPrepStoresSelectionAndOverrides(t *testing.T) {
	withTestKitchen(t, testKitchen())
	sm, cleanup := withTestSessionManager(t)
	t.Cleanup(cleanup)
	ctx, err := sm.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("failed to load session context: %v", err)
	}

	key := costing.ManufacturedKey("dough").String()
	w := httptest.NewRecorder()
	Prep(w, sessionRequest(t, ctx, jsonRequest(t, http.MethodPost, "/app/api/prep", map[string]any{
		"selected":  []string{"margherita"},
		"overrides": map[string]any{key: "3", "malformed": 9},
	})))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp prepResponse
	decodeBody(t, w, &resp)
	if resp.List.Manufactured[0].Qty != 3 {
		t.Fatalf("expected override to apply, got %+v", resp.List.Manufactured)
	}
	if _, kept := resp.Overrides["malformed"]; kept {
		t.Fatalf("expected malformed override key to be dropped, got %v", resp.Overrides)
	}

	// A later POST with only a selection keeps the stored overrides.
	w = httptest.NewRecorder()
	Prep(w, sessionRequest(t, ctx, jsonRequest(t, http.MethodPost, "/app/api/prep", map[string]any{
		"selected": []string{},
	})))
	decodeBody(t, w, &resp)
	if len(resp.Selected) != 0 || len(resp.List.Manufactured) != 0 {
		t.Fatalf("expected empty selection to clear the lists, got %+v", resp)
	}
	if resp.Overrides[key] != 3 {
		t.Fatalf("expected overrides to survive, got %v", resp.Overrides)
	}
}

func TestPrepSheetRendersSelection(t *testing.T) {
	withTestKitchen(t, testKitchen())

	w := httptest.NewRecorder()
	PrepSheet(w, httptest.NewRequest(http.MethodGet, "/app/prep/sheet", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	out := w.Body.String()
	for _, token := range []string{"Prep sheet", "Dough", "1 ball", "Pizza pull list", "80 g", "2 dishes selected"} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected sheet to contain %q: %s", token, out)
		}
	}
}

func TestPrepCountsOnlyDishesStillOnTheMenu(t *testing.T) {
	ws := withTestKitchen(t, testKitchen())
	sm, cleanup := withTestSessionManager(t)
	t.Cleanup(cleanup)
	ctx, err := sm.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("failed to load session context: %v", err)
	}

	w := httptest.NewRecorder()
	Prep(w, sessionRequest(t, ctx, jsonRequest(t, http.MethodPost, "/app/api/prep", map[string]any{
		"selected": []string{"margherita", "cola"},
	})))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if err := ws.DeleteDish(ctx, "cola"); err != nil {
		t.Fatalf("delete dish: %v", err)
	}

	w = httptest.NewRecorder()
	Prep(w, sessionRequest(t, ctx, httptest.NewRequest(http.MethodGet, "/app/api/prep", nil)))
	var resp prepResponse
	decodeBody(t, w, &resp)
	if len(resp.Selected) != 1 || resp.Selected[0] != "margherita" {
		t.Fatalf("expected deleted dish to drop out of the selection, got %v", resp.Selected)
	}

	w = httptest.NewRecorder()
	PrepSheet(w, sessionRequest(t, ctx, httptest.NewRequest(http.MethodGet, "/app/prep/sheet", nil)))
	if !strings.Contains(w.Body.String(), "1 dishes selected") {
		t.Fatalf("expected sheet to count live dishes only: %s", w.Body.String())
	}
}
