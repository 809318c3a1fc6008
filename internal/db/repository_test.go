package db

import (
	"context"
	"math"
	"testing"

	"chaoscatering/internal/workspace"
	"chaoscatering/models"
)

func price(v float64) *float64 { return &v }

func sampleState() workspace.State {
	return workspace.State{
		Ingredients: []models.Ingredient{
			{ID: "tomato", Name: "Tomato", BuyingUnit: "kg", BuyingPrice: 30, YieldAmount: 1000, RecipeUnit: "g", LastInvoicePrice: price(28), LastInvoiceDate: "2026-10-01"},
			{ID: "flour", Name: "Flour", BuyingUnit: "kg", BuyingPrice: 20, YieldAmount: 1000, RecipeUnit: "g"},
			{ID: "dough", Name: "Dough", BuyingUnit: "ball", BuyingPrice: 1, YieldAmount: 1, RecipeUnit: "ball", IsSubRecipe: true, Cost: 1},
		},
		SubRecipes: []models.SubRecipe{{
			ID: "dough", Name: "Dough", YieldQuantity: 10, YieldUnit: "ball",
			Ingredients: models.SubRecipeLines("dough", []models.Usage{{IngredientID: "flour", Quantity: 500, Unit: "g"}}),
		}},
		Dishes: []models.Dish{
			{
				ID: "margherita", Name: "Margherita", Section: models.SectionMains, MenuPrice: 120,
				Ingredients: models.DishLines("margherita", []models.Usage{
					{IngredientID: "dough", Quantity: 1, Unit: "ball"},
					{IngredientID: "tomato", Quantity: 80, Unit: "g"},
				}),
			},
			{ID: "bruschetta", Name: "Bruschetta", Section: models.SectionStarters, MenuPrice: 65},
		},
		Suppliers: []models.Supplier{{ID: "s1", Name: "Fresh Farms", Category: "Produce"}},
		Invoices: []models.LoggedInvoice{
			{ID: "i2", SupplierName: "Fresh Farms", InvoiceDate: "2026-10-02", TotalAmount: 200, ItemsCount: 2},
			{ID: "i1", SupplierName: "Fresh Farms", InvoiceDate: "2026-10-01", TotalAmount: 100, ItemsCount: 1},
		},
	}
}

func TestRepositoryRejectsNilDatabase(t *testing.T) {
	t.Parallel()

	if _, err := NewRepository(nil); err == nil {
		t.Fatal("expected error for nil database")
	}
}

func TestRepositoryRoundTripPreservesOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, err := NewRepository(openSQLite(t))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}

	if err := repo.Save(ctx, sampleState()); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	wantIngredients := []string{"tomato", "flour", "dough"}
	if len(got.Ingredients) != len(wantIngredients) {
		t.Fatalf("expected %d ingredients, got %d", len(wantIngredients), len(got.Ingredients))
	}
	for i, id := range wantIngredients {
		if got.Ingredients[i].ID != id {
			t.Fatalf("ingredient %d: expected %q, got %q", i, id, got.Ingredients[i].ID)
		}
	}
	if got.Ingredients[0].LastInvoicePrice == nil || *got.Ingredients[0].LastInvoicePrice != 28 {
		t.Fatalf("expected last invoice price to survive, got %v", got.Ingredients[0].LastInvoicePrice)
	}
	if !got.Ingredients[2].IsSubRecipe {
		t.Fatal("expected derived ingredient flag to survive")
	}

	if len(got.Dishes) != 2 || got.Dishes[0].ID != "margherita" || got.Dishes[1].ID != "bruschetta" {
		t.Fatalf("unexpected dish order: %+v", got.Dishes)
	}
	lines := got.Dishes[0].Usages()
	if len(lines) != 2 || lines[0].IngredientID != "dough" || lines[1].IngredientID != "tomato" || lines[1].Quantity != 80 {
		t.Fatalf("unexpected dish lines: %+v", lines)
	}
	if len(got.Dishes[1].Ingredients) != 0 {
		t.Fatalf("expected empty recipe, got %+v", got.Dishes[1].Ingredients)
	}

	if len(got.SubRecipes) != 1 || got.SubRecipes[0].YieldQuantity != 10 || len(got.SubRecipes[0].Ingredients) != 1 {
		t.Fatalf("unexpected sub-recipes: %+v", got.SubRecipes)
	}
	if len(got.Invoices) != 2 || got.Invoices[0].ID != "i2" {
		t.Fatalf("expected newest invoice first, got %+v", got.Invoices)
	}
	if len(got.Suppliers) != 1 || got.Suppliers[0].Name != "Fresh Farms" {
		t.Fatalf("unexpected suppliers: %+v", got.Suppliers)
	}
}

func TestRepositorySaveReplacesPreviousCheckpoint(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, err := NewRepository(openSQLite(t))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}

	state := sampleState()
	if err := repo.Save(ctx, state); err != nil {
		t.Fatalf("first save: %v", err)
	}

	// Saving the same loaded lines again must not collide on line ids.
	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	loaded.Dishes = loaded.Dishes[1:]
	loaded.Suppliers = nil
	if err := repo.Save(ctx, loaded); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(got.Dishes) != 1 || got.Dishes[0].ID != "bruschetta" {
		t.Fatalf("expected only bruschetta, got %+v", got.Dishes)
	}
	if len(got.Suppliers) != 0 {
		t.Fatalf("expected suppliers cleared, got %+v", got.Suppliers)
	}

	var orphanLines int64
	if err := repo.db.Model(&models.DishIngredient{}).Count(&orphanLines).Error; err != nil {
		t.Fatalf("count dish lines: %v", err)
	}
	if orphanLines != 0 {
		t.Fatalf("expected dish lines of removed dish to be cleared, got %d", orphanLines)
	}
}

func TestRepositoryBacksWorkspace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, err := NewRepository(openSQLite(t))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	if err := repo.Save(ctx, sampleState()); err != nil {
		t.Fatalf("save: %v", err)
	}

	ws, err := workspace.Open(ctx, repo)
	if err != nil {
		t.Fatalf("open workspace: %v", err)
	}
	if err := ws.DeleteDish(ctx, "bruschetta"); err != nil {
		t.Fatalf("delete dish: %v", err)
	}

	reopened, err := workspace.Open(ctx, repo)
	if err != nil {
		t.Fatalf("reopen workspace: %v", err)
	}
	snapshot := reopened.Snapshot()
	if len(snapshot.Dishes) != 1 || snapshot.Dishes[0].ID != "margherita" {
		t.Fatalf("expected deletion to be checkpointed, got %+v", snapshot.Dishes)
	}

	dough, err := reopened.Ingredient("dough")
	if err != nil {
		t.Fatalf("derived ingredient: %v", err)
	}
	// 500 g flour at R20/kg over 10 balls.
	if math.Abs(dough.BuyingPrice-1) > 1e-9 {
		t.Fatalf("expected dough ball cost 1, got %v", dough.BuyingPrice)
	}
}
