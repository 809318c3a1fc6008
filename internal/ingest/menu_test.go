package ingest

import (
	"reflect"
	"testing"

	"chaoscatering/internal/ai"
	"chaoscatering/models"
)

func burgerMenu() ai.MenuExtraction {
	return ai.MenuExtraction{
		Dishes: []ai.ExtractedDish{
			{
				Name:      "Beef Burger",
				Section:   "mains",
				MenuPrice: 120,
				Ingredients: []ai.ExtractedLine{
					{IngredientName: "Beef Mince", Quantity: 200, Unit: "g"},
					{IngredientName: "Burger Sauce", Quantity: 30, Unit: "ml"},
					{IngredientName: "Brioche Bun", Quantity: 1, Unit: "unit"},
				},
			},
			{
				Name:    "Milkshake",
				Section: "Shakes",
				Ingredients: []ai.ExtractedLine{
					{IngredientName: "milk", Quantity: 250, Unit: "ml"},
				},
			},
		},
		SubRecipes: []ai.ExtractedSubRecipe{
			{
				Name:          "burger sauce",
				YieldQuantity: 1000,
				YieldUnit:     "ml",
				Ingredients: []ai.ExtractedLine{
					{IngredientName: "Mayonnaise", Quantity: 800, Unit: "ml"},
					{IngredientName: "beef mince", Quantity: 1, Unit: "g"},
				},
			},
		},
	}
}

func TestIngredientNames(t *testing.T) {
	t.Parallel()

	got := IngredientNames(burgerMenu())
	want := []string{"Beef Mince", "Burger Sauce", "Brioche Bun", "milk", "Mayonnaise"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("IngredientNames = %v, want %v", got, want)
	}
}

func TestUnpricedNamesSkipsKnownNames(t *testing.T) {
	t.Parallel()

	existing := []models.Ingredient{{ID: "milk-id", Name: "Milk"}}
	got := UnpricedNames(existing, burgerMenu())
	want := []string{"Beef Mince", "Brioche Bun", "Mayonnaise"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("UnpricedNames = %v, want %v", got, want)
	}
}

func TestMenuResolvesNames(t *testing.T) {
	t.Parallel()

	existing := []models.Ingredient{{ID: "milk-id", Name: "Milk", BuyingUnit: "l", YieldAmount: 1000, RecipeUnit: "ml"}}
	prices := map[string]ai.PriceSuggestion{
		"Beef Mince":  {Cost: 150, Unit: "kg", BaseQty: 1000},
		"Brioche Bun": {Cost: 6, Unit: "unit", BaseQty: 1},
	}

	batch := Menu(existing, burgerMenu(), prices)

	if len(batch.SubRecipes) != 1 || len(batch.Dishes) != 2 {
		t.Fatalf("unexpected batch shape: %+v", batch)
	}
	sauce := batch.SubRecipes[0]
	burger := batch.Dishes[0]

	if burger.Section != models.SectionMains {
		t.Fatalf("Section = %q, want Mains", burger.Section)
	}
	if batch.Dishes[1].Section != models.DefaultSection {
		t.Fatalf("unknown section should fall back, got %q", batch.Dishes[1].Section)
	}
	if got := burger.Ingredients[1].IngredientID; got != sauce.ID {
		t.Fatalf("sauce line resolved to %q, want sub-recipe %q", got, sauce.ID)
	}
	if got := batch.Dishes[1].Ingredients[0].IngredientID; got != "milk-id" {
		t.Fatalf("milk resolved to %q, want existing ingredient", got)
	}
	if burger.Ingredients[0].IngredientID != sauce.Ingredients[1].IngredientID {
		t.Fatal("the same name must resolve to one ingredient")
	}

	byName := map[string]models.Ingredient{}
	for _, ing := range batch.NewIngredients {
		byName[ing.Name] = ing
	}
	if len(byName) != 3 {
		t.Fatalf("expected beef, bun and mayonnaise to be created, got %+v", batch.NewIngredients)
	}
	if _, ok := byName["Burger Sauce"]; ok {
		t.Fatal("a sub-recipe name must not become a raw ingredient")
	}
	beef := byName["Beef Mince"]
	if beef.BuyingPrice != 150 || beef.BuyingUnit != "kg" || beef.YieldAmount != 1000 || beef.RecipeUnit != "g" {
		t.Fatalf("unexpected beef: %+v", beef)
	}
	bun := byName["Brioche Bun"]
	if bun.BuyingUnit != "unit" || bun.YieldAmount != 1 || bun.RecipeUnit != "unit" {
		t.Fatalf("unexpected bun: %+v", bun)
	}
	mayo := byName["Mayonnaise"]
	if mayo.BuyingPrice != 0 || mayo.BuyingUnit != "kg" || mayo.YieldAmount != 1000 || mayo.RecipeUnit != "g" {
		t.Fatalf("unpriced ingredient should use fallbacks: %+v", mayo)
	}
	if mayo.ID == "" || mayo.ID == beef.ID {
		t.Fatalf("new ingredients need distinct ids: %q %q", mayo.ID, beef.ID)
	}
}
