package costing

import (
	"reflect"
	"testing"

	"chaoscatering/models"
)

func prepCatalog() Catalog {
	return NewCatalog([]models.Ingredient{
		rawIngredient("Y", 50, 1000),
		rawIngredient("Z", 10, 1000),
		{ID: "dough", Name: "Pizza Dough", BuyingPrice: 4, YieldAmount: 1, RecipeUnit: "ball", IsSubRecipe: true},
	})
}

func TestAggregateSumsPerSection(t *testing.T) {
	t.Parallel()

	dishes := []models.Dish{
		dish("d1", models.SectionMains, 100, models.Usage{IngredientID: "Y", Quantity: 200, Unit: "g"}),
		dish("d2", models.SectionMains, 100, models.Usage{IngredientID: "Y", Quantity: 200, Unit: "g"}),
	}
	got := Aggregate(map[string]bool{"d1": true, "d2": true}, dishes, prepCatalog(), nil)

	mains := got.BySection[models.SectionMains]
	if len(mains) != 1 {
		t.Fatalf("expected one Mains entry, got %+v", mains)
	}
	if mains[0].IngredientID != "Y" || mains[0].Qty != 400 || mains[0].Unit != "g" {
		t.Fatalf("unexpected entry: %+v", mains[0])
	}
}

func TestAggregateExcludesUnselectedDishes(t *testing.T) {
	t.Parallel()

	dishes := []models.Dish{
		dish("in", models.SectionMains, 100, models.Usage{IngredientID: "Y", Quantity: 200, Unit: "g"}),
		dish("out", models.SectionMains, 100,
			models.Usage{IngredientID: "Y", Quantity: 999, Unit: "g"},
			models.Usage{IngredientID: "dough", Quantity: 5, Unit: "ball"},
		),
	}
	got := Aggregate(map[string]bool{"in": true}, dishes, prepCatalog(), nil)

	if len(got.Manufactured) != 0 {
		t.Fatalf("unselected dish leaked into production: %+v", got.Manufactured)
	}
	if mains := got.BySection[models.SectionMains]; len(mains) != 1 || mains[0].Qty != 200 {
		t.Fatalf("unselected dish leaked into Mains: %+v", mains)
	}
}

func TestAggregateSplitsManufacturedAndRaw(t *testing.T) {
	t.Parallel()

	dishes := []models.Dish{
		dish("margherita", models.SectionPizza, 90,
			models.Usage{IngredientID: "dough", Quantity: 1, Unit: "ball"},
			models.Usage{IngredientID: "Z", Quantity: 80, Unit: "g"},
			models.Usage{IngredientID: "missing", Quantity: 10, Unit: "g"},
		),
		dish("kids-pizza", models.SectionKids, 60,
			models.Usage{IngredientID: "dough", Quantity: 0.5, Unit: "ball"},
			models.Usage{IngredientID: "Y", Quantity: 30, Unit: "g"},
			models.Usage{IngredientID: "Z", Quantity: 40, Unit: "g"},
		),
		dish("shake", models.SectionDrinks, 45,
			models.Usage{IngredientID: "Z", Quantity: 200, Unit: "ml"},
			models.Usage{IngredientID: "dough", Quantity: 2, Unit: "ball"},
		),
	}
	selected := map[string]bool{"margherita": true, "kids-pizza": true, "shake": true}
	got := Aggregate(selected, dishes, prepCatalog(), nil)

	wantManufactured := []PrepItem{{IngredientID: "dough", Name: "Pizza Dough", Qty: 3.5, Unit: "ball"}}
	if !reflect.DeepEqual(got.Manufactured, wantManufactured) {
		t.Fatalf("Manufactured = %+v, want %+v", got.Manufactured, wantManufactured)
	}

	kids := got.BySection[models.SectionKids]
	if len(kids) != 2 || kids[0].IngredientID != "Y" || kids[1].IngredientID != "Z" {
		t.Fatalf("Kids should keep first-encountered order, got %+v", kids)
	}
	if pizza := got.BySection[models.SectionPizza]; len(pizza) != 1 || pizza[0].Qty != 80 {
		t.Fatalf("Pizza = %+v", pizza)
	}
	if _, ok := got.BySection[models.SectionDrinks]; ok {
		t.Fatal("Drinks must not receive a pull list")
	}
}

func TestAggregateHonoursCustomTrackedSections(t *testing.T) {
	t.Parallel()

	dishes := []models.Dish{dish("shake", models.SectionDrinks, 45, models.Usage{IngredientID: "Z", Quantity: 200, Unit: "ml"})}
	got := Aggregate(map[string]bool{"shake": true}, dishes, prepCatalog(), []models.Section{models.SectionDrinks})
	if drinks := got.BySection[models.SectionDrinks]; len(drinks) != 1 || drinks[0].Qty != 200 {
		t.Fatalf("Drinks = %+v", drinks)
	}
}

func TestOverridesApplyWithoutMutating(t *testing.T) {
	t.Parallel()

	dishes := []models.Dish{
		dish("d1", models.SectionMains, 100,
			models.Usage{IngredientID: "Y", Quantity: 200, Unit: "g"},
			models.Usage{IngredientID: "dough", Quantity: 2, Unit: "ball"},
		),
	}
	list := Aggregate(map[string]bool{"d1": true}, dishes, prepCatalog(), nil)
	overrides := Overrides{
		SectionKey(models.SectionMains, "Y"):    250,
		ManufacturedKey("dough"):                3,
		SectionKey(models.SectionStarters, "Y"): 1,
	}

	shown := overrides.Apply(list)
	if shown.BySection[models.SectionMains][0].Qty != 250 || shown.Manufactured[0].Qty != 3 {
		t.Fatalf("overrides not applied: %+v", shown)
	}
	if list.BySection[models.SectionMains][0].Qty != 200 || list.Manufactured[0].Qty != 2 {
		t.Fatal("Apply must not mutate the aggregation")
	}
}

func TestOverrideKeyRoundTrip(t *testing.T) {
	t.Parallel()

	original := Overrides{SectionKey(models.SectionMains, "5f0c-uuid"): 1.5, ManufacturedKey("abc"): 2}
	decoded := DecodeOverrides(original.Encode())
	if !reflect.DeepEqual(decoded, original) {
		t.Fatalf("decoded = %+v, want %+v", decoded, original)
	}

	if _, err := ParseOverrideKey("nocolon"); err == nil {
		t.Fatal("expected malformed key to fail")
	}
	if got := DecodeOverrides(map[string]float64{"bad": 1}); len(got) != 0 {
		t.Fatalf("malformed keys should be dropped, got %+v", got)
	}
}
