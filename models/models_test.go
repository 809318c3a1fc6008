package models

import "testing"

func TestValidSection(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		value string
		want  bool
	}{
		{"mains", "Mains", true},
		{"drinks", "Drinks", true},
		{"lower case", "mains", false},
		{"unknown", "Brunch", false},
		{"empty", "", false},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ValidSection(tt.value); got != tt.want {
				t.Fatalf("ValidSection(%q) = %t, want %t", tt.value, got, tt.want)
			}
		})
	}
}

func TestNormalizeSection(t *testing.T) {
	t.Parallel()

	if got := NormalizeSection("  desserts "); got != SectionDesserts {
		t.Fatalf("NormalizeSection returned %q, want %q", got, SectionDesserts)
	}

	if got := NormalizeSection("brunch"); got != DefaultSection {
		t.Fatalf("NormalizeSection returned %q, want %q", got, DefaultSection)
	}
}

func TestLinesKeepOrder(t *testing.T) {
	t.Parallel()

	usages := []Usage{
		{IngredientID: "a", Quantity: 1, Unit: "g"},
		{IngredientID: "b", Quantity: 2, Unit: "ml"},
	}
	dish := Dish{ID: "d1", Ingredients: DishLines("d1", usages)}
	got := dish.Usages()
	if len(got) != 2 || got[0] != usages[0] || got[1] != usages[1] {
		t.Fatalf("Usages() = %+v, want %+v", got, usages)
	}
	if dish.Ingredients[1].Position != 1 || dish.Ingredients[1].DishID != "d1" {
		t.Fatalf("unexpected line bookkeeping: %+v", dish.Ingredients[1])
	}

	sr := SubRecipe{ID: "s1", Ingredients: SubRecipeLines("s1", usages)}
	if got := sr.Usages(); len(got) != 2 || got[1].IngredientID != "b" {
		t.Fatalf("SubRecipe.Usages() = %+v", got)
	}
}
