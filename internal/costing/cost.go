package costing

import "chaoscatering/models"

// UnknownItemName labels usage lines whose ingredient no longer exists.
const UnknownItemName = "Unknown Item"

// Catalog resolves ingredient ids against one snapshot of the ingredient
// list. The first entry wins when ids repeat.
type Catalog struct {
	items []models.Ingredient
	index map[string]int
}

// NewCatalog indexes ingredients by id. The slice is read, never modified.
func NewCatalog(ingredients []models.Ingredient) Catalog {
	index := make(map[string]int, len(ingredients))
	for i, ing := range ingredients {
		if _, ok := index[ing.ID]; ok {
			continue
		}
		index[ing.ID] = i
	}
	return Catalog{items: ingredients, index: index}
}

// Resolve returns the ingredient with the given id.
func (c Catalog) Resolve(id string) (*models.Ingredient, bool) {
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return &c.items[i], true
}

// DisplayName returns the ingredient's name, or UnknownItemName.
func (c Catalog) DisplayName(id string) string {
	if ing, ok := c.Resolve(id); ok {
		return ing.Name
	}
	return UnknownItemName
}

// Len reports the number of distinct ids.
func (c Catalog) Len() int {
	return len(c.index)
}

// ExtendedCost is the cost of using quantity of ing. The quantity is trusted
// to be in ing.RecipeUnit already; unit is carried for display only. A nil
// ingredient costs nothing.
func ExtendedCost(quantity float64, unit string, ing *models.Ingredient) float64 {
	if ing == nil {
		return 0
	}
	if ing.IsSubRecipe {
		return quantity * ing.BuyingPrice
	}
	return quantity * CostPerRecipeUnit(*ing)
}

// CostPerRecipeUnit is BuyingPrice spread over YieldAmount, with a zero or
// negative yield treated as one.
func CostPerRecipeUnit(ing models.Ingredient) float64 {
	if ing.IsSubRecipe {
		return ing.BuyingPrice
	}
	yield := ing.YieldAmount
	if yield <= 0 {
		yield = 1
	}
	return ing.BuyingPrice / yield
}

// LinesCost sums the extended cost of every usage line.
func LinesCost(lines []models.Usage, catalog Catalog) float64 {
	total := 0.0
	for _, line := range lines {
		ing, _ := catalog.Resolve(line.IngredientID)
		total += ExtendedCost(line.Quantity, line.Unit, ing)
	}
	return total
}
