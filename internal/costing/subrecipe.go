package costing

import "chaoscatering/models"

// BatchCost is the cost of producing one batch of sr.
func BatchCost(sr models.SubRecipe, catalog Catalog) float64 {
	return LinesCost(sr.Usages(), catalog)
}

// UnitCost is the cost of one yield unit of sr.
func UnitCost(sr models.SubRecipe, catalog Catalog) float64 {
	yield := sr.YieldQuantity
	if yield <= 0 {
		yield = 1
	}
	return BatchCost(sr, catalog) / yield
}

// DerivedIngredient projects sr into the ingredient list as a purchasable
// good priced per yield unit.
func DerivedIngredient(sr models.SubRecipe, unitCost float64) models.Ingredient {
	return models.Ingredient{
		ID:          sr.ID,
		Name:        sr.Name,
		BuyingUnit:  sr.YieldUnit,
		BuyingPrice: unitCost,
		YieldAmount: 1,
		RecipeUnit:  sr.YieldUnit,
		IsSubRecipe: true,
		Cost:        unitCost,
	}
}
