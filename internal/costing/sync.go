package costing

import (
	"math"

	"chaoscatering/models"
)

// PriceTolerance is the smallest unit-cost movement that rewrites a derived
// ingredient.
const PriceTolerance = 0.001

// Reconcile runs one synchronisation pass of the derived ingredients against
// subs. Costs are computed from old as it stood before the pass, so a
// sub-recipe built on another sub-recipe lags one pass behind an edit to it.
//
// When nothing moves, Reconcile returns old itself and false. Otherwise it
// returns a new slice and true; old is never written to. Derived ingredients
// whose sub-recipe is gone are left in place.
func Reconcile(old []models.Ingredient, subs []models.SubRecipe) ([]models.Ingredient, bool) {
	catalog := NewCatalog(old)

	byID := make(map[string]int, len(subs))
	for i, sr := range subs {
		if _, ok := byID[sr.ID]; !ok {
			byID[sr.ID] = i
		}
	}

	var next []models.Ingredient
	ensureCopy := func() {
		if next == nil {
			next = make([]models.Ingredient, len(old), len(old)+len(subs))
			copy(next, old)
		}
	}

	for i, ing := range old {
		if !ing.IsSubRecipe {
			continue
		}
		idx, ok := byID[ing.ID]
		if !ok {
			continue
		}
		cost := UnitCost(subs[idx], catalog)
		if math.Abs(ing.BuyingPrice-cost) > PriceTolerance {
			ensureCopy()
			next[i].BuyingPrice = cost
			next[i].Cost = cost
		}
	}

	present := make(map[string]struct{}, len(old)+len(subs))
	for _, ing := range old {
		present[ing.ID] = struct{}{}
	}
	for _, sr := range subs {
		if _, ok := present[sr.ID]; ok {
			continue
		}
		ensureCopy()
		next = append(next, DerivedIngredient(sr, UnitCost(sr, catalog)))
		present[sr.ID] = struct{}{}
	}

	if next == nil {
		return old, false
	}
	return next, true
}

// Settle repeats Reconcile until a pass changes nothing or maxPasses passes
// have run. It reports the passes that changed something and whether the
// result is stable; a sub-recipe that contains itself never stabilises.
func Settle(old []models.Ingredient, subs []models.SubRecipe, maxPasses int) ([]models.Ingredient, int, bool) {
	if maxPasses <= 0 {
		maxPasses = 1
	}
	current := old
	changedPasses := 0
	for i := 0; i < maxPasses; i++ {
		next, changed := Reconcile(current, subs)
		if !changed {
			return current, changedPasses, true
		}
		current = next
		changedPasses++
	}
	return current, changedPasses, false
}

// Orphans returns the ids of derived ingredients with no matching sub-recipe.
func Orphans(ingredients []models.Ingredient, subs []models.SubRecipe) []string {
	live := make(map[string]struct{}, len(subs))
	for _, sr := range subs {
		live[sr.ID] = struct{}{}
	}
	var ids []string
	for _, ing := range ingredients {
		if !ing.IsSubRecipe {
			continue
		}
		if _, ok := live[ing.ID]; !ok {
			ids = append(ids, ing.ID)
		}
	}
	return ids
}
