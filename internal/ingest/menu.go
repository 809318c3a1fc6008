// Package ingest turns extracted or imported menu data into workspace records.
package ingest

import (
	"strings"

	"github.com/google/uuid"

	"chaoscatering/internal/ai"
	"chaoscatering/internal/costing"
	"chaoscatering/models"
)

const (
	fallbackBuyingUnit = "kg"
	fallbackRecipeUnit = "g"
	fallbackYield      = 1000.0
	fallbackYieldUnit  = "unit"
)

// Batch is the set of records produced by one menu ingestion.
type Batch struct {
	Dishes         []models.Dish       `json:"dishes"`
	SubRecipes     []models.SubRecipe  `json:"subRecipes"`
	NewIngredients []models.Ingredient `json:"newIngredients"`
}

// IngredientNames lists every ingredient name used by the extraction once,
// in first-seen order. Names are compared case-insensitively.
func IngredientNames(extraction ai.MenuExtraction) []string {
	seen := map[string]struct{}{}
	var names []string
	add := func(lines []ai.ExtractedLine) {
		for _, line := range lines {
			key := strings.ToLower(line.IngredientName)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			names = append(names, line.IngredientName)
		}
	}
	for _, d := range extraction.Dishes {
		add(d.Ingredients)
	}
	for _, s := range extraction.SubRecipes {
		add(s.Ingredients)
	}
	return names
}

// UnpricedNames is IngredientNames minus the names that resolve to an
// existing ingredient or to a sub-recipe of the same extraction. These are
// the names worth asking a price for.
func UnpricedNames(existing []models.Ingredient, extraction ai.MenuExtraction) []string {
	known := knownNames(existing)
	for _, s := range extraction.SubRecipes {
		known[strings.ToLower(s.Name)] = ""
	}
	var out []string
	for _, name := range IngredientNames(extraction) {
		if _, ok := known[strings.ToLower(name)]; ok {
			continue
		}
		out = append(out, name)
	}
	return out
}

func knownNames(existing []models.Ingredient) map[string]string {
	known := make(map[string]string, len(existing))
	for _, ing := range existing {
		key := strings.ToLower(ing.Name)
		if _, ok := known[key]; !ok {
			known[key] = ing.ID
		}
	}
	return known
}

// Menu resolves an extraction against the existing ingredients. Names are
// matched case-insensitively: first against the extraction's own
// sub-recipes, then against existing ingredients. Any other name becomes a
// new raw ingredient priced from prices when a suggestion is present.
func Menu(existing []models.Ingredient, extraction ai.MenuExtraction, prices map[string]ai.PriceSuggestion) Batch {
	ids := make(map[string]string)
	batch := Batch{
		Dishes:         make([]models.Dish, 0, len(extraction.Dishes)),
		SubRecipes:     make([]models.SubRecipe, 0, len(extraction.SubRecipes)),
		NewIngredients: []models.Ingredient{},
	}

	subIDs := make([]string, len(extraction.SubRecipes))
	for i, s := range extraction.SubRecipes {
		subIDs[i] = uuid.NewString()
		if key := strings.ToLower(s.Name); ids[key] == "" {
			ids[key] = subIDs[i]
		}
	}

	known := knownNames(existing)
	lowerPrices := make(map[string]ai.PriceSuggestion, len(prices))
	for name, p := range prices {
		lowerPrices[strings.ToLower(name)] = p
	}
	for _, name := range IngredientNames(extraction) {
		key := strings.ToLower(name)
		if _, ok := ids[key]; ok {
			continue
		}
		if id, ok := known[key]; ok {
			ids[key] = id
			continue
		}
		ing := synthesize(name, lowerPrices[key])
		ids[key] = ing.ID
		batch.NewIngredients = append(batch.NewIngredients, ing)
	}

	usages := func(lines []ai.ExtractedLine) []models.Usage {
		out := make([]models.Usage, 0, len(lines))
		for _, line := range lines {
			out = append(out, models.Usage{
				IngredientID: ids[strings.ToLower(line.IngredientName)],
				Quantity:     line.Quantity,
				Unit:         line.Unit,
			})
		}
		return out
	}

	for i, s := range extraction.SubRecipes {
		unit := s.YieldUnit
		if unit == "" {
			unit = fallbackYieldUnit
		}
		batch.SubRecipes = append(batch.SubRecipes, models.SubRecipe{
			ID:            subIDs[i],
			Name:          s.Name,
			YieldQuantity: s.YieldQuantity,
			YieldUnit:     unit,
			Ingredients:   models.SubRecipeLines(subIDs[i], usages(s.Ingredients)),
		})
	}
	for _, d := range extraction.Dishes {
		id := uuid.NewString()
		batch.Dishes = append(batch.Dishes, models.Dish{
			ID:          id,
			Name:        d.Name,
			Section:     models.NormalizeSection(d.Section),
			MenuPrice:   d.MenuPrice,
			Description: d.Description,
			Ingredients: models.DishLines(id, usages(d.Ingredients)),
		})
	}
	return batch
}

func synthesize(name string, price ai.PriceSuggestion) models.Ingredient {
	buyingUnit, recipeUnit := fallbackBuyingUnit, fallbackRecipeUnit
	if price.Unit != "" {
		buyingUnit, recipeUnit = price.Unit, price.Unit
	}
	yield := price.BaseQty
	if yield <= 0 {
		yield = fallbackYield
	}
	cost := price.Cost
	return costing.Normalize(costing.IngredientDraft{
		Name:        &name,
		BuyingUnit:  &buyingUnit,
		RecipeUnit:  &recipeUnit,
		BuyingPrice: &cost,
		YieldAmount: &yield,
	})
}
