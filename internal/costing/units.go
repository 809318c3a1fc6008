package costing

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"chaoscatering/models"
)

const (
	defaultIngredientName = "New Ingredient"
	defaultBuyingUnit     = "kg"
	metricYield           = 1000.0
)

// IngredientDraft is a partial ingredient record, as produced by an edit form
// or an AI price suggestion. Nil fields are absent and take their defaults.
type IngredientDraft struct {
	ID               string   `json:"id,omitempty"`
	Name             *string  `json:"name,omitempty"`
	BuyingUnit       *string  `json:"buyingUnit,omitempty"`
	BuyingPrice      *float64 `json:"buyingPrice,omitempty"`
	YieldAmount      *float64 `json:"yieldAmount,omitempty"`
	RecipeUnit       *string  `json:"recipeUnit,omitempty"`
	IsSubRecipe      *bool    `json:"isSubRecipe,omitempty"`
	Cost             *float64 `json:"cost,omitempty"`
	LastInvoicePrice *float64 `json:"lastInvoicePrice,omitempty"`
	LastInvoiceDate  string   `json:"lastInvoiceDate,omitempty"`
}

// DraftOf returns a draft with every field of ing present.
func DraftOf(ing models.Ingredient) IngredientDraft {
	return IngredientDraft{
		ID:               ing.ID,
		Name:             &ing.Name,
		BuyingUnit:       &ing.BuyingUnit,
		BuyingPrice:      &ing.BuyingPrice,
		YieldAmount:      &ing.YieldAmount,
		RecipeUnit:       &ing.RecipeUnit,
		IsSubRecipe:      &ing.IsSubRecipe,
		Cost:             &ing.Cost,
		LastInvoicePrice: ing.LastInvoicePrice,
		LastInvoiceDate:  ing.LastInvoiceDate,
	}
}

// Merge overlays the present fields of patch onto d.
func (d IngredientDraft) Merge(patch IngredientDraft) IngredientDraft {
	if patch.Name != nil {
		d.Name = patch.Name
	}
	if patch.BuyingUnit != nil {
		d.BuyingUnit = patch.BuyingUnit
	}
	if patch.BuyingPrice != nil {
		d.BuyingPrice = patch.BuyingPrice
	}
	if patch.YieldAmount != nil {
		d.YieldAmount = patch.YieldAmount
	}
	if patch.RecipeUnit != nil {
		d.RecipeUnit = patch.RecipeUnit
	}
	if patch.IsSubRecipe != nil {
		d.IsSubRecipe = patch.IsSubRecipe
	}
	if patch.Cost != nil {
		d.Cost = patch.Cost
	}
	if patch.LastInvoicePrice != nil {
		d.LastInvoicePrice = patch.LastInvoicePrice
	}
	if patch.LastInvoiceDate != "" {
		d.LastInvoiceDate = patch.LastInvoiceDate
	}
	return d
}

// Normalize fills defaults into a draft and applies the buying-unit policy:
// a "kg" purchase is always costed per gram and an "l"/"litre" purchase per
// millilitre. The stored BuyingUnit keeps the caller's text. Normalize is
// idempotent.
func Normalize(d IngredientDraft) models.Ingredient {
	buyingUnit := stringOr(d.BuyingUnit, defaultBuyingUnit)

	yieldAmount := floatOr(d.YieldAmount, 1)
	if yieldAmount <= 0 {
		yieldAmount = 1
	}

	// A blank recipe unit counts as unset and follows the buying unit.
	recipeUnit := stringOr(d.RecipeUnit, buyingUnit)

	switch strings.ToLower(strings.TrimSpace(buyingUnit)) {
	case "kg":
		yieldAmount = metricYield
		recipeUnit = "g"
	case "l", "litre":
		yieldAmount = metricYield
		recipeUnit = "ml"
	}

	id := strings.TrimSpace(d.ID)
	if id == "" {
		id = uuid.New().String()
	}

	ing := models.Ingredient{
		ID:              id,
		Name:            stringOr(d.Name, defaultIngredientName),
		BuyingUnit:      buyingUnit,
		BuyingPrice:     floatOr(d.BuyingPrice, 0),
		YieldAmount:     yieldAmount,
		RecipeUnit:      recipeUnit,
		IsSubRecipe:     d.IsSubRecipe != nil && *d.IsSubRecipe,
		Cost:            floatOr(d.Cost, 0),
		LastInvoiceDate: d.LastInvoiceDate,
	}
	if d.LastInvoicePrice != nil && finite(*d.LastInvoicePrice) {
		price := *d.LastInvoicePrice
		ing.LastInvoicePrice = &price
	}
	return ing
}

func stringOr(value *string, fallback string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return fallback
	}
	return *value
}

func floatOr(value *float64, fallback float64) float64 {
	if value == nil || !finite(*value) {
		return fallback
	}
	return *value
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

var leadingNumber = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`)

// ParseAmount reads the leading number of a form value. Anything that does
// not start with a number yields 0.
func ParseAmount(value string) float64 {
	match := leadingNumber.FindString(strings.TrimSpace(value))
	if match == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(match, 64)
	if err != nil || !finite(parsed) {
		return 0
	}
	return parsed
}
