package workspace

import (
	"chaoscatering/internal/costing"
	"chaoscatering/models"
)

// State is a point-in-time copy of every workspace collection.
type State struct {
	Ingredients []models.Ingredient    `json:"ingredients"`
	Dishes      []models.Dish          `json:"dishes"`
	SubRecipes  []models.SubRecipe     `json:"subRecipes"`
	Suppliers   []models.Supplier      `json:"suppliers"`
	Invoices    []models.LoggedInvoice `json:"loggedInvoices"`
}

// Catalog indexes the state's ingredients.
func (s State) Catalog() costing.Catalog {
	return costing.NewCatalog(s.Ingredients)
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	return State{
		Ingredients: cloneIngredients(s.Ingredients),
		Dishes:      cloneDishes(s.Dishes),
		SubRecipes:  cloneSubRecipes(s.SubRecipes),
		Suppliers:   append([]models.Supplier{}, s.Suppliers...),
		Invoices:    append([]models.LoggedInvoice{}, s.Invoices...),
	}
}

func cloneIngredient(ing models.Ingredient) models.Ingredient {
	if ing.LastInvoicePrice != nil {
		price := *ing.LastInvoicePrice
		ing.LastInvoicePrice = &price
	}
	return ing
}

func cloneIngredients(in []models.Ingredient) []models.Ingredient {
	out := make([]models.Ingredient, len(in))
	for i, ing := range in {
		out[i] = cloneIngredient(ing)
	}
	return out
}

func cloneDish(d models.Dish) models.Dish {
	d.Ingredients = append([]models.DishIngredient{}, d.Ingredients...)
	return d
}

func cloneDishes(in []models.Dish) []models.Dish {
	out := make([]models.Dish, len(in))
	for i, d := range in {
		out[i] = cloneDish(d)
	}
	return out
}

func cloneSubRecipe(sr models.SubRecipe) models.SubRecipe {
	sr.Ingredients = append([]models.SubRecipeIngredient{}, sr.Ingredients...)
	return sr
}

func cloneSubRecipes(in []models.SubRecipe) []models.SubRecipe {
	out := make([]models.SubRecipe, len(in))
	for i, sr := range in {
		out[i] = cloneSubRecipe(sr)
	}
	return out
}

func indexOf[T any](items []T, id string, key func(T) string) int {
	for i, item := range items {
		if key(item) == id {
			return i
		}
	}
	return -1
}

func ingredientID(ing models.Ingredient) string { return ing.ID }
func dishID(d models.Dish) string               { return d.ID }
func subRecipeID(sr models.SubRecipe) string    { return sr.ID }
func supplierID(s models.Supplier) string       { return s.ID }
