package costing

import (
	"fmt"
	"strings"

	"chaoscatering/models"
)

// ManufacturedPool names the production pool in override keys.
const ManufacturedPool = "manufactured"

// DefaultPrepSections are the stations that receive a raw pull list. Drinks
// are served from the bar and are not prepped.
var DefaultPrepSections = []models.Section{
	models.SectionBreakfast,
	models.SectionStarters,
	models.SectionMains,
	models.SectionDesserts,
	models.SectionPizza,
	models.SectionKids,
}

// PrepItem is the total quantity of one ingredient needed by a pool.
type PrepItem struct {
	IngredientID string  `json:"ingredientId"`
	Name         string  `json:"name"`
	Qty          float64 `json:"qty"`
	Unit         string  `json:"unit"`
}

// PrepList is the production list for manufactured items plus a raw pull
// list per tracked station. Items keep first-encountered order.
type PrepList struct {
	Manufactured []PrepItem                    `json:"manufactured"`
	BySection    map[models.Section][]PrepItem `json:"bySection"`
	Sections     []models.Section              `json:"sections"`
}

// Aggregate explodes the selected dishes into ingredient quantities. Dishes
// are visited in slice order. Lines with an unknown ingredient are skipped.
// A nil tracked list means DefaultPrepSections.
func Aggregate(selected map[string]bool, dishes []models.Dish, catalog Catalog, tracked []models.Section) PrepList {
	if tracked == nil {
		tracked = DefaultPrepSections
	}
	list := PrepList{
		Manufactured: []PrepItem{},
		BySection:    make(map[models.Section][]PrepItem, len(tracked)),
		Sections:     append([]models.Section(nil), tracked...),
	}
	isTracked := make(map[models.Section]bool, len(tracked))
	for _, s := range tracked {
		isTracked[s] = true
		list.BySection[s] = []PrepItem{}
	}

	manufactured := map[string]int{}
	raw := map[models.Section]map[string]int{}

	for _, dish := range dishes {
		if !selected[dish.ID] {
			continue
		}
		for _, line := range dish.Ingredients {
			ing, ok := catalog.Resolve(line.IngredientID)
			if !ok {
				continue
			}
			if ing.IsSubRecipe {
				list.Manufactured = accumulate(list.Manufactured, manufactured, *ing, line.Quantity)
				continue
			}
			if !isTracked[dish.Section] {
				continue
			}
			positions, ok := raw[dish.Section]
			if !ok {
				positions = map[string]int{}
				raw[dish.Section] = positions
			}
			list.BySection[dish.Section] = accumulate(list.BySection[dish.Section], positions, *ing, line.Quantity)
		}
	}
	return list
}

func accumulate(items []PrepItem, positions map[string]int, ing models.Ingredient, qty float64) []PrepItem {
	if i, ok := positions[ing.ID]; ok {
		items[i].Qty += qty
		return items
	}
	positions[ing.ID] = len(items)
	return append(items, PrepItem{IngredientID: ing.ID, Name: ing.Name, Qty: qty, Unit: ing.RecipeUnit})
}

// OverrideKey addresses one item of one pool.
type OverrideKey struct {
	Pool         string
	IngredientID string
}

// String encodes the key as "pool:ingredientID".
func (k OverrideKey) String() string {
	return k.Pool + ":" + k.IngredientID
}

// ParseOverrideKey decodes a key produced by OverrideKey.String.
func ParseOverrideKey(value string) (OverrideKey, error) {
	pool, id, ok := strings.Cut(value, ":")
	if !ok || pool == "" || id == "" {
		return OverrideKey{}, fmt.Errorf("costing: malformed override key %q", value)
	}
	return OverrideKey{Pool: pool, IngredientID: id}, nil
}

// SectionKey addresses a raw item of a station.
func SectionKey(section models.Section, ingredientID string) OverrideKey {
	return OverrideKey{Pool: string(section), IngredientID: ingredientID}
}

// ManufacturedKey addresses a production item.
func ManufacturedKey(ingredientID string) OverrideKey {
	return OverrideKey{Pool: ManufacturedPool, IngredientID: ingredientID}
}

// Overrides are display-level quantity corrections made by the chef.
type Overrides map[OverrideKey]float64

// Apply returns a copy of list with overridden quantities. list is not changed.
func (o Overrides) Apply(list PrepList) PrepList {
	out := PrepList{
		Manufactured: o.applyPool(ManufacturedPool, list.Manufactured),
		BySection:    make(map[models.Section][]PrepItem, len(list.BySection)),
		Sections:     append([]models.Section(nil), list.Sections...),
	}
	for section, items := range list.BySection {
		out.BySection[section] = o.applyPool(string(section), items)
	}
	return out
}

func (o Overrides) applyPool(pool string, items []PrepItem) []PrepItem {
	out := make([]PrepItem, len(items))
	copy(out, items)
	for i := range out {
		if qty, ok := o[OverrideKey{Pool: pool, IngredientID: out[i].IngredientID}]; ok {
			out[i].Qty = qty
		}
	}
	return out
}

// Encode flattens the overrides into string keys for session storage.
func (o Overrides) Encode() map[string]float64 {
	out := make(map[string]float64, len(o))
	for k, v := range o {
		out[k.String()] = v
	}
	return out
}

// DecodeOverrides reverses Encode, dropping malformed keys.
func DecodeOverrides(values map[string]float64) Overrides {
	out := make(Overrides, len(values))
	for raw, v := range values {
		key, err := ParseOverrideKey(raw)
		if err != nil {
			continue
		}
		out[key] = v
	}
	return out
}
