package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ExtractedLine is one ingredient usage as read off a menu.
type ExtractedLine struct {
	IngredientName string  `json:"ingredientName"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
}

// ExtractedDish is a dish inferred from a menu, with ingredients by name.
type ExtractedDish struct {
	Name        string          `json:"name"`
	Section     string          `json:"section"`
	MenuPrice   float64         `json:"menuPrice"`
	Description string          `json:"description"`
	Ingredients []ExtractedLine `json:"ingredients"`
}

// ExtractedSubRecipe is an in-house preparation inferred from a menu.
type ExtractedSubRecipe struct {
	Name          string          `json:"name"`
	YieldQuantity float64         `json:"yieldQuantity"`
	YieldUnit     string          `json:"yieldUnit"`
	Ingredients   []ExtractedLine `json:"ingredients"`
}

// MenuExtraction is the structured reading of a menu document.
type MenuExtraction struct {
	Dishes     []ExtractedDish      `json:"dishes"`
	SubRecipes []ExtractedSubRecipe `json:"subRecipes"`
}

// PriceSuggestion is an estimated wholesale price for BaseQty recipe units.
type PriceSuggestion struct {
	Cost    float64 `json:"cost"`
	Unit    string  `json:"unit"`
	BaseQty float64 `json:"baseQty"`
}

const menuSystemPrompt = `You are a professional restaurant consultant and cost analyst in South Africa.
Analyse every page of the supplied menu and extract every single dish.
Rules:
1. Break every dish down to the raw ingredients it is made from.
2. Use realistic restaurant portion sizes for quantities.
3. Items clearly made in-house (sauces, doughs, stocks) go in "subRecipes" and dishes refer to them by name.
4. Sections are one of Breakfast, Starters, Mains, Desserts, Pizza, Kids, Drinks.
5. Units are metric (g, kg, ml, l) or "unit".
6. Prices are South African Rand.
Respond with raw JSON only using this schema:
{
  "dishes": [{"name": string, "section": string, "menuPrice": number, "description": string,
              "ingredients": [{"ingredientName": string, "quantity": number, "unit": string}]}],
  "subRecipes": [{"name": string, "yieldQuantity": number, "yieldUnit": string,
                  "ingredients": [{"ingredientName": string, "quantity": number, "unit": string}]}]
}`

type rawLine struct {
	IngredientName string `json:"ingredientName"`
	Quantity       any    `json:"quantity"`
	Unit           string `json:"unit"`
}

type rawMenu struct {
	Dishes []struct {
		Name        string    `json:"name"`
		Section     string    `json:"section"`
		MenuPrice   any       `json:"menuPrice"`
		Description string    `json:"description"`
		Ingredients []rawLine `json:"ingredients"`
	} `json:"dishes"`
	SubRecipes []struct {
		Name          string    `json:"name"`
		YieldQuantity any       `json:"yieldQuantity"`
		YieldUnit     string    `json:"yieldUnit"`
		Ingredients   []rawLine `json:"ingredients"`
	} `json:"subRecipes"`
}

// ExtractMenu reads dishes and sub-recipes out of a menu document.
func (c *Client) ExtractMenu(ctx context.Context, doc Attachment) (MenuExtraction, error) {
	if strings.TrimSpace(doc.Text) == "" && doc.Image == "" {
		return MenuExtraction{}, ErrEmptyDocument
	}

	var raw rawMenu
	err := c.complete(ctx, "menu", []chatMessage{
		{Role: "system", Content: menuSystemPrompt},
		userMessage("Extract the dishes on this menu.", doc),
	}, &raw)
	if err != nil {
		return MenuExtraction{}, err
	}

	result := MenuExtraction{
		Dishes:     make([]ExtractedDish, 0, len(raw.Dishes)),
		SubRecipes: make([]ExtractedSubRecipe, 0, len(raw.SubRecipes)),
	}
	for _, d := range raw.Dishes {
		name := normaliseText(d.Name)
		if name == "" {
			continue
		}
		result.Dishes = append(result.Dishes, ExtractedDish{
			Name:        name,
			Section:     normaliseValue(d.Section),
			MenuPrice:   parseNumeric(d.MenuPrice),
			Description: normaliseText(d.Description),
			Ingredients: normaliseLines(d.Ingredients),
		})
	}
	for _, s := range raw.SubRecipes {
		name := normaliseText(s.Name)
		if name == "" {
			continue
		}
		result.SubRecipes = append(result.SubRecipes, ExtractedSubRecipe{
			Name:          name,
			YieldQuantity: parseNumeric(s.YieldQuantity),
			YieldUnit:     normaliseValue(s.YieldUnit),
			Ingredients:   normaliseLines(s.Ingredients),
		})
	}
	return result, nil
}

func normaliseLines(lines []rawLine) []ExtractedLine {
	out := make([]ExtractedLine, 0, len(lines))
	for _, line := range lines {
		name := normaliseText(line.IngredientName)
		if name == "" {
			continue
		}
		out = append(out, ExtractedLine{
			IngredientName: name,
			Quantity:       parseNumeric(line.Quantity),
			Unit:           normaliseValue(line.Unit),
		})
	}
	return out
}

const priceSystemPrompt = `You provide wholesale market prices for restaurant ingredients in South Africa (Rand).
Respond with raw JSON only:
{"prices": [{"name": string, "cost": number, "unit": "kg" | "l" | "unit", "baseQty": number}]}
baseQty is 1000 for kg or l and 1 for unit. Use the ingredient names exactly as given.`

// SuggestPrices estimates market prices for the named ingredients. Names are
// matched case-insensitively and answers are cached, so only names not seen
// recently reach the API. The result is keyed by the names as given; names
// the model skipped are absent.
func (c *Client) SuggestPrices(ctx context.Context, names []string) (map[string]PriceSuggestion, error) {
	result := make(map[string]PriceSuggestion, len(names))
	var missing []string
	pending := make(map[string][]string)
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if cached, ok := c.prices.Get(key); ok {
			result[name] = cached.(PriceSuggestion)
			continue
		}
		if _, queued := pending[key]; !queued {
			missing = append(missing, name)
		}
		pending[key] = append(pending[key], name)
	}
	if len(missing) == 0 {
		return result, nil
	}

	var raw struct {
		Prices []struct {
			Name    string `json:"name"`
			Cost    any    `json:"cost"`
			Unit    string `json:"unit"`
			BaseQty any    `json:"baseQty"`
		} `json:"prices"`
	}
	err := c.complete(ctx, "price", []chatMessage{
		{Role: "system", Content: priceSystemPrompt},
		{Role: "user", Content: "Ingredients: " + strings.Join(missing, ", ")},
	}, &raw)
	if err != nil {
		return result, err
	}

	for _, p := range raw.Prices {
		key := strings.ToLower(strings.TrimSpace(p.Name))
		requested, ok := pending[key]
		if !ok {
			continue
		}
		suggestion := PriceSuggestion{
			Cost:    parseNumeric(p.Cost),
			Unit:    strings.ToLower(normaliseValue(p.Unit)),
			BaseQty: parseNumeric(p.BaseQty),
		}
		c.prices.SetDefault(key, suggestion)
		for _, name := range requested {
			result[name] = suggestion
		}
	}
	return result, nil
}

// ErrNoPrices is returned by SuggestPrice when the model has no estimate.
var ErrNoPrices = errors.New("ai: no price suggestion returned")

// SuggestPrice is SuggestPrices for a single ingredient.
func (c *Client) SuggestPrice(ctx context.Context, name string) (PriceSuggestion, error) {
	prices, err := c.SuggestPrices(ctx, []string{name})
	if err != nil {
		return PriceSuggestion{}, err
	}
	suggestion, ok := prices[strings.TrimSpace(name)]
	if !ok {
		return PriceSuggestion{}, fmt.Errorf("%w for %q", ErrNoPrices, name)
	}
	return suggestion, nil
}
