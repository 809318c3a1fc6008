package invoice

import (
	"strings"

	"chaoscatering/internal/ai"
	"chaoscatering/models"
)

// Trend classifies a price variance.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"

	// VarianceThreshold is the percentage beyond which a price counts as moved.
	VarianceThreshold = 5.0
)

// Variance is the percentage difference of price against market. A
// non-positive market price yields 0 and TrendFlat.
func Variance(price, market float64) (float64, Trend) {
	if market <= 0 {
		return 0, TrendFlat
	}
	percent := (price - market) / market * 100
	switch {
	case percent > VarianceThreshold:
		return percent, TrendUp
	case percent < -VarianceThreshold:
		return percent, TrendDown
	default:
		return percent, TrendFlat
	}
}

// IngredientVariance compares an ingredient's last invoice price with its
// buying price. ok is false when there is nothing to compare.
func IngredientVariance(ing models.Ingredient) (percent float64, trend Trend, ok bool) {
	if ing.LastInvoicePrice == nil || ing.BuyingPrice <= 0 {
		return 0, TrendFlat, false
	}
	percent, trend = Variance(*ing.LastInvoicePrice, ing.BuyingPrice)
	return percent, trend, true
}

// AuditRow is an invoice line compared against the master ingredient list.
type AuditRow struct {
	Line
	IngredientID    string  `json:"ingredientId,omitempty"`
	MarketPrice     float64 `json:"marketPrice"`
	VariancePercent float64 `json:"variancePercent"`
	Trend           Trend   `json:"trend"`
}

// Audit prices every line against the buying price of the ingredient with
// the same name. Unmatched lines have an empty IngredientID.
func Audit(ingredients []models.Ingredient, lines []Line) []AuditRow {
	byName := make(map[string]models.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		key := nameKey(ing.Name)
		if _, ok := byName[key]; !ok {
			byName[key] = ing
		}
	}
	rows := make([]AuditRow, 0, len(lines))
	for _, line := range lines {
		row := AuditRow{Line: line, Trend: TrendFlat}
		if ing, ok := byName[nameKey(line.Name)]; ok {
			row.IngredientID = ing.ID
			row.MarketPrice = ing.BuyingPrice
			row.VariancePercent, row.Trend = Variance(line.PricePerUnit, ing.BuyingPrice)
		}
		rows = append(rows, row)
	}
	return rows
}

const (
	ExtractedSupplierName = "Extracted Supplier"
	DefaultCategory       = "General"
)

// SupplierFromCard turns a scanned card into an address-book entry.
func SupplierFromCard(card ai.SupplierCard, newID func() string) models.Supplier {
	name := strings.TrimSpace(card.Name)
	if name == "" {
		name = ExtractedSupplierName
	}
	category := strings.TrimSpace(card.Category)
	if category == "" {
		category = DefaultCategory
	}
	return models.Supplier{
		ID:            newID(),
		Name:          name,
		ContactPerson: strings.TrimSpace(card.ContactPerson),
		Email:         strings.TrimSpace(card.Email),
		Phone:         strings.TrimSpace(card.Phone),
		Category:      category,
	}
}
