// Package invoice applies audited supplier invoices to the ingredient list and
// keeps the invoice history used for spend reporting.
package invoice

import (
	"strings"
	"time"

	"chaoscatering/internal/ai"
	"chaoscatering/models"
)

const (
	UnknownSupplier = "Unknown Supplier"
	DefaultFileName = "document.pdf"
	dateLayout      = "2006-01-02"
)

// Line is an extracted invoice item tagged with the invoice it came from.
type Line struct {
	models.InvoiceItem
	SupplierName string `json:"supplierName"`
	InvoiceDate  string `json:"invoiceDate"`
	FileName     string `json:"fileName"`
}

// Lines tags every item of an extraction with its supplier, date and file.
// A missing supplier becomes UnknownSupplier and a missing date becomes now.
func Lines(extraction ai.InvoiceExtraction, fileName string, now time.Time) []Line {
	supplier := strings.TrimSpace(extraction.SupplierName)
	if supplier == "" {
		supplier = UnknownSupplier
	}
	date := strings.TrimSpace(extraction.InvoiceDate)
	if date == "" {
		date = now.Format(dateLayout)
	}
	out := make([]Line, 0, len(extraction.Items))
	for _, item := range extraction.Items {
		out = append(out, Line{InvoiceItem: item, SupplierName: supplier, InvoiceDate: date, FileName: fileName})
	}
	return out
}

// Result is the outcome of applying invoice lines.
type Result struct {
	Ingredients []models.Ingredient    `json:"-"`
	Logged      []models.LoggedInvoice `json:"logged"`
	Matched     int                    `json:"matched"`
}

type invoiceKey struct {
	supplier string
	date     string
}

// Apply records each line's price as the last invoice price of the ingredient
// with the same name, compared case-insensitively. BuyingPrice is never
// touched: the invoice price is for comparison only. Lines are summarised
// into one logged invoice per supplier and date, in first-seen order.
// ingredients is not modified.
func Apply(ingredients []models.Ingredient, lines []Line, newID func() string) Result {
	out := make([]models.Ingredient, len(ingredients))
	copy(out, ingredients)

	byName := make(map[string]int, len(out))
	for i, ing := range out {
		key := nameKey(ing.Name)
		if _, ok := byName[key]; !ok {
			byName[key] = i
		}
	}

	result := Result{Ingredients: out}
	positions := make(map[invoiceKey]int)
	for _, line := range lines {
		if i, ok := byName[nameKey(line.Name)]; ok {
			price := line.PricePerUnit
			out[i].LastInvoicePrice = &price
			out[i].LastInvoiceDate = line.InvoiceDate
			result.Matched++
		}

		key := invoiceKey{supplier: line.SupplierName, date: line.InvoiceDate}
		pos, ok := positions[key]
		if !ok {
			fileName := line.FileName
			if fileName == "" {
				fileName = DefaultFileName
			}
			pos = len(result.Logged)
			positions[key] = pos
			result.Logged = append(result.Logged, models.LoggedInvoice{
				ID:           newID(),
				SupplierName: line.SupplierName,
				InvoiceDate:  line.InvoiceDate,
				FileName:     fileName,
			})
		}
		result.Logged[pos].TotalAmount += line.TotalPrice
		result.Logged[pos].ItemsCount++
	}
	return result
}

// TotalSpend sums the logged invoices of one supplier, matched by name
// case-insensitively.
func TotalSpend(logged []models.LoggedInvoice, supplierName string) float64 {
	total := 0.0
	for _, inv := range logged {
		if strings.EqualFold(inv.SupplierName, supplierName) {
			total += inv.TotalAmount
		}
	}
	return total
}

// nameKey is the matching key for ingredient and invoice line names.
func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
