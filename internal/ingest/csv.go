package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"chaoscatering/internal/costing"
	"chaoscatering/models"
)

// UnknownDishName names imported rows without a dish name.
const UnknownDishName = "Unknown Dish"

// ErrNoHeader is returned for a CSV without a header row.
var ErrNoHeader = errors.New("ingest: csv has no header row")

var exportHeader = []string{"Dish Name", "Section", "Selling Price (R)", "Cost (R)", "Margin (R)", "Food Cost %", "Description"}

// DishesFromCSV reads dishes from a costing report or a plain dish list.
// Recognised columns are "Dish Name" or "name", "Section" or "section",
// "Selling Price (R)" or "menuPrice", and "Description" or "description".
// Recipes are left empty.
func DishesFromCSV(r io.Reader) ([]models.Dish, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("ingest: read csv header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, ok := columns[name]; !ok {
			columns[name] = i
		}
	}
	field := func(record []string, names ...string) string {
		for _, name := range names {
			if i, ok := columns[name]; ok && i < len(record) {
				if value := strings.TrimSpace(record[i]); value != "" {
					return value
				}
			}
		}
		return ""
	}

	var dishes []models.Dish
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: read csv row: %w", err)
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		name := field(record, "Dish Name", "name")
		if name == "" {
			name = UnknownDishName
		}
		dishes = append(dishes, models.Dish{
			ID:          uuid.NewString(),
			Name:        name,
			Section:     models.NormalizeSection(field(record, "Section", "section")),
			MenuPrice:   costing.ParseAmount(field(record, "Selling Price (R)", "menuPrice")),
			Description: field(record, "Description", "description"),
			Ingredients: []models.DishIngredient{},
		})
	}
	return dishes, nil
}

// WriteMenuCSV writes the menu costing report.
func WriteMenuCSV(w io.Writer, dishes []models.Dish, catalog costing.Catalog) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("ingest: write csv header: %w", err)
	}
	for _, dish := range dishes {
		cost := costing.CostDish(dish, catalog)
		percent := "0"
		if dish.MenuPrice > 0 {
			percent = decimal.NewFromFloat(cost.FoodCostPercent).StringFixed(1)
		}
		row := []string{
			dish.Name,
			string(dish.Section),
			decimal.NewFromFloat(dish.MenuPrice).StringFixed(2),
			decimal.NewFromFloat(cost.Total).StringFixed(2),
			decimal.NewFromFloat(cost.Profit).StringFixed(2),
			percent,
			dish.Description,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("ingest: write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ExportFileName is the download name of the costing report for day.
func ExportFileName(day time.Time) string {
	return "Menu_Costing_Report_" + day.Format("2006-01-02") + ".csv"
}
