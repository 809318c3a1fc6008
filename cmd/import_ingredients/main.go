package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"chaoscatering/internal/config"
	"chaoscatering/internal/costing"
	"chaoscatering/internal/db"
	"chaoscatering/internal/ingest"
	"chaoscatering/internal/workspace"
)

var (
	numberPattern   = regexp.MustCompile(`[-+]?\d*\.?\d+`)
	cleanWhitespace = regexp.MustCompile(`\s+`)
)

// Usage: import_ingredients [ingredients.csv] [menu.csv]
func main() {
	csvPath := "master ingredients list.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	var menuPath string
	if len(os.Args) > 2 {
		menuPath = os.Args[2]
	}

	if err := run(context.Background(), csvPath, menuPath); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, csvPath, menuPath string) error {
	if strings.TrimSpace(csvPath) == "" {
		return fmt.Errorf("csv path must not be empty")
	}

	if _, err := os.Stat(csvPath); err != nil {
		return fmt.Errorf("locate csv: %w", err)
	}

	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	database, err := db.Initialize(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(database); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	repo, err := db.NewRepository(database)
	if err != nil {
		return err
	}
	ws, err := workspace.Open(ctx, repo)
	if err != nil {
		return fmt.Errorf("load kitchen: %w", err)
	}

	records, err := readCSV(csvPath)
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}

	created, updated, err := importIngredients(ctx, ws, records)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Imported %d ingredients (%d updated) from %s\n", created, updated, filepath.Base(csvPath))

	if strings.TrimSpace(menuPath) == "" {
		return nil
	}
	file, err := os.Open(menuPath)
	if err != nil {
		return fmt.Errorf("open menu csv: %w", err)
	}
	defer file.Close()

	dishes, err := importMenu(ctx, ws, file)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Imported %d dishes from %s\n", dishes, filepath.Base(menuPath))
	return nil
}

// importIngredients creates or updates one raw ingredient per record, matching
// existing ingredients by name case-insensitively.
func importIngredients(ctx context.Context, ws *workspace.Workspace, records []map[string]string) (created, updated int, err error) {
	byName := map[string]string{}
	for _, ing := range ws.Snapshot().Ingredients {
		if ing.IsSubRecipe {
			continue
		}
		byName[strings.ToLower(ing.Name)] = ing.ID
	}

	for idx, record := range records {
		draft, ok := buildDraft(record)
		if !ok {
			continue
		}
		key := strings.ToLower(*draft.Name)
		if id, found := byName[key]; found {
			if _, err := ws.UpdateIngredient(ctx, id, draft); err != nil {
				return created, updated, fmt.Errorf("record %d (%s): %w", idx+1, *draft.Name, err)
			}
			updated++
			continue
		}
		ing, err := ws.CreateIngredient(ctx, draft)
		if err != nil {
			return created, updated, fmt.Errorf("record %d (%s): %w", idx+1, *draft.Name, err)
		}
		byName[key] = ing.ID
		created++
	}
	return created, updated, nil
}

func importMenu(ctx context.Context, ws *workspace.Workspace, r io.Reader) (int, error) {
	dishes, err := ingest.DishesFromCSV(r)
	if err != nil {
		return 0, fmt.Errorf("read menu csv: %w", err)
	}
	if err := ws.Import(ctx, ingest.Batch{Dishes: dishes}); err != nil {
		return 0, fmt.Errorf("import menu: %w", err)
	}
	return len(dishes), nil
}

func readCSV(path string) ([]map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.New("csv is empty")
	}

	header := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}

		record := make(map[string]string, len(header))
		for idx, key := range header {
			if idx >= len(row) {
				continue
			}
			key = strings.TrimSpace(strings.TrimPrefix(key, "\ufeff"))
			record[key] = strings.TrimSpace(row[idx])
		}
		records = append(records, record)
	}

	return records, nil
}

// buildDraft maps a master-list row onto an ingredient draft. Rows without a
// name are skipped.
func buildDraft(row map[string]string) (costing.IngredientDraft, bool) {
	name := normalizeText(firstField(row, "Ingredient Name", "Ingredient", "name"))
	if name == "" {
		return costing.IngredientDraft{}, false
	}
	draft := costing.IngredientDraft{Name: &name}

	if unit := normalizeValue(firstField(row, "Buying Unit", "Unit", "buyingUnit")); unit != "" {
		draft.BuyingUnit = &unit
	}
	if raw := normalizeValue(firstField(row, "Buying Price", "Price", "buyingPrice")); raw != "" {
		price := parseFirstNumber(raw)
		draft.BuyingPrice = &price
	}
	if raw := normalizeValue(firstField(row, "Yield", "Yield Amount", "yieldAmount")); raw != "" {
		yield := parseFirstNumber(raw)
		draft.YieldAmount = &yield
	}
	if unit := normalizeValue(firstField(row, "Recipe Unit", "recipeUnit")); unit != "" {
		draft.RecipeUnit = &unit
	}
	return draft, true
}

func firstField(row map[string]string, keys ...string) string {
	for _, key := range keys {
		if value, ok := row[key]; ok && value != "" {
			return value
		}
	}
	return ""
}

func normalizeValue(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "N/A") {
		return ""
	}
	return value
}

func normalizeText(value string) string {
	value = normalizeValue(value)
	if value == "" {
		return value
	}
	value = cleanWhitespace.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}

// parseFirstNumber reads the first number in value, so "R 45.50 / bag" is 45.5.
func parseFirstNumber(value string) float64 {
	value = strings.ReplaceAll(normalizeValue(value), ",", "")
	if value == "" {
		return 0
	}

	match := numberPattern.FindString(value)
	if match == "" {
		return 0
	}

	parsed, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return parsed
}
