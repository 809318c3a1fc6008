package invoice

import (
	"fmt"
	"math"
	"testing"
	"time"

	"chaoscatering/internal/ai"
	"chaoscatering/models"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("inv-%d", n)
	}
}

func line(supplier, date, name string, price, total float64) Line {
	return Line{
		InvoiceItem:  models.InvoiceItem{Name: name, Quantity: 1, Unit: "kg", PricePerUnit: price, TotalPrice: total},
		SupplierName: supplier,
		InvoiceDate:  date,
	}
}

func TestLinesFillsDefaults(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 17, 9, 0, 0, 0, time.UTC)
	extraction := ai.InvoiceExtraction{Items: []models.InvoiceItem{{Name: "Tomatoes"}, {Name: "Onions"}}}

	got := Lines(extraction, "march.pdf", now)
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(got))
	}
	for _, l := range got {
		if l.SupplierName != UnknownSupplier || l.InvoiceDate != "2024-05-17" || l.FileName != "march.pdf" {
			t.Fatalf("unexpected line: %+v", l)
		}
	}
}

func TestApplyRecordsComparisonPriceOnly(t *testing.T) {
	t.Parallel()

	ingredients := []models.Ingredient{
		{ID: "tom", Name: "Tomatoes", BuyingPrice: 20, YieldAmount: 1000},
		{ID: "oni", Name: "Onions", BuyingPrice: 15, YieldAmount: 1000},
	}
	lines := []Line{
		line("Fresh Farms", "2024-03-01", "tomatoes", 24, 120),
		line("Fresh Farms", "2024-03-01", "Basil", 80, 80),
	}

	result := Apply(ingredients, lines, sequentialIDs())
	if result.Matched != 1 {
		t.Fatalf("Matched = %d, want 1", result.Matched)
	}
	tom := result.Ingredients[0]
	if tom.BuyingPrice != 20 {
		t.Fatalf("BuyingPrice changed to %v", tom.BuyingPrice)
	}
	if tom.LastInvoicePrice == nil || *tom.LastInvoicePrice != 24 || tom.LastInvoiceDate != "2024-03-01" {
		t.Fatalf("comparison price not recorded: %+v", tom)
	}
	if ingredients[0].LastInvoicePrice != nil {
		t.Fatal("input slice must not be modified")
	}
	if result.Ingredients[1].LastInvoicePrice != nil {
		t.Fatal("unmatched ingredient should be untouched")
	}
}

func TestApplyGroupsBySupplierAndDate(t *testing.T) {
	t.Parallel()

	lines := []Line{
		line("Fresh-Farms", "2024-03-01", "A", 1, 10),
		line("Karoo Meats", "2024-03-01", "B", 1, 50),
		line("Fresh-Farms", "2024-03-01", "C", 1, 5.5),
		line("Fresh-Farms", "2024-03-08", "D", 1, 7),
	}
	lines[1].FileName = "karoo.pdf"

	got := Apply(nil, lines, sequentialIDs()).Logged
	if len(got) != 3 {
		t.Fatalf("expected 3 logged invoices, got %+v", got)
	}
	first := got[0]
	if first.ID != "inv-1" || first.SupplierName != "Fresh-Farms" || first.ItemsCount != 2 || math.Abs(first.TotalAmount-15.5) > 1e-9 {
		t.Fatalf("unexpected first invoice: %+v", first)
	}
	if first.FileName != DefaultFileName {
		t.Fatalf("FileName = %q, want default", first.FileName)
	}
	if got[1].SupplierName != "Karoo Meats" || got[1].FileName != "karoo.pdf" {
		t.Fatalf("unexpected second invoice: %+v", got[1])
	}
	if got[2].InvoiceDate != "2024-03-08" || got[2].ItemsCount != 1 {
		t.Fatalf("unexpected third invoice: %+v", got[2])
	}
}

func TestTotalSpend(t *testing.T) {
	t.Parallel()

	logged := []models.LoggedInvoice{
		{SupplierName: "Fresh Farms", TotalAmount: 100},
		{SupplierName: "fresh farms", TotalAmount: 25},
		{SupplierName: "Karoo Meats", TotalAmount: 400},
	}
	if got := TotalSpend(logged, "FRESH FARMS"); got != 125 {
		t.Fatalf("TotalSpend = %v, want 125", got)
	}
	if got := TotalSpend(logged, "Nobody"); got != 0 {
		t.Fatalf("TotalSpend = %v, want 0", got)
	}
}

func TestVariance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		price, market float64
		wantPercent   float64
		wantTrend     Trend
	}{
		{name: "up", price: 110, market: 100, wantPercent: 10, wantTrend: TrendUp},
		{name: "down", price: 90, market: 100, wantPercent: -10, wantTrend: TrendDown},
		{name: "within band", price: 104, market: 100, wantPercent: 4, wantTrend: TrendFlat},
		{name: "no market", price: 50, market: 0, wantPercent: 0, wantTrend: TrendFlat},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			percent, trend := Variance(tt.price, tt.market)
			if math.Abs(percent-tt.wantPercent) > 1e-9 || trend != tt.wantTrend {
				t.Fatalf("Variance = %v %s, want %v %s", percent, trend, tt.wantPercent, tt.wantTrend)
			}
		})
	}
}

func TestIngredientVariance(t *testing.T) {
	t.Parallel()

	price := 30.0
	if _, _, ok := IngredientVariance(models.Ingredient{BuyingPrice: 20}); ok {
		t.Fatal("no invoice price should report no data")
	}
	percent, trend, ok := IngredientVariance(models.Ingredient{BuyingPrice: 20, LastInvoicePrice: &price})
	if !ok || percent != 50 || trend != TrendUp {
		t.Fatalf("IngredientVariance = %v %s %t", percent, trend, ok)
	}
}

func TestAudit(t *testing.T) {
	t.Parallel()

	ingredients := []models.Ingredient{{ID: "tom", Name: "Tomatoes", BuyingPrice: 20}}
	rows := Audit(ingredients, []Line{
		line("Fresh Farms", "2024-03-01", "TOMATOES", 18, 18),
		line("Fresh Farms", "2024-03-01", "Basil", 80, 80),
	})
	if rows[0].IngredientID != "tom" || rows[0].Trend != TrendDown || rows[0].MarketPrice != 20 {
		t.Fatalf("unexpected matched row: %+v", rows[0])
	}
	if rows[1].IngredientID != "" || rows[1].Trend != TrendFlat {
		t.Fatalf("unexpected unmatched row: %+v", rows[1])
	}
}

func TestMatchingIgnoresSurroundingSpace(t *testing.T) {
	t.Parallel()

	ingredients := []models.Ingredient{{ID: "flour", Name: "Flour ", BuyingPrice: 20, YieldAmount: 1000}}
	lines := []Line{line("Mill Co", "2024-03-01", "  flour", 22, 22)}

	result := Apply(ingredients, lines, sequentialIDs())
	if result.Matched != 1 || result.Ingredients[0].LastInvoicePrice == nil || *result.Ingredients[0].LastInvoicePrice != 22 {
		t.Fatalf("expected padded names to match, got %+v", result)
	}

	rows := Audit(ingredients, lines)
	if rows[0].IngredientID != "flour" || rows[0].Trend != TrendUp {
		t.Fatalf("expected audit to match padded name, got %+v", rows[0])
	}
}

func TestSupplierFromCardDefaults(t *testing.T) {
	t.Parallel()

	got := SupplierFromCard(ai.SupplierCard{Phone: " 021 555 0101 "}, sequentialIDs())
	want := models.Supplier{ID: "inv-1", Name: ExtractedSupplierName, Phone: "021 555 0101", Category: DefaultCategory}
	if got != want {
		t.Fatalf("SupplierFromCard = %+v, want %+v", got, want)
	}
}
