package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"chaoscatering/internal/costing"
	"chaoscatering/internal/views/components"
	"chaoscatering/internal/views/layout"
	"chaoscatering/models"
)

// MenuRow is one costed dish of the menu report.
type MenuRow struct {
	ID              string
	Name            string
	Section         models.Section
	MenuPrice       float64
	Cost            float64
	Profit          float64
	FoodCostPercent float64
}

// MenuReportData feeds the dashboard.
type MenuReportData struct {
	Summary costing.Summary
	Rows    []MenuRow
}

// BuildMenuReport costs every dish against catalog, keeping menu order.
func BuildMenuReport(dishes []models.Dish, subs []models.SubRecipe, catalog costing.Catalog) MenuReportData {
	data := MenuReportData{
		Summary: costing.Summarize(dishes, subs, catalog),
		Rows:    make([]MenuRow, 0, len(dishes)),
	}
	for _, dish := range dishes {
		cost := costing.CostDish(dish, catalog)
		data.Rows = append(data.Rows, MenuRow{
			ID:              dish.ID,
			Name:            dish.Name,
			Section:         dish.Section,
			MenuPrice:       dish.MenuPrice,
			Cost:            cost.Total,
			Profit:          cost.Profit,
			FoodCostPercent: cost.FoodCostPercent,
		})
	}
	return data
}

func menuReport(data MenuReportData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewWriter(w)
		h.Raw(`<section class="menu-report"><header><h1>Menu costing</h1></header><div class="stats">`)
		h.Render(ctx, components.StatCard("Dishes", fmt.Sprint(data.Summary.Dishes), "", ""))
		h.Render(ctx, components.StatCard("Sub-recipes", fmt.Sprint(data.Summary.SubRecipes), "", ""))
		h.Render(ctx, components.StatCard("Average margin", FormatMoney(data.Summary.AverageMargin), "", "Per plate"))
		h.Render(ctx, components.StatCard("Average food cost", FormatPercent(data.Summary.AverageFoodCostPercent), "", "Priced dishes only"))
		h.Raw(`</div>`)
		if len(data.Rows) == 0 {
			h.Raw(`<p class="empty">No dishes yet. Import a menu to get started.</p></section>`)
			return h.Err()
		}
		h.Raw(`<table><thead><tr><th>Dish</th><th>Section</th><th>Selling price</th><th>Cost</th><th>Margin</th><th>Food cost</th></tr></thead><tbody>`)
		for _, row := range data.Rows {
			h.Raw(`<tr`)
			h.Attr("data-dish-id", row.ID)
			h.Raw(`><td>`)
			h.Text(DefaultDash(row.Name))
			h.Raw(`</td><td>`)
			h.Text(string(row.Section))
			h.Raw(`</td><td>`)
			h.Text(FormatMoney(row.MenuPrice))
			h.Raw(`</td><td>`)
			h.Text(FormatMoney(row.Cost))
			h.Raw(`</td><td>`)
			h.Text(FormatMoney(row.Profit))
			h.Raw(`</td><td>`)
			if row.MenuPrice > 0 {
				h.Text(FormatPercent(row.FoodCostPercent))
			} else {
				h.Text(DefaultDash(""))
			}
			h.Raw(`</td></tr>`)
		}
		h.Raw(`</tbody></table></section>`)
		return h.Err()
	})
}

// MenuReport renders the signed-in dashboard.
func MenuReport(data MenuReportData) templ.Component {
	return layout.Layout("Menu | Chaos Catering", components.AppSidebar("menu"), menuReport(data), true)
}

func MenuReportPartial(data MenuReportData) templ.Component {
	return menuReport(data)
}
