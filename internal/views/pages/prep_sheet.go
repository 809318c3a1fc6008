package pages

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"

	"chaoscatering/internal/costing"
	"chaoscatering/internal/views/components"
	"chaoscatering/internal/views/layout"
)

// PrepSheetData feeds the printable prep sheet.
type PrepSheetData struct {
	Date   time.Time
	Dishes int
	List   costing.PrepList
}

func prepTable(h *components.Writer, title string, items []costing.PrepItem) {
	h.Raw(`<section class="prep-pool"><h2>`)
	h.Text(title)
	h.Raw(`</h2><table><thead><tr><th>Item</th><th>Quantity</th><th>Done</th></tr></thead><tbody>`)
	for _, item := range items {
		h.Raw(`<tr`)
		h.Attr("data-ingredient-id", item.IngredientID)
		h.Raw(`><td>`)
		h.Text(item.Name)
		h.Raw(`</td><td>`)
		h.Text(FormatQuantity(item.Qty, item.Unit))
		h.Raw(`</td><td class="tick"></td></tr>`)
	}
	h.Raw(`</tbody></table></section>`)
}

func prepSheet(data PrepSheetData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewWriter(w)
		h.Raw(`<article class="prep-sheet"><header><h1>Prep sheet</h1><p>`)
		h.Text(FormatReportDate(data.Date))
		h.Raw(`</p><p class="selection">`)
		h.Text(fmt.Sprintf("%d dishes selected", data.Dishes))
		h.Raw(`</p><button type="button" onclick="window.print()">Print</button></header>`)

		empty := len(data.List.Manufactured) == 0
		if !empty {
			prepTable(h, "Production", data.List.Manufactured)
		}
		for _, section := range data.List.Sections {
			items := data.List.BySection[section]
			if len(items) == 0 {
				continue
			}
			empty = false
			prepTable(h, string(section)+" pull list", items)
		}
		if empty {
			h.Raw(`<p class="empty">Select dishes to build today's prep list.</p>`)
		}
		h.Raw(`</article>`)
		return h.Err()
	})
}

// PrepSheet renders the printable production and pull lists.
func PrepSheet(data PrepSheetData) templ.Component {
	return layout.Layout("Prep sheet | Chaos Catering", components.AppSidebar("prep"), prepSheet(data), true)
}
