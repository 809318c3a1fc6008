package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func linkState(active, section string) string {
	if active == section {
		return "active"
	}
	return "inactive"
}

// StatCard renders a headline figure for the dashboard.
func StatCard(label, value, delta, caption string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewWriter(w)
		h.Raw(`<div class="stat-card"><p class="stat-label">`)
		h.Text(label)
		h.Raw(`</p><p class="stat-value">`)
		h.Text(value)
		h.Raw(`</p>`)
		if delta != "" {
			h.Raw(`<p class="stat-delta">`)
			h.Text(delta)
			h.Raw(`</p>`)
		}
		if caption != "" {
			h.Raw(`<p class="stat-caption">`)
			h.Text(caption)
			h.Raw(`</p>`)
		}
		h.Raw(`</div>`)
		return h.Err()
	})
}

// Flash renders a status banner. An empty message renders nothing.
func Flash(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if message == "" {
			return nil
		}
		h := NewWriter(w)
		h.Raw(`<div class="flash" role="alert">`)
		h.Text(message)
		h.Raw(`</div>`)
		return h.Err()
	})
}

type SidebarLink struct {
	Label   string
	Path    string
	Section string
}

type SidebarData struct {
	Active string
	Links  []SidebarLink
}

// Sidebar renders the application navigation.
func Sidebar(data SidebarData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewWriter(w)
		h.Raw(`<nav class="sidebar"><ul>`)
		for _, link := range data.Links {
			h.Raw(`<li><a`)
			h.Attr("href", link.Path)
			h.Attr("hx-boost", "true")
			h.Attr("data-state", linkState(data.Active, link.Section))
			h.Raw(`>`)
			h.Text(link.Label)
			h.Raw(`</a></li>`)
		}
		h.Raw(`</ul><form method="post" action="/logout"><button type="submit">Sign out</button></form></nav>`)
		return h.Err()
	})
}

// AppSidebar is the sidebar of the signed-in application.
func AppSidebar(active string) templ.Component {
	return Sidebar(SidebarData{
		Active: active,
		Links: []SidebarLink{
			{Label: "Menu", Path: "/app", Section: "menu"},
			{Label: "Prep Sheet", Path: "/app/prep/sheet", Section: "prep"},
			{Label: "Export CSV", Path: "/app/api/menu/export.csv", Section: "export"},
		},
	})
}
