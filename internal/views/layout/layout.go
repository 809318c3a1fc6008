package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"chaoscatering/internal/views/components"
)

func bodyWrapperClass(showSidebar bool) string {
	if showSidebar {
		return "app-shell with-sidebar"
	}
	return "app-shell"
}

func mainClass(showSidebar bool) string {
	if showSidebar {
		return "app-main"
	}
	return "app-main centered"
}

// Layout renders the HTML document around content. The sidebar is only
// shown when showSidebar is set.
func Layout(title string, sidebar, content templ.Component, showSidebar bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewWriter(w)
		h.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.Text(title)
		h.Raw(`</title><link rel="stylesheet" href="/assets/app.css"><script src="https://unpkg.com/htmx.org@1.9.12" defer></script></head>`)
		h.Raw(`<body><div`)
		h.Attr("class", bodyWrapperClass(showSidebar))
		h.Raw(`>`)
		if showSidebar {
			h.Render(ctx, sidebar)
		}
		h.Raw(`<main id="content"`)
		h.Attr("class", mainClass(showSidebar))
		h.Raw(`>`)
		h.Render(ctx, content)
		h.Raw(`</main></div></body></html>`)
		return h.Err()
	})
}
