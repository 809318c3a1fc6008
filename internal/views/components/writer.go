package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Writer writes markup, remembering the first error so components can be
// written as a straight sequence of calls.
type Writer struct {
	w   io.Writer
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup as is.
func (h *Writer) Raw(markup string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, markup)
}

// Text writes escaped text.
func (h *Writer) Text(value string) {
	h.Raw(templ.EscapeString(value))
}

// Attr writes name="value" with the value escaped, preceded by a space.
func (h *Writer) Attr(name, value string) {
	h.Raw(" " + name + "=\"" + templ.EscapeString(value) + "\"")
}

// Render writes a nested component in place. A nil component is skipped.
func (h *Writer) Render(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// Err is the first error encountered.
func (h *Writer) Err() error {
	return h.err
}
