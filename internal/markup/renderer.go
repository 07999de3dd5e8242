package markup

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer renders instruction fragments for a terminal of a given width.
type Renderer struct {
	tr    *glamour.TermRenderer
	width int
}

// NewRenderer creates a renderer. dark selects the glamour style; width
// is the word-wrap column.
func NewRenderer(dark bool, width int) (*Renderer, error) {
	if width <= 0 {
		width = 80
	}
	style := glamour.WithStylePath("light")
	if dark {
		style = glamour.WithStylePath("dark")
	}
	tr, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	return &Renderer{tr: tr, width: width}, nil
}

// NewPlainRenderer renders Markdown without ANSI styling, for piped
// output.
func NewPlainRenderer(width int) (*Renderer, error) {
	if width <= 0 {
		width = 80
	}
	tr, err := glamour.NewTermRenderer(glamour.WithStylePath("notty"), glamour.WithWordWrap(width))
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	return &Renderer{tr: tr, width: width}, nil
}

// Width returns the wrap column.
func (r *Renderer) Width() int { return r.width }

// Render converts an instructions fragment and renders it. When glamour
// fails the Markdown is returned as is.
func (r *Renderer) Render(fragment string) string {
	md, err := ToMarkdown(fragment)
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	out, err := r.tr.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
