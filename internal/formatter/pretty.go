package formatter

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// prettyFormatter renders the markdown report for the terminal with glamour
type prettyFormatter struct {
	markdown Formatter
	style    string
	width    int
}

// NewPretty creates a formatter that renders Markdown with terminal styling
func NewPretty(o Options) Formatter {
	style := "dark"
	if !o.Color {
		style = "notty"
	}
	width := o.Width
	if width <= 0 {
		width = 80
	}
	return &prettyFormatter{markdown: NewMarkdown(), style: style, width: width}
}

func (f *prettyFormatter) Format(report *Report) ([]byte, error) {
	md, err := f.markdown.Format(report)
	if err != nil {
		return nil, err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(f.style),
		glamour.WithWordWrap(f.width),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := renderer.Render(string(md))
	if err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	return []byte(out), nil
}
