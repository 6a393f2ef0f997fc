package formatter

import (
	"fmt"
	"strings"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(report *Report) ([]byte, error)
}

// Options control terminal-facing formatters
type Options struct {
	Color bool
	Emoji bool

	// Width is the wrap width for the pretty formatter. Zero means 80.
	Width int
}

// New returns the formatter registered under name
func New(name string, opts Options) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text":
		return NewTerminal(opts), nil
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "pretty":
		return NewPretty(opts), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (use text, json, markdown or pretty)", name)
	}
}
