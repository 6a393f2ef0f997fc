package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ScoreBar renders a 0..1 score as a filled bar
type ScoreBar struct {
	Width int
	Label string

	// Filled and Empty style the two parts of the bar
	Filled lipgloss.Style
	Empty  lipgloss.Style
}

// NewScoreBar creates a score bar of the given width
func NewScoreBar(width int) *ScoreBar {
	if width < 1 {
		width = 20
	}
	return &ScoreBar{
		Width:  width,
		Filled: lipgloss.NewStyle().Bold(true),
		Empty:  lipgloss.NewStyle().Faint(true),
	}
}

// SetColors styles the filled and empty parts
func (s *ScoreBar) SetColors(filled, empty lipgloss.TerminalColor) *ScoreBar {
	s.Filled = s.Filled.Foreground(filled)
	s.Empty = s.Empty.Foreground(empty)
	return s
}

// Render renders the bar. A nil score renders "n/a".
func (s *ScoreBar) Render(score *float64) string {
	if score == nil {
		return s.withLabel("n/a")
	}

	value := *score
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}

	filledWidth := int(float64(s.Width)*value + 0.5)
	emptyWidth := s.Width - filledWidth

	bar := s.Filled.Render(strings.Repeat("█", filledWidth)) + s.Empty.Render(strings.Repeat("░", emptyWidth))
	return s.withLabel(fmt.Sprintf("[%s] %.0f%%", bar, value*100))
}

func (s *ScoreBar) withLabel(body string) string {
	if s.Label == "" {
		return body
	}
	return s.Label + " " + body
}
