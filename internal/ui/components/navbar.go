package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// NavItem is one entry of the bottom navigation bar
type NavItem struct {
	Key    string
	Label  string
	Active bool

	// Badge is shown next to the label when greater than zero
	Badge int
}

// NavBar renders the bottom navigation
type NavBar struct {
	Items     []NavItem
	Item      lipgloss.Style
	Active    lipgloss.Style
	BadgeText lipgloss.Style
	Separator string
}

// NewNavBar creates a navigation bar with unstyled items
func NewNavBar(items ...NavItem) *NavBar {
	return &NavBar{
		Items:     items,
		Item:      lipgloss.NewStyle().Padding(0, 1),
		Active:    lipgloss.NewStyle().Padding(0, 1).Bold(true),
		BadgeText: lipgloss.NewStyle(),
		Separator: " ",
	}
}

// Render renders every item on one line
func (n *NavBar) Render() string {
	parts := make([]string, 0, len(n.Items))
	for _, item := range n.Items {
		text := item.Key + " " + item.Label
		if item.Badge > 0 {
			text += " " + n.BadgeText.Render(fmt.Sprintf("(%d)", item.Badge))
		}

		style := n.Item
		if item.Active {
			style = n.Active
		}
		parts = append(parts, style.Render(text))
	}
	return strings.Join(parts, n.Separator)
}
