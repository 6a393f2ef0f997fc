package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Theme represents a color theme for the TUI
type Theme struct {
	Name string

	// Primary colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor

	// Verdict colors
	Risk lipgloss.AdaptiveColor
	Safe lipgloss.AdaptiveColor

	// Semantic colors
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor

	// UI colors
	Border   lipgloss.AdaptiveColor
	Muted    lipgloss.AdaptiveColor
	Selected lipgloss.AdaptiveColor
	Badge    lipgloss.AdaptiveColor
}

// buildTheme creates a theme from [light, dark] pairs
func buildTheme(name string, primary, secondary, risk, safe, warning, errorColor, info, border, muted, selected, badge [2]string) Theme {
	c := func(pair [2]string) lipgloss.AdaptiveColor {
		return lipgloss.AdaptiveColor{Light: pair[0], Dark: pair[1]}
	}
	return Theme{
		Name:      name,
		Primary:   c(primary),
		Secondary: c(secondary),
		Risk:      c(risk),
		Safe:      c(safe),
		Warning:   c(warning),
		Error:     c(errorColor),
		Info:      c(info),
		Border:    c(border),
		Muted:     c(muted),
		Selected:  c(selected),
		Badge:     c(badge),
	}
}

// Available themes
var (
	DefaultTheme = buildTheme("default",
		[2]string{"#1E40AF", "#60A5FA"}, [2]string{"#6B7280", "#9CA3AF"},
		[2]string{"#DC2626", "#F87171"}, [2]string{"#059669", "#34D399"},
		[2]string{"#D97706", "#FBBF24"}, [2]string{"#B91C1C", "#EF4444"},
		[2]string{"#0891B2", "#06B6D4"}, [2]string{"#D1D5DB", "#374151"},
		[2]string{"#6B7280", "#9CA3AF"}, [2]string{"#DBEAFE", "#1E3A8A"},
		[2]string{"#EF4444", "#EF4444"})

	HighContrastTheme = buildTheme("high-contrast",
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"},
		[2]string{"#CC0000", "#FF4444"}, [2]string{"#006600", "#00FF00"},
		[2]string{"#CC6600", "#FFAA00"}, [2]string{"#CC0000", "#FF4444"},
		[2]string{"#0066CC", "#4499FF"}, [2]string{"#000000", "#FFFFFF"},
		[2]string{"#666666", "#BBBBBB"}, [2]string{"#CCCCCC", "#333333"},
		[2]string{"#CC0000", "#FF4444"})

	MinimalTheme = buildTheme("minimal",
		[2]string{"#2D3748", "#E2E8F0"}, [2]string{"#718096", "#A0AEC0"},
		[2]string{"#C53030", "#FC8181"}, [2]string{"#2F855A", "#68D391"},
		[2]string{"#C05621", "#F6AD55"}, [2]string{"#C53030", "#FC8181"},
		[2]string{"#2B6CB0", "#63B3ED"}, [2]string{"#E2E8F0", "#2D3748"},
		[2]string{"#A0AEC0", "#718096"}, [2]string{"#EDF2F7", "#2D3748"},
		[2]string{"#C53030", "#FC8181"})
)

// ThemeByName looks up a theme. Unknown names return the default theme and false.
func ThemeByName(name string) (Theme, bool) {
	switch name {
	case "", "default":
		return DefaultTheme, true
	case "high-contrast":
		return HighContrastTheme, true
	case "minimal":
		return MinimalTheme, true
	default:
		return DefaultTheme, false
	}
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"default", "high-contrast", "minimal"}
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}

// Styles contains all the styled components
type Styles struct {
	Theme Theme

	Title  lipgloss.Style
	Header lipgloss.Style
	Body   lipgloss.Style
	Muted  lipgloss.Style

	Risk    lipgloss.Style
	Safe    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	Banner      lipgloss.Style
	ErrorBanner lipgloss.Style
	Card        lipgloss.Style
	RiskCard    lipgloss.Style
	SafeCard    lipgloss.Style
	Message     lipgloss.Style

	NavItem   lipgloss.Style
	NavActive lipgloss.Style
	Badge     lipgloss.Style
}

// NewStyles builds styles for a theme. With color off every style is plain.
func NewStyles(theme Theme, color bool) *Styles {
	if !color {
		plain := lipgloss.NewStyle()
		boxed := plain.Border(lipgloss.NormalBorder()).Padding(0, 1)
		return &Styles{
			Theme: theme, Title: plain.Bold(true), Header: plain.Bold(true), Body: plain, Muted: plain,
			Risk: plain.Bold(true), Safe: plain.Bold(true), Warning: plain, Error: plain, Info: plain,
			Banner: boxed, ErrorBanner: boxed, Card: boxed, RiskCard: boxed, SafeCard: boxed, Message: plain.PaddingLeft(2),
			NavItem: plain.Padding(0, 1), NavActive: plain.Padding(0, 1).Bold(true).Underline(true), Badge: plain,
		}
	}

	return &Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Body: lipgloss.NewStyle(),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Risk: lipgloss.NewStyle().
			Foreground(theme.Risk).
			Bold(true),

		Safe: lipgloss.NewStyle().
			Foreground(theme.Safe).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(theme.Info),

		Banner: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(1, 2),

		ErrorBanner: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Error).
			Foreground(theme.Error).
			Padding(0, 1),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, 2),

		RiskCard: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(theme.Risk).
			Padding(1, 2).
			Align(lipgloss.Center),

		SafeCard: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(theme.Safe).
			Padding(1, 2).
			Align(lipgloss.Center),

		Message: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(theme.Border).
			PaddingLeft(1),

		NavItem: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		NavActive: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Background(theme.Selected).
			Bold(true).
			Padding(0, 1),

		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(theme.Badge).
			Bold(true),
	}
}
