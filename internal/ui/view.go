package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/smishguard/internal/emoji"
	"github.com/yildizm/smishguard/internal/formatter"
	"github.com/yildizm/smishguard/internal/nav"
	"github.com/yildizm/smishguard/internal/ui/components"
)

// View implements tea.Model
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	st := a.ctrl.State()

	var body string
	switch st.Screen {
	case nav.ScreenHome:
		body = a.renderHome(st)
	case nav.ScreenAnalyzing:
		body = a.renderAnalyzing()
	case nav.ScreenResultRisk, nav.ScreenResultSafe:
		body = a.renderResult(st)
	case nav.ScreenSearch:
		body = a.renderPlaceholder(emoji.GetEmoji("search")+" Search", "Look up numbers, links and senders reported by others.")
	case nav.ScreenProfile:
		body = a.renderPlaceholder(emoji.GetEmoji("profile")+" My page", "Account settings and saved reports will live here.")
	case nav.ScreenNotifications:
		body = a.renderNotifications()
	default:
		body = a.renderHome(st)
	}

	sections := []string{body}
	if a.notice != "" {
		style := a.styles.Info
		if a.noticeIsErr {
			style = a.styles.Warning
		}
		sections = append(sections, style.Render(a.notice))
	}
	sections = append(sections, "", a.renderNavBar(st.Screen))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) renderHome(st nav.State) string {
	banner := a.styles.Banner.Render(lipgloss.JoinVertical(lipgloss.Left,
		a.styles.Title.Render(emoji.GetEmoji("shield")+" Is the message you just got safe?"),
		a.styles.Muted.Render("Paste the SMS or DM below and run an analysis."),
	))

	parts := []string{banner, ""}

	if st.HasError() {
		parts = append(parts, a.styles.ErrorBanner.Render(emoji.GetEmoji("error")+" "+st.Err), "")
	}

	parts = append(parts,
		a.styles.Header.Render("Message"),
		a.input.View(),
		a.styles.Muted.Render("ctrl+s analyze • F1 home • ctrl+c quit"),
		"",
		a.styles.Muted.Render(emoji.GetEmoji("lock")+" The message is sent only for analysis and is not stored."),
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) renderAnalyzing() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		a.styles.Title.Render(emoji.GetEmoji("shield")+" SmishGuard"),
		"",
		fmt.Sprintf("%s Analysing message...", a.spinner.View()),
		"",
		a.styles.Muted.Render("esc to cancel"),
	)
	return lipgloss.Place(min(a.width, 80), max(8, a.height-4), lipgloss.Center, lipgloss.Center, a.styles.Card.Render(content))
}

func (a *App) renderResult(st nav.State) string {
	report := formatter.NewReport(st)
	risky := st.Screen == nav.ScreenResultRisk

	card := a.styles.SafeCard
	verdict := a.styles.Safe
	icon := emoji.GetEmoji("safe")
	bar := components.NewScoreBar(20).SetColors(a.styles.Theme.Safe, a.styles.Theme.Muted)
	if risky {
		card = a.styles.RiskCard
		verdict = a.styles.Risk
		icon = emoji.GetEmoji("risk")
		bar = components.NewScoreBar(20).SetColors(a.styles.Theme.Risk, a.styles.Theme.Muted)
	}
	bar.Label = "Score"

	headline := []string{
		verdict.Render(icon + " " + report.Headline()),
		"Label: " + report.LabelText(),
	}
	if report.Score != nil {
		headline = append(headline, bar.Render(report.Score))
	}

	message := report.Message
	if message == "" {
		message = "No message to analyse."
	}

	parts := []string{
		a.styles.Header.Render("Analysis result"),
		"",
		card.Width(max(20, min(a.width-4, 70))).Render(lipgloss.JoinVertical(lipgloss.Center, headline...)),
		"",
		a.styles.Header.Render("Message"),
		a.styles.Message.Render(message),
		"",
		a.styles.Header.Render(emoji.GetEmoji("reason") + " Why"),
		a.renderReasons(report.Reasons, risky),
		"",
		a.styles.Muted.Render("c copy result • h home • q quit"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) renderReasons(reasons []string, risky bool) string {
	if len(reasons) == 0 {
		return a.styles.Muted.Render("No reasons provided.")
	}

	marker := a.styles.Safe.Render("✓")
	if risky {
		marker = a.styles.Risk.Render("!")
	}

	lines := make([]string, 0, len(reasons))
	for i, r := range reasons {
		lines = append(lines, fmt.Sprintf("%s %d. %s", marker, i+1, r))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderNotifications() string {
	return a.renderPlaceholder(emoji.GetEmoji("bell")+" Notifications",
		"Alerts about new smishing campaigns will appear here. All caught up.")
}

func (a *App) renderPlaceholder(title, text string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		a.styles.Title.Render(title),
		"",
		a.styles.Card.Render(text),
		"",
		a.styles.Muted.Render("esc home • q quit"),
	)
}

func (a *App) renderNavBar(current nav.Screen) string {
	bar := components.NewNavBar(
		components.NavItem{Key: "F1", Label: emoji.GetEmoji("home") + " Home", Active: current == nav.ScreenHome},
		components.NavItem{Key: "F2", Label: emoji.GetEmoji("search") + " Search", Active: current == nav.ScreenSearch},
		components.NavItem{Key: "F3", Label: emoji.GetEmoji("bell") + " Alerts", Active: current == nav.ScreenNotifications, Badge: a.unread},
		components.NavItem{Key: "F4", Label: emoji.GetEmoji("profile") + " My page", Active: current == nav.ScreenProfile},
	)
	bar.Item = a.styles.NavItem
	bar.Active = a.styles.NavActive
	bar.BadgeText = a.styles.Badge
	bar.Separator = a.styles.Muted.Render("│")
	return bar.Render()
}
