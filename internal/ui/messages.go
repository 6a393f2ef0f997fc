package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yildizm/smishguard/internal/nav"
	"github.com/yildizm/smishguard/internal/submission"
)

// analysisSettledMsg is delivered when a submission run returns,
// whether or not its result was still wanted
type analysisSettledMsg struct {
	outcome submission.Outcome
}

// CreateAnalysisCommand runs the submission for an activating transition
// off the UI goroutine. Non-activating transitions yield no command.
func CreateAnalysisCommand(ctx context.Context, core *submission.Core, t nav.Transition) tea.Cmd {
	if core == nil || !t.Activates() {
		return nil
	}
	return func() tea.Msg {
		return analysisSettledMsg{outcome: core.Run(ctx, t)}
	}
}
