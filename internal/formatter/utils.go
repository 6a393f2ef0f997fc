package formatter

import (
	"fmt"

	"github.com/yildizm/go-termfmt"
)

const noReasons = "no reasons provided"

// verdictEmoji returns the emoji for a verdict using go-termfmt
func verdictEmoji(v Verdict, opts *termfmt.TerminalOptions) string {
	switch v {
	case VerdictRisk:
		return termfmt.GetEmoji("error", opts)
	case VerdictSafe:
		return termfmt.GetEmoji("info", opts)
	case VerdictError:
		return termfmt.GetEmoji("warning", opts)
	default:
		return termfmt.GetEmoji("insight", opts)
	}
}

// formatScore renders a 0..1 score as a percentage
func formatScore(score *float64) string {
	if score == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.0f%%", clampScore(*score)*100)
}

func clampScore(s float64) float64 {
	switch {
	case s < 0:
		return 0
	case s > 1:
		return 1
	default:
		return s
	}
}

// createConfidenceBar creates an ASCII score bar using go-termfmt
func createConfidenceBar(score float64, opts *termfmt.TerminalOptions) string {
	return termfmt.CreateConfidenceBar(clampScore(score), opts)
}
