package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/smishguard/internal/api"
	"github.com/yildizm/smishguard/internal/nav"
)

// Verdict summarizes where a settled analysis landed
type Verdict string

const (
	VerdictRisk    Verdict = "risk"
	VerdictSafe    Verdict = "safe"
	VerdictError   Verdict = "error"
	VerdictPending Verdict = "pending"
)

// Report is one settled analysis as shown to the user
type Report struct {
	Verdict     Verdict   `json:"verdict"`
	Message     string    `json:"message"`
	RequestID   string    `json:"request_id,omitempty"`
	Label       api.Label `json:"label,omitempty"`
	Score       *float64  `json:"score,omitempty"`
	Reasons     []string  `json:"reasons"`
	Error       string    `json:"error,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NewReport builds a report from a controller snapshot
func NewReport(st nav.State) *Report {
	r := &Report{
		Message:     st.Text,
		Reasons:     []string{},
		GeneratedAt: time.Now(),
	}

	switch {
	case st.Err != "":
		r.Verdict = VerdictError
		r.Error = st.Err
	case st.Response != nil:
		r.RequestID = st.Response.RequestID
		r.Label = st.Response.Result.Label
		r.Score = st.Response.Result.Score
		if st.Response.Result.Reasons != nil {
			r.Reasons = st.Response.Result.Reasons
		}
		r.Verdict = VerdictSafe
		if r.Label.IsFraudulent() {
			r.Verdict = VerdictRisk
		}
	default:
		r.Verdict = VerdictPending
	}
	return r
}

// Headline is the one-line verdict text
func (r *Report) Headline() string {
	switch r.Verdict {
	case VerdictRisk:
		return "Likely smishing"
	case VerdictSafe:
		if r.Label == api.LabelUnknown {
			return "No clear verdict"
		}
		return "Looks safe"
	case VerdictError:
		return "Analysis failed"
	default:
		return "Analysis pending"
	}
}

// ClipboardSummary is the plain text copied by the result screens
func (r *Report) ClipboardSummary() string {
	result := "safe"
	switch r.Verdict {
	case VerdictRisk:
		result = "risk"
	case VerdictError:
		result = "error"
	case VerdictPending:
		result = "pending"
	}

	var b strings.Builder
	b.WriteString("[SmishGuard analysis]\n")
	fmt.Fprintf(&b, "Result: %s\n", result)
	if r.Label != "" {
		fmt.Fprintf(&b, "Label: %s\n", r.LabelText())
	}
	if r.Score != nil {
		fmt.Fprintf(&b, "Score: %s\n", formatScore(r.Score))
	}
	for i, reason := range r.Reasons {
		fmt.Fprintf(&b, "Reason %d: %s\n", i+1, reason)
	}
	b.WriteString("\nMessage:\n")
	b.WriteString(r.Message)
	return b.String()
}

// LabelText renders the label with its English name
func (r *Report) LabelText() string {
	if r.Label == "" {
		return "-"
	}
	if r.Label.Known() {
		return string(r.Label) + " (" + r.Label.English() + ")"
	}
	return string(r.Label)
}
