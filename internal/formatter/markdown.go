package formatter

import (
	"fmt"
	"strings"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(report *Report) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("report is required")
	}

	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", report.Headline())
	fmt.Fprintf(&b, "Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))

	if report.Verdict == VerdictError {
		b.WriteString("## Error\n\n")
		fmt.Fprintf(&b, "```\n%s\n```\n", report.Error)
		return []byte(b.String()), nil
	}

	f.writeSummaryTable(&b, report)
	f.writeMessage(&b, report.Message)
	f.writeReasons(&b, report.Reasons)

	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeSummaryTable(b *strings.Builder, report *Report) {
	b.WriteString("## Summary\n\n")
	b.WriteString("| Field | Value |\n")
	b.WriteString("|-------|-------|\n")
	fmt.Fprintf(b, "| Verdict | %s |\n", report.Verdict)
	fmt.Fprintf(b, "| Label | %s |\n", escapeCell(report.LabelText()))
	fmt.Fprintf(b, "| Score | %s |\n", formatScore(report.Score))
	fmt.Fprintf(b, "| Request | `%s` |\n\n", orDash(report.RequestID))
}

func (f *markdownFormatter) writeMessage(b *strings.Builder, message string) {
	if message == "" {
		return
	}
	b.WriteString("## Message\n\n")
	for _, line := range strings.Split(strings.TrimRight(message, "\n"), "\n") {
		b.WriteString("> " + line + "\n")
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeReasons(b *strings.Builder, reasons []string) {
	b.WriteString("## Reasons\n\n")
	if len(reasons) == 0 {
		b.WriteString("_" + noReasons + "_\n")
		return
	}
	for i, reason := range reasons {
		fmt.Fprintf(b, "%d. %s\n", i+1, reason)
	}
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
