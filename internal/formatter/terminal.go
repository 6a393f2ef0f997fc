package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/go-termfmt"
)

// terminalFormatter formats a report as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter
func NewTerminal(o Options) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = o.Color
	opts.Emoji = o.Emoji
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(report *Report) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("report is required")
	}

	var b strings.Builder

	f.writeHeader(&b, report)

	if report.Verdict == VerdictError {
		fmt.Fprintf(&b, "%s\n", report.Error)
		return []byte(b.String()), nil
	}

	f.writeDetails(&b, report)
	f.writeMessage(&b, report)
	f.writeReasons(&b, report.Reasons)

	return []byte(b.String()), nil
}

// writeHeader writes the verdict inside a box
func (f *terminalFormatter) writeHeader(b *strings.Builder, report *Report) {
	header := verdictEmoji(report.Verdict, f.opts) + " " + report.Headline()
	width := len([]rune(report.Headline())) + 4

	b.WriteString("╔" + strings.Repeat("═", width) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", width) + "╝\n\n")
}

func (f *terminalFormatter) writeDetails(b *strings.Builder, report *Report) {
	items := []termfmt.TreeItem{
		{Label: "Label", Value: report.LabelText()},
		{Label: "Score", Value: formatScore(report.Score)},
	}
	if report.Score != nil {
		items = append(items, termfmt.TreeItem{Label: "Bar", Value: createConfidenceBar(*report.Score, f.opts)})
	}
	items = append(items, termfmt.TreeItem{Label: "Request", Value: orDash(report.RequestID), Last: true})

	b.WriteString(termfmt.GetEmoji("statistics", f.opts) + " Result\n")
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

func (f *terminalFormatter) writeMessage(b *strings.Builder, report *Report) {
	if report.Message == "" {
		return
	}
	b.WriteString("Message\n")
	for _, line := range strings.Split(strings.TrimRight(report.Message, "\n"), "\n") {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")
}

func (f *terminalFormatter) writeReasons(b *strings.Builder, reasons []string) {
	b.WriteString(termfmt.GetEmoji("insight", f.opts) + " Reasons\n")
	if len(reasons) == 0 {
		b.WriteString("• " + noReasons + "\n")
		return
	}
	for i, reason := range reasons {
		fmt.Fprintf(b, "%d. %s\n", i+1, reason)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
