package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/tmaury/fincoach/journal"
)

// HistoryMarkdown renders past recorded sessions, newest first.
func HistoryMarkdown(entries []journal.Entry) string {
	var b strings.Builder
	b.WriteString("# Session History\n\n")
	ConditionalBlock(&b, func(w io.Writer) bool { return renderHistoryTable(w, entries) })
	if len(entries) == 0 {
		b.WriteString("No recorded sessions.\n")
	}
	return b.String()
}

func renderHistoryTable(w io.Writer, entries []journal.Entry) bool {
	if len(entries) == 0 {
		return false
	}
	fmt.Fprintf(w, "| Date | Kind | Scenario | Net Worth | Risk | Confidence |\n")
	fmt.Fprintf(w, "|:---|:---|:---|---:|---:|---:|\n")
	for _, e := range entries {
		fmt.Fprintf(w, "| %s | %s | %s | %s | %d | %s |\n",
			e.Time.Format("2006-01-02"), e.Kind, e.Scenario,
			Money(e.NetWorth), e.RiskScore, Percent(e.Confidence))
	}
	fmt.Fprintf(w, "\n")
	return true
}
