package audit

import (
	"fmt"
	"strings"

	"pathedit/internal/model"
)

// GenerateReport renders result as plain text. Verbose adds raw values,
// expansions and directory contents.
func GenerateReport(result model.AnalysisResult, verbose bool) string {
	var b strings.Builder

	b.WriteString("PATH report\n")
	b.WriteString("===========\n\n")

	for _, s := range result.Scopes {
		fmt.Fprintf(&b, "%-20s %-14s %d entries\n", s.Scope.Title(), s.Encoding, s.Count)
		if verbose {
			fmt.Fprintf(&b, "  raw: %s\n", s.Raw)
		}
	}
	b.WriteString("\n")

	n := len(result.PathEntries)
	if n == 0 {
		b.WriteString("No PATH entries.\n")
	}
	for i, e := range result.PathEntries {
		fmt.Fprintf(&b, "%3d  %-6s %s  %s\n", i+1, e.Scope, Flags(e, i, n), e.Value)
		if verbose {
			if e.Expanded != e.Value {
				fmt.Fprintf(&b, "       -> %s\n", e.Expanded)
			}
			if e.Dir.IsDir {
				fmt.Fprintf(&b, "       %d executables", e.Dir.Executables)
				if len(e.Dir.Sample) > 0 {
					fmt.Fprintf(&b, " (%s)", strings.Join(e.Dir.Sample, ", "))
				}
				b.WriteString("\n")
			}
			for _, d := range e.Diagnostics {
				fmt.Fprintf(&b, "       ! %s\n", d)
			}
		}
		if e.Remediation != "" {
			fmt.Fprintf(&b, "       Fix: %s\n", e.Remediation)
		}
	}

	b.WriteString("\n")
	if len(result.Diagnostics) == 0 {
		b.WriteString("No problems found.\n")
	} else {
		b.WriteString("Problems:\n")
		for _, d := range result.Diagnostics {
			fmt.Fprintf(&b, "  - %s\n", d)
		}
	}

	b.WriteString("\nLegend: ")
	b.WriteString(model.IconPriorityHigh + " searched first  ")
	b.WriteString(model.IconPriorityLow + " searched last  ")
	b.WriteString(model.IconDuplicate + " duplicate  ")
	b.WriteString(model.IconMissing + " missing  ")
	b.WriteString(model.IconToken + " expands variables\n")
	return b.String()
}
