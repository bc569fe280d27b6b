// Package report renders an analysis summary as a Markdown document, with
// optional HTML conversion for sharing outside the terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"somnoseg/domain/sleep"
	"somnoseg/ports"
)

// Markdown renders the summary as a Markdown document.
func Markdown(summary *ports.AnalysisSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Sleep analysis summary\n\n")
	if summary.Source != "" {
		fmt.Fprintf(&b, "Source: `%s`\n\n", summary.Source)
	}
	if !summary.Generated.IsZero() {
		fmt.Fprintf(&b, "Generated: %s\n\n", summary.Generated.Format("2006-01-02 15:04:05"))
	}

	if len(summary.Bouts) > 0 {
		b.WriteString("## Bout durations\n\n")
		b.WriteString("| Stage | Count | Total samples | Mean | Median | SEM | Min | Max |\n")
		b.WriteString("|---|---|---|---|---|---|---|---|\n")
		for _, s := range summary.Bouts {
			fmt.Fprintf(&b, "| %s | %d | %d | %.2f | %.2f | %.2f | %.0f | %.0f |\n",
				s.Stage, s.Count, s.TotalSamples, s.Mean, s.Median, s.SEM, s.Min, s.Max)
		}
		b.WriteString("\n")
	}

	if len(summary.LightDark) > 0 {
		b.WriteString("## Light vs dark bout durations\n\n")
		b.WriteString("| Stage | Period | Count | Mean | Median | SEM |\n")
		b.WriteString("|---|---|---|---|---|---|\n")
		for _, s := range summary.LightDark {
			fmt.Fprintf(&b, "| %s | %s | %d | %.2f | %.2f | %.2f |\n",
				s.Stage, s.Period, s.Count, s.Mean, s.Median, s.SEM)
		}
		b.WriteString("\n")
	}

	if summary.Transitions != nil && summary.Transitions.Total > 0 {
		b.WriteString("## Stage transitions\n\n")
		b.WriteString("| From | To | Count | Percent |\n")
		b.WriteString("|---|---|---|---|\n")
		stages := []sleep.Stage{sleep.Wake, sleep.NREM, sleep.REM}
		for _, from := range stages {
			for _, to := range stages {
				if from == to {
					continue
				}
				fmt.Fprintf(&b, "| %s | %s | %d | %.1f%% |\n",
					from, to, summary.Transitions.Counts[from][to], summary.Transitions.Percent(from, to))
			}
		}
		b.WriteString("\n")
	}

	if len(summary.Fractions) > 0 {
		fmt.Fprintf(&b, "## Stage fractions (%d bins)\n\n", len(summary.Fractions))
		b.WriteString("| Bin start | ZT | Wake % | NREM % | REM % |\n")
		b.WriteString("|---|---|---|---|---|\n")
		for _, bin := range summary.Fractions {
			fmt.Fprintf(&b, "| %s | %.1f | %.1f | %.1f | %.1f |\n",
				bin.BinStart.Format("2006-01-02 15:04"), bin.ZT,
				bin.WakePercent, bin.NREMPercent, bin.REMPercent)
		}
		b.WriteString("\n")
	}

	if len(summary.Tests) > 0 {
		b.WriteString("## Statistical tests\n\n")
		b.WriteString("| Test | Statistic | p-value | Groups |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, res := range summary.Tests {
			fmt.Fprintf(&b, "| %s | %.3f | %.4g | %d |\n", res.TestName, res.Statistic, res.PValue, res.Groups)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// HTML converts a Markdown report to a standalone HTML fragment.
func HTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer)
}
