package report

import (
	"strings"
	"testing"

	"somnoseg/domain/sleep"
	"somnoseg/internal/analysis"
	"somnoseg/ports"
)

func TestMarkdown_IncludesSections(t *testing.T) {
	transitions, err := analysis.CountTransitions([]sleep.Stage{sleep.Wake, sleep.NREM, sleep.Wake})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	md := Markdown(&ports.AnalysisSummary{
		Source: "sub-017.csv",
		Bouts: []analysis.DurationSummary{
			{Stage: sleep.NREM, Count: 2, TotalSamples: 50, Mean: 25, Median: 25},
		},
		Transitions: transitions,
		Tests: []analysis.TestResult{
			{TestName: "one_way_anova", Statistic: 4.5, PValue: 0.013, Groups: 3},
		},
	})

	for _, want := range []string{
		"# Sleep analysis summary",
		"sub-017.csv",
		"## Bout durations",
		"## Stage transitions",
		"## Statistical tests",
		"one_way_anova",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestMarkdown_SkipsEmptySections(t *testing.T) {
	md := Markdown(&ports.AnalysisSummary{})
	if strings.Contains(md, "## Bout durations") {
		t.Error("empty summary should not render a bout section")
	}
}

func TestHTML_RendersTables(t *testing.T) {
	md := Markdown(&ports.AnalysisSummary{
		Bouts: []analysis.DurationSummary{{Stage: sleep.Wake, Count: 1, Mean: 10}},
	})

	html := string(HTML(md))
	if !strings.Contains(html, "<table>") {
		t.Error("expected an HTML table in the rendered report")
	}
	if !strings.Contains(html, "<h1") {
		t.Error("expected a heading in the rendered report")
	}
}
