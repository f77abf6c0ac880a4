package report

import (
	"strings"
	"testing"

	"gocopula/domain/core"
	"gocopula/domain/run"
	"gocopula/internal/depstats"
)

func testManifest() *run.Manifest {
	m := run.NewManifest(2, 100, "first_wins")
	m.MarginalHash = "aaa"
	m.CopulaHash = "bbb"
	m.OutputHash = "ccc"
	m.TargetDep = &depstats.Summary{
		SampleCount:  100,
		TailQuantile: 0.05,
		Pairs: []depstats.PairSummary{
			{VariableX: "u1", VariableY: "u2", SpearmanRho: 0.8, KendallTau: 0.6},
		},
	}
	m.AchievedDep = &depstats.Summary{
		SampleCount:  100,
		TailQuantile: 0.05,
		Pairs: []depstats.PairSummary{
			{VariableX: "u1", VariableY: "u2", SpearmanRho: 0.79, KendallTau: 0.59, LowerTail: 0.2, UpperTail: 0.4},
		},
	}
	return m
}

func TestMarkdown(t *testing.T) {
	m := testManifest()
	md := Markdown(m)

	for _, want := range []string{
		m.RunID.String(),
		"2 variables × 100 samples",
		"first_wins",
		"u1 / u2",
		"0.8000",
		"0.7900",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown report missing %q", want)
		}
	}
}

func TestMarkdownWithoutSummaries(t *testing.T) {
	m := run.NewManifest(1, 1, "first_wins")
	m.MarginalHash = "aaa"
	m.CopulaHash = "bbb"
	m.OutputHash = "ccc"

	md := Markdown(m)
	if !strings.Contains(md, "No dependence summaries") {
		t.Error("Expected degenerate-shape note in report")
	}
}

func TestHTML(t *testing.T) {
	html := string(HTML(testManifest()))
	if !strings.Contains(html, "<table>") {
		t.Error("Expected rendered HTML table")
	}
	if !strings.Contains(html, "<h1") {
		t.Error("Expected rendered heading")
	}
}

func TestPairAtOutOfRange(t *testing.T) {
	s := &depstats.Summary{Pairs: []depstats.PairSummary{{VariableX: core.VariableKey("a")}}}
	if got := pairAt(s, 5); got.VariableX != "" {
		t.Errorf("Expected zero value for out-of-range index, got %+v", got)
	}
}
