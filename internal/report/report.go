// Package report renders run manifests as human-readable reports:
// a markdown summary and its HTML rendering for the API.
package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"gocopula/domain/run"
	"gocopula/internal/depstats"
)

// Markdown builds a markdown report for one run manifest
func Markdown(m *run.Manifest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Reorder run %s\n\n", m.RunID)
	fmt.Fprintf(&b, "- **Created:** %s\n", m.CreatedAt)
	fmt.Fprintf(&b, "- **Shape:** %d variables × %d samples\n", m.VariableCount, m.SampleCount)
	fmt.Fprintf(&b, "- **Tie policy:** %s\n", m.TiePolicy)
	fmt.Fprintf(&b, "- **Fingerprint:** `%s`\n\n", m.Fingerprint())

	b.WriteString("## Batch hashes\n\n")
	fmt.Fprintf(&b, "| Batch | Hash |\n|---|---|\n")
	fmt.Fprintf(&b, "| Marginal | `%s` |\n", m.MarginalHash)
	fmt.Fprintf(&b, "| Copula | `%s` |\n", m.CopulaHash)
	fmt.Fprintf(&b, "| Output | `%s` |\n\n", m.OutputHash)

	if m.TargetDep != nil && m.AchievedDep != nil {
		b.WriteString("## Dependence: target vs achieved\n\n")
		fmt.Fprintf(&b, "Tail quantile: %.3f\n\n", m.TargetDep.TailQuantile)
		b.WriteString("| Pair | ρ target | ρ achieved | τ target | τ achieved | λL achieved | λU achieved |\n")
		b.WriteString("|---|---|---|---|---|---|---|\n")
		for i, target := range m.TargetDep.Pairs {
			achieved := pairAt(m.AchievedDep, i)
			fmt.Fprintf(&b, "| %s / %s | %.4f | %.4f | %.4f | %.4f | %.4f | %.4f |\n",
				target.VariableX, target.VariableY,
				target.SpearmanRho, achieved.SpearmanRho,
				target.KendallTau, achieved.KendallTau,
				achieved.LowerTail, achieved.UpperTail)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("_No dependence summaries (degenerate shape)._\n")
	}

	return b.String()
}

// HTML renders the markdown report to HTML
func HTML(m *run.Manifest) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(Markdown(m)), p, renderer)
}

func pairAt(s *depstats.Summary, i int) depstats.PairSummary {
	if s == nil || i >= len(s.Pairs) {
		return depstats.PairSummary{}
	}
	return s.Pairs[i]
}
