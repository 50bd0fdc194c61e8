// Package report renders a run report as Markdown and HTML.
package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"serovis/domain/titer"
	"serovis/internal/summary"
)

// Markdown builds the run report: run metadata, per-strain summary
// table and chart inventory.
func Markdown(rec *titer.RunRecord, sums []summary.StrainSummary, specs *titer.SpecSet) string {
	var b strings.Builder

	b.WriteString("# Titer run report\n\n")
	fmt.Fprintf(&b, "- Run: `%s`\n", rec.ID)
	fmt.Fprintf(&b, "- Created: %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "- Subject column: `%s`\n", rec.Options.SubjectCol)
	if rec.Options.GroupVar != "" {
		fmt.Fprintf(&b, "- Grouped by: `%s`\n", rec.Options.GroupVar)
	}
	b.WriteString("\n## Strains\n\n")
	b.WriteString("| Strain | Pairs | GMT pre | GMT post | Seroconversion | t | p |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, s := range sums {
		fmt.Fprintf(&b, "| %s | %d | %.1f | %.1f | %d/%d (%.0f%%) | %.2f | %.3g |\n",
			s.Strain, s.Pairs, s.GMTPre, s.GMTPost,
			s.Rises, s.KnownFlags, 100*s.Seroconversion, s.TStat, s.PValue)
	}

	b.WriteString("\n## Charts\n\n")
	for _, key := range specs.Keys {
		spec := specs.Specs[key]
		if spec.Blank {
			fmt.Fprintf(&b, "- %s: no data (placeholder panel)\n", key)
			continue
		}
		fmt.Fprintf(&b, "- %s: %d bars, %d subjects\n", key, len(spec.Rows), len(spec.Subjects))
	}

	return b.String()
}

// HTML converts a Markdown report to HTML.
func HTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, r)
}
