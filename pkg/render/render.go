// Package render builds the HTML fragment for the status groups and splices
// it into the destination page between sentinel markers.
package render

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/gmpwatch/gmpwatch/pkg/listing"
)

// Sentinel markers in the destination page. Everything between them is
// replaced on every run.
const (
	MarkerStart = "<!-- gmpwatch:start -->"
	MarkerEnd   = "<!-- gmpwatch:end -->"
)

type section struct {
	heading string
	class   string
	rows    []listing.Row
}

// Fragment renders the grouped rows as card markup, active first, then
// upcoming, then closed. A group heading is only emitted when the group has
// rows. Apart from the timestamp line the output is a pure function of the
// input.
func Fragment(g listing.Groups, renderedAt time.Time) string {
	sections := []section{
		{"Open IPOs", "active", g.Active},
		{"Upcoming IPOs", "upcoming", g.Upcoming},
		{"Recently Closed", "closed", g.Closed},
	}

	var b strings.Builder
	for _, s := range sections {
		if len(s.rows) == 0 {
			continue
		}
		fmt.Fprintf(&b, "<h2 class=\"gmp-section gmp-%s\">%s</h2>\n", s.class, html.EscapeString(s.heading))
		for _, r := range s.rows {
			writeCard(&b, r, s.class)
		}
	}

	renderedAt = renderedAt.In(listing.IST)
	fmt.Fprintf(&b, "<div class=\"gmp-updated\" data-rendered-at=\"%s\">Updated %s IST</div>\n",
		renderedAt.Format(time.RFC3339), renderedAt.Format("2 Jan 2006, 15:04"))

	return b.String()
}

func writeCard(b *strings.Builder, r listing.Row, class string) {
	fmt.Fprintf(b, "<div class=\"gmp-card gmp-%s\">\n", class)
	fmt.Fprintf(b, "  <h3 class=\"gmp-name\">%s</h3>\n", html.EscapeString(r.Name))
	fmt.Fprintf(b, "  <div class=\"gmp-value\">%s</div>\n", GMPLabel(r))
	fmt.Fprintf(b, "  <div class=\"gmp-meta\">\n")
	fmt.Fprintf(b, "    <span class=\"gmp-date\">%s</span>\n", html.EscapeString(r.DateText))
	fmt.Fprintf(b, "    <span class=\"gmp-price\">%s</span>\n", html.EscapeString(r.Price))
	fmt.Fprintf(b, "    <span class=\"gmp-gain\">%s</span>\n", html.EscapeString(r.Gain))
	fmt.Fprintf(b, "    <span class=\"gmp-type\">%s</span>\n", html.EscapeString(r.Type))
	fmt.Fprintf(b, "  </div>\n")
	fmt.Fprintf(b, "</div>\n")
}

// GMPLabel renders the premium for display: up-glyph for a positive value,
// down-glyph with the absolute value for a negative one, the plain value for
// zero, and the escaped original text when no numeric value exists.
func GMPLabel(r listing.Row) string {
	if r.GMP == nil {
		return html.EscapeString(strings.TrimSpace(r.GMPRaw))
	}
	switch r.GMP.Sign() {
	case 1:
		return "▲ " + r.GMP.String()
	case -1:
		return "▼ " + r.GMP.Abs().String()
	default:
		return r.GMP.String()
	}
}

// Splice replaces whatever currently sits between the sentinel markers with
// the fragment. Re-running with the same fragment yields the same document.
func Splice(doc, fragment string) (string, error) {
	start := strings.Index(doc, MarkerStart)
	if start < 0 {
		return "", fmt.Errorf("destination is missing the %q marker", MarkerStart)
	}
	end := strings.Index(doc, MarkerEnd)
	if end < 0 {
		return "", fmt.Errorf("destination is missing the %q marker", MarkerEnd)
	}
	if end < start {
		return "", fmt.Errorf("destination markers are out of order")
	}

	var b strings.Builder
	b.WriteString(doc[:start+len(MarkerStart)])
	b.WriteString("\n")
	b.WriteString(fragment)
	b.WriteString(doc[end:])
	return b.String(), nil
}
