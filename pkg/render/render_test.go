package render

import (
	"strings"
	"testing"
	"time"

	"github.com/gmpwatch/gmpwatch/pkg/listing"
)

var renderedAt = time.Date(2025, time.November, 16, 10, 30, 0, 0, listing.IST)

func TestFragmentSectionOrderAndHeadings(t *testing.T) {
	g := listing.Groups{
		Active: []listing.Row{{Name: "Acme", Status: listing.StatusActive}},
		Closed: []listing.Row{{Name: "Beta", Status: listing.StatusClosed}},
	}
	out := Fragment(g, renderedAt)

	active := strings.Index(out, "Open IPOs")
	closed := strings.Index(out, "Recently Closed")
	if active < 0 || closed < 0 {
		t.Fatalf("missing section headings:\n%s", out)
	}
	if active > closed {
		t.Fatal("active section should render before closed")
	}
	if strings.Contains(out, "Upcoming IPOs") {
		t.Fatal("empty group should not render a heading")
	}
}

func TestFragmentEscapesFields(t *testing.T) {
	g := listing.Groups{
		Upcoming: []listing.Row{{Name: "<script>alert(1)</script>", GMPRaw: "<b>?</b>"}},
	}
	out := Fragment(g, renderedAt)
	if strings.Contains(out, "<script>") {
		t.Fatal("name not escaped")
	}
	if strings.Contains(out, "<b>") {
		t.Fatal("raw premium text not escaped")
	}
}

func TestFragmentIdempotent(t *testing.T) {
	g := listing.Groups{
		Active: []listing.Row{{Name: "Acme", GMP: listing.ParseGMP("120")}},
	}
	if Fragment(g, renderedAt) != Fragment(g, renderedAt) {
		t.Fatal("identical input and instant should render identically")
	}
}

func TestGMPLabel(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"120", "▲ 120"},
		{"-5", "▼ 5"},
		{"0", "0"},
		{"—", "—"},
		{"", ""},
	}
	for _, tt := range tests {
		r := listing.Row{GMPRaw: tt.raw, GMP: listing.ParseGMP(tt.raw)}
		if got := GMPLabel(r); got != tt.want {
			t.Errorf("GMPLabel(%q) = %q, expected %q", tt.raw, got, tt.want)
		}
	}
}

func TestSpliceReplacesBetweenMarkers(t *testing.T) {
	doc := "<html>\n" + MarkerStart + "\nstale content\n" + MarkerEnd + "\n</html>"

	out, err := Splice(doc, "fresh\n")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "stale content") {
		t.Fatal("stale content survived the splice")
	}
	if !strings.Contains(out, "fresh") {
		t.Fatal("fragment missing from output")
	}

	// Re-running on the spliced document with the same fragment is a no-op.
	again, err := Splice(out, "fresh\n")
	if err != nil {
		t.Fatal(err)
	}
	if again != out {
		t.Fatal("splice is not idempotent")
	}
}

func TestSpliceMissingMarkers(t *testing.T) {
	if _, err := Splice("<html></html>", "x"); err == nil {
		t.Fatal("expected an error when markers are missing")
	}
	if _, err := Splice(MarkerEnd+" "+MarkerStart, "x"); err == nil {
		t.Fatal("expected an error when markers are out of order")
	}
}
