package dates

import (
	"testing"
	"time"
)

// ref is a fixed reference instant: 16 Nov 2025, in a fixed zone so the
// tests do not depend on the host timezone.
var ref = time.Date(2025, time.November, 16, 12, 0, 0, 0, time.FixedZone("IST", 19800))

func TestParseNamedMonthRange(t *testing.T) {
	w := Parse("14-18 Nov", ref)
	if !w.Known() {
		t.Fatal("expected a known window")
	}
	if w.Start.Day() != 14 || w.End.Day() != 18 {
		t.Fatalf("expected days 14-18, got %d-%d", w.Start.Day(), w.End.Day())
	}
	if w.Start.Month() != time.November || w.End.Month() != time.November {
		t.Fatalf("expected both endpoints in November, got %v and %v", w.Start.Month(), w.End.Month())
	}
	if w.Start.Year() != 2025 || w.End.Year() != 2025 {
		t.Fatalf("expected both endpoints in 2025, got %d and %d", w.Start.Year(), w.End.Year())
	}
}

func TestParseTrailingYearOverride(t *testing.T) {
	w := Parse("14-18 Nov, 2026", ref)
	if w.Start.Year() != 2026 || w.End.Year() != 2026 {
		t.Fatalf("expected year override to 2026, got %d and %d", w.Start.Year(), w.End.Year())
	}
}

func TestParseUnknownMarkers(t *testing.T) {
	for _, input := range []string{"TBA", "", "to be announced", "not announced", "N/A", "-", "  "} {
		if w := Parse(input, ref); w.Known() {
			t.Errorf("Parse(%q) should be unknown, got %v", input, w)
		}
	}
}

func TestParseSingleDateForms(t *testing.T) {
	tests := []struct {
		input string
		day   int
		month time.Month
		year  int
	}{
		{"14 Nov", 14, time.November, 2025},
		{"14 November", 14, time.November, 2025},
		{"14 Nov 2026", 14, time.November, 2026},
		{"14", 14, time.November, 2025},         // bare day: current month and year
		{"14-11-2026", 14, time.November, 2026}, // full numeric date
		{"14/11/2026", 14, time.November, 2026}, // slash separators
		{"14-11", 14, time.November, 2025},      // DD-MM beats the day-range matcher
		{"3 dec", 3, time.December, 2025},       // case-insensitive month
	}
	for _, tt := range tests {
		w := Parse(tt.input, ref)
		if !w.Known() {
			t.Errorf("Parse(%q) should be known", tt.input)
			continue
		}
		if w.Start != w.End {
			t.Errorf("Parse(%q) should be a single-day window, got %v..%v", tt.input, w.Start, w.End)
		}
		if w.Start.Day() != tt.day || w.Start.Month() != tt.month || w.Start.Year() != tt.year {
			t.Errorf("Parse(%q) = %v, expected %d %v %d", tt.input, w.Start, tt.day, tt.month, tt.year)
		}
	}
}

func TestParseNumericDayRange(t *testing.T) {
	// 14-18 can't be DD-MM (month 18 doesn't exist), so it's a day range in
	// the reference month.
	w := Parse("14-18", ref)
	if w.Start.Day() != 14 || w.End.Day() != 18 {
		t.Fatalf("expected days 14-18, got %d-%d", w.Start.Day(), w.End.Day())
	}
	if w.Start.Month() != time.November {
		t.Fatalf("expected reference month November, got %v", w.Start.Month())
	}
}

func TestParseStartInheritsEndMonth(t *testing.T) {
	// Year comes from the end side too.
	w := Parse("28-2 Dec 2026", ref)
	if w.Start.Day() != 28 || w.Start.Month() != time.December || w.Start.Year() != 2026 {
		t.Fatalf("start should inherit month and year from the end side, got %v", w.Start)
	}
	if w.End.Day() != 2 || w.End.Month() != time.December {
		t.Fatalf("unexpected end %v", w.End)
	}
}

func TestParseBothSidesNamed(t *testing.T) {
	w := Parse("28 Nov - 2 Dec", ref)
	if w.Start.Month() != time.November || w.End.Month() != time.December {
		t.Fatalf("expected Nov..Dec window, got %v..%v", w.Start.Month(), w.End.Month())
	}
}

func TestParseDashVariants(t *testing.T) {
	for _, input := range []string{"14–18 Nov", "14—18 Nov", "14 to 18 Nov"} {
		w := Parse(input, ref)
		if w.Start.Day() != 14 || w.End.Day() != 18 {
			t.Errorf("Parse(%q): expected days 14-18, got %d-%d", input, w.Start.Day(), w.End.Day())
		}
	}
}

func TestParseGarbageEndCollapsesToStart(t *testing.T) {
	w := Parse("14-soon Nov", ref)
	if !w.Known() {
		t.Fatal("expected a known window from the parsable start")
	}
	if w.Start != w.End || w.Start.Day() != 14 {
		t.Fatalf("expected single-day window on the 14th, got %v..%v", w.Start, w.End)
	}
}

func TestParseUnparseable(t *testing.T) {
	for _, input := range []string{"soon", "next week", "2025", "???"} {
		if w := Parse(input, ref); w.Known() {
			t.Errorf("Parse(%q) should be unknown, got %v", input, w)
		}
	}
}
