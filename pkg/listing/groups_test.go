package listing

import (
	"testing"
	"time"
)

func TestSortPremiumDescendingNilLast(t *testing.T) {
	rows := []Row{
		{Name: "B", GMP: ParseGMP("5")},
		{Name: "A"},
		{Name: "C", GMP: ParseGMP("10")},
		{Name: "D"},
	}
	g := Groups{Upcoming: rows}
	g.SortAndCap(0)

	wantOrder := []string{"C", "B", "A", "D"}
	for i, want := range wantOrder {
		if g.Upcoming[i].Name != want {
			t.Fatalf("position %d: got %s, expected %s (full order: %v)", i, g.Upcoming[i].Name, want, names(g.Upcoming))
		}
	}
}

func TestSortNameTiebreak(t *testing.T) {
	rows := []Row{
		{Name: "Zeta", GMP: ParseGMP("10")},
		{Name: "Alpha", GMP: ParseGMP("10")},
	}
	g := Groups{Active: rows}
	g.SortAndCap(0)
	if g.Active[0].Name != "Alpha" {
		t.Fatalf("equal premiums should sort by name, got %v", names(g.Active))
	}
}

func TestCapDropsRows(t *testing.T) {
	var rows []Row
	for i := 0; i < 15; i++ {
		rows = append(rows, Row{Name: string(rune('A' + i))})
	}
	g := Groups{Closed: rows}
	g.SortAndCap(10)
	if len(g.Closed) != 10 {
		t.Fatalf("expected 10 rows after capping, got %d", len(g.Closed))
	}
}

func TestGroupOrderPreserved(t *testing.T) {
	rows := []Row{
		{Name: "one", Status: StatusActive},
		{Name: "two", Status: StatusClosed},
		{Name: "three", Status: StatusActive},
		{Name: "four", Status: StatusUpcoming},
	}
	g := Group(rows)
	if len(g.Active) != 2 || len(g.Upcoming) != 1 || len(g.Closed) != 1 {
		t.Fatalf("unexpected group sizes: %d/%d/%d", len(g.Active), len(g.Upcoming), len(g.Closed))
	}
	if g.Active[0].Name != "one" || g.Active[1].Name != "three" {
		t.Fatalf("input order not preserved: %v", names(g.Active))
	}
}

func TestNormalizeDropsNamelessRows(t *testing.T) {
	now := time.Date(2025, time.November, 16, 12, 0, 0, 0, IST)
	recs := []Record{
		{Name: "Acme Industries", GMP: "120", Date: "14-18 Nov"},
		{Name: ""},
		{Name: "   "},
		{Name: "Beta Ltd", GMP: "—", Date: "TBA"},
	}
	rows := Normalize(recs, "Mainboard", now)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d: %v", len(rows), names(rows))
	}
	if rows[0].Status != StatusActive {
		t.Fatalf("expected Acme active, got %s", rows[0].Status)
	}
	if rows[1].Status != StatusUpcoming || rows[1].GMP != nil {
		t.Fatalf("expected Beta upcoming with no premium, got %s / %v", rows[1].Status, rows[1].GMP)
	}
	if rows[0].Type != "Mainboard" {
		t.Fatalf("expected default type, got %q", rows[0].Type)
	}
}

func TestDedupe(t *testing.T) {
	rows := []Row{
		{Name: "Acme Industries"},
		{Name: "acme industries"},
		{Name: "Beta Ltd"},
	}
	got := Dedupe(rows)
	if len(got) != 2 {
		t.Fatalf("expected 2 rows after dedupe, got %d: %v", len(got), names(got))
	}
	if got[0].Name != "Acme Industries" {
		t.Fatalf("dedupe should keep the first occurrence, got %v", names(got))
	}
}

func names(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}
