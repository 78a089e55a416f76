package listing

import (
	"sort"
)

// Groups holds the rows bucketed by status, in render order.
type Groups struct {
	Active   []Row
	Upcoming []Row
	Closed   []Row
}

// Group buckets rows by status, preserving input order within each bucket.
func Group(rows []Row) Groups {
	var g Groups
	for _, r := range rows {
		switch r.Status {
		case StatusActive:
			g.Active = append(g.Active, r)
		case StatusClosed:
			g.Closed = append(g.Closed, r)
		default:
			g.Upcoming = append(g.Upcoming, r)
		}
	}
	return g
}

// SortAndCap sorts every group by premium descending (rows without a numeric
// premium after all that have one, name as tiebreak) and keeps at most cap
// rows per group. A cap of zero or less means no cap.
func (g *Groups) SortAndCap(cap int) {
	g.Active = sortAndCap(g.Active, cap)
	g.Upcoming = sortAndCap(g.Upcoming, cap)
	g.Closed = sortAndCap(g.Closed, cap)
}

func sortAndCap(rows []Row, cap int) []Row {
	sort.SliceStable(rows, func(i, j int) bool {
		return rowLess(rows[i], rows[j])
	})
	if cap > 0 && len(rows) > cap {
		rows = rows[:cap]
	}
	return rows
}

func rowLess(a, b Row) bool {
	switch {
	case a.GMP != nil && b.GMP != nil:
		if c := a.GMP.Cmp(*b.GMP); c != 0 {
			return c > 0 // higher premium first
		}
	case a.GMP != nil:
		return true
	case b.GMP != nil:
		return false
	}
	return a.Name < b.Name
}
