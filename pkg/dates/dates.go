// Package dates parses the free-text schedule cells found in GMP
// spreadsheets ("14-18 Nov", "14 Nov 2025", "TBA", ...) into date windows.
// There is no fixed grammar; a fixed priority list of matchers is tried and
// anything that survives none of them is reported as an unknown window.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Window is the interval parsed from a schedule cell. A zero endpoint means
// that endpoint could not be determined; a window with both endpoints zero
// means the schedule is unknown (TBA, empty, or unparseable).
type Window struct {
	Start time.Time
	End   time.Time
}

// Known reports whether at least one endpoint was parsed.
func (w Window) Known() bool {
	return !w.Start.IsZero() || !w.End.IsZero()
}

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var (
	trailingYearRe = regexp.MustCompile(`,\s*(\d{4})\s*$`)
	fullNumericRe  = regexp.MustCompile(`^(\d{1,2})[-/](\d{1,2})(?:[-/](\d{4}))?$`)
	dayRangeRe     = regexp.MustCompile(`^(\d{1,2})\s*-\s*(\d{1,2})$`)
	singleRe       = regexp.MustCompile(`^(\d{1,2})(?:\s+([A-Za-z]+\.?))?(?:[\s,]+(\d{4}))?$`)
	yearOnlyRe     = regexp.MustCompile(`^\d{4}$`)
)

// unknownMarkers are cell values that explicitly say the schedule isn't set.
func isUnknownMarker(s string) bool {
	switch s {
	case "", "-", "--", "tba", "tbd", "n/a", "na":
		return true
	}
	return strings.Contains(s, "announce")
}

// Parse turns a schedule cell into a Window. The reference time supplies the
// default month and year for cells that omit them, and its location is the
// location every parsed date is built in. Parse never fails; anything it
// cannot make sense of comes back as an unknown window.
func Parse(text string, ref time.Time) Window {
	s := strings.ToLower(strings.TrimSpace(text))
	if isUnknownMarker(s) {
		return Window{}
	}

	s = normalizeDashes(s)

	defYear := ref.Year()
	if m := trailingYearRe.FindStringSubmatch(s); m != nil {
		defYear, _ = strconv.Atoi(m[1])
		s = strings.TrimSpace(trailingYearRe.ReplaceAllString(s, ""))
	}

	loc := ref.Location()
	defMonth := ref.Month()

	// Single-date forms first: "14-11-2025" and "14-11" are one date, not a
	// range, so they must win over the numeric day-range matcher.
	if m := fullNumericRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		mon, _ := strconv.Atoi(m[2])
		year := defYear
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
		}
		if mon >= 1 && mon <= 12 && validDay(day) {
			d := time.Date(year, time.Month(mon), day, 0, 0, 0, 0, loc)
			return Window{Start: d, End: d}
		}
	}

	if m := dayRangeRe.FindStringSubmatch(s); m != nil {
		d1, _ := strconv.Atoi(m[1])
		d2, _ := strconv.Atoi(m[2])
		if validDay(d1) && validDay(d2) {
			return Window{
				Start: time.Date(defYear, defMonth, d1, 0, 0, 0, 0, loc),
				End:   time.Date(defYear, defMonth, d2, 0, 0, 0, 0, loc),
			}
		}
	}

	if idx := strings.Index(s, "-"); idx >= 0 {
		startTok := strings.TrimSpace(s[:idx])
		endTok := strings.TrimSpace(s[idx+1:])

		end, endOK := parseSingle(endTok, defMonth, defYear, loc)
		if endOK {
			// The start side may omit the month ("14-18 nov"); it inherits
			// month and year from the end side.
			start, startOK := parseSingle(startTok, end.Month(), end.Year(), loc)
			if !startOK {
				return Window{End: end}
			}
			return Window{Start: start, End: end}
		}
		if start, ok := parseSingle(startTok, defMonth, defYear, loc); ok {
			// End side is garbage; treat as a single-day event.
			return Window{Start: start, End: start}
		}
		return Window{}
	}

	if d, ok := parseSingle(s, defMonth, defYear, loc); ok {
		return Window{Start: d, End: d}
	}

	// A bare year ("2025") promises nothing about the actual window.
	if yearOnlyRe.MatchString(s) {
		return Window{}
	}

	return Window{}
}

// parseSingle parses one endpoint: "18", "18 nov", "18 nov 2025".
func parseSingle(tok string, defMonth time.Month, defYear int, loc *time.Location) (time.Time, bool) {
	m := singleRe.FindStringSubmatch(strings.TrimSpace(tok))
	if m == nil {
		return time.Time{}, false
	}

	day, _ := strconv.Atoi(m[1])
	if !validDay(day) {
		return time.Time{}, false
	}

	month := defMonth
	if m[2] != "" {
		mon, ok := monthFromName(m[2])
		if !ok {
			return time.Time{}, false
		}
		month = mon
	}

	year := defYear
	if m[3] != "" {
		year, _ = strconv.Atoi(m[3])
	}

	return time.Date(year, month, day, 0, 0, 0, 0, loc), true
}

// monthFromName matches a month name on its first three letters.
func monthFromName(name string) (time.Month, bool) {
	name = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(name), "."))
	if len(name) < 3 {
		return 0, false
	}
	m, ok := months[name[:3]]
	return m, ok
}

func validDay(d int) bool {
	return d >= 1 && d <= 31
}

var dashReplacer = strings.NewReplacer(
	"–", "-", // en dash
	"—", "-", // em dash
	"‒", "-",
	"‐", "-",
	" to ", "-",
	"→", "-", // the occasional arrow between dates
)

func normalizeDashes(s string) string {
	return dashReplacer.Replace(s)
}
