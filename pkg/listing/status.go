package listing

import (
	"strings"
	"time"

	"github.com/gmpwatch/gmpwatch/pkg/dates"
)

// Status is the lifecycle state of a listing.
type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusActive   Status = "active"
	StatusClosed   Status = "closed"
)

// IST is the exchange timezone. All window comparisons happen in it so that
// classification does not depend on where the job runs.
var IST = time.FixedZone("IST", 5*60*60+30*60)

// statusKeywords maps keyword fragments from the sheet's free-text Status
// column to a lifecycle state. Matching is case-insensitive substring, so
// "Upcoming", "upcoming ipo" and "UPCOMING*" all hit "upcom".
var statusKeywords = []struct {
	fragment string
	status   Status
}{
	{"upcom", StatusUpcoming},
	{"clos", StatusClosed},
	{"list", StatusClosed}, // "Listed" / "Listing done"
	{"activ", StatusActive},
	{"open", StatusActive},
}

// Classify decides a listing's status. A recognized explicit status label
// wins outright; otherwise the schedule window parsed from dateText is
// compared against now in IST. The window runs from the start day's midnight
// through 23:59:59 on the end day, both ends inclusive. Classification is
// total: an unknown or unparseable schedule is upcoming.
func Classify(explicitStatus, dateText string, now time.Time) Status {
	if s, ok := explicit(explicitStatus); ok {
		return s
	}

	now = now.In(IST)
	w := dates.Parse(dateText, now)
	if !w.Known() {
		return StatusUpcoming
	}

	start, end := w.Start, w.End
	if start.IsZero() {
		start = end
	}
	if end.IsZero() {
		end = start
	}

	opens := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, IST)
	closes := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, IST)

	switch {
	case now.Before(opens):
		return StatusUpcoming
	case now.After(closes):
		return StatusClosed
	default:
		return StatusActive
	}
}

func explicit(label string) (Status, bool) {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return "", false
	}
	for _, kw := range statusKeywords {
		if strings.Contains(label, kw.fragment) {
			return kw.status, true
		}
	}
	return "", false
}
