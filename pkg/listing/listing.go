// Package listing holds the row model for a grey-market-premium sheet and
// the normalization, classification and grouping pipeline that turns raw
// sheet records into the three rendered status groups.
package listing

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Record is one raw row as it comes off the sheet or a scraper, all fields
// still free text.
type Record struct {
	Name   string
	GMP    string
	Date   string
	Price  string
	Gain   string
	Type   string
	Status string
}

// Row is a normalized listing. Every field except Status is display text
// passed through as authored; Status is the only derived, controlled value.
type Row struct {
	Name     string
	GMPRaw   string
	GMP      *decimal.Decimal // nil when no numeric value could be extracted
	DateText string
	Price    string
	Gain     string
	Type     string
	Status   Status
}

// Normalize turns raw records into rows: names are trimmed and rows without
// one are dropped, the GMP value is extracted, the status is classified
// against now, and an empty Type falls back to defaultType.
func Normalize(recs []Record, defaultType string, now time.Time) []Row {
	rows := make([]Row, 0, len(recs))
	for _, rec := range recs {
		name := strings.TrimSpace(rec.Name)
		if name == "" {
			continue
		}

		typ := strings.TrimSpace(rec.Type)
		if typ == "" {
			typ = defaultType
		}

		rows = append(rows, Row{
			Name:     name,
			GMPRaw:   rec.GMP,
			GMP:      ParseGMP(rec.GMP),
			DateText: rec.Date,
			Price:    rec.Price,
			Gain:     rec.Gain,
			Type:     typ,
			Status:   Classify(rec.Status, rec.Date, now),
		})
	}
	return rows
}

// Dedupe drops rows whose name already appeared earlier in the slice,
// compared case-insensitively. Input order is preserved.
func Dedupe(rows []Row) []Row {
	seen := make(map[string]struct{}, len(rows))
	out := rows[:0:0]
	for _, r := range rows {
		key := strings.ToLower(r.Name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}
