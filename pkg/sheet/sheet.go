// Package sheet fetches and parses the spreadsheet CSV export that feeds the
// render job. Header spellings vary between sheet revisions, so columns are
// resolved through a normalization step and a fixed alias table instead of
// positional access.
package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/gmpwatch/gmpwatch/pkg/listing"
	"github.com/gmpwatch/gmpwatch/pkg/whttp"
)

// Canonical column identifiers.
const (
	colName   = "name"
	colGMP    = "gmp"
	colDate   = "date"
	colPrice  = "price"
	colGain   = "gain"
	colType   = "type"
	colStatus = "status"
)

// headerAliases maps normalized header spellings to canonical columns.
// Headers are normalized by lowercasing and stripping non-alphanumerics, so
// "Listing Date", "listing_date" and "ListingDate" all land on "listingdate".
var headerAliases = map[string]string{
	"ipo":            colName,
	"name":           colName,
	"iponame":        colName,
	"gmp":            colGMP,
	"date":           colDate,
	"listingdate":    colDate,
	"ipodate":        colDate,
	"kostak":         colPrice,
	"ipoprice":       colPrice,
	"subjecttosauda": colGain,
	"listinggain":    colGain,
	"type":           colType,
	"status":         colStatus,
}

// Fetch downloads the CSV export and parses it into records. A non-2xx
// response is an error; the caller treats it as fatal for the run.
func Fetch(url string, client *retryablehttp.Client) ([]listing.Record, error) {
	res, err := whttp.SendHTTPRequest(&whttp.WHTTPReq{
		Method:  "GET",
		URL:     url,
		Headers: []whttp.WHTTPHeader{{Name: "Accept", Value: "text/csv,*/*"}},
	}, client)
	if err != nil {
		return nil, fmt.Errorf("fetching sheet: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("fetching sheet: HTTP %d for %s", res.StatusCode, url)
	}
	return Parse(strings.NewReader(res.BodyString))
}

// Parse reads CSV rows into records using the header alias table. Columns
// that map to no canonical field are ignored; short rows are padded.
func Parse(r io.Reader) ([]listing.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading sheet header: %w", err)
	}

	cols := make(map[int]string, len(header))
	for i, h := range header {
		if canonical, ok := headerAliases[normalizeHeader(h)]; ok {
			cols[i] = canonical
		}
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("sheet header has no recognized columns: %v", header)
	}

	var recs []listing.Record
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading sheet row: %w", err)
		}

		var rec listing.Record
		for i, canonical := range cols {
			if i >= len(fields) {
				continue
			}
			switch canonical {
			case colName:
				rec.Name = fields[i]
			case colGMP:
				rec.GMP = fields[i]
			case colDate:
				rec.Date = fields[i]
			case colPrice:
				rec.Price = fields[i]
			case colGain:
				rec.Gain = fields[i]
			case colType:
				rec.Type = fields[i]
			case colStatus:
				rec.Status = fields[i]
			}
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// normalizeHeader lowercases a header cell and strips everything that isn't
// a letter or digit.
func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(h)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
