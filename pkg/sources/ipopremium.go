package sources

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gmpwatch/gmpwatch/pkg/listing"
	"github.com/gmpwatch/gmpwatch/pkg/whttp"
)

// IPOPremium scrapes the GMP table from ipopremium-style pages: a plain
// HTML table, one listing per row, columns in a fixed order.
type IPOPremium struct {
	// URL overrides the default page, mainly for tests.
	URL string
}

const ipoPremiumURL = "https://www.ipopremium.in/"

func (s *IPOPremium) Name() string { return "ipopremium" }

func (s *IPOPremium) Fetch(ctx context.Context) ([]listing.Record, error) {
	url := s.URL
	if url == "" {
		url = ipoPremiumURL
	}

	res, err := whttp.SendHTTPRequest(&whttp.WHTTPReq{
		Method:  "GET",
		URL:     url,
		Headers: []whttp.WHTTPHeader{{Name: "Accept", Value: "*/*"}},
	}, nil)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d for %s", res.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.BodyString))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return ParseIPOPremiumTable(doc), nil
}

// ParseIPOPremiumTable extracts records from the GMP table. Rows without a
// name cell are skipped here; everything else is passed through raw and
// cleaned up downstream.
func ParseIPOPremiumTable(doc *goquery.Document) []listing.Record {
	var recs []listing.Record
	doc.Find("table.ipo-table tbody tr, table#gmp-table tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td").Map(func(_ int, td *goquery.Selection) string {
			return strings.TrimSpace(td.Text())
		})
		if len(cells) < 3 || cells[0] == "" {
			return
		}

		rec := listing.Record{
			Name: cells[0],
			GMP:  cells[1],
			Date: cells[2],
		}
		if len(cells) > 3 {
			rec.Price = cells[3]
		}
		if len(cells) > 4 {
			rec.Gain = cells[4]
		}
		if len(cells) > 5 {
			rec.Status = cells[5]
		}
		recs = append(recs, rec)
	})
	return recs
}
