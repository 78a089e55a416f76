// Package sources holds the third-party scrapers that populate the sheet.
// Each source fetches one site and returns raw records; merging and
// deduplication happen in the store.
package sources

import (
	"context"
	"strings"

	"github.com/gmpwatch/gmpwatch/pkg/listing"
	"github.com/gmpwatch/gmpwatch/pkg/whttp"
)

// Source is one scraped site.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]listing.Record, error)
}

// All returns every known source.
func All() []Source {
	return []Source{
		&IPOPremium{},
		&MarketFeed{},
	}
}

// EnrichType fills in the Type field for records that lack one by probing
// the source site's detail page and reading its title: pages for SME
// listings carry "SME" in the title, everything else is treated as a
// mainboard issue. Probe failures leave the record untouched; the render
// job's default covers it.
func EnrichType(recs []listing.Record, probeURL func(name string) string) {
	for i := range recs {
		if strings.TrimSpace(recs[i].Type) != "" {
			continue
		}
		res, err := whttp.SendHTTPRequest(&whttp.WHTTPReq{
			Method: "GET",
			URL:    probeURL(recs[i].Name),
		}, nil)
		if err != nil || res.StatusCode < 200 || res.StatusCode >= 300 {
			continue
		}
		recs[i].Type = TypeFromTitle(res.HTTPTitle)
	}
}

// TypeFromTitle classifies a detail-page title. An empty result means the
// title was inconclusive.
func TypeFromTitle(title string) string {
	t := strings.ToLower(title)
	switch {
	case t == "":
		return ""
	case strings.Contains(t, "sme"):
		return "SME"
	default:
		return "Mainboard"
	}
}
