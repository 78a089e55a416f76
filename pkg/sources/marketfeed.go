package sources

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/gmpwatch/gmpwatch/pkg/listing"
	"github.com/gmpwatch/gmpwatch/pkg/whttp"
)

// MarketFeed pulls listings from a JSON feed endpoint.
type MarketFeed struct {
	// URL overrides the default endpoint, mainly for tests.
	URL string
}

const marketFeedURL = "https://api.marketfeed.in/v1/ipo/gmp"

func (s *MarketFeed) Name() string { return "marketfeed" }

func (s *MarketFeed) Fetch(ctx context.Context) ([]listing.Record, error) {
	url := s.URL
	if url == "" {
		url = marketFeedURL
	}

	res, err := whttp.SendHTTPRequest(&whttp.WHTTPReq{
		Method:  "GET",
		URL:     url,
		Headers: []whttp.WHTTPHeader{{Name: "Accept", Value: "application/json"}},
	}, nil)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d for %s", res.StatusCode, url)
	}

	return ParseMarketFeedJSON(res.BodyString), nil
}

// ParseMarketFeedJSON maps the feed's JSON array onto records. Missing keys
// come back as empty strings, which downstream normalization tolerates.
func ParseMarketFeedJSON(body string) []listing.Record {
	var recs []listing.Record
	for _, item := range gjson.Get(body, "data").Array() {
		name := gjson.Get(item.Raw, "name").String()
		if name == "" {
			continue
		}
		recs = append(recs, listing.Record{
			Name:   name,
			GMP:    gjson.Get(item.Raw, "gmp").String(),
			Date:   gjson.Get(item.Raw, "date_range").String(),
			Price:  gjson.Get(item.Raw, "price_band").String(),
			Gain:   gjson.Get(item.Raw, "expected_gain").String(),
			Type:   gjson.Get(item.Raw, "board").String(),
			Status: gjson.Get(item.Raw, "status").String(),
		})
	}
	return recs
}
