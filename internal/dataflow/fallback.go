package dataflow

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Synthetic generates deterministic placeholder data when every live
// provider is unavailable. The same symbol always yields the same
// series, which keeps downstream reasoning reproducible in tests and
// offline runs.
type Synthetic struct{}

func (Synthetic) Name() string {
	return "synthetic"
}

func symbolSeed(symbol string) int64 {
	h := fnv.New64a()
	h.Write([]byte(strings.ToUpper(symbol)))
	return int64(h.Sum64())
}

// Bars produces n daily bars ending at end, following a bounded random
// walk seeded by the symbol.
func (Synthetic) Bars(symbol string, end time.Time, n int) []Bar {
	rng := rand.New(rand.NewSource(symbolSeed(symbol)))

	price := 50.0 + rng.Float64()*250.0
	bars := make([]Bar, 0, n)
	day := end.AddDate(0, 0, -n)
	for i := 0; i < n; i++ {
		day = day.AddDate(0, 0, 1)
		drift := (rng.Float64() - 0.5) * price * 0.04
		open := price
		close := price + drift
		high := maxFloat(open, close) * (1 + rng.Float64()*0.01)
		low := minFloat(open, close) * (1 - rng.Float64()*0.01)
		bars = append(bars, Bar{
			Date:   day,
			Open:   decimal.NewFromFloat(open).Round(2),
			High:   decimal.NewFromFloat(high).Round(2),
			Low:    decimal.NewFromFloat(low).Round(2),
			Close:  decimal.NewFromFloat(close).Round(2),
			Volume: 1_000_000 + rng.Int63n(9_000_000),
		})
		price = close
	}

	return bars
}

func (s Synthetic) Fundamental(symbol string, asOf time.Time) *Fundamental {
	rng := rand.New(rand.NewSource(symbolSeed(symbol)))

	price := decimal.NewFromFloat(50.0 + rng.Float64()*250.0).Round(2)
	eps := decimal.NewFromFloat(1.0 + rng.Float64()*15.0).Round(2)

	return &Fundamental{
		Symbol:        strings.ToUpper(symbol),
		Name:          strings.ToUpper(symbol) + " (synthetic)",
		Price:         price,
		MarketCap:     int64(5_000_000_000 + rng.Int63n(995_000_000_000)),
		PERatio:       price.Div(eps).Round(2),
		PBRatio:       decimal.NewFromFloat(1.0 + rng.Float64()*9.0).Round(2),
		EPS:           eps,
		DividendYield: decimal.NewFromFloat(rng.Float64() * 0.04).Round(4),
		AsOf:          asOf,
	}
}

func (s Synthetic) News(symbol string, asOf time.Time, limit int) []NewsItem {
	sym := strings.ToUpper(symbol)
	templates := []struct {
		headline string
		summary  string
	}{
		{"%s reports quarterly results in line with expectations", "Revenue and margins tracked consensus estimates for the period."},
		{"Analysts revisit price targets on %s after sector rotation", "Several sell-side desks adjusted models following broader market moves."},
		{"%s announces incremental product roadmap updates", "Management outlined near-term launches during an investor briefing."},
		{"Institutional filings show mixed positioning in %s", "Recent 13F disclosures reflect both additions and trims across funds."},
		{"Options activity in %s picks up ahead of earnings", "Implied volatility rose as traders positioned for the next report."},
	}

	if limit > len(templates) {
		limit = len(templates)
	}
	items := make([]NewsItem, 0, limit)
	for i := 0; i < limit; i++ {
		t := templates[i]
		items = append(items, NewsItem{
			Headline:    fmt.Sprintf(t.headline, sym),
			Summary:     t.summary,
			Source:      "synthetic",
			PublishedAt: asOf.AddDate(0, 0, -i),
		})
	}

	return items
}

func (s Synthetic) SocialSentiment(symbol string, asOf time.Time) *SocialSentiment {
	rng := rand.New(rand.NewSource(symbolSeed(symbol)))

	pos := 0.25 + rng.Float64()*0.5
	neg := (1 - pos) * rng.Float64()
	posRatio := decimal.NewFromFloat(pos).Round(4)
	negRatio := decimal.NewFromFloat(neg).Round(4)

	return &SocialSentiment{
		Symbol:        strings.ToUpper(symbol),
		Overall:       classifySentiment(posRatio, negRatio),
		PositiveRatio: posRatio,
		NegativeRatio: negRatio,
		PostCount:     100 + rng.Intn(9900),
		AsOf:          asOf,
	}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
