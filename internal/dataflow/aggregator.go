package dataflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"tradecouncil/pkg/errors"
	"tradecouncil/pkg/logger"
)

// lookbackDays is how much daily history the indicator set needs plus
// warmup headroom.
const lookbackDays = 120

// Aggregator is the single entry point for market data. It checks the
// cache first, then the live providers under a shared rate limit, and
// falls back to deterministic synthetic data so callers always get an
// answer.
type Aggregator struct {
	yahoo     *YahooProvider
	finnhub   *FinnhubProvider
	synthetic Synthetic
	cache     *Cache
	limiter   *rate.Limiter
	log       *logger.Logger
}

// NewAggregator wires the provider chain. cache may be nil, finnhub may
// be disabled; the synthetic fallback is always present.
func NewAggregator(yahoo *YahooProvider, finnhub *FinnhubProvider, cache *Cache, requestsPerMinute int) *Aggregator {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 30
	}

	return &Aggregator{
		yahoo:   yahoo,
		finnhub: finnhub,
		cache:   cache,
		limiter: rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), requestsPerMinute),
		log:     logger.Get().With("component", "dataflow"),
	}
}

func (a *Aggregator) wait(ctx context.Context) error {
	if err := a.limiter.Wait(ctx); err != nil {
		return errors.Wrapf(errors.ErrRateLimitExceeded, "dataflow limiter: %v", err)
	}
	return nil
}

func cacheKey(kind, symbol string, asOf time.Time) string {
	return fmt.Sprintf("dataflow:%s:%s:%s", kind, strings.ToUpper(symbol), asOf.Format("2006-01-02"))
}

// Fundamental returns valuation figures for symbol, preferring live data.
func (a *Aggregator) Fundamental(ctx context.Context, symbol string, asOf time.Time) (*Fundamental, error) {
	key := cacheKey("fundamental", symbol, asOf)
	var cached Fundamental
	if a.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	if a.yahoo != nil {
		if err := a.wait(ctx); err != nil {
			return nil, err
		}
		f, err := a.yahoo.FetchFundamental(ctx, symbol)
		if err == nil {
			a.cache.Set(ctx, key, f)
			return f, nil
		}
		a.log.Warnf("fundamental %s: yahoo failed, using synthetic: %v", symbol, err)
	}

	return a.synthetic.Fundamental(symbol, asOf), nil
}

// Bars returns roughly lookbackDays of daily candles ending at asOf.
func (a *Aggregator) Bars(ctx context.Context, symbol string, asOf time.Time) ([]Bar, error) {
	key := cacheKey("bars", symbol, asOf)
	var cached []Bar
	if a.cache.Get(ctx, key, &cached) && len(cached) > 0 {
		return cached, nil
	}

	if a.yahoo != nil {
		if err := a.wait(ctx); err != nil {
			return nil, err
		}
		bars, err := a.yahoo.FetchBars(ctx, symbol, asOf.AddDate(0, 0, -lookbackDays), asOf)
		if err == nil {
			a.cache.Set(ctx, key, bars)
			return bars, nil
		}
		a.log.Warnf("bars %s: yahoo failed, using synthetic: %v", symbol, err)
	}

	return a.synthetic.Bars(symbol, asOf, lookbackDays), nil
}

// Indicators computes the technical indicator set over the bar history.
func (a *Aggregator) Indicators(ctx context.Context, symbol string, asOf time.Time) (*IndicatorReport, error) {
	bars, err := a.Bars(ctx, symbol, asOf)
	if err != nil {
		return nil, err
	}
	if len(bars) < minIndicatorBars {
		// thin live history, pad with the deterministic series
		bars = a.synthetic.Bars(symbol, asOf, lookbackDays)
	}
	return ComputeIndicators(strings.ToUpper(symbol), bars)
}

// News returns up to limit recent headlines for symbol.
func (a *Aggregator) News(ctx context.Context, symbol string, asOf time.Time, limit int) ([]NewsItem, error) {
	if limit <= 0 {
		limit = 5
	}

	key := fmt.Sprintf("%s:%d", cacheKey("news", symbol, asOf), limit)
	var cached []NewsItem
	if a.cache.Get(ctx, key, &cached) && len(cached) > 0 {
		return cached, nil
	}

	if a.finnhub.Enabled() {
		if err := a.wait(ctx); err != nil {
			return nil, err
		}
		items, err := a.finnhub.FetchNews(ctx, symbol, asOf.AddDate(0, 0, -7), asOf, limit)
		if err == nil && len(items) > 0 {
			a.cache.Set(ctx, key, items)
			return items, nil
		}
		if err != nil {
			a.log.Warnf("news %s: finnhub failed, using synthetic: %v", symbol, err)
		}
	}

	return a.synthetic.News(symbol, asOf, limit), nil
}

// SocialSentiment returns a retail sentiment summary for symbol.
func (a *Aggregator) SocialSentiment(ctx context.Context, symbol string, asOf time.Time) (*SocialSentiment, error) {
	key := cacheKey("sentiment", symbol, asOf)
	var cached SocialSentiment
	if a.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	if a.finnhub.Enabled() {
		if err := a.wait(ctx); err != nil {
			return nil, err
		}
		s, err := a.finnhub.FetchSocialSentiment(ctx, symbol)
		if err == nil {
			a.cache.Set(ctx, key, s)
			return s, nil
		}
		a.log.Warnf("sentiment %s: finnhub failed, using synthetic: %v", symbol, err)
	}

	return a.synthetic.SocialSentiment(symbol, asOf), nil
}
