package dataflow

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func offlineAggregator() *Aggregator {
	// no providers, no cache; everything resolves through the
	// synthetic fallback
	return NewAggregator(nil, nil, nil, 60)
}

func TestSyntheticBarsDeterministic(t *testing.T) {
	asOf := time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)

	var s Synthetic
	a := s.Bars("TSLA", asOf, 60)
	b := s.Bars("TSLA", asOf, 60)

	require.Len(t, a, 60)
	assert.Equal(t, a, b)

	other := s.Bars("AAPL", asOf, 60)
	assert.NotEqual(t, a[0].Close, other[0].Close)
}

func TestSyntheticBarsOrderedAndPositive(t *testing.T) {
	asOf := time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)
	bars := Synthetic{}.Bars("NVDA", asOf, 120)

	require.Len(t, bars, 120)
	for i, b := range bars {
		assert.True(t, b.Close.IsPositive(), "bar %d close", i)
		assert.True(t, b.High.GreaterThanOrEqual(b.Low), "bar %d high/low", i)
		if i > 0 {
			assert.True(t, b.Date.After(bars[i-1].Date), "bar %d date order", i)
		}
	}
}

func TestComputeIndicators(t *testing.T) {
	asOf := time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)
	bars := Synthetic{}.Bars("MSFT", asOf, 120)

	report, err := ComputeIndicators("MSFT", bars)
	require.NoError(t, err)

	assert.Equal(t, "MSFT", report.Symbol)
	assert.Equal(t, 120, report.Bars)
	assert.True(t, report.RSI.GreaterThanOrEqual(decimal.Zero), "rsi lower bound")
	assert.True(t, report.RSI.LessThanOrEqual(decimal.NewFromInt(100)), "rsi upper bound")
	assert.True(t, report.BBUpper.GreaterThanOrEqual(report.BBMiddle))
	assert.True(t, report.BBMiddle.GreaterThanOrEqual(report.BBLower))
	assert.True(t, report.SMA20.IsPositive())
	assert.True(t, report.SMA50.IsPositive())
}

func TestComputeIndicatorsRejectsShortSeries(t *testing.T) {
	asOf := time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)
	bars := Synthetic{}.Bars("MSFT", asOf, 10)

	_, err := ComputeIndicators("MSFT", bars)
	require.Error(t, err)
}

func TestAggregatorFallsBackWithoutProviders(t *testing.T) {
	ctx := context.Background()
	asOf := time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)
	agg := offlineAggregator()

	f, err := agg.Fundamental(ctx, "TSLA", asOf)
	require.NoError(t, err)
	assert.Equal(t, "TSLA", f.Symbol)
	assert.True(t, f.Price.IsPositive())

	bars, err := agg.Bars(ctx, "TSLA", asOf)
	require.NoError(t, err)
	assert.Len(t, bars, lookbackDays)

	report, err := agg.Indicators(ctx, "TSLA", asOf)
	require.NoError(t, err)
	assert.Equal(t, "TSLA", report.Symbol)

	news, err := agg.News(ctx, "TSLA", asOf, 3)
	require.NoError(t, err)
	assert.Len(t, news, 3)

	sentiment, err := agg.SocialSentiment(ctx, "TSLA", asOf)
	require.NoError(t, err)
	assert.Contains(t, []string{"bullish", "bearish", "neutral"}, sentiment.Overall)
	assert.Positive(t, sentiment.PostCount)
}
