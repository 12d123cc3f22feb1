package tools

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"tradecouncil/internal/dataflow"
	"tradecouncil/pkg/errors"
)

// MarketData is the slice of the data layer the default tools need.
type MarketData interface {
	Fundamental(ctx context.Context, symbol string, asOf time.Time) (*dataflow.Fundamental, error)
	Indicators(ctx context.Context, symbol string, asOf time.Time) (*dataflow.IndicatorReport, error)
	News(ctx context.Context, symbol string, asOf time.Time, limit int) ([]dataflow.NewsItem, error)
	SocialSentiment(ctx context.Context, symbol string, asOf time.Time) (*dataflow.SocialSentiment, error)
}

const defaultNewsLimit = 5

// RegisterCatalog registers the standard research tools against the
// given data source. asOf anchors every lookup to the decision date.
func RegisterCatalog(r *Registry, data MarketData, asOf time.Time) {
	r.Register(New(
		"get_fundamentals",
		"Fetch fundamental valuation data (price, market cap, P/E, P/B, EPS, dividend yield) for a stock symbol. Input: {\"symbol\": \"TSLA\"}",
		func(ctx context.Context, args map[string]interface{}) (string, error) {
			symbol, err := symbolArg(args)
			if err != nil {
				return "", err
			}
			f, err := data.Fundamental(ctx, symbol, asOf)
			if err != nil {
				return "", err
			}
			return encode(f)
		},
	))

	r.Register(New(
		"get_market_indicators",
		"Compute technical indicators (RSI, MACD, SMA, EMA, Bollinger Bands) from recent daily prices for a stock symbol. Input: {\"symbol\": \"TSLA\"}",
		func(ctx context.Context, args map[string]interface{}) (string, error) {
			symbol, err := symbolArg(args)
			if err != nil {
				return "", err
			}
			report, err := data.Indicators(ctx, symbol, asOf)
			if err != nil {
				return "", err
			}
			return encode(report)
		},
	))

	r.Register(New(
		"get_news",
		"Fetch recent company news headlines for a stock symbol. Input: {\"symbol\": \"TSLA\", \"limit\": 5}",
		func(ctx context.Context, args map[string]interface{}) (string, error) {
			symbol, err := symbolArg(args)
			if err != nil {
				return "", err
			}
			items, err := data.News(ctx, symbol, asOf, limitArg(args))
			if err != nil {
				return "", err
			}
			return encode(items)
		},
	))

	r.Register(New(
		"get_social_sentiment",
		"Summarize retail social media sentiment for a stock symbol. Input: {\"symbol\": \"TSLA\"}",
		func(ctx context.Context, args map[string]interface{}) (string, error) {
			symbol, err := symbolArg(args)
			if err != nil {
				return "", err
			}
			s, err := data.SocialSentiment(ctx, symbol, asOf)
			if err != nil {
				return "", err
			}
			return encode(s)
		},
	))
}

func symbolArg(args map[string]interface{}) (string, error) {
	raw, ok := args["symbol"].(string)
	if !ok || strings.TrimSpace(raw) == "" {
		return "", errors.Wrap(errors.ErrInvalidInput, "missing required argument: symbol")
	}
	return strings.ToUpper(strings.TrimSpace(raw)), nil
}

func limitArg(args map[string]interface{}) int {
	// JSON numbers decode as float64
	if v, ok := args["limit"].(float64); ok && v > 0 {
		return int(v)
	}
	return defaultNewsLimit
}

func encode(v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInternal, "encode tool result: %v", err)
	}
	return string(raw), nil
}
