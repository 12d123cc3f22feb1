package dataflow

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"tradecouncil/pkg/errors"
)

const finnhubBaseURL = "https://finnhub.io/api/v1"

// FinnhubProvider serves company news and social sentiment from Finnhub.
type FinnhubProvider struct {
	client *resty.Client
	token  string
}

func NewFinnhubProvider(token string) *FinnhubProvider {
	client := resty.New()
	client.SetBaseURL(finnhubBaseURL)
	client.SetTimeout(15 * time.Second)

	return &FinnhubProvider{
		client: client,
		token:  token,
	}
}

func (p *FinnhubProvider) Name() string {
	return "finnhub"
}

func (p *FinnhubProvider) Enabled() bool {
	return p != nil && p.token != ""
}

type finnhubNewsItem struct {
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	Source   string `json:"source"`
	URL      string `json:"url"`
	Datetime int64  `json:"datetime"`
}

// FetchNews returns up to limit company headlines published in [start, end].
func (p *FinnhubProvider) FetchNews(ctx context.Context, symbol string, start, end time.Time, limit int) ([]NewsItem, error) {
	if !p.Enabled() {
		return nil, errors.Wrap(errors.ErrProviderUnavailable, "finnhub: no token configured")
	}

	var raw []finnhubNewsItem
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol": strings.ToUpper(symbol),
			"from":   start.Format("2006-01-02"),
			"to":     end.Format("2006-01-02"),
			"token":  p.token,
		}).
		SetResult(&raw).
		Get("/company-news")
	if err != nil {
		return nil, errors.Wrapf(errors.ErrProviderUnavailable, "finnhub news %s: %v", symbol, err)
	}
	if resp.IsError() {
		return nil, errors.Wrapf(errors.ErrProviderUnavailable, "finnhub news %s: status %d", symbol, resp.StatusCode())
	}

	items := make([]NewsItem, 0, limit)
	for _, r := range raw {
		if len(items) >= limit {
			break
		}
		if r.Headline == "" {
			continue
		}
		items = append(items, NewsItem{
			Headline:    r.Headline,
			Summary:     r.Summary,
			Source:      r.Source,
			URL:         r.URL,
			PublishedAt: time.Unix(r.Datetime, 0).UTC(),
		})
	}

	return items, nil
}

type finnhubSentimentResponse struct {
	Data []struct {
		Mention         int     `json:"mention"`
		PositiveMention int     `json:"positiveMention"`
		NegativeMention int     `json:"negativeMention"`
		Score           float64 `json:"score"`
	} `json:"data"`
	Symbol string `json:"symbol"`
}

// FetchSocialSentiment aggregates Finnhub social mention counts into a
// single sentiment summary.
func (p *FinnhubProvider) FetchSocialSentiment(ctx context.Context, symbol string) (*SocialSentiment, error) {
	if !p.Enabled() {
		return nil, errors.Wrap(errors.ErrProviderUnavailable, "finnhub: no token configured")
	}

	var raw finnhubSentimentResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol": strings.ToUpper(symbol),
			"token":  p.token,
		}).
		SetResult(&raw).
		Get("/stock/social-sentiment")
	if err != nil {
		return nil, errors.Wrapf(errors.ErrProviderUnavailable, "finnhub sentiment %s: %v", symbol, err)
	}
	if resp.IsError() {
		return nil, errors.Wrapf(errors.ErrProviderUnavailable, "finnhub sentiment %s: status %d", symbol, resp.StatusCode())
	}
	if len(raw.Data) == 0 {
		return nil, errors.Wrapf(errors.ErrProviderUnavailable, "finnhub sentiment %s: empty response", symbol)
	}

	var mentions, positive, negative int
	for _, d := range raw.Data {
		mentions += d.Mention
		positive += d.PositiveMention
		negative += d.NegativeMention
	}
	if mentions == 0 {
		return nil, errors.Wrapf(errors.ErrProviderUnavailable, "finnhub sentiment %s: no mentions", symbol)
	}

	posRatio := decimal.NewFromInt(int64(positive)).Div(decimal.NewFromInt(int64(mentions))).Round(4)
	negRatio := decimal.NewFromInt(int64(negative)).Div(decimal.NewFromInt(int64(mentions))).Round(4)

	return &SocialSentiment{
		Symbol:        strings.ToUpper(symbol),
		Overall:       classifySentiment(posRatio, negRatio),
		PositiveRatio: posRatio,
		NegativeRatio: negRatio,
		PostCount:     mentions,
		AsOf:          time.Now().UTC(),
	}, nil
}

func classifySentiment(positive, negative decimal.Decimal) string {
	diff := positive.Sub(negative)
	switch {
	case diff.GreaterThan(decimal.NewFromFloat(0.1)):
		return "bullish"
	case diff.LessThan(decimal.NewFromFloat(-0.1)):
		return "bearish"
	default:
		return "neutral"
	}
}
