package dataflow

import (
	"context"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/equity"
	"github.com/shopspring/decimal"

	"tradecouncil/pkg/errors"
)

// YahooProvider serves quotes, candles and fundamentals from Yahoo Finance.
type YahooProvider struct{}

func NewYahooProvider() *YahooProvider {
	return &YahooProvider{}
}

func (p *YahooProvider) Name() string {
	return "yahoo"
}

// FetchBars returns daily candles for [start, end].
func (p *YahooProvider) FetchBars(ctx context.Context, symbol string, start, end time.Time) ([]Bar, error) {
	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}

	iter := chart.Get(params)

	var bars []Bar
	for iter.Next() {
		b := iter.Bar()
		bars = append(bars, Bar{
			Date:   time.Unix(int64(b.Timestamp), 0).UTC(),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: int64(b.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrapf(errors.ErrProviderUnavailable, "yahoo chart %s: %v", symbol, err)
	}
	if len(bars) == 0 {
		return nil, errors.Wrapf(errors.ErrInvalidSymbol, "yahoo chart %s: no bars", symbol)
	}

	return bars, nil
}

// FetchFundamental returns the headline valuation figures for a symbol.
func (p *YahooProvider) FetchFundamental(ctx context.Context, symbol string) (*Fundamental, error) {
	eq, err := equity.Get(symbol)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrProviderUnavailable, "yahoo equity %s: %v", symbol, err)
	}
	if eq == nil {
		return nil, errors.Wrapf(errors.ErrInvalidSymbol, "yahoo equity %s: not found", symbol)
	}

	price := decimal.NewFromFloat(eq.RegularMarketPrice)
	eps := decimal.NewFromFloat(eq.EpsTrailingTwelveMonths)
	book := decimal.NewFromFloat(eq.BookValue)

	f := &Fundamental{
		Symbol:        symbol,
		Name:          eq.ShortName,
		Price:         price,
		MarketCap:     eq.MarketCap,
		EPS:           eps,
		DividendYield: decimal.NewFromFloat(eq.TrailingAnnualDividendYield),
		AsOf:          time.Now().UTC(),
	}
	if !eps.IsZero() {
		f.PERatio = price.Div(eps).Round(2)
	}
	if !book.IsZero() {
		f.PBRatio = price.Div(book).Round(2)
	}

	return f, nil
}
