package dataflow

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bar is a single daily OHLCV candle.
type Bar struct {
	Date   time.Time       `json:"date"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume int64           `json:"volume"`
}

// Fundamental carries the headline valuation figures for a symbol.
type Fundamental struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	MarketCap     int64           `json:"market_cap"`
	PERatio       decimal.Decimal `json:"pe_ratio"`
	PBRatio       decimal.Decimal `json:"pb_ratio"`
	EPS           decimal.Decimal `json:"eps"`
	DividendYield decimal.Decimal `json:"dividend_yield"`
	AsOf          time.Time       `json:"as_of"`
}

// NewsItem is a single headline with its source and publish time.
type NewsItem struct {
	Headline    string    `json:"headline"`
	Summary     string    `json:"summary"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
}

// SocialSentiment summarizes retail chatter around a symbol.
type SocialSentiment struct {
	Symbol        string          `json:"symbol"`
	Overall       string          `json:"overall"`
	PositiveRatio decimal.Decimal `json:"positive_ratio"`
	NegativeRatio decimal.Decimal `json:"negative_ratio"`
	PostCount     int             `json:"post_count"`
	AsOf          time.Time       `json:"as_of"`
}

// IndicatorReport holds the computed technical indicator values for the
// most recent bar in a series.
type IndicatorReport struct {
	Symbol     string          `json:"symbol"`
	RSI        decimal.Decimal `json:"rsi"`
	MACD       decimal.Decimal `json:"macd"`
	MACDSignal decimal.Decimal `json:"macd_signal"`
	MACDHist   decimal.Decimal `json:"macd_hist"`
	SMA20      decimal.Decimal `json:"sma_20"`
	SMA50      decimal.Decimal `json:"sma_50"`
	EMA12      decimal.Decimal `json:"ema_12"`
	BBUpper    decimal.Decimal `json:"bb_upper"`
	BBMiddle   decimal.Decimal `json:"bb_middle"`
	BBLower    decimal.Decimal `json:"bb_lower"`
	Bars       int             `json:"bars"`
}
