package dataflow

import (
	"github.com/markcheno/go-talib"
	"github.com/shopspring/decimal"

	"tradecouncil/pkg/errors"
)

// minIndicatorBars is the smallest series the slowest indicator (SMA 50)
// can be computed over.
const minIndicatorBars = 50

// ComputeIndicators derives the standard technical indicator set from a
// series of daily bars. Bars must be in ascending date order.
func ComputeIndicators(symbol string, bars []Bar) (*IndicatorReport, error) {
	if len(bars) < minIndicatorBars {
		return nil, errors.Wrapf(errors.ErrInvalidInput,
			"indicators %s: need at least %d bars, got %d", symbol, minIndicatorBars, len(bars))
	}

	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i], _ = b.Close.Float64()
	}

	rsi := talib.Rsi(closes, 14)
	macd, macdSignal, macdHist := talib.Macd(closes, 12, 26, 9)
	sma20 := talib.Sma(closes, 20)
	sma50 := talib.Sma(closes, 50)
	ema12 := talib.Ema(closes, 12)
	bbUpper, bbMiddle, bbLower := talib.BBands(closes, 20, 2.0, 2.0, talib.SMA)

	last := len(closes) - 1
	round := func(vs []float64) decimal.Decimal {
		return decimal.NewFromFloat(vs[last]).Round(4)
	}

	return &IndicatorReport{
		Symbol:     symbol,
		RSI:        round(rsi),
		MACD:       round(macd),
		MACDSignal: round(macdSignal),
		MACDHist:   round(macdHist),
		SMA20:      round(sma20),
		SMA50:      round(sma50),
		EMA12:      round(ema12),
		BBUpper:    round(bbUpper),
		BBMiddle:   round(bbMiddle),
		BBLower:    round(bbLower),
		Bars:       len(bars),
	}, nil
}
