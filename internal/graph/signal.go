package graph

import (
	"regexp"
	"strings"

	"tradecouncil/internal/state"
)

var signalPattern = regexp.MustCompile(`(?i)\b(BUY|SELL|HOLD)\b`)

// ExtractSignal scans text for a trading signal token, case-insensitive.
// The earliest occurrence wins; HOLD when no token is present.
func ExtractSignal(text string) state.Signal {
	switch strings.ToUpper(signalPattern.FindString(text)) {
	case "BUY":
		return state.SignalBuy
	case "SELL":
		return state.SignalSell
	default:
		return state.SignalHold
	}
}
