package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", "2025-10-31")
	require.NoError(t, err)
	return d
}

func TestDecisionState_AppendIsNonDestructive(t *testing.T) {
	prior := New("TSLA", date(t))
	next := prior.AddAnalystReport("market looks strong")

	assert.Empty(t, prior.AnalystReports, "prior state must be unchanged")
	require.Len(t, next.AnalystReports, 1)
	assert.Equal(t, "market looks strong", next.AnalystReports[0])
	assert.Equal(t, prior.RunID, next.RunID)

	// Appending to the new state must not alias the old backing array.
	third := next.AddAnalystReport("second report")
	assert.Len(t, next.AnalystReports, 1)
	assert.Len(t, third.AnalystReports, 2)
}

func TestDecisionState_TerminalFieldsFirstWriteWins(t *testing.T) {
	s := New("AAPL", date(t)).
		WithResearchManagerDecision("lean bullish").
		WithResearchManagerDecision("actually bearish")

	assert.Equal(t, "lean bullish", s.ResearchManagerDecision)

	s = s.WithTradingPlan("buy the dip").WithTradingPlan("sell everything")
	assert.Equal(t, "buy the dip", s.TradingPlan)

	s = s.WithRiskManagerDecision("approved").WithRiskManagerDecision("rejected")
	assert.Equal(t, "approved", s.RiskManagerDecision)
}

func TestDecisionState_FinalizeSignalMayReplace(t *testing.T) {
	s := New("AAPL", date(t)).FinalizeSignal(SignalHold)
	assert.Equal(t, SignalHold, s.FinalSignal)

	s = s.FinalizeSignal(SignalBuy)
	assert.Equal(t, SignalBuy, s.FinalSignal)
}

func TestDecisionState_RiskDebate(t *testing.T) {
	s := New("NVDA", date(t)).
		AddRiskStatement(StanceAggressive, "double the position").
		AddRiskStatement(StanceConservative, "cap exposure at 2%").
		AddRiskStatement(StanceNeutral, "scale in gradually").
		AddRiskStatement(StanceAggressive, "momentum favors us")

	assert.Equal(t, []string{"double the position", "momentum favors us"}, s.RiskDebate.Aggressive)
	assert.Equal(t, []string{"cap exposure at 2%"}, s.RiskDebate.Conservative)
	assert.Equal(t, []string{"scale in gradually"}, s.RiskDebate.Neutral)

	rendered := s.RiskDebate.Render()
	assert.Contains(t, rendered, "[Aggressive view]")
	assert.Contains(t, rendered, "- cap exposure at 2%")
	assert.False(t, s.RiskDebate.Empty())
	assert.True(t, New("X", date(t)).RiskDebate.Empty())
}

func TestDecisionState_MetadataLastWriteWins(t *testing.T) {
	prior := New("MSFT", date(t)).PutMetadata("market_analyst_trace", []string{"step 1"})
	next := prior.PutMetadata("market_analyst_trace", []string{"step 1", "step 2"})

	assert.Equal(t, []string{"step 1"}, prior.Metadata["market_analyst_trace"])
	assert.Equal(t, []string{"step 1", "step 2"}, next.Metadata["market_analyst_trace"])

	// Mutating the new map must not leak into the prior state.
	next.Metadata["other"] = 1
	_, ok := prior.Metadata["other"]
	assert.False(t, ok)
}
