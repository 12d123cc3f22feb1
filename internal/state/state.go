package state

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Signal is the terminal classification of a decision run.
type Signal string

const (
	SignalBuy   Signal = "BUY"
	SignalSell  Signal = "SELL"
	SignalHold  Signal = "HOLD"
	SignalError Signal = "ERROR"
)

// Stance identifies a risk debator role.
type Stance string

const (
	StanceAggressive   Stance = "aggressive"
	StanceConservative Stance = "conservative"
	StanceNeutral      Stance = "neutral"
)

// RiskDebate holds the three append-only statement sequences of the risk
// debate stage, one per stance.
type RiskDebate struct {
	Aggressive   []string
	Conservative []string
	Neutral      []string
}

// Empty reports whether no debator has spoken yet.
func (d RiskDebate) Empty() bool {
	return len(d.Aggressive) == 0 && len(d.Conservative) == 0 && len(d.Neutral) == 0
}

// Render formats the debate record as prompt-ready text, one section per
// stance in fixed order.
func (d RiskDebate) Render() string {
	var sb strings.Builder
	writeSection := func(title string, statements []string) {
		if len(statements) == 0 {
			return
		}
		sb.WriteString("[" + title + "]\n")
		for _, s := range statements {
			sb.WriteString("- " + s + "\n")
		}
		sb.WriteString("\n")
	}
	writeSection("Aggressive view", d.Aggressive)
	writeSection("Conservative view", d.Conservative)
	writeSection("Neutral view", d.Neutral)
	return strings.TrimRight(sb.String(), "\n")
}

func (d RiskDebate) clone() RiskDebate {
	return RiskDebate{
		Aggressive:   append([]string(nil), d.Aggressive...),
		Conservative: append([]string(nil), d.Conservative...),
		Neutral:      append([]string(nil), d.Neutral...),
	}
}

// DecisionState is the accumulating record of a single trading decision run.
// Every mutation returns a fresh value; prior versions are never touched, so
// the full decision trail stays auditable and stages can be replayed against
// any intermediate state.
//
// Terminal fields (manager decisions, trading plan, final signal) are
// first-write-wins: once set, later stages read them but cannot overwrite.
// FinalizeSignal is the one named transition allowed to replace FinalSignal.
type DecisionState struct {
	RunID  uuid.UUID
	Symbol string
	Date   time.Time

	AnalystReports       []string
	ResearcherViewpoints []string

	ResearchManagerDecision string
	TradingPlan             string

	RiskDebate          RiskDebate
	RiskManagerDecision string
	FinalSignal         Signal

	// Metadata is a per-agent side channel (reasoning traces and so on),
	// keyed by agent name, last write wins.
	Metadata map[string]interface{}
}

// New creates the initial state for a symbol/date decision run.
func New(symbol string, date time.Time) *DecisionState {
	return &DecisionState{
		RunID:    uuid.New(),
		Symbol:   symbol,
		Date:     date,
		Metadata: map[string]interface{}{},
	}
}

func (s *DecisionState) clone() *DecisionState {
	meta := make(map[string]interface{}, len(s.Metadata))
	for k, v := range s.Metadata {
		meta[k] = v
	}
	return &DecisionState{
		RunID:                   s.RunID,
		Symbol:                  s.Symbol,
		Date:                    s.Date,
		AnalystReports:          append([]string(nil), s.AnalystReports...),
		ResearcherViewpoints:    append([]string(nil), s.ResearcherViewpoints...),
		ResearchManagerDecision: s.ResearchManagerDecision,
		TradingPlan:             s.TradingPlan,
		RiskDebate:              s.RiskDebate.clone(),
		RiskManagerDecision:     s.RiskManagerDecision,
		FinalSignal:             s.FinalSignal,
		Metadata:                meta,
	}
}

// AddAnalystReport appends one analyst report.
func (s *DecisionState) AddAnalystReport(report string) *DecisionState {
	next := s.clone()
	next.AnalystReports = append(next.AnalystReports, report)
	return next
}

// AddResearcherViewpoint appends one bull/bear contribution.
func (s *DecisionState) AddResearcherViewpoint(viewpoint string) *DecisionState {
	next := s.clone()
	next.ResearcherViewpoints = append(next.ResearcherViewpoints, viewpoint)
	return next
}

// WithResearchManagerDecision records the research manager's synthesis.
// First write wins.
func (s *DecisionState) WithResearchManagerDecision(decision string) *DecisionState {
	if s.ResearchManagerDecision != "" {
		return s
	}
	next := s.clone()
	next.ResearchManagerDecision = decision
	return next
}

// WithTradingPlan records the trader's plan. First write wins.
func (s *DecisionState) WithTradingPlan(plan string) *DecisionState {
	if s.TradingPlan != "" {
		return s
	}
	next := s.clone()
	next.TradingPlan = plan
	return next
}

// AddRiskStatement appends a statement to the given stance's sequence.
func (s *DecisionState) AddRiskStatement(stance Stance, statement string) *DecisionState {
	next := s.clone()
	switch stance {
	case StanceAggressive:
		next.RiskDebate.Aggressive = append(next.RiskDebate.Aggressive, statement)
	case StanceConservative:
		next.RiskDebate.Conservative = append(next.RiskDebate.Conservative, statement)
	case StanceNeutral:
		next.RiskDebate.Neutral = append(next.RiskDebate.Neutral, statement)
	}
	return next
}

// WithRiskManagerDecision records the risk manager's synthesis. First write wins.
func (s *DecisionState) WithRiskManagerDecision(decision string) *DecisionState {
	if s.RiskManagerDecision != "" {
		return s
	}
	next := s.clone()
	next.RiskManagerDecision = decision
	return next
}

// FinalizeSignal sets the final signal. This is the explicit finalize
// transition and may replace an earlier signal.
func (s *DecisionState) FinalizeSignal(signal Signal) *DecisionState {
	next := s.clone()
	next.FinalSignal = signal
	return next
}

// PutMetadata stores a value under the given key, replacing any prior value.
func (s *DecisionState) PutMetadata(key string, value interface{}) *DecisionState {
	next := s.clone()
	next.Metadata[key] = value
	return next
}
