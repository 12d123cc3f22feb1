// Package agents implements the reasoning agents that move a decision
// through the pipeline: analysts, researchers, trader and risk roles.
package agents

import (
	"context"

	"tradecouncil/internal/state"
)

// AgentType groups roles by their place in the pipeline.
type AgentType string

const (
	TypeAnalyst     AgentType = "analyst"
	TypeResearcher  AgentType = "researcher"
	TypeManager     AgentType = "manager"
	TypeTrader      AgentType = "trader"
	TypeRiskDebator AgentType = "risk_debator"
	TypeRiskManager AgentType = "risk_manager"
)

// Agent is a single reasoning unit in the pipeline. Execute reads the
// fields its role needs from the incoming state and returns a new state
// with its conclusion written into the role's target field. The input
// state is never mutated.
type Agent interface {
	Name() string
	Type() AgentType
	Execute(ctx context.Context, st *state.DecisionState) (*state.DecisionState, error)
}
