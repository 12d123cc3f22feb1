package agents

import (
	"context"

	"tradecouncil/internal/metrics"
	"tradecouncil/internal/state"
	"tradecouncil/internal/tools"
	"tradecouncil/pkg/prompts"
)

// RoleSpec parameterizes one agent role: its identity, prompt template
// key, built-in default prompts, and how its final answer is written
// into the decision state. All roles share the same execution contract;
// only the spec differs.
type RoleSpec struct {
	Name          string
	Type          AgentType
	PromptKey     string
	DefaultSystem string
	DefaultUser   string
	Apply         func(st *state.DecisionState, answer string) *state.DecisionState
}

type reactAgent struct {
	spec     RoleSpec
	engine   *Engine
	registry *tools.Registry
	provider prompts.Provider
}

// NewAgent builds an agent from a role spec. provider may be
// prompts.Null{} to run purely on the built-in defaults.
func NewAgent(spec RoleSpec, engine *Engine, registry *tools.Registry, provider prompts.Provider) Agent {
	if provider == nil {
		provider = prompts.Null{}
	}

	return &reactAgent{
		spec:     spec,
		engine:   engine,
		registry: registry,
		provider: provider,
	}
}

func (a *reactAgent) Name() string    { return a.spec.Name }
func (a *reactAgent) Type() AgentType { return a.spec.Type }

func (a *reactAgent) Execute(ctx context.Context, st *state.DecisionState) (*state.DecisionState, error) {
	vars := buildVars(st, a.registry)
	system, user := resolvePrompts(a.provider, a.spec, vars)

	res, err := a.engine.Run(ctx, a.spec.Name, system, user)
	steps := 0
	if res != nil {
		steps = res.Steps
	}
	metrics.RecordAgentExecution(a.spec.Name, steps, err)
	if err != nil {
		return nil, err
	}

	next := a.spec.Apply(st, res.Answer)
	return next.PutMetadata(a.spec.Name, res.Trace), nil
}

const systemScaffold = `

Available tools:
{tools}

To use a tool, reply with exactly:
Action: <tool_name>
Action Input: <JSON object>

You will receive the result as an observation. When you have enough information, reply with:
Final Answer: <your conclusion>`

func analystSpec(name, key, focus, instruction string) RoleSpec {
	return RoleSpec{
		Name:          name,
		Type:          TypeAnalyst,
		PromptKey:     key,
		DefaultSystem: "You are a " + focus + " for an equity research desk." + systemScaffold,
		DefaultUser:   instruction + " for {symbol} as of {date}. Use the tools to gather evidence before concluding.",
		Apply: func(st *state.DecisionState, answer string) *state.DecisionState {
			return st.AddAnalystReport("[" + name + "] " + answer)
		},
	}
}

// MarketAnalyst studies price action and technical indicators.
func MarketAnalyst() RoleSpec {
	return analystSpec("market_analyst", "react.analyst.market",
		"market analyst focused on price action and technical indicators",
		"Write a technical analysis report")
}

// FundamentalsAnalyst studies valuation and financial health.
func FundamentalsAnalyst() RoleSpec {
	return analystSpec("fundamentals_analyst", "react.analyst.fundamentals",
		"fundamentals analyst focused on valuation and financial health",
		"Write a fundamental analysis report")
}

// NewsAnalyst studies recent headlines and catalysts.
func NewsAnalyst() RoleSpec {
	return analystSpec("news_analyst", "react.analyst.news",
		"news analyst focused on recent headlines and catalysts",
		"Write a news impact report")
}

// SocialAnalyst studies retail sentiment.
func SocialAnalyst() RoleSpec {
	return analystSpec("social_analyst", "react.analyst.social",
		"sentiment analyst focused on retail and social media mood",
		"Write a social sentiment report")
}

func researcherSpec(name, key, stance string) RoleSpec {
	return RoleSpec{
		Name:          name,
		Type:          TypeResearcher,
		PromptKey:     key,
		DefaultSystem: "You are the " + stance + " researcher in an investment debate. Argue your side with evidence, rebut the other side directly." + systemScaffold,
		DefaultUser: `Analyst reports for {symbol} as of {date}:

{analystReports}

Debate so far:

{researcherViewpoints}

Make your strongest ` + stance + ` argument. Address the latest opposing point if one exists.`,
		Apply: func(st *state.DecisionState, answer string) *state.DecisionState {
			return st.AddResearcherViewpoint("[" + name + "] " + answer)
		},
	}
}

// BullResearcher argues the long case.
func BullResearcher() RoleSpec {
	return researcherSpec("bull_researcher", "react.researcher.bull", "bull")
}

// BearResearcher argues the short case.
func BearResearcher() RoleSpec {
	return researcherSpec("bear_researcher", "react.researcher.bear", "bear")
}

// ResearchManager weighs the debate into an investment stance.
func ResearchManager() RoleSpec {
	return RoleSpec{
		Name:          "research_manager",
		Type:          TypeManager,
		PromptKey:     "react.manager.research",
		DefaultSystem: "You are the research manager. Weigh the analyst reports and the bull/bear debate, then commit to a clear investment stance." + systemScaffold,
		DefaultUser: `Analyst reports for {symbol} as of {date}:

{analystReports}

Bull/bear debate:

{researcherViewpoints}

Decide: is the evidence bullish, bearish, or mixed? State your recommendation and the key reasons.`,
		Apply: func(st *state.DecisionState, answer string) *state.DecisionState {
			return st.WithResearchManagerDecision(answer)
		},
	}
}

// Trader converts the manager's stance into a concrete plan.
func Trader() RoleSpec {
	return RoleSpec{
		Name:          "trader",
		Type:          TypeTrader,
		PromptKey:     "react.trader",
		DefaultSystem: "You are a trader. Turn the research decision into a concrete trading plan: direction, sizing approach, entry and exit conditions." + systemScaffold,
		DefaultUser: `Research decision for {symbol} as of {date}:

{managerDecision}

Write the trading plan.`,
		Apply: func(st *state.DecisionState, answer string) *state.DecisionState {
			return st.WithTradingPlan(answer)
		},
	}
}

func riskDebatorSpec(name, key string, stance state.Stance, persona string) RoleSpec {
	return RoleSpec{
		Name:          name,
		Type:          TypeRiskDebator,
		PromptKey:     key,
		DefaultSystem: "You are the " + persona + " voice in a risk review. Critique the trading plan from your perspective." + systemScaffold,
		DefaultUser: `Trading plan for {symbol} as of {date}:

{tradingPlan}

Risk debate so far:

{riskDebateHistory}

Give your ` + persona + ` assessment of the plan.`,
		Apply: func(st *state.DecisionState, answer string) *state.DecisionState {
			return st.AddRiskStatement(stance, answer)
		},
	}
}

// AggressiveDebator pushes for more risk.
func AggressiveDebator() RoleSpec {
	return riskDebatorSpec("aggressive_debator", "react.risk.aggressive",
		state.StanceAggressive, "aggressive, upside-seeking")
}

// ConservativeDebator pushes for less risk.
func ConservativeDebator() RoleSpec {
	return riskDebatorSpec("conservative_debator", "react.risk.conservative",
		state.StanceConservative, "conservative, capital-preserving")
}

// NeutralDebator keeps the debate balanced.
func NeutralDebator() RoleSpec {
	return riskDebatorSpec("neutral_debator", "react.risk.neutral",
		state.StanceNeutral, "neutral, balance-seeking")
}

// RiskManager issues the final verdict the signal is extracted from.
func RiskManager() RoleSpec {
	return RoleSpec{
		Name:          "risk_manager",
		Type:          TypeRiskManager,
		PromptKey:     "react.manager.risk",
		DefaultSystem: "You are the risk manager with final authority. Review the trading plan and the risk debate, then issue the final verdict. Your answer must contain exactly one of the words BUY, SELL or HOLD." + systemScaffold,
		DefaultUser: `Trading plan for {symbol} as of {date}:

{tradingPlan}

Risk debate:

{riskDebateHistory}

Issue the final decision. Include BUY, SELL or HOLD explicitly.`,
		Apply: func(st *state.DecisionState, answer string) *state.DecisionState {
			return st.WithRiskManagerDecision(answer)
		},
	}
}
