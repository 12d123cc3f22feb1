package graph

import (
	"tradecouncil/internal/adapters/ai"
	"tradecouncil/internal/agents"
	"tradecouncil/internal/tools"
	"tradecouncil/pkg/prompts"
)

// Assemble builds the standard twelve-role pipeline: four analysts, the
// bull/bear pair, research manager, trader, three risk debators and the
// risk manager, all sharing one engine and tool registry.
func Assemble(client ai.ChatClient, registry *tools.Registry, provider prompts.Provider,
	params ai.Params, maxSteps, researchRounds, riskRounds int) *Orchestrator {

	engine := agents.NewEngine(client, registry, params, maxSteps)
	build := func(spec agents.RoleSpec) agents.Agent {
		return agents.NewAgent(spec, engine, registry, provider)
	}

	return New(Config{
		Analysts: []agents.Agent{
			build(agents.MarketAnalyst()),
			build(agents.FundamentalsAnalyst()),
			build(agents.NewsAnalyst()),
			build(agents.SocialAnalyst()),
		},
		Bull:            build(agents.BullResearcher()),
		Bear:            build(agents.BearResearcher()),
		ResearchManager: build(agents.ResearchManager()),
		Trader:          build(agents.Trader()),
		RiskDebators: []agents.Agent{
			build(agents.AggressiveDebator()),
			build(agents.ConservativeDebator()),
			build(agents.NeutralDebator()),
		},
		RiskManager:          build(agents.RiskManager()),
		ResearchDebateRounds: researchRounds,
		RiskDebateRounds:     riskRounds,
	})
}
