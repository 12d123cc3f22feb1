package agents

import (
	"strings"

	"tradecouncil/internal/state"
	"tradecouncil/internal/tools"
	"tradecouncil/pkg/prompts"
)

// buildVars assembles the substitution variables exposed to prompt
// templates. Every role sees the same set; templates pick what they need.
func buildVars(st *state.DecisionState, registry *tools.Registry) map[string]string {
	return map[string]string{
		"symbol":               st.Symbol,
		"date":                 st.Date.Format("2006-01-02"),
		"analystReports":       strings.Join(st.AnalystReports, "\n\n"),
		"researcherViewpoints": strings.Join(st.ResearcherViewpoints, "\n\n"),
		"managerDecision":      st.ResearchManagerDecision,
		"tradingPlan":          st.TradingPlan,
		"riskDebateHistory":    st.RiskDebate.Render(),
		"tools":                registry.Describe(),
	}
}

// resolvePrompts returns the substituted system and user prompts for a
// role. The provider is consulted for <key>.system and <key>.prompt;
// when either yields nothing the role's built-in defaults are used, so
// an agent is operable with zero template configuration.
func resolvePrompts(provider prompts.Provider, spec RoleSpec, vars map[string]string) (string, string) {
	system, sysOK := provider.Lookup(spec.PromptKey + ".system")
	user, userOK := provider.Lookup(spec.PromptKey + ".prompt")
	if !sysOK || !userOK {
		system = spec.DefaultSystem
		user = spec.DefaultUser
	}

	return prompts.Substitute(system, vars), prompts.Substitute(user, vars)
}
