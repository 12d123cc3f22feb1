package agents

import (
	"context"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradecouncil/internal/adapters/ai"
	"tradecouncil/internal/state"
	"tradecouncil/internal/tools"
	"tradecouncil/pkg/prompts"
)

func testState(t *testing.T) *state.DecisionState {
	t.Helper()
	return state.New("TSLA", time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC))
}

func TestAnalystWritesReportAndTrace(t *testing.T) {
	client := ai.NewStubClient("Final Answer: momentum looks strong")
	engine := newTestEngine(client, tools.NewRegistry(), 5)
	agent := NewAgent(MarketAnalyst(), engine, tools.NewRegistry(), prompts.Null{})

	before := testState(t)
	after, err := agent.Execute(context.Background(), before)
	require.NoError(t, err)

	require.Len(t, after.AnalystReports, 1)
	assert.Contains(t, after.AnalystReports[0], "market_analyst")
	assert.Contains(t, after.AnalystReports[0], "momentum looks strong")

	// trace stored under the agent name, input state untouched
	assert.Contains(t, after.Metadata, "market_analyst")
	assert.Empty(t, before.AnalystReports)
	assert.Empty(t, before.Metadata)
}

func TestRiskDebatorWritesOwnStance(t *testing.T) {
	client := ai.NewStubClient("Final Answer: size up, the setup is favorable")
	engine := newTestEngine(client, tools.NewRegistry(), 5)
	agent := NewAgent(AggressiveDebator(), engine, tools.NewRegistry(), prompts.Null{})

	after, err := agent.Execute(context.Background(), testState(t))
	require.NoError(t, err)

	require.Len(t, after.RiskDebate.Aggressive, 1)
	assert.Empty(t, after.RiskDebate.Conservative)
	assert.Empty(t, after.RiskDebate.Neutral)
}

func TestResolvePromptsUsesProviderWhenBothKeysPresent(t *testing.T) {
	fsys := fstest.MapFS{
		"react/analyst/market/system.txt": {Data: []byte("custom system with {tools}")},
		"react/analyst/market/prompt.txt": {Data: []byte("custom prompt for {symbol}")},
	}
	provider, err := prompts.NewRegistryFromFS(fsys)
	require.NoError(t, err)

	vars := map[string]string{"symbol": "TSLA", "tools": "- get_news: news\n"}
	system, user := resolvePrompts(provider, MarketAnalyst(), vars)

	assert.Equal(t, "custom system with - get_news: news\n", system)
	assert.Equal(t, "custom prompt for TSLA", user)
}

func TestResolvePromptsFallsBackWhenKeyMissing(t *testing.T) {
	// only the system half exists; the role's defaults must be used
	fsys := fstest.MapFS{
		"react/analyst/market/system.txt": {Data: []byte("custom system")},
	}
	provider, err := prompts.NewRegistryFromFS(fsys)
	require.NoError(t, err)

	spec := MarketAnalyst()
	vars := map[string]string{"symbol": "TSLA", "date": "2025-10-31", "tools": ""}
	system, user := resolvePrompts(provider, spec, vars)

	assert.NotEqual(t, "custom system", system)
	assert.Contains(t, user, "TSLA")
	assert.Contains(t, user, "2025-10-31")
}

func TestBuildVarsExposesStateFields(t *testing.T) {
	st := testState(t).
		AddAnalystReport("report one").
		AddResearcherViewpoint("bull view").
		WithResearchManagerDecision("go long").
		WithTradingPlan("buy the dip")

	registry := tools.NewRegistry()
	registry.Register(tools.New("get_news", "news lookup", nil))

	vars := buildVars(st, registry)
	assert.Equal(t, "TSLA", vars["symbol"])
	assert.Equal(t, "2025-10-31", vars["date"])
	assert.Equal(t, "report one", vars["analystReports"])
	assert.Equal(t, "bull view", vars["researcherViewpoints"])
	assert.Equal(t, "go long", vars["managerDecision"])
	assert.Equal(t, "buy the dip", vars["tradingPlan"])
	assert.Equal(t, "- get_news: news lookup\n", vars["tools"])
}
