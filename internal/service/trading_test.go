package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradecouncil/internal/adapters/ai"
	"tradecouncil/internal/graph"
	"tradecouncil/internal/state"
	"tradecouncil/internal/tools"
	"tradecouncil/pkg/prompts"
)

type recordingSinks struct {
	stored    *state.DecisionState
	published *state.DecisionState
	notified  *state.DecisionState
	written   *state.DecisionState

	storeErr error
}

func (r *recordingSinks) Save(ctx context.Context, st *state.DecisionState) error {
	r.stored = st
	return r.storeErr
}

func (r *recordingSinks) PublishDecision(ctx context.Context, st *state.DecisionState) error {
	r.published = st
	return nil
}

func (r *recordingSinks) NotifyDecision(st *state.DecisionState) error {
	r.notified = st
	return nil
}

func (r *recordingSinks) Write(st *state.DecisionState) (string, error) {
	r.written = st
	return "/tmp/report.md", nil
}

func stubOrchestrator() *graph.Orchestrator {
	client := ai.NewStubClient("Final Answer: BUY")
	return graph.Assemble(client, tools.NewRegistry(), prompts.Null{},
		ai.Params{Model: "stub"}, 5, 1, 1)
}

func TestAnalyzeDeliversToAllSinks(t *testing.T) {
	sinks := &recordingSinks{}
	svc := NewTradingService(stubOrchestrator(),
		WithReportWriter(sinks),
		WithStore(sinks),
		WithPublisher(sinks),
		WithNotifier(sinks),
	)

	st := svc.Analyze(context.Background(), "AAPL", time.Now())
	require.NotNil(t, st)
	assert.Equal(t, state.SignalBuy, st.FinalSignal)

	assert.Same(t, st, sinks.stored)
	assert.Same(t, st, sinks.published)
	assert.Same(t, st, sinks.notified)
	assert.Same(t, st, sinks.written)
}

func TestAnalyzeSinkFailureDoesNotAffectResult(t *testing.T) {
	sinks := &recordingSinks{storeErr: errors.New("db down")}
	svc := NewTradingService(stubOrchestrator(), WithStore(sinks))

	st := svc.Analyze(context.Background(), "AAPL", time.Now())
	require.NotNil(t, st)
	assert.Equal(t, state.SignalBuy, st.FinalSignal)
}

func TestAnalyzeWorksWithoutSinks(t *testing.T) {
	svc := NewTradingService(stubOrchestrator())

	st := svc.Analyze(context.Background(), "NVDA", time.Now())
	require.NotNil(t, st)
	assert.Equal(t, state.SignalBuy, st.FinalSignal)
}
