package agents

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradecouncil/internal/adapters/ai"
	"tradecouncil/internal/tools"
)

func newTestEngine(client ai.ChatClient, registry *tools.Registry, maxSteps int) *Engine {
	return NewEngine(client, registry, ai.Params{Model: "test-model"}, maxSteps)
}

func countingTool(name string, calls *int32, reply string) tools.Tool {
	return tools.New(name, "test tool", func(ctx context.Context, args map[string]interface{}) (string, error) {
		atomic.AddInt32(calls, 1)
		return reply, nil
	})
}

func TestEngineFinalAnswerStopsLoop(t *testing.T) {
	client := ai.NewStubClient("Final Answer: BUY")
	engine := newTestEngine(client, tools.NewRegistry(), 5)

	res, err := engine.Run(context.Background(), "test_agent", "system", "user")
	require.NoError(t, err)

	assert.Equal(t, "BUY", res.Answer)
	assert.Equal(t, 1, res.Steps)
	assert.False(t, res.Exhausted)
	assert.Equal(t, 1, client.CallCount())
}

func TestEngineInvokesToolExactlyOnce(t *testing.T) {
	var calls int32
	registry := tools.NewRegistry()
	registry.Register(countingTool("get_data", &calls, `{"value": 42}`))

	client := ai.NewStubClient(
		"Action: get_data\nAction Input: {\"symbol\": \"TSLA\"}",
		"Final Answer: done",
	)
	engine := newTestEngine(client, registry, 5)

	res, err := engine.Run(context.Background(), "test_agent", "system", "user")
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, "done", res.Answer)

	// exactly one observation was appended before the second model call
	require.Len(t, client.Calls, 2)
	first, second := client.Calls[0], client.Calls[1]
	require.Len(t, first, 2)
	require.Len(t, second, 3)
	assert.Contains(t, second[2].Content, "Observation: ")
	assert.Contains(t, second[2].Content, `{"value": 42}`)
}

func TestEngineExhaustsBudget(t *testing.T) {
	client := ai.NewStubClient("still thinking, no action yet")
	engine := newTestEngine(client, tools.NewRegistry(), 3)

	res, err := engine.Run(context.Background(), "test_agent", "system", "user")
	require.NoError(t, err)

	assert.Equal(t, 3, client.CallCount())
	assert.Equal(t, 3, res.Steps)
	assert.True(t, res.Exhausted)
	assert.Equal(t, fallbackAnswer, res.Answer)
}

func TestEngineCorrectiveObservationOnNoAction(t *testing.T) {
	client := ai.NewStubClient(
		"rambling with no markers",
		"Final Answer: ok",
	)
	engine := newTestEngine(client, tools.NewRegistry(), 5)

	res, err := engine.Run(context.Background(), "test_agent", "system", "user")
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Answer)

	require.Len(t, client.Calls, 2)
	last := client.Calls[1][len(client.Calls[1])-1]
	assert.Equal(t, "Observation: "+correctiveObservation, last.Content)
}

func TestEngineUnknownToolListsRegisteredNames(t *testing.T) {
	var calls int32
	registry := tools.NewRegistry()
	registry.Register(countingTool("get_fundamentals", &calls, "{}"))
	registry.Register(countingTool("get_news", &calls, "{}"))

	client := ai.NewStubClient(
		"Action: foo\nAction Input: {}",
		"Final Answer: ok",
	)
	engine := newTestEngine(client, registry, 5)

	res, err := engine.Run(context.Background(), "test_agent", "system", "user")
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Answer)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))

	require.Len(t, client.Calls, 2)
	obs := client.Calls[1][len(client.Calls[1])-1].Content
	assert.Contains(t, obs, `"foo"`)
	assert.Contains(t, obs, "get_fundamentals")
	assert.Contains(t, obs, "get_news")
}

func TestEngineMalformedInputStillInvokes(t *testing.T) {
	var gotArgs map[string]interface{}
	registry := tools.NewRegistry()
	registry.Register(tools.New("get_data", "test tool", func(ctx context.Context, args map[string]interface{}) (string, error) {
		gotArgs = args
		return "data", nil
	}))

	client := ai.NewStubClient(
		"Action: get_data\nAction Input: {\"symbol\": }",
		"Final Answer: ok",
	)
	engine := newTestEngine(client, registry, 5)

	_, err := engine.Run(context.Background(), "test_agent", "system", "user")
	require.NoError(t, err)

	// the tool still ran, with an empty input map
	require.NotNil(t, gotArgs)
	assert.Empty(t, gotArgs)

	obs := client.Calls[1][len(client.Calls[1])-1].Content
	assert.Contains(t, obs, "could not parse action input")
	assert.Contains(t, obs, "data")
}

func TestEnginePanickingToolBecomesObservation(t *testing.T) {
	registry := tools.NewRegistry()
	registry.Register(tools.New("explode", "test tool", func(ctx context.Context, args map[string]interface{}) (string, error) {
		panic("boom")
	}))

	client := ai.NewStubClient(
		"Action: explode\nAction Input: {}",
		"Final Answer: survived",
	)
	engine := newTestEngine(client, registry, 5)

	res, err := engine.Run(context.Background(), "test_agent", "system", "user")
	require.NoError(t, err)
	assert.Equal(t, "survived", res.Answer)

	obs := client.Calls[1][len(client.Calls[1])-1].Content
	assert.Contains(t, obs, "error executing tool explode")
	assert.Contains(t, obs, "boom")
}

func TestEngineTraceRecordsCompletions(t *testing.T) {
	client := ai.NewStubClient(
		"no action here",
		"Final Answer: traced",
	)
	engine := newTestEngine(client, tools.NewRegistry(), 5)

	res, err := engine.Run(context.Background(), "test_agent", "system", "user")
	require.NoError(t, err)

	// completion, observation, completion
	require.Len(t, res.Trace, 3)
	assert.Equal(t, "no action here", res.Trace[0])
	assert.Equal(t, "Observation: "+correctiveObservation, res.Trace[1])
	assert.Equal(t, "Final Answer: traced", res.Trace[2])
}
