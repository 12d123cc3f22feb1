package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tradecouncil/internal/adapters/ai"
	"tradecouncil/internal/metrics"
	"tradecouncil/internal/tools"
	"tradecouncil/pkg/errors"
	"tradecouncil/pkg/logger"
)

const (
	// DefaultMaxSteps bounds the reasoning loop when no budget is configured.
	DefaultMaxSteps = 20

	// fallbackAnswer is returned when the step budget runs out without a
	// final answer. Exhaustion is a degraded outcome, not a failure.
	fallbackAnswer = "Inconclusive: the reasoning step budget was exhausted before a final answer was reached."

	correctiveObservation = "no valid action detected; provide the next action or a final answer"
)

// Engine drives the bounded think/act/observe loop for one agent
// execution. The model is the only unreliable party: every protocol or
// tool fault inside the loop degrades to a textual observation, and the
// step budget is the sole termination mechanism besides a final answer.
type Engine struct {
	client   ai.ChatClient
	registry *tools.Registry
	params   ai.Params
	maxSteps int
	log      *logger.Logger
}

// Result is the outcome of one loop run. Trace holds every raw model
// completion and observation in order.
type Result struct {
	Answer    string
	Steps     int
	Exhausted bool
	Trace     []string
}

func NewEngine(client ai.ChatClient, registry *tools.Registry, params ai.Params, maxSteps int) *Engine {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	return &Engine{
		client:   client,
		registry: registry,
		params:   params,
		maxSteps: maxSteps,
		log:      logger.Get().With("component", "engine"),
	}
}

// Run executes the loop for agentName with the given prompts. It
// returns an error only when the model itself is unreachable; every
// fault below that is converted into an observation and the loop
// continues until a final answer or the budget runs out.
func (e *Engine) Run(ctx context.Context, agentName, systemPrompt, userPrompt string) (*Result, error) {
	messages := []ai.Message{
		ai.System(systemPrompt),
		ai.User(userPrompt),
	}

	res := &Result{}

	for step := 1; step <= e.maxSteps; step++ {
		res.Steps = step

		start := time.Now()
		completion, err := e.client.Chat(ctx, messages, e.params)
		metrics.RecordModelCall(agentName, e.params.Model, time.Since(start), err)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrStageFailed, "agent %s step %d: %v", agentName, step, err)
		}

		res.Trace = append(res.Trace, completion)

		reply := parseReply(completion)
		if reply.kind == replyFinalAnswer {
			res.Answer = reply.answer
			return res, nil
		}

		observation := e.observe(ctx, reply)

		res.Trace = append(res.Trace, "Observation: "+observation)
		messages = append(messages, ai.Tool("Observation: "+observation))
	}

	e.log.Warnw("step budget exhausted", "agent", agentName, "steps", e.maxSteps)
	res.Answer = fallbackAnswer
	res.Exhausted = true
	return res, nil
}

// observe turns a non-terminal reply into the observation text fed back
// to the model.
func (e *Engine) observe(ctx context.Context, reply parsedReply) string {
	if reply.kind == replyNoAction {
		return correctiveObservation
	}

	tool, ok := e.registry.Resolve(reply.toolName)
	if !ok {
		return fmt.Sprintf("error: unknown tool %q; registered tools: %s",
			reply.toolName, strings.Join(e.registry.Names(), ", "))
	}

	var prefix string
	if reply.inputErr != nil {
		// invoke anyway with the empty map so the model still gets data,
		// but tell it the input was rejected
		prefix = fmt.Sprintf("warning: could not parse action input (%v); invoked %s with empty input. ",
			reply.inputErr, reply.toolName)
	}

	out, err := e.invoke(ctx, tool, reply.toolInput)
	if err != nil {
		return prefix + fmt.Sprintf("error executing tool %s: %v", reply.toolName, err)
	}

	return prefix + out
}

// invoke calls the tool with panic recovery. A panicking tool must not
// unwind past the loop.
func (e *Engine) invoke(ctx context.Context, tool tools.Tool, input map[string]interface{}) (out string, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(errors.ErrInternal, "tool %s panicked: %v", tool.Name(), r)
		}
		metrics.RecordToolExecution(tool.Name(), time.Since(start), err)
	}()

	return tool.Call(ctx, input)
}
