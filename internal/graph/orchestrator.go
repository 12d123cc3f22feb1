// Package graph sequences the agents into the fixed decision pipeline
// and derives the final trading signal.
package graph

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tradecouncil/internal/agents"
	"tradecouncil/internal/metrics"
	"tradecouncil/internal/state"
	"tradecouncil/pkg/logger"
)

const (
	DefaultResearchDebateRounds = 2
	DefaultRiskDebateRounds     = 1
)

// Config assembles the agents of one pipeline. The orchestrator holds no
// per-run state, so a single instance can serve concurrent decisions.
type Config struct {
	Analysts []agents.Agent

	Bull            agents.Agent
	Bear            agents.Agent
	ResearchManager agents.Agent

	Trader agents.Agent

	// RiskDebators speak once each per round, in slice order.
	RiskDebators []agents.Agent
	RiskManager  agents.Agent

	ResearchDebateRounds int
	RiskDebateRounds     int
}

// Orchestrator runs the decision pipeline: analysts in parallel, then
// the research debate, manager, trader, risk debate, risk manager and
// signal extraction, threading an immutable state through every stage.
type Orchestrator struct {
	cfg Config
	log *logger.Logger
}

func New(cfg Config) *Orchestrator {
	if cfg.ResearchDebateRounds <= 0 {
		cfg.ResearchDebateRounds = DefaultResearchDebateRounds
	}
	if cfg.RiskDebateRounds <= 0 {
		cfg.RiskDebateRounds = DefaultRiskDebateRounds
	}

	return &Orchestrator{
		cfg: cfg,
		log: logger.Get().With("component", "orchestrator"),
	}
}

// RunDecision executes the full pipeline for one symbol/date. It never
// returns an error: any stage fault resolves to a well-formed state
// with FinalSignal set to ERROR.
func (o *Orchestrator) RunDecision(ctx context.Context, symbol string, date time.Time) *state.DecisionState {
	st := state.New(symbol, date)
	log := o.log.With("run_id", st.RunID.String(), "symbol", symbol)
	log.Infow("decision run started", "date", date.Format("2006-01-02"))

	next, err := o.runStages(ctx, st)
	if next != nil {
		st = next
	}
	if err != nil {
		log.Errorf("decision run failed: %v", err)
		st = st.PutMetadata("error", err.Error()).FinalizeSignal(state.SignalError)
	}

	metrics.RecordDecision(string(st.FinalSignal))
	log.Infow("decision run finished", "signal", st.FinalSignal)
	return st
}

func (o *Orchestrator) runStages(ctx context.Context, st *state.DecisionState) (out *state.DecisionState, err error) {
	// a panicking stage must still resolve to an ERROR state; return the
	// last state a completed stage produced so the caller can stamp it
	defer func() {
		if r := recover(); r != nil {
			out = st
			err = fmt.Errorf("pipeline panic: %v", r)
		}
	}()

	st, err = o.analystStage(ctx, st)
	if err != nil {
		return st, err
	}

	st, err = o.researchDebateStage(ctx, st)
	if err != nil {
		return st, err
	}

	st, err = o.stage(ctx, "research_manager", o.cfg.ResearchManager, st)
	if err != nil {
		return st, err
	}

	st, err = o.stage(ctx, "trader", o.cfg.Trader, st)
	if err != nil {
		return st, err
	}

	st, err = o.riskDebateStage(ctx, st)
	if err != nil {
		return st, err
	}

	st, err = o.stage(ctx, "risk_manager", o.cfg.RiskManager, st)
	if err != nil {
		return st, err
	}

	return st.FinalizeSignal(ExtractSignal(st.RiskManagerDecision)), nil
}

// analystStage runs every analyst concurrently against the same input
// state, then folds their reports back in fixed invocation order so the
// output is deterministic regardless of completion order.
func (o *Orchestrator) analystStage(ctx context.Context, st *state.DecisionState) (*state.DecisionState, error) {
	start := time.Now()
	defer func() { metrics.RecordStage("analysts", time.Since(start)) }()

	type outcome struct {
		st  *state.DecisionState
		err error
	}
	outcomes := make([]outcome, len(o.cfg.Analysts))

	var wg sync.WaitGroup
	for i, analyst := range o.cfg.Analysts {
		wg.Add(1)
		go func(i int, a agents.Agent) {
			defer wg.Done()
			// recover here: a panic on this goroutine would escape the
			// pipeline-level recover and kill the process
			defer func() {
				if r := recover(); r != nil {
					outcomes[i] = outcome{err: fmt.Errorf("panic: %v", r)}
				}
			}()
			next, err := a.Execute(ctx, st)
			outcomes[i] = outcome{st: next, err: err}
		}(i, analyst)
	}
	wg.Wait()

	for i, analyst := range o.cfg.Analysts {
		out := outcomes[i]
		if out.err != nil {
			return st, fmt.Errorf("analyst %s: %w", analyst.Name(), out.err)
		}
		if len(out.st.AnalystReports) == 0 {
			return st, fmt.Errorf("analyst %s: produced no report", analyst.Name())
		}

		st = st.AddAnalystReport(out.st.AnalystReports[len(out.st.AnalystReports)-1])
		if trace, ok := out.st.Metadata[analyst.Name()]; ok {
			st = st.PutMetadata(analyst.Name(), trace)
		}
	}

	return st, nil
}

// researchDebateStage alternates bull and bear for a fixed round count.
func (o *Orchestrator) researchDebateStage(ctx context.Context, st *state.DecisionState) (*state.DecisionState, error) {
	start := time.Now()
	defer func() { metrics.RecordStage("research_debate", time.Since(start)) }()

	var err error
	for round := 1; round <= o.cfg.ResearchDebateRounds; round++ {
		for _, researcher := range []agents.Agent{o.cfg.Bull, o.cfg.Bear} {
			st, err = researcher.Execute(ctx, st)
			if err != nil {
				return st, fmt.Errorf("research debate round %d, %s: %w", round, researcher.Name(), err)
			}
		}
	}

	return st, nil
}

// riskDebateStage gives every debator one statement per round, in
// configured order.
func (o *Orchestrator) riskDebateStage(ctx context.Context, st *state.DecisionState) (*state.DecisionState, error) {
	start := time.Now()
	defer func() { metrics.RecordStage("risk_debate", time.Since(start)) }()

	var err error
	for round := 1; round <= o.cfg.RiskDebateRounds; round++ {
		for _, debator := range o.cfg.RiskDebators {
			st, err = debator.Execute(ctx, st)
			if err != nil {
				return st, fmt.Errorf("risk debate round %d, %s: %w", round, debator.Name(), err)
			}
		}
	}

	return st, nil
}

func (o *Orchestrator) stage(ctx context.Context, name string, agent agents.Agent, st *state.DecisionState) (*state.DecisionState, error) {
	start := time.Now()
	defer func() { metrics.RecordStage(name, time.Since(start)) }()

	next, err := agent.Execute(ctx, st)
	if err != nil {
		return st, fmt.Errorf("stage %s: %w", name, err)
	}

	return next, nil
}
