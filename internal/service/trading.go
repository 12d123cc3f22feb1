// Package service runs decision pipelines and fans the results out to
// the configured sinks: reports, persistence, events, notifications.
package service

import (
	"context"
	"time"

	"tradecouncil/internal/graph"
	"tradecouncil/internal/state"
	"tradecouncil/pkg/logger"
)

// DecisionStore persists finished runs.
type DecisionStore interface {
	Save(ctx context.Context, st *state.DecisionState) error
}

// EventPublisher emits finished runs to downstream consumers.
type EventPublisher interface {
	PublishDecision(ctx context.Context, st *state.DecisionState) error
}

// Notifier pushes a human-readable summary of a finished run.
type Notifier interface {
	NotifyDecision(st *state.DecisionState) error
}

// ReportWriter renders a finished run to a document.
type ReportWriter interface {
	Write(st *state.DecisionState) (string, error)
}

// TradingService is the application-level entry point: it runs the
// pipeline and delivers the result to every configured sink. Sinks are
// optional; a nil sink is skipped. Sink failures are logged and never
// affect the decision result.
type TradingService struct {
	orchestrator *graph.Orchestrator
	reports      ReportWriter
	store        DecisionStore
	publisher    EventPublisher
	notifier     Notifier
	log          *logger.Logger
}

// Option configures optional sinks on the service.
type Option func(*TradingService)

func WithReportWriter(w ReportWriter) Option {
	return func(s *TradingService) { s.reports = w }
}

func WithStore(store DecisionStore) Option {
	return func(s *TradingService) { s.store = store }
}

func WithPublisher(p EventPublisher) Option {
	return func(s *TradingService) { s.publisher = p }
}

func WithNotifier(n Notifier) Option {
	return func(s *TradingService) { s.notifier = n }
}

func NewTradingService(orchestrator *graph.Orchestrator, opts ...Option) *TradingService {
	s := &TradingService{
		orchestrator: orchestrator,
		log:          logger.Get().With("component", "trading_service"),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Analyze runs one decision for symbol/date and delivers the result.
// The returned state is always well-formed; pipeline faults surface as
// FinalSignal ERROR, not as an error from this method.
func (s *TradingService) Analyze(ctx context.Context, symbol string, date time.Time) *state.DecisionState {
	st := s.orchestrator.RunDecision(ctx, symbol, date)

	s.deliver(ctx, st)
	return st
}

func (s *TradingService) deliver(ctx context.Context, st *state.DecisionState) {
	if s.reports != nil {
		path, err := s.reports.Write(st)
		if err != nil {
			s.log.Errorf("write report for %s: %v", st.RunID, err)
		} else {
			s.log.Infow("report written", "path", path)
		}
	}

	if s.store != nil {
		if err := s.store.Save(ctx, st); err != nil {
			s.log.Errorf("persist decision %s: %v", st.RunID, err)
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishDecision(ctx, st); err != nil {
			s.log.Errorf("publish decision %s: %v", st.RunID, err)
		}
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyDecision(st); err != nil {
			s.log.Errorf("notify decision %s: %v", st.RunID, err)
		}
	}
}
