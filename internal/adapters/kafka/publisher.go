// Package kafka publishes decision events for downstream consumers.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"tradecouncil/internal/metrics"
	"tradecouncil/internal/state"
	"tradecouncil/pkg/errors"
	"tradecouncil/pkg/logger"
)

// DecisionEvent is the wire form of a finished decision run.
type DecisionEvent struct {
	RunID       uuid.UUID `json:"run_id"`
	Symbol      string    `json:"symbol"`
	TradeDate   string    `json:"trade_date"`
	FinalSignal string    `json:"final_signal"`
	TradingPlan string    `json:"trading_plan"`
	EmittedAt   time.Time `json:"emitted_at"`
}

// Publisher writes decision events to a single topic.
type Publisher struct {
	writer *kafka.Writer
	topic  string
	log    *logger.Logger
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
			Async:    false, // Synchronous for reliability
		},
		topic: topic,
		log:   logger.Get().With("component", "kafka_publisher"),
	}
}

// PublishDecision emits one event for a completed decision run, keyed
// by symbol so per-symbol ordering is preserved.
func (p *Publisher) PublishDecision(ctx context.Context, st *state.DecisionState) error {
	event := DecisionEvent{
		RunID:       st.RunID,
		Symbol:      st.Symbol,
		TradeDate:   st.Date.Format("2006-01-02"),
		FinalSignal: string(st.FinalSignal),
		TradingPlan: st.TradingPlan,
		EmittedAt:   time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return errors.Wrapf(errors.ErrInternal, "encode decision event: %v", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(st.Symbol),
		Value: data,
	})
	metrics.KafkaMessages.WithLabelValues(p.topic, statusLabel(err)).Inc()
	if err != nil {
		p.log.Errorf("Failed to publish decision %s: %v", st.RunID, err)
		return errors.Wrapf(errors.ErrUnavailable, "publish decision event: %v", err)
	}

	p.log.Debugf("Published decision %s for %s", st.RunID, st.Symbol)
	return nil
}

// Close flushes and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
