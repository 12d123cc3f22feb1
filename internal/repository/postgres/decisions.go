// Package postgres persists completed decision runs for later review.
package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"tradecouncil/internal/adapters/config"
	"tradecouncil/internal/metrics"
	"tradecouncil/internal/state"
	"tradecouncil/pkg/errors"
)

// DecisionRecord is the persisted form of a finished decision run. The
// free-text stage outputs and the metadata trace are stored as JSON.
type DecisionRecord struct {
	RunID               uuid.UUID       `db:"run_id"`
	Symbol              string          `db:"symbol"`
	TradeDate           time.Time       `db:"trade_date"`
	FinalSignal         string          `db:"final_signal"`
	AnalystReports      json.RawMessage `db:"analyst_reports"`
	ResearcherView      json.RawMessage `db:"researcher_viewpoints"`
	ManagerDecision     string          `db:"manager_decision"`
	TradingPlan         string          `db:"trading_plan"`
	RiskDebate          json.RawMessage `db:"risk_debate"`
	RiskManagerDecision string          `db:"risk_manager_decision"`
	Metadata            json.RawMessage `db:"metadata"`
	CreatedAt           time.Time       `db:"created_at"`
}

// DecisionRepository stores decision runs in Postgres using sqlx.
type DecisionRepository struct {
	db *sqlx.DB
}

// Connect opens the database from config and verifies the connection.
func Connect(ctx context.Context, cfg config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DSN())
	if err != nil {
		return nil, errors.Wrapf(errors.ErrUnavailable, "connect postgres: %v", err)
	}
	db.SetMaxOpenConns(cfg.MaxConns)

	return db, nil
}

func NewDecisionRepository(db *sqlx.DB) *DecisionRepository {
	return &DecisionRepository{db: db}
}

// Save persists one completed decision state.
func (r *DecisionRepository) Save(ctx context.Context, st *state.DecisionState) error {
	rec, err := recordFromState(st)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO decisions (
			run_id, symbol, trade_date, final_signal,
			analyst_reports, researcher_viewpoints, manager_decision,
			trading_plan, risk_debate, risk_manager_decision,
			metadata, created_at
		) VALUES (
			:run_id, :symbol, :trade_date, :final_signal,
			:analyst_reports, :researcher_viewpoints, :manager_decision,
			:trading_plan, :risk_debate, :risk_manager_decision,
			:metadata, :created_at
		)`

	start := time.Now()
	_, err = r.db.NamedExecContext(ctx, query, rec)
	metrics.RecordDBQuery("postgres", "insert_decision", time.Since(start), err)
	if err != nil {
		return errors.Wrapf(errors.ErrInternal, "save decision %s: %v", st.RunID, err)
	}

	return nil
}

// GetByRunID retrieves one decision run.
func (r *DecisionRepository) GetByRunID(ctx context.Context, runID uuid.UUID) (*DecisionRecord, error) {
	var rec DecisionRecord

	query := `SELECT * FROM decisions WHERE run_id = $1`

	start := time.Now()
	err := r.db.GetContext(ctx, &rec, query, runID)
	metrics.RecordDBQuery("postgres", "get_decision", time.Since(start), err)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "decision %s: %v", runID, err)
	}

	return &rec, nil
}

// ListBySymbol retrieves the most recent decision runs for a symbol.
func (r *DecisionRepository) ListBySymbol(ctx context.Context, symbol string, limit int) ([]DecisionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	var recs []DecisionRecord

	query := `
		SELECT * FROM decisions
		WHERE symbol = $1
		ORDER BY created_at DESC
		LIMIT $2`

	start := time.Now()
	err := r.db.SelectContext(ctx, &recs, query, symbol, limit)
	metrics.RecordDBQuery("postgres", "list_decisions", time.Since(start), err)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInternal, "list decisions %s: %v", symbol, err)
	}

	return recs, nil
}

func recordFromState(st *state.DecisionState) (*DecisionRecord, error) {
	reports, err := json.Marshal(st.AnalystReports)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInternal, "encode analyst reports: %v", err)
	}
	viewpoints, err := json.Marshal(st.ResearcherViewpoints)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInternal, "encode researcher viewpoints: %v", err)
	}
	debate, err := json.Marshal(st.RiskDebate)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInternal, "encode risk debate: %v", err)
	}
	meta, err := json.Marshal(st.Metadata)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInternal, "encode metadata: %v", err)
	}

	return &DecisionRecord{
		RunID:               st.RunID,
		Symbol:              st.Symbol,
		TradeDate:           st.Date,
		FinalSignal:         string(st.FinalSignal),
		AnalystReports:      reports,
		ResearcherView:      viewpoints,
		ManagerDecision:     st.ResearchManagerDecision,
		TradingPlan:         st.TradingPlan,
		RiskDebate:          debate,
		RiskManagerDecision: st.RiskManagerDecision,
		Metadata:            meta,
		CreatedAt:           time.Now().UTC(),
	}, nil
}
