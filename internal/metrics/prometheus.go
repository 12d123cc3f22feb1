package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Model metrics
	ModelCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradecouncil_model_calls_total",
			Help: "Total number of chat model completions",
		},
		[]string{"agent", "model", "status"}, // status: success|error
	)

	ModelLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tradecouncil_model_latency_seconds",
			Help:    "Chat model completion latency in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"agent", "model"},
	)

	// Agent metrics
	AgentExecutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradecouncil_agent_executions_total",
			Help: "Total number of agent executions",
		},
		[]string{"agent", "status"}, // status: success|error
	)

	AgentSteps = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tradecouncil_agent_reasoning_steps",
			Help:    "Reasoning loop steps consumed per agent execution",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 20},
		},
		[]string{"agent"},
	)

	// Tool metrics
	ToolExecutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradecouncil_tool_executions_total",
			Help: "Total number of tool executions",
		},
		[]string{"tool", "status"}, // status: success|error
	)

	ToolLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tradecouncil_tool_latency_seconds",
			Help:    "Tool execution latency in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"tool"},
	)

	// Pipeline metrics
	StageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tradecouncil_stage_duration_seconds",
			Help:    "Pipeline stage duration in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
		[]string{"stage"},
	)

	Decisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradecouncil_decisions_total",
			Help: "Total number of completed decision runs",
		},
		[]string{"signal"}, // BUY|SELL|HOLD|ERROR
	)

	// Database metrics
	DBQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradecouncil_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"database", "operation", "status"}, // database: postgres|redis
	)

	DBQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tradecouncil_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"database", "operation"},
	)

	// System metrics
	KafkaMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradecouncil_kafka_messages_total",
			Help: "Total Kafka messages produced",
		},
		[]string{"topic", "status"},
	)
)

// Init registers all metrics with Prometheus
func Init() {
	prometheus.MustRegister(ModelCalls)
	prometheus.MustRegister(ModelLatency)

	prometheus.MustRegister(AgentExecutions)
	prometheus.MustRegister(AgentSteps)

	prometheus.MustRegister(ToolExecutions)
	prometheus.MustRegister(ToolLatency)

	prometheus.MustRegister(StageDuration)
	prometheus.MustRegister(Decisions)

	prometheus.MustRegister(DBQueries)
	prometheus.MustRegister(DBQueryDuration)

	prometheus.MustRegister(KafkaMessages)
}

// Handler returns Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordModelCall records a chat completion
func RecordModelCall(agent, model string, latency time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	ModelCalls.WithLabelValues(agent, model, status).Inc()
	ModelLatency.WithLabelValues(agent, model).Observe(latency.Seconds())
}

// RecordAgentExecution records a full agent run through the reasoning loop
func RecordAgentExecution(agent string, steps int, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	AgentExecutions.WithLabelValues(agent, status).Inc()
	if steps > 0 {
		AgentSteps.WithLabelValues(agent).Observe(float64(steps))
	}
}

// RecordToolExecution records a tool execution
func RecordToolExecution(tool string, latency time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	ToolExecutions.WithLabelValues(tool, status).Inc()
	ToolLatency.WithLabelValues(tool).Observe(latency.Seconds())
}

// RecordStage records a pipeline stage duration
func RecordStage(stage string, duration time.Duration) {
	StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordDecision records a completed decision run by final signal
func RecordDecision(signal string) {
	Decisions.WithLabelValues(signal).Inc()
}

// RecordDBQuery records a database query
func RecordDBQuery(database, operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	DBQueries.WithLabelValues(database, operation, status).Inc()
	DBQueryDuration.WithLabelValues(database, operation).Observe(duration.Seconds())
}
