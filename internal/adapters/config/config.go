package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"tradecouncil/pkg/errors"
)

type Config struct {
	App           AppConfig
	AI            AIConfig
	Workflow      WorkflowConfig
	Dataflow      DataflowConfig
	Postgres      PostgresConfig
	Redis         RedisConfig
	Kafka         KafkaConfig
	Telegram      TelegramConfig
	ErrorTracking ErrorTrackingConfig
	Reports       ReportConfig
}

type AppConfig struct {
	Name       string `envconfig:"APP_NAME" default:"tradecouncil"`
	Env        string `envconfig:"APP_ENV" default:"development"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	Debug      bool   `envconfig:"DEBUG" default:"false"`
	PromptsDir string `envconfig:"PROMPTS_DIR"`
}

type AIConfig struct {
	OpenAIKey   string        `envconfig:"OPENAI_API_KEY"`
	Model       string        `envconfig:"AI_MODEL" default:"gpt-4o-mini"`
	Temperature float64       `envconfig:"AI_TEMPERATURE" default:"0.3"`
	MaxTokens   int           `envconfig:"AI_MAX_TOKENS" default:"2000"`
	Timeout     time.Duration `envconfig:"AI_TIMEOUT" default:"60s"`
}

// WorkflowConfig bounds the reasoning loop and the debate stages.
type WorkflowConfig struct {
	MaxSteps             int `envconfig:"WORKFLOW_MAX_STEPS" default:"20"`
	ResearchDebateRounds int `envconfig:"WORKFLOW_RESEARCH_DEBATE_ROUNDS" default:"2"`
	RiskDebateRounds     int `envconfig:"WORKFLOW_RISK_DEBATE_ROUNDS" default:"1"`
}

type DataflowConfig struct {
	FinnhubKey        string        `envconfig:"FINNHUB_API_KEY"`
	RequestsPerMinute int           `envconfig:"DATAFLOW_REQUESTS_PER_MINUTE" default:"30"`
	CacheTTL          time.Duration `envconfig:"DATAFLOW_CACHE_TTL" default:"15m"`
	HTTPTimeout       time.Duration `envconfig:"DATAFLOW_HTTP_TIMEOUT" default:"10s"`
}

type PostgresConfig struct {
	Host     string `envconfig:"POSTGRES_HOST"`
	Port     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER"`
	Password string `envconfig:"POSTGRES_PASSWORD"`
	Database string `envconfig:"POSTGRES_DB" default:"tradecouncil"`
	SSLMode  string `envconfig:"POSTGRES_SSL_MODE" default:"disable"`
	MaxConns int    `envconfig:"POSTGRES_MAX_CONNS" default:"10"`
}

// Enabled reports whether trace persistence is configured.
func (c PostgresConfig) Enabled() bool {
	return c.Host != ""
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS"`
	Topic   string   `envconfig:"KAFKA_DECISIONS_TOPIC" default:"trading.decisions"`
}

func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

type TelegramConfig struct {
	BotToken string `envconfig:"TELEGRAM_BOT_TOKEN"`
	ChatID   int64  `envconfig:"TELEGRAM_CHAT_ID"`
}

func (c TelegramConfig) Enabled() bool {
	return c.BotToken != "" && c.ChatID != 0
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"false"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

type ReportConfig struct {
	Dir string `envconfig:"REPORT_DIR" default:"reports"`
}

// Load reads configuration from the environment, with .env support for development.
func Load() (*Config, error) {
	// .env is optional; ignore if absent
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "process environment config")
	}

	if cfg.Workflow.MaxSteps <= 0 {
		cfg.Workflow.MaxSteps = 20
	}
	if cfg.Workflow.ResearchDebateRounds < 1 {
		cfg.Workflow.ResearchDebateRounds = 1
	}
	if cfg.Workflow.RiskDebateRounds < 1 {
		cfg.Workflow.RiskDebateRounds = 1
	}

	return &cfg, nil
}
