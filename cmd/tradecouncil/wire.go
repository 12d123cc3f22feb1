package main

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"tradecouncil/internal/adapters/ai"
	"tradecouncil/internal/adapters/config"
	"tradecouncil/internal/adapters/errors/noop"
	"tradecouncil/internal/adapters/errors/sentry"
	"tradecouncil/internal/adapters/kafka"
	"tradecouncil/internal/adapters/telegram"
	"tradecouncil/internal/dataflow"
	"tradecouncil/internal/graph"
	"tradecouncil/internal/repository/postgres"
	"tradecouncil/internal/service"
	"tradecouncil/internal/tools"
	"tradecouncil/pkg/errors"
	"tradecouncil/pkg/logger"
	"tradecouncil/pkg/prompts"
	"tradecouncil/pkg/report"
)

// demoScript drives the pipeline without a live model: every agent
// checks one tool, then commits to an answer.
var demoScript = []string{
	"Action: get_fundamentals\nAction Input: {\"symbol\": \"PLACEHOLDER\"}",
	"Final Answer: The gathered evidence supports a cautiously constructive view. BUY on weakness.",
}

func runAnalyze(ctx context.Context, cfg *config.Config, symbol string, date time.Time, demo bool) error {
	log := logger.Get()
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	tracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(tracker)
	defer tracker.Flush(ctx)

	client, err := buildClient(cfg, demo)
	if err != nil {
		return err
	}

	registry := tools.NewRegistry()
	tools.RegisterCatalog(registry, buildAggregator(cfg, log), date)

	orchestrator := graph.Assemble(client, registry, buildPromptProvider(cfg, log),
		ai.Params{
			Model:       cfg.AI.Model,
			Temperature: cfg.AI.Temperature,
			MaxTokens:   cfg.AI.MaxTokens,
		},
		cfg.Workflow.MaxSteps,
		cfg.Workflow.ResearchDebateRounds,
		cfg.Workflow.RiskDebateRounds,
	)

	opts := []service.Option{
		service.WithReportWriter(report.NewWriter(cfg.Reports.Dir)),
	}
	opts = append(opts, buildSinks(ctx, cfg, log)...)

	svc := service.NewTradingService(orchestrator, opts...)

	st := svc.Analyze(ctx, symbol, date)
	printSummary(st)
	return nil
}

func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if cfg.ErrorTracking.Enabled && cfg.ErrorTracking.SentryDSN != "" {
		tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
		if err == nil {
			log.Info("Sentry error tracking enabled")
			return tracker
		}
		log.Errorf("init sentry: %v, falling back to noop", err)
	}

	return noop.New()
}

func buildClient(cfg *config.Config, demo bool) (ai.ChatClient, error) {
	if demo || cfg.AI.OpenAIKey == "" {
		logger.Get().Warn("No OpenAI key or demo mode requested, using scripted model")
		return ai.NewStubClient(demoScript...), nil
	}

	return ai.NewOpenAIClient(cfg.AI.OpenAIKey, cfg.AI.Timeout)
}

func buildAggregator(cfg *config.Config, log *logger.Logger) *dataflow.Aggregator {
	var cache *dataflow.Cache
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cache = dataflow.NewCache(rdb, cfg.Dataflow.CacheTTL)
		log.Info("Redis data cache enabled")
	}

	return dataflow.NewAggregator(
		dataflow.NewYahooProvider(),
		dataflow.NewFinnhubProvider(cfg.Dataflow.FinnhubKey),
		cache,
		cfg.Dataflow.RequestsPerMinute,
	)
}

func buildPromptProvider(cfg *config.Config, log *logger.Logger) prompts.Provider {
	if cfg.App.PromptsDir == "" {
		return prompts.Embedded()
	}

	provider, err := prompts.NewRegistry(cfg.App.PromptsDir)
	if err != nil {
		log.Errorf("load prompts from %s: %v, using embedded templates", cfg.App.PromptsDir, err)
		return prompts.Embedded()
	}

	log.Infow("prompt templates loaded", "dir", cfg.App.PromptsDir, "keys", len(provider.Keys()))
	return provider
}

func buildSinks(ctx context.Context, cfg *config.Config, log *logger.Logger) []service.Option {
	var opts []service.Option

	if cfg.Postgres.Enabled() {
		db, err := postgres.Connect(ctx, cfg.Postgres)
		if err != nil {
			log.Errorf("postgres disabled: %v", err)
		} else {
			opts = append(opts, service.WithStore(postgres.NewDecisionRepository(db)))
			log.Info("Postgres decision store enabled")
		}
	}

	if cfg.Kafka.Enabled() {
		opts = append(opts, service.WithPublisher(kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)))
		log.Info("Kafka decision events enabled")
	}

	if cfg.Telegram.Enabled() {
		notifier, err := telegram.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			log.Errorf("telegram disabled: %v", err)
		} else {
			opts = append(opts, service.WithNotifier(notifier))
			log.Info("Telegram notifications enabled")
		}
	}

	return opts
}
