package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tradecouncil/internal/adapters/config"
	"tradecouncil/internal/metrics"
	"tradecouncil/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tradecouncil",
		Short: "Multi-agent trading decision pipeline",
		Long: `tradecouncil runs a council of reasoning agents over market data
to produce a BUY/SELL/HOLD decision for a stock symbol: parallel
analysts, a bull/bear research debate, a trading plan, and a risk
review with final sign-off.`,
		SilenceUsage: true,
	}

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func newAnalyzeCmd() *cobra.Command {
	var (
		dateFlag string
		demo     bool
	)

	cmd := &cobra.Command{
		Use:   "analyze SYMBOL",
		Short: "Run a trading decision for a stock symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer logger.Sync()

			metrics.Init()

			date := time.Now().UTC().Truncate(24 * time.Hour)
			if dateFlag != "" {
				date, err = time.Parse("2006-01-02", dateFlag)
				if err != nil {
					return fmt.Errorf("invalid --date %q, want YYYY-MM-DD", dateFlag)
				}
			}

			return runAnalyze(cmd.Context(), cfg, args[0], date, demo)
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "decision date in YYYY-MM-DD format (default today)")
	cmd.Flags().BoolVar(&demo, "demo", false, "run with a scripted model instead of the OpenAI API")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("tradecouncil", version)
		},
	}
}

var version = "dev"
