// insider-sentiment enriches a table of insider trades with a news-sentiment
// score, label and headline count per trade.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"insider-sentiment/internal/logger"
	"insider-sentiment/internal/store"
	"insider-sentiment/internal/trace"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "insider-sentiment",
	Short: "Enrich insider trades with news sentiment",
	Long: `Reads a CSV of insider trades, fetches news headlines around each trade
date, scores their sentiment and writes the table back out with
news_sentiment_score, news_sentiment_label and news_headlines_count columns.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := initializeSystem(); err != nil {
			return err
		}
		defer shutdownSystem()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, err := loadConfig(ctx, cmd)
		if err != nil {
			return err
		}
		return run(ctx, cfg, cmd.OutOrStdout())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "insider-sentiment %s\n", version)
	},
}

func init() {
	rootCmd.Flags().String("config", "config.yaml", "config file path (optional)")
	rootCmd.Flags().String("input", "", "input CSV path (overrides input_path)")
	rootCmd.Flags().String("output", "", "output CSV path (overrides output_path)")
	rootCmd.Flags().String("provider", "", "headline source: newsapi or rss (overrides news.provider)")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(ctx context.Context, cmd *cobra.Command) (*store.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", path)
		return nil, err
	}

	overrides := map[string]*string{
		"input":    &cfg.InputPath,
		"output":   &cfg.OutputPath,
		"provider": &cfg.News.Provider,
	}
	changed := false
	for name, dst := range overrides {
		if v, _ := cmd.Flags().GetString(name); v != "" {
			*dst = v
			changed = true
		}
	}
	if changed {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("config validation failed: %w", err)
		}
	}
	return cfg, nil
}

func shutdownSystem() {
	if err := trace.Shutdown(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to flush traces: %v\n", err)
	}
}
