package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"insider-sentiment/internal/archive"
	"insider-sentiment/internal/dataset"
	"insider-sentiment/internal/enrich"
	"insider-sentiment/internal/interfaces"
	"insider-sentiment/internal/logger"
	"insider-sentiment/internal/news"
	"insider-sentiment/internal/news/newsobs"
	"insider-sentiment/internal/report"
	"insider-sentiment/internal/runlog"
	"insider-sentiment/internal/sentiment"
	"insider-sentiment/internal/store"
	"insider-sentiment/internal/trace"
	"insider-sentiment/internal/types"
)

// initializeSystem loads .env and sets up logging and tracing.
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := trace.Init(version); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	return nil
}

// initializeFetcher builds the configured headline source with observability.
func initializeFetcher(ctx context.Context, cfg *store.Config) (interfaces.HeadlineFetcher, error) {
	fetcher, err := news.NewFetcher(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "Headline source configured",
		"provider", cfg.News.Provider,
		"window_days", cfg.News.WindowDays,
		"page_size", cfg.News.PageSize,
		"timeout_s", cfg.News.TimeoutSeconds,
	)
	return newsobs.Wrap(fetcher), nil
}

// run loads the input table, enriches it and saves the result once. Side
// outputs are written after the CSV and never fail the run.
func run(ctx context.Context, cfg *store.Config, stdout io.Writer) error {
	runID := uuid.NewString()
	ctx, span := trace.StartSpan(ctx, "enrich.Main")
	defer span.End()

	in, err := dataset.Load(cfg.InputPath)
	if err != nil {
		return err
	}
	logger.Info(ctx, "Loaded trades", "run_id", runID, "path", cfg.InputPath, "rows", in.Len())

	fetcher, err := initializeFetcher(ctx, cfg)
	if err != nil {
		return err
	}

	driver := enrich.NewDriver(fetcher, sentiment.NewScorer(nil), stdout)
	res, err := driver.Enrich(ctx, in)
	if err != nil {
		return err
	}

	if err := dataset.Save(cfg.OutputPath, res.Table); err != nil {
		return fmt.Errorf("save output: %w", err)
	}
	report.PrintSaved(stdout, cfg.OutputPath)
	report.PrintPreview(stdout, res.Records, cfg.Report.PreviewRows)

	writeSideOutputs(ctx, cfg, runID, res.Records)

	logger.Info(ctx, "Run complete",
		"run_id", runID,
		"rows", len(res.Records),
		"failed_fetches", res.Failed,
		"output", cfg.OutputPath,
	)
	return nil
}

func writeSideOutputs(ctx context.Context, cfg *store.Config, runID string, records []types.EnrichedRecord) {
	if p := cfg.Report.TickerSummaryPath; p != "" {
		if err := report.WriteTickerSummary(p, records); err != nil {
			logger.WarnWithErr(ctx, "Failed to write ticker summary", err, "path", p)
		}
	}

	for _, sink := range initializeSinks(ctx, cfg) {
		if err := sink.Save(ctx, runID, records); err != nil {
			logger.WarnWithErr(ctx, "Failed to save run records", err, "sink", sink.Name())
		}
	}
}

// initializeSinks returns the enabled record sinks. Sinks that cannot be
// opened are skipped with a warning.
func initializeSinks(ctx context.Context, cfg *store.Config) []interfaces.RecordSink {
	var sinks []interfaces.RecordSink

	if cfg.RunLog.Enabled {
		w := runlog.New(cfg.RunLog.Dir)
		if err := w.CompressOlder(cfg.RunLog.RetentionDays); err != nil {
			logger.WarnWithErr(ctx, "Failed to compress old run logs", err, "dir", cfg.RunLog.Dir)
		}
		sinks = append(sinks, w)
	}

	if p := cfg.Archive.SQLitePath; p != "" {
		s, err := archive.Open(p)
		if err != nil {
			logger.WarnWithErr(ctx, "Failed to open archive", err, "path", p)
		} else {
			sinks = append(sinks, closingSink{s})
		}
	}
	return sinks
}

// closingSink closes the archive after its single Save.
type closingSink struct {
	*archive.Store
}

func (c closingSink) Save(ctx context.Context, runID string, records []types.EnrichedRecord) error {
	defer c.Store.Close()
	return c.Store.Save(ctx, runID, records)
}
