package newsobs

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"insider-sentiment/internal/interfaces"
	"insider-sentiment/internal/logger"
	"insider-sentiment/internal/trace"
	"insider-sentiment/internal/types"
)

type observableFetcher struct {
	fetcher interfaces.HeadlineFetcher
}

var _ interfaces.HeadlineFetcher = (*observableFetcher)(nil)

// Wrap adds a span and debug logging around every fetch.
func Wrap(fetcher interfaces.HeadlineFetcher) interfaces.HeadlineFetcher {
	return &observableFetcher{fetcher: fetcher}
}

func (of *observableFetcher) Name() string { return of.fetcher.Name() }

func (of *observableFetcher) Fetch(ctx context.Context, ticker string, tradeDate time.Time) types.FetchResult {
	ctx, span := trace.StartSpan(ctx, "news.Fetch")
	defer span.End()

	date := tradeDate.Format("2006-01-02")
	span.SetAttributes(
		attribute.String("news.source", of.fetcher.Name()),
		attribute.String("trade.ticker", ticker),
		attribute.String("trade.date", date),
	)

	start := time.Now()
	result := of.fetcher.Fetch(ctx, ticker, tradeDate)
	elapsed := time.Since(start)

	if !result.OK() {
		span.RecordError(result.Err)
		logger.DebugSkip(ctx, 1, "Headline fetch failed",
			"source", of.fetcher.Name(),
			"ticker", ticker,
			"trade_date", date,
			"duration_ms", elapsed.Milliseconds(),
			"error", result.Err,
		)
		return result
	}

	span.SetAttributes(attribute.Int("news.headlines", len(result.Headlines)))
	logger.DebugSkip(ctx, 1, "Headlines fetched",
		"source", of.fetcher.Name(),
		"ticker", ticker,
		"trade_date", date,
		"headlines", len(result.Headlines),
		"duration_ms", elapsed.Milliseconds(),
	)
	return result
}
