package enrich

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"insider-sentiment/internal/dataset"
	"insider-sentiment/internal/interfaces"
	"insider-sentiment/internal/logger"
	"insider-sentiment/internal/news"
	"insider-sentiment/internal/sentiment"
	"insider-sentiment/internal/trace"
	"insider-sentiment/internal/types"
)

// DateError reports a trade_date that could not be parsed. The row is kept
// and enriched with the empty headline set.
type DateError struct {
	TradeDate string
	Err       error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("unparseable trade date %q: %v", e.TradeDate, e.Err)
}

func (e *DateError) Unwrap() error { return e.Err }

// Result is the enriched table plus per-row details for side outputs.
type Result struct {
	Table   *dataset.Table
	Records []types.EnrichedRecord
	Failed  int // rows whose headline fetch failed
}

// Driver runs fetch, score and label over every row of a trade table.
type Driver struct {
	fetcher  interfaces.HeadlineFetcher
	scorer   interfaces.SentimentScorer
	progress io.Writer
}

// NewDriver creates a driver. Progress lines go to progress (nil discards them).
func NewDriver(fetcher interfaces.HeadlineFetcher, scorer interfaces.SentimentScorer, progress io.Writer) *Driver {
	if progress == nil {
		progress = io.Discard
	}
	return &Driver{fetcher: fetcher, scorer: scorer, progress: progress}
}

// Enrich validates the table schema, then processes rows in order. The
// returned table has the input columns followed by the derived columns and
// exactly one row per input row. Nothing is written to disk.
func (d *Driver) Enrich(ctx context.Context, in *dataset.Table) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	op := logger.StartOperation(ctx, "enrich.Run", "rows", in.Len(), "source", d.fetcher.Name())
	ctx = op.GetContext()

	header, derived := outputHeader(in.Header)
	res := &Result{
		Table:   &dataset.Table{Header: header, Rows: make([][]string, 0, in.Len())},
		Records: make([]types.EnrichedRecord, 0, in.Len()),
	}

	for i, row := range in.Rows {
		if err := ctx.Err(); err != nil {
			op.EndWithError(err, "processed", i)
			return nil, fmt.Errorf("enrichment interrupted after %d of %d rows: %w", i, in.Len(), err)
		}

		rec := d.enrichRow(ctx, in.Record(i))
		rec.Row = buildRow(row, len(header), derived, rec)
		if rec.FetchError != "" {
			res.Failed++
		}
		res.Table.Rows = append(res.Table.Rows, rec.Row)
		res.Records = append(res.Records, rec)
	}

	op.End("failed_fetches", res.Failed)
	return res, nil
}

func (d *Driver) enrichRow(ctx context.Context, trade types.TradeRecord) types.EnrichedRecord {
	ctx, span := trace.StartSpan(ctx, "enrich.Row")
	defer span.End()

	fmt.Fprintf(d.progress, "Processing %s trade on %s...\n", trade.Ticker, trade.TradeDate)

	var result types.FetchResult
	if date, err := trade.Date(); err != nil {
		result = types.FetchResult{Err: &DateError{TradeDate: trade.TradeDate, Err: err}}
	} else {
		result = d.fetcher.Fetch(ctx, trade.Ticker, date)
	}

	rec := types.EnrichedRecord{Trade: trade}
	if !result.OK() {
		rec.FetchError = result.Err.Error()
		var dateErr *DateError
		switch {
		case errors.As(result.Err, &dateErr):
			logger.WarnWithErr(ctx, "Unparseable trade date, continuing with no headlines", result.Err,
				"ticker", trade.Ticker, "trade_date", trade.TradeDate)
		case errors.Is(result.Err, news.ErrMissingAPIKey):
			logger.Debug(ctx, "Skipping news fetch without API key", "ticker", trade.Ticker, "trade_date", trade.TradeDate)
		default:
			logger.FetchFailure(ctx, trade.Ticker, trade.TradeDate, result.Err, "source", d.fetcher.Name())
		}
	}

	headlines := result.HeadlinesOrEmpty()
	rec.Headlines = headlines
	rec.HeadlinesCount = len(headlines)
	rec.Score = d.scorer.Score(headlines)
	rec.Label = sentiment.Label(rec.Score)

	logger.Enrichment(ctx, trade.Ticker, trade.TradeDate, rec.Score, string(rec.Label), rec.HeadlinesCount)
	return rec
}

// outputHeader appends the derived columns to header, reusing any that are
// already present. It returns the new header and the derived column indices
// in types.DerivedColumns order.
func outputHeader(in []string) ([]string, []int) {
	header := append([]string(nil), in...)
	idx := make([]int, len(types.DerivedColumns))
	for i, col := range types.DerivedColumns {
		idx[i] = -1
		for j, h := range header {
			if h == col {
				idx[i] = j
				break
			}
		}
		if idx[i] < 0 {
			header = append(header, col)
			idx[i] = len(header) - 1
		}
	}
	return header, idx
}

func buildRow(in []string, width int, derived []int, rec types.EnrichedRecord) []string {
	row := make([]string, width)
	copy(row, in)
	row[derived[0]] = FormatScore(rec.Score)
	row[derived[1]] = string(rec.Label)
	row[derived[2]] = strconv.Itoa(rec.HeadlinesCount)
	return row
}

// FormatScore renders a score with the shortest representation that parses
// back to the same float64.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
