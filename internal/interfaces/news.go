package interfaces

import (
	"context"
	"time"

	"insider-sentiment/internal/types"
)

// HeadlineFetcher retrieves news headlines around a trade date.
type HeadlineFetcher interface {
	// Fetch makes a single best-effort attempt to retrieve headlines for
	// ticker in the window around tradeDate. Failures are returned in the
	// result, never panicked or retried.
	Fetch(ctx context.Context, ticker string, tradeDate time.Time) types.FetchResult

	// Name identifies the headline source in logs.
	Name() string
}
