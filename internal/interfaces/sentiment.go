package interfaces

import (
	"context"

	"insider-sentiment/internal/types"
)

// SentimentScorer turns a headline set into a single score.
type SentimentScorer interface {
	// Score returns the mean compound polarity of headlines, 0.0 when empty.
	Score(headlines []string) float64
}

// RecordSink receives the enriched records of a completed run.
type RecordSink interface {
	Save(ctx context.Context, runID string, records []types.EnrichedRecord) error
	Name() string
}
