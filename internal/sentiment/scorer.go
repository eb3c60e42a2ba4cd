package sentiment

import (
	"sort"

	"insider-sentiment/internal/interfaces"
)

// Scorer aggregates per-headline polarity into one score.
type Scorer struct {
	analyzer Analyzer
}

var _ interfaces.SentimentScorer = (*Scorer)(nil)

// NewScorer returns a Scorer backed by analyzer, or by the VADER analyzer
// when analyzer is nil.
func NewScorer(analyzer Analyzer) *Scorer {
	if analyzer == nil {
		analyzer = NewVaderAnalyzer()
	}
	return &Scorer{analyzer: analyzer}
}

// Score returns the arithmetic mean of the compound polarity of every
// headline, duplicates included, or exactly 0 for an empty set.
// Values are summed in sorted order so the result does not depend on the
// order of headlines.
func (s *Scorer) Score(headlines []string) float64 {
	if len(headlines) == 0 {
		return 0
	}
	values := make([]float64, len(headlines))
	for i, h := range headlines {
		values[i] = s.analyzer.Compound(h)
	}
	sort.Float64s(values)

	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
