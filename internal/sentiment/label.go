package sentiment

import "insider-sentiment/internal/types"

const (
	PositiveThreshold = 0.2
	NegativeThreshold = -0.2
)

// Label maps a score to its category. Both thresholds are inclusive.
// NaN is neutral.
func Label(score float64) types.SentimentLabel {
	switch {
	case score >= PositiveThreshold:
		return types.LabelPositive
	case score <= NegativeThreshold:
		return types.LabelNegative
	default:
		return types.LabelNeutral
	}
}
