package sentiment

import (
	"math"
	"strings"

	"github.com/jonreiter/govader"
)

// Analyzer scores a single piece of text.
type Analyzer interface {
	Compound(text string) float64
}

// VaderAnalyzer scores text with the VADER lexicon and rules.
type VaderAnalyzer struct {
	sia *govader.SentimentIntensityAnalyzer
}

// NewVaderAnalyzer loads the VADER lexicon. Build one and share it.
func NewVaderAnalyzer() *VaderAnalyzer {
	return &VaderAnalyzer{sia: govader.NewSentimentIntensityAnalyzer()}
}

// Compound returns the normalised polarity of text in [-1, 1], rounded to
// 4 decimals. Blank text scores exactly 0.
func (va *VaderAnalyzer) Compound(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	c := va.sia.PolarityScores(text).Compound
	if math.IsNaN(c) {
		return 0
	}
	c = math.Max(-1, math.Min(1, c))
	c = math.Round(c*10000) / 10000
	if c == 0 {
		return 0 // no negative zero
	}
	return c
}
