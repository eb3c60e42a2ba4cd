package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"insider-sentiment/internal/enrich"
	"insider-sentiment/internal/types"
)

// Summary counts labels across a run.
type Summary struct {
	Total    int
	Positive int
	Negative int
	Neutral  int
	Failed   int
}

func Summarize(records []types.EnrichedRecord) Summary {
	s := Summary{Total: len(records)}
	for _, r := range records {
		switch r.Label {
		case types.LabelPositive:
			s.Positive++
		case types.LabelNegative:
			s.Negative++
		default:
			s.Neutral++
		}
		if r.FetchError != "" {
			s.Failed++
		}
	}
	return s
}

// PrintSaved writes the save confirmation line.
func PrintSaved(w io.Writer, path string) {
	fmt.Fprintf(w, "Saved enriched data with sentiment to: %s\n", path)
}

// PrintPreview renders the first limit records (all when limit <= 0) as a
// ticker / trade_date / score / label table followed by label counts.
func PrintPreview(w io.Writer, records []types.EnrichedRecord, limit int) {
	shown := records
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(borderColor)).
		Headers(types.ColTicker, types.ColTradeDate, types.ColSentimentScore, types.ColSentimentLabel).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 2:
				return numberStyle
			case col == 3:
				return labelStyle(shown[row].Label).Padding(0, 1)
			default:
				return cellStyle
			}
		})
	for _, r := range shown {
		t.Row(r.Trade.Ticker, r.Trade.TradeDate, enrich.FormatScore(r.Score), string(r.Label))
	}

	fmt.Fprintln(w, t.String())
	if len(shown) < len(records) {
		fmt.Fprintf(w, "(%d of %d rows shown)\n", len(shown), len(records))
	}
	fmt.Fprintln(w, summaryLine(Summarize(records)))
}

func summaryLine(s Summary) string {
	parts := []string{
		titleStyle.Render(fmt.Sprintf("%d trades", s.Total)),
		positiveStyle.Render(fmt.Sprintf("%d positive", s.Positive)),
		negativeStyle.Render(fmt.Sprintf("%d negative", s.Negative)),
		neutralStyle.Render(fmt.Sprintf("%d neutral", s.Neutral)),
	}
	line := strings.Join(parts, "  ")
	if s.Failed > 0 {
		line += fmt.Sprintf("  (%d without news)", s.Failed)
	}
	return line
}

func labelStyle(l types.SentimentLabel) lipgloss.Style {
	switch l {
	case types.LabelPositive:
		return positiveStyle
	case types.LabelNegative:
		return negativeStyle
	default:
		return neutralStyle
	}
}
