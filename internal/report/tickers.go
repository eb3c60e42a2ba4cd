package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"insider-sentiment/internal/types"
)

// tickerAgg accumulates one ticker's trades for the per-ticker summary.
type tickerAgg struct {
	Ticker    string
	Trades    int
	Buys      int
	Sells     int
	ScoreSum  float64
	Positive  int
	Negative  int
	Neutral   int
	Headlines int
	BuyValue  decimal.Decimal
	SellValue decimal.Decimal
}

var tickerSummaryHeader = []string{
	"ticker", "trades", "buys", "sells", "mean_sentiment_score",
	"positive", "negative", "neutral", "headlines", "buy_value", "sell_value",
}

// WriteTickerSummary writes one row per ticker (sorted) with trade counts,
// mean sentiment, label counts and gross buy/sell value, followed by a
// TOTAL row. Rows whose shares or price do not parse add nothing to the
// value columns.
func WriteTickerSummary(path string, records []types.EnrichedRecord) error {
	aggs := map[string]*tickerAgg{}
	for _, r := range records {
		a := aggs[r.Trade.Ticker]
		if a == nil {
			a = &tickerAgg{Ticker: r.Trade.Ticker}
			aggs[r.Trade.Ticker] = a
		}
		a.add(r)
	}

	keys := make([]string, 0, len(aggs))
	for k := range aggs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write(tickerSummaryHeader); err != nil {
		return err
	}

	total := &tickerAgg{Ticker: "TOTAL"}
	for _, k := range keys {
		a := aggs[k]
		if err := w.Write(a.row()); err != nil {
			return err
		}
		total.merge(a)
	}
	if err := w.Write(total.row()); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write ticker summary: %w", err)
	}
	return out.Close()
}

func (a *tickerAgg) add(r types.EnrichedRecord) {
	a.Trades++
	a.ScoreSum += r.Score
	a.Headlines += r.HeadlinesCount
	switch r.Label {
	case types.LabelPositive:
		a.Positive++
	case types.LabelNegative:
		a.Negative++
	default:
		a.Neutral++
	}

	notional, ok := r.Trade.Notional()
	switch side(r.Trade.TransactionType) {
	case "BUY":
		a.Buys++
		if ok {
			a.BuyValue = a.BuyValue.Add(notional)
		}
	case "SELL":
		a.Sells++
		if ok {
			a.SellValue = a.SellValue.Add(notional)
		}
	}
}

func (a *tickerAgg) merge(o *tickerAgg) {
	a.Trades += o.Trades
	a.Buys += o.Buys
	a.Sells += o.Sells
	a.ScoreSum += o.ScoreSum
	a.Positive += o.Positive
	a.Negative += o.Negative
	a.Neutral += o.Neutral
	a.Headlines += o.Headlines
	a.BuyValue = a.BuyValue.Add(o.BuyValue)
	a.SellValue = a.SellValue.Add(o.SellValue)
}

func (a *tickerAgg) row() []string {
	var mean float64
	if a.Trades > 0 {
		mean = a.ScoreSum / float64(a.Trades)
	}
	return []string{
		a.Ticker,
		strconv.Itoa(a.Trades),
		strconv.Itoa(a.Buys),
		strconv.Itoa(a.Sells),
		fmt.Sprintf("%.4f", mean),
		strconv.Itoa(a.Positive),
		strconv.Itoa(a.Negative),
		strconv.Itoa(a.Neutral),
		strconv.Itoa(a.Headlines),
		a.BuyValue.StringFixed(2),
		a.SellValue.StringFixed(2),
	}
}

// side classifies a free-form transaction type as BUY, SELL or "".
func side(transactionType string) string {
	t := strings.ToLower(transactionType)
	switch {
	case strings.Contains(t, "buy"), strings.Contains(t, "purchase"):
		return "BUY"
	case strings.Contains(t, "sell"), strings.Contains(t, "sale"):
		return "SELL"
	default:
		return ""
	}
}
