package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Input columns every trade table must carry.
const (
	ColTicker          = "ticker"
	ColInsiderName     = "insider_name"
	ColInsiderRole     = "insider_role"
	ColTradeDate       = "trade_date"
	ColTransactionType = "transaction_type"
	ColShares          = "shares"
	ColPrice           = "price"
)

// Derived columns appended by enrichment.
const (
	ColSentimentScore = "news_sentiment_score"
	ColSentimentLabel = "news_sentiment_label"
	ColHeadlinesCount = "news_headlines_count"
)

// RequiredColumns lists the schema checked before any row is processed.
var RequiredColumns = []string{
	ColTicker,
	ColInsiderName,
	ColInsiderRole,
	ColTradeDate,
	ColTransactionType,
	ColShares,
	ColPrice,
}

// DerivedColumns lists the enrichment columns in output order.
var DerivedColumns = []string{ColSentimentScore, ColSentimentLabel, ColHeadlinesCount}

// SentimentLabel is the categorical form of a sentiment score.
type SentimentLabel string

const (
	LabelPositive SentimentLabel = "positive"
	LabelNegative SentimentLabel = "negative"
	LabelNeutral  SentimentLabel = "neutral"
)

// TradeRecord is one row of the insider-trading table. Values are kept exactly
// as read; the typed accessors parse on demand.
type TradeRecord struct {
	Ticker          string `json:"ticker"`
	InsiderName     string `json:"insider_name"`
	InsiderRole     string `json:"insider_role"`
	TradeDate       string `json:"trade_date"`
	TransactionType string `json:"transaction_type"`
	SharesRaw       string `json:"shares"`
	PriceRaw        string `json:"price"`
}

// dateLayouts are the ISO-8601 forms accepted for trade_date.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Date parses trade_date as a calendar date.
func (r TradeRecord) Date() (time.Time, error) {
	s := strings.TrimSpace(r.TradeDate)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid trade_date %q: expected ISO-8601 date", r.TradeDate)
}

// Shares parses the share count. Whole-number floats ("1500.0") are accepted
// since spreadsheets often export counts that way.
func (r TradeRecord) Shares() (int64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(r.SharesRaw), ",", "")
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("invalid shares %q", r.SharesRaw)
	}
	return d.IntPart(), nil
}

// Price parses the per-share price.
func (r TradeRecord) Price() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(r.PriceRaw), ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q: %w", r.PriceRaw, err)
	}
	return d, nil
}

// Notional returns shares * price, or false when either value does not parse.
func (r TradeRecord) Notional() (decimal.Decimal, bool) {
	shares, err := r.Shares()
	if err != nil {
		return decimal.Zero, false
	}
	price, err := r.Price()
	if err != nil {
		return decimal.Zero, false
	}
	return price.Mul(decimal.NewFromInt(shares)), true
}

// EnrichedRecord is a trade plus its news-sentiment attributes.
type EnrichedRecord struct {
	Trade          TradeRecord    `json:"trade"`
	Row            []string       `json:"-"` // full output row, extra columns included
	Score          float64        `json:"news_sentiment_score"`
	Label          SentimentLabel `json:"news_sentiment_label"`
	HeadlinesCount int            `json:"news_headlines_count"`

	// Not persisted to the output table.
	Headlines  []string `json:"headlines,omitempty"`
	FetchError string   `json:"fetch_error,omitempty"`
}

// FetchResult is the outcome of one headline fetch: either headlines or the
// reason none could be retrieved.
type FetchResult struct {
	Headlines []string
	Err       error
}

// OK reports whether the fetch succeeded. A successful fetch may still carry
// zero headlines.
func (r FetchResult) OK() bool {
	return r.Err == nil
}

// HeadlinesOrEmpty collapses a failed fetch to the empty headline set.
func (r FetchResult) HeadlinesOrEmpty() []string {
	if r.Err != nil {
		return nil
	}
	return r.Headlines
}
