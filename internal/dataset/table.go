package dataset

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"insider-sentiment/internal/types"
)

// ErrInputNotFound is returned by Load when the input file does not exist.
var ErrInputNotFound = errors.New("input file not found")

// MissingColumnsError names every required column absent from a table header.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required columns: " + strings.Join(e.Columns, ", ")
}

// Table is a header plus rows of string cells, in file order.
type Table struct {
	Header []string
	Rows   [][]string
}

// ColumnIndex returns the position of name in the header.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, h := range t.Header {
		if h == name {
			return i, true
		}
	}
	return -1, false
}

// MissingColumns returns the required columns absent from the header, sorted.
func (t *Table) MissingColumns(required []string) []string {
	var missing []string
	for _, col := range required {
		if _, ok := t.ColumnIndex(col); !ok {
			missing = append(missing, col)
		}
	}
	sort.Strings(missing)
	return missing
}

// Validate checks the header against types.RequiredColumns.
func (t *Table) Validate() error {
	if missing := t.MissingColumns(types.RequiredColumns); len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Record maps row i onto a TradeRecord. Missing columns yield empty fields.
func (t *Table) Record(i int) types.TradeRecord {
	row := t.Rows[i]
	cell := func(name string) string {
		idx, ok := t.ColumnIndex(name)
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}
	return types.TradeRecord{
		Ticker:          cell(types.ColTicker),
		InsiderName:     cell(types.ColInsiderName),
		InsiderRole:     cell(types.ColInsiderRole),
		TradeDate:       cell(types.ColTradeDate),
		TransactionType: cell(types.ColTransactionType),
		SharesRaw:       cell(types.ColShares),
		PriceRaw:        cell(types.ColPrice),
	}
}

// Column returns every value of the named column, or an error if absent.
func (t *Table) Column(name string) ([]string, error) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return nil, fmt.Errorf("column %q not in table", name)
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			out[i] = row[idx]
		}
	}
	return out, nil
}
