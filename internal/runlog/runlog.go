package runlog

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"insider-sentiment/internal/interfaces"
	"insider-sentiment/internal/types"
)

const ext = ".jsonl"

// Entry is one enriched row as recorded in the run log.
type Entry struct {
	Time            string   `json:"time"`
	RunID           string   `json:"run_id"`
	Ticker          string   `json:"ticker"`
	TradeDate       string   `json:"trade_date"`
	TransactionType string   `json:"transaction_type,omitempty"`
	Score           float64  `json:"news_sentiment_score"`
	Label           string   `json:"news_sentiment_label"`
	HeadlinesCount  int      `json:"news_headlines_count"`
	Headlines       []string `json:"headlines,omitempty"`
	FetchError      string   `json:"fetch_error,omitempty"`
}

// Writer appends run entries to one JSON-lines file per day under Dir.
type Writer struct {
	Dir string
	now func() time.Time
	mu  sync.Mutex
}

var _ interfaces.RecordSink = (*Writer)(nil)

func New(dir string) *Writer {
	return &Writer{Dir: dir, now: time.Now}
}

func (w *Writer) Name() string { return "runlog" }

// Path returns the file a run started at t is appended to.
func (w *Writer) Path(t time.Time) string {
	return filepath.Join(w.Dir, t.Format("2006-01-02")+ext)
}

// Save appends one line per record, in record order.
func (w *Writer) Save(ctx context.Context, runID string, records []types.EnrichedRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	p := w.Path(now)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	stamp := now.Format(time.RFC3339)
	for _, r := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		e := Entry{
			Time:            stamp,
			RunID:           runID,
			Ticker:          r.Trade.Ticker,
			TradeDate:       r.Trade.TradeDate,
			TransactionType: r.Trade.TransactionType,
			Score:           r.Score,
			Label:           string(r.Label),
			HeadlinesCount:  r.HeadlinesCount,
			Headlines:       r.Headlines,
			FetchError:      r.FetchError,
		}
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("write run log: %w", err)
		}
	}
	return f.Close()
}

// CompressOlder gzips run logs last modified more than retentionDays ago
// and removes the originals. Zero disables compression.
func (w *Writer) CompressOlder(retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	cutoff := w.now().AddDate(0, 0, -retentionDays)

	return filepath.WalkDir(w.Dir, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(p) != ext {
			return nil
		}
		info, err := d.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			return nil
		}
		gz := p + ".gz"
		if _, err := os.Stat(gz); err == nil {
			return os.Remove(p)
		}
		if err := gzipFile(p, gz); err != nil {
			return fmt.Errorf("compress %s: %w", p, err)
		}
		return os.Remove(p)
	})
}

// openCompressed opens the destination of gzipFile.
var openCompressed = func(name string) (io.WriteCloser, error) {
	return os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
}

// gzipFile compresses src into dst. dst is removed on any failure so a
// partial archive never stands in for its source.
func gzipFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := openCompressed(dst)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(dst)
		}
	}()

	gw := gzip.NewWriter(out)
	if _, err = io.Copy(gw, in); err != nil {
		gw.Close()
		out.Close()
		return err
	}
	if err = gw.Close(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
