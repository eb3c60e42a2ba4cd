package runlog

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"insider-sentiment/internal/types"
)

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func TestSaveAppendsEntries(t *testing.T) {
	dir := t.TempDir()
	w := New(dir)
	w.now = fixedClock(time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC))

	records := []types.EnrichedRecord{
		{
			Trade:          types.TradeRecord{Ticker: "ACME", TradeDate: "2024-03-01"},
			Score:          0.55,
			Label:          types.LabelPositive,
			HeadlinesCount: 2,
			Headlines:      []string{"ACME beats estimates", "ACME CEO buys shares"},
		},
		{
			Trade:      types.TradeRecord{Ticker: "XYZ", TradeDate: "2024-03-04"},
			Label:      types.LabelNeutral,
			FetchError: "timeout",
		},
	}
	if err := w.Save(context.Background(), "run-1", records); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := w.Save(context.Background(), "run-2", records[:1]); err != nil {
		t.Fatalf("Save: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "2024-03-06.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var entries []Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("bad line %q: %v", sc.Text(), err)
		}
		entries = append(entries, e)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	if entries[0].RunID != "run-1" || len(entries[0].Headlines) != 2 || entries[0].Label != "positive" {
		t.Errorf("first entry = %+v", entries[0])
	}
	if entries[1].FetchError != "timeout" || entries[1].HeadlinesCount != 0 {
		t.Errorf("second entry = %+v", entries[1])
	}
	if entries[2].RunID != "run-2" {
		t.Errorf("third entry run id = %q", entries[2].RunID)
	}
}

func TestCompressOlder(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	w := New(dir)
	w.now = fixedClock(now)

	old := filepath.Join(dir, "2024-03-01.jsonl")
	recent := filepath.Join(dir, "2024-03-19.jsonl")
	for _, p := range []string{old, recent} {
		if err := os.WriteFile(p, []byte(`{"ticker":"ACME"}`+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Chtimes(old, now.AddDate(0, 0, -19), now.AddDate(0, 0, -19)); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(recent, now.AddDate(0, 0, -1), now.AddDate(0, 0, -1)); err != nil {
		t.Fatal(err)
	}

	if err := w.CompressOlder(7); err != nil {
		t.Fatalf("CompressOlder: %v", err)
	}

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("old log should be removed after compression")
	}
	if _, err := os.Stat(recent); err != nil {
		t.Error("recent log should be kept")
	}

	f, err := os.Open(old + ".gz")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	gr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatal(err)
	}
	data, err := io.ReadAll(gr)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"ticker":"ACME"}`+"\n" {
		t.Errorf("decompressed = %q", data)
	}
}

// failingFile creates the real file but rejects every write.
type failingFile struct{ f *os.File }

func (ff failingFile) Write([]byte) (int, error) { return 0, errors.New("disk full") }
func (ff failingFile) Close() error { return ff.f.Close() }

func TestCompressOlderKeepsSourceWhenFlushFails(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	w := New(dir)
	w.now = fixedClock(now)

	// An empty log reaches the writer only when the gzip trailer is flushed.
	old := filepath.Join(dir, "2024-03-01.jsonl")
	if err := os.WriteFile(old, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(old, now.AddDate(0, 0, -19), now.AddDate(0, 0, -19)); err != nil {
		t.Fatal(err)
	}

	orig := openCompressed
	openCompressed = func(name string) (io.WriteCloser, error) {
		f, err := os.Create(name)
		if err != nil {
			return nil, err
		}
		return failingFile{f}, nil
	}
	if err := w.CompressOlder(7); err == nil {
		t.Error("CompressOlder should report the failed flush")
	}
	openCompressed = orig

	if _, err := os.Stat(old + ".gz"); !os.IsNotExist(err) {
		t.Error("partial archive should be removed")
	}
	if _, err := os.Stat(old); err != nil {
		t.Fatal("source log should be kept after a failed compression")
	}

	if err := w.CompressOlder(7); err != nil {
		t.Fatalf("retry CompressOlder: %v", err)
	}
	if _, err := os.Stat(old + ".gz"); err != nil {
		t.Errorf("retry should produce the archive: %v", err)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("source log should be removed after a successful retry")
	}
}

func TestCompressOlderDisabled(t *testing.T) {
	if err := New(filepath.Join(t.TempDir(), "missing")).CompressOlder(0); err != nil {
		t.Errorf("CompressOlder(0) = %v", err)
	}
}
