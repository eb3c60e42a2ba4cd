package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("NEWS_API_KEY", "")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.InputPath != "data/raw/insider_trades_sample.csv" {
		t.Errorf("InputPath: got %q", cfg.InputPath)
	}
	if cfg.OutputPath != "data/processed/insider_with_sentiment.csv" {
		t.Errorf("OutputPath: got %q", cfg.OutputPath)
	}
	if cfg.News.Provider != ProviderNewsAPI {
		t.Errorf("News.Provider: got %q, want %q", cfg.News.Provider, ProviderNewsAPI)
	}
	if cfg.News.PageSize != 20 {
		t.Errorf("News.PageSize: got %d, want 20", cfg.News.PageSize)
	}
	if cfg.News.WindowDays != 1 {
		t.Errorf("News.WindowDays: got %d, want 1", cfg.News.WindowDays)
	}
	if cfg.Timeout() != 10*time.Second {
		t.Errorf("Timeout: got %v, want 10s", cfg.Timeout())
	}
	if cfg.News.APIKey != "" {
		t.Errorf("News.APIKey: expected empty, got %q", cfg.News.APIKey)
	}
	if cfg.Report.PreviewRows != 5 {
		t.Errorf("Report.PreviewRows: got %d, want 5", cfg.Report.PreviewRows)
	}
}

func TestLoadConfigFromFileAndEnv(t *testing.T) {
	t.Setenv("MY_NEWS_KEY", "  secret  ")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `input_path: in.csv
output_path: out/enriched.csv
news:
  provider: rss
  api_key_env: MY_NEWS_KEY
  page_size: 5
  timeout_seconds: 3
runlog:
  enabled: true
  dir: runs
archive:
  sqlite_path: enriched.db
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.News.Provider != ProviderRSS {
		t.Errorf("News.Provider: got %q", cfg.News.Provider)
	}
	if cfg.News.APIKey != "secret" {
		t.Errorf("News.APIKey: got %q, want trimmed secret", cfg.News.APIKey)
	}
	if cfg.News.PageSize != 5 {
		t.Errorf("News.PageSize: got %d", cfg.News.PageSize)
	}
	if cfg.Timeout() != 3*time.Second {
		t.Errorf("Timeout: got %v", cfg.Timeout())
	}
	if cfg.News.Language != "en" {
		t.Errorf("News.Language default: got %q", cfg.News.Language)
	}
	if !cfg.RunLog.Enabled || cfg.RunLog.Dir != "runs" {
		t.Errorf("RunLog: got %+v", cfg.RunLog)
	}
	if cfg.Archive.SQLitePath != "enriched.db" {
		t.Errorf("Archive.SQLitePath: got %q", cfg.Archive.SQLitePath)
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"provider":  "news:\n  provider: bing\n",
		"page size": "news:\n  page_size: 500\n",
		"sort":      "news:\n  sort_by: random\n",
		"base url":  "news:\n  base_url: not-a-url\n",
		"same path": "input_path: a.csv\noutput_path: a.csv\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadConfig(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), "config validation failed") {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("news: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadConfigPreviewRows(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    int
	}{
		{"absent", "report:\n  ticker_summary_path: t.csv\n", 5},
		{"explicit zero shows all", "report:\n  preview_rows: 0\n", 0},
		{"explicit", "report:\n  preview_rows: 12\n", 12},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatal(err)
			}
			cfg, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig() error: %v", err)
			}
			if cfg.Report.PreviewRows != tc.want {
				t.Errorf("Report.PreviewRows: got %d, want %d", cfg.Report.PreviewRows, tc.want)
			}
		})
	}
}
