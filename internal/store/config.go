package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	ProviderNewsAPI = "newsapi"
	ProviderRSS     = "rss"
)

// defaultPreviewRows applies only when report.preview_rows is absent; an
// explicit 0 means every row.
const defaultPreviewRows = 5

type Config struct {
	InputPath  string `yaml:"input_path" validate:"required"`
	OutputPath string `yaml:"output_path" validate:"required"`
	News       struct {
		Provider       string `yaml:"provider" validate:"oneof=newsapi rss"`
		BaseURL        string `yaml:"base_url" validate:"required,url"`
		RSSURL         string `yaml:"rss_url" validate:"required,url"`
		APIKeyEnv      string `yaml:"api_key_env" validate:"required"`
		Language       string `yaml:"language" validate:"required,len=2"`
		SortBy         string `yaml:"sort_by" validate:"oneof=relevancy popularity publishedAt"`
		PageSize       int    `yaml:"page_size" validate:"min=1,max=100"`
		WindowDays     int    `yaml:"window_days" validate:"min=1,max=30"`
		TimeoutSeconds int    `yaml:"timeout_seconds" validate:"min=1,max=120"`

		// APIKey is never read from the file; it comes from the APIKeyEnv variable.
		APIKey string `yaml:"-"`
	} `yaml:"news"`
	RunLog struct {
		Enabled       bool   `yaml:"enabled"`
		Dir           string `yaml:"dir"`
		RetentionDays int    `yaml:"retention_days" validate:"min=0"`
	} `yaml:"runlog"`
	Archive struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"archive"`
	Report struct {
		PreviewRows       int    `yaml:"preview_rows" validate:"min=0"`
		TickerSummaryPath string `yaml:"ticker_summary_path"`
	} `yaml:"report"`
}

// Timeout is the per-request deadline for the headline source.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.News.TimeoutSeconds) * time.Second
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed '%s' (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}
	if c.InputPath == c.OutputPath {
		return fmt.Errorf("output_path must differ from input_path (%s)", c.InputPath)
	}
	return nil
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	c := preset()
	c.applyDefaults()
	return &c
}

// preset holds defaults whose zero value is meaningful. They are set before
// the file is decoded so an explicit zero survives.
func preset() Config {
	var c Config
	c.Report.PreviewRows = defaultPreviewRows
	return c
}

func (c *Config) applyDefaults() {
	if c.InputPath == "" {
		c.InputPath = "data/raw/insider_trades_sample.csv"
	}
	if c.OutputPath == "" {
		c.OutputPath = "data/processed/insider_with_sentiment.csv"
	}
	if c.News.Provider == "" {
		c.News.Provider = ProviderNewsAPI
	}
	if c.News.BaseURL == "" {
		c.News.BaseURL = "https://newsapi.org"
	}
	if c.News.RSSURL == "" {
		c.News.RSSURL = "https://news.google.com/rss/search"
	}
	if c.News.APIKeyEnv == "" {
		c.News.APIKeyEnv = "NEWS_API_KEY"
	}
	if c.News.Language == "" {
		c.News.Language = "en"
	}
	if c.News.SortBy == "" {
		c.News.SortBy = "relevancy"
	}
	if c.News.PageSize == 0 {
		c.News.PageSize = 20
	}
	if c.News.WindowDays == 0 {
		c.News.WindowDays = 1
	}
	if c.News.TimeoutSeconds == 0 {
		c.News.TimeoutSeconds = 10
	}
	if c.RunLog.Dir == "" {
		c.RunLog.Dir = "logs/runs"
	}
}

// LoadConfig reads path, fills defaults and validates. A missing file is not
// an error: the defaults describe a complete run.
func LoadConfig(path string) (*Config, error) {
	c := preset()
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	c.applyDefaults()
	c.News.APIKey = strings.TrimSpace(os.Getenv(c.News.APIKeyEnv))

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}
