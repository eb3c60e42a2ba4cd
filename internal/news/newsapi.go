package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"insider-sentiment/internal/logger"
	"insider-sentiment/internal/types"
)

// maxBodyBytes bounds how much of a response is read.
const maxBodyBytes = 4 << 20

// NewsAPIConfig configures the newsapi.org "everything" search client.
type NewsAPIConfig struct {
	BaseURL    string
	APIKey     string
	APIKeyEnv  string // only used in the missing-key warning
	Language   string
	SortBy     string
	PageSize   int
	WindowDays int
	Timeout    time.Duration
}

// NewsAPIFetcher queries the newsapi.org /v2/everything endpoint.
type NewsAPIFetcher struct {
	cfg      NewsAPIConfig
	client   *http.Client
	warnOnce sync.Once
}

// everythingResponse is the subset of the /v2/everything payload we read.
type everythingResponse struct {
	Status       string `json:"status"`
	Code         string `json:"code"`
	Message      string `json:"message"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Title string `json:"title"`
	} `json:"articles"`
}

// NewNewsAPIFetcher creates a fetcher. An empty APIKey is allowed: every
// fetch then fails fast with ErrMissingAPIKey.
func NewNewsAPIFetcher(cfg NewsAPIConfig) *NewsAPIFetcher {
	return &NewsAPIFetcher{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

func (f *NewsAPIFetcher) Name() string { return "newsapi" }

// Fetch issues one search request for ticker around tradeDate.
func (f *NewsAPIFetcher) Fetch(ctx context.Context, ticker string, tradeDate time.Time) types.FetchResult {
	if f.cfg.APIKey == "" {
		f.warnOnce.Do(func() {
			logger.Warn(ctx, "News API key not set, skipping news fetch", "env", f.cfg.APIKeyEnv)
		})
		return types.FetchResult{Err: ErrMissingAPIKey}
	}

	headlines, err := f.search(ctx, ticker, NewWindow(tradeDate, f.cfg.WindowDays))
	if err != nil {
		return types.FetchResult{Err: err}
	}
	return types.FetchResult{Headlines: headlines}
}

func (f *NewsAPIFetcher) search(ctx context.Context, ticker string, w Window) ([]string, error) {
	endpoint, err := url.Parse(f.cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid news API base URL: %w", err)
	}
	endpoint = endpoint.JoinPath("v2", "everything")

	q := url.Values{}
	q.Set("q", ticker)
	q.Set("from", w.FromParam())
	q.Set("to", w.ToParam())
	q.Set("language", f.cfg.Language)
	q.Set("sortBy", f.cfg.SortBy)
	q.Set("pageSize", strconv.Itoa(f.cfg.PageSize))
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Api-Key", f.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news API request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read news API response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		httpErr := &HTTPError{StatusCode: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
		var r everythingResponse
		if json.Unmarshal(body, &r) == nil && r.Message != "" {
			httpErr.Body = r.Message
		}
		return nil, httpErr
	}

	var r everythingResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("decode news API response: %w", err)
	}
	if r.Status != "ok" {
		return nil, &APIError{Code: r.Code, Message: r.Message}
	}

	headlines := make([]string, 0, len(r.Articles))
	for _, a := range r.Articles {
		title := strings.TrimSpace(a.Title)
		if title == "" {
			continue
		}
		headlines = append(headlines, title)
		if len(headlines) == f.cfg.PageSize {
			break
		}
	}
	return headlines, nil
}
