package news

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"insider-sentiment/internal/types"
)

// RSSConfig configures a keyless RSS search feed (Google News style).
type RSSConfig struct {
	URL        string
	Language   string
	PageSize   int
	WindowDays int
	Timeout    time.Duration
}

// RSSFetcher searches an RSS endpoint that accepts a q parameter.
type RSSFetcher struct {
	cfg    RSSConfig
	parser *gofeed.Parser
}

func NewRSSFetcher(cfg RSSConfig) *RSSFetcher {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: cfg.Timeout}
	return &RSSFetcher{cfg: cfg, parser: parser}
}

func (f *RSSFetcher) Name() string { return "rss" }

// Fetch parses the search feed for ticker and keeps items published inside
// the window. Items without a publish date are kept.
func (f *RSSFetcher) Fetch(ctx context.Context, ticker string, tradeDate time.Time) types.FetchResult {
	w := NewWindow(tradeDate, f.cfg.WindowDays)

	feedURL, err := f.searchURL(ticker, w)
	if err != nil {
		return types.FetchResult{Err: err}
	}

	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		var httpErr gofeed.HTTPError
		if errors.As(err, &httpErr) {
			return types.FetchResult{Err: &HTTPError{StatusCode: httpErr.StatusCode, Status: httpErr.Status}}
		}
		return types.FetchResult{Err: fmt.Errorf("parse RSS feed: %w", err)}
	}

	headlines := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.PublishedParsed != nil && !w.Contains(*item.PublishedParsed) {
			continue
		}
		title := cleanHTML(item.Title)
		if title == "" {
			continue
		}
		headlines = append(headlines, title)
		if len(headlines) == f.cfg.PageSize {
			break
		}
	}
	return types.FetchResult{Headlines: headlines}
}

// searchURL builds "<url>?q=<ticker> after:<from> before:<to+1>&hl=<lang>".
// before: is exclusive on the search side, so the upper bound is shifted a day.
func (f *RSSFetcher) searchURL(ticker string, w Window) (string, error) {
	u, err := url.Parse(f.cfg.URL)
	if err != nil {
		return "", fmt.Errorf("invalid RSS URL: %w", err)
	}
	q := u.Query()
	q.Set("q", fmt.Sprintf("%s after:%s before:%s", ticker, w.FromParam(), w.To.AddDate(0, 0, 1).Format(dateLayout)))
	q.Set("hl", f.cfg.Language)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// cleanHTML strips markup and entities from a feed title.
func cleanHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(doc.Text())
}
