package news

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>ACME search</title>
<item>
  <title><![CDATA[ACME <b>beats</b> estimates]]></title>
  <pubDate>Fri, 01 Mar 2024 10:00:00 GMT</pubDate>
</item>
<item>
  <title>Old ACME story</title>
  <pubDate>Mon, 01 Jan 2024 10:00:00 GMT</pubDate>
</item>
<item>
  <title>Undated ACME item</title>
</item>
<item>
  <title></title>
  <pubDate>Sat, 02 Mar 2024 08:00:00 GMT</pubDate>
</item>
</channel>
</rss>`

func newTestRSSFetcher(url string, pageSize int) *RSSFetcher {
	return NewRSSFetcher(RSSConfig{
		URL:        url,
		Language:   "en",
		PageSize:   pageSize,
		WindowDays: 1,
		Timeout:    2 * time.Second,
	})
}

func TestRSSFetchFiltersWindowAndCleansTitles(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	res := newTestRSSFetcher(srv.URL+"/rss/search", 20).Fetch(context.Background(), "ACME", tradeDay)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}

	if want := "ACME after:2024-02-29 before:2024-03-03"; gotQuery != want {
		t.Errorf("q = %q, want %q", gotQuery, want)
	}

	want := []string{"ACME beats estimates", "Undated ACME item"}
	if len(res.Headlines) != len(want) {
		t.Fatalf("headlines = %v, want %v", res.Headlines, want)
	}
	for i := range want {
		if res.Headlines[i] != want[i] {
			t.Errorf("headline[%d] = %q, want %q", i, res.Headlines[i], want[i])
		}
	}
}

func TestRSSFetchCapsAtPageSize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	res := newTestRSSFetcher(srv.URL, 1).Fetch(context.Background(), "ACME", tradeDay)
	if len(res.Headlines) != 1 {
		t.Errorf("got %d headlines, want 1", len(res.Headlines))
	}
}

func TestRSSFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	res := newTestRSSFetcher(srv.URL, 20).Fetch(context.Background(), "ACME", tradeDay)
	var httpErr *HTTPError
	if !errors.As(res.Err, &httpErr) || httpErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("error = %v, want 503 *HTTPError", res.Err)
	}
}

func TestCleanHTML(t *testing.T) {
	tests := map[string]string{
		"":                          "",
		"plain":                     "plain",
		"  <i>ACME</i> &amp; Co  ":  "ACME & Co",
		"<a href='x'>link</a> text": "link text",
	}
	for in, want := range tests {
		if got := cleanHTML(in); got != want {
			t.Errorf("cleanHTML(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWindow(t *testing.T) {
	w := NewWindow(time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC), 1)
	if w.FromParam() != "2024-02-29" || w.ToParam() != "2024-03-02" {
		t.Errorf("window = %s..%s", w.FromParam(), w.ToParam())
	}
	if !w.Contains(time.Date(2024, 3, 2, 23, 59, 0, 0, time.UTC)) {
		t.Error("upper bound day should be inside the window")
	}
	if w.Contains(time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)) {
		t.Error("day after the window should be outside")
	}
	if w.Contains(time.Date(2024, 2, 28, 12, 0, 0, 0, time.UTC)) {
		t.Error("day before the window should be outside")
	}
}
