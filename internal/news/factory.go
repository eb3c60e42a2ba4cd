package news

import (
	"fmt"

	"insider-sentiment/internal/interfaces"
	"insider-sentiment/internal/store"
)

// NewFetcher builds the headline source selected by cfg.News.Provider.
func NewFetcher(cfg *store.Config) (interfaces.HeadlineFetcher, error) {
	switch cfg.News.Provider {
	case store.ProviderNewsAPI:
		return NewNewsAPIFetcher(NewsAPIConfig{
			BaseURL:    cfg.News.BaseURL,
			APIKey:     cfg.News.APIKey,
			APIKeyEnv:  cfg.News.APIKeyEnv,
			Language:   cfg.News.Language,
			SortBy:     cfg.News.SortBy,
			PageSize:   cfg.News.PageSize,
			WindowDays: cfg.News.WindowDays,
			Timeout:    cfg.Timeout(),
		}), nil
	case store.ProviderRSS:
		return NewRSSFetcher(RSSConfig{
			URL:        cfg.News.RSSURL,
			Language:   cfg.News.Language,
			PageSize:   cfg.News.PageSize,
			WindowDays: cfg.News.WindowDays,
			Timeout:    cfg.Timeout(),
		}), nil
	default:
		return nil, fmt.Errorf("unknown news provider %q", cfg.News.Provider)
	}
}
