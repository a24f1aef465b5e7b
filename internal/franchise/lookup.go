// Playdex - Game Discovery and Play Sequencing
// Copyright 2026 Playdex contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package franchise

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"github.com/playdex/playdex/internal/metrics"
)

// minEntryLength filters out list-item noise like bullets and footnote
// markers.
const minEntryLength = 5

// WikiLookup fetches franchise orderings from a public wiki-style list
// page. Responses are memoized in a FileCache so a franchise is fetched
// at most once per cache lifetime. The outbound call is bounded by a
// timeout, rate limited, and wrapped in a circuit breaker; every failure
// mode surfaces as an error that the resolver downgrades to "no data".
type WikiLookup struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]string]
	limiter *rate.Limiter
	cache   *FileCache
	logger  zerolog.Logger
}

// WikiLookupConfig configures a WikiLookup.
type WikiLookupConfig struct {
	// BaseURL is the list source root, e.g. "https://en.wikipedia.org/wiki".
	BaseURL string

	// Timeout bounds one fetch. Default 10s.
	Timeout time.Duration

	// RPS rate-limits outbound requests. Zero disables limiting.
	RPS float64

	// Cache persists results. Nil disables memoization.
	Cache *FileCache
}

// NewWikiLookup creates a lookup client.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewWikiLookup(cfg WikiLookupConfig, logger zerolog.Logger) *WikiLookup {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), 1)
	}

	breaker := gobreaker.NewCircuitBreaker[[]string](gobreaker.Settings{
		Name:    "franchise-lookup",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &WikiLookup{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: breaker,
		limiter: limiter,
		cache:   cfg.Cache,
		logger:  logger.With().Str("component", "lookup").Logger(),
	}
}

// Lookup returns the ordered entry titles of the list page for title.
// Cached results are returned without touching the network.
func (w *WikiLookup) Lookup(ctx context.Context, title string) ([]string, error) {
	if w.cache != nil {
		if order, ok := w.cache.Get(title); ok {
			metrics.RecordCacheAccess("franchise_lookup", true)
			return order, nil
		}
		metrics.RecordCacheAccess("franchise_lookup", false)
	}

	if err := w.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("lookup rate limit: %w", err)
	}

	start := time.Now()
	order, err := w.breaker.Execute(func() ([]string, error) {
		return w.fetch(ctx, title)
	})
	metrics.RecordLookup(time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if w.cache != nil {
		if err := w.cache.Put(title, order); err != nil {
			// Memoization failure is not a lookup failure.
			w.logger.Warn().Err(err).Str("title", title).Msg("lookup cache write failed")
		}
	}

	return order, nil
}

// fetch performs one HTTP GET and extracts the list entries.
func (w *WikiLookup) fetch(ctx context.Context, title string) ([]string, error) {
	url := w.baseURL + "/" + strings.ReplaceAll(title, " ", "_")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build lookup request: %w", err)
	}
	req.Header.Set("User-Agent", "playdex/1.0 (franchise order lookup)")

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", title, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lookup %s: unexpected status %d", title, resp.StatusCode)
	}

	order := extractListEntries(resp.Body)
	w.logger.Debug().Str("title", title).Int("entries", len(order)).Msg("lookup fetched")
	return order, nil
}

// extractListEntries collects the text of every <li> element, lowercased,
// skipping meta-entries ("list of ...") and snippets shorter than
// minEntryLength runes.
func extractListEntries(r io.Reader) []string {
	var order []string

	z := html.NewTokenizer(r)
	depth := 0
	var text strings.Builder

	flush := func() {
		entry := strings.ToLower(strings.Join(strings.Fields(text.String()), " "))
		text.Reset()
		if len([]rune(entry)) < minEntryLength || strings.HasPrefix(entry, "list of") {
			return
		}
		order = append(order, entry)
	}

	for {
		switch z.Next() {
		case html.ErrorToken:
			return order
		case html.StartTagToken:
			name, _ := z.TagName()
			if string(name) == "li" {
				if depth > 0 {
					flush()
				}
				depth++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == "li" && depth > 0 {
				flush()
				depth--
			}
		case html.TextToken:
			if depth > 0 {
				text.Write(z.Text())
				text.WriteByte(' ')
			}
		}
	}
}
