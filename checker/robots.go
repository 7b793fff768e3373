package checker

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// robotsEntry stores parsed robots.txt data with its fetch timestamp.
// A nil data field means allow-all (missing file, server error, fetch error).
type robotsEntry struct {
	data      *robotstxt.RobotsData
	fetchedAt time.Time
}

// RobotsGate fetches and caches robots.txt rules per host. Every failure
// mode fails open: an unreachable or unparseable robots.txt never blocks a
// check.
type RobotsGate struct {
	client *http.Client
	cache  sync.Map // host string -> *robotsEntry
	ttl    time.Duration
}

// NewRobotsGate creates a RobotsGate with the given HTTP client.
func NewRobotsGate(client *http.Client) *RobotsGate {
	return &RobotsGate{client: client, ttl: time.Hour}
}

// Allowed reports whether rawURL may be probed under its host's robots.txt.
func (g *RobotsGate) Allowed(ctx context.Context, rawURL, userAgent string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return true
	}

	if cached, ok := g.cache.Load(parsed.Host); ok {
		entry := cached.(*robotsEntry)
		if time.Since(entry.fetchedAt) < g.ttl {
			return entry.allows(parsed.Path, userAgent)
		}
	}

	entry := &robotsEntry{data: g.fetch(ctx, parsed.Scheme, parsed.Host), fetchedAt: time.Now()}
	g.cache.Store(parsed.Host, entry)
	return entry.allows(parsed.Path, userAgent)
}

func (e *robotsEntry) allows(path, userAgent string) bool {
	if e.data == nil {
		return true
	}
	return e.data.TestAgent(path, userAgent)
}

// fetch retrieves and parses a host's robots.txt. Any failure, a 404, or a
// server error yields nil (allow-all).
func (g *RobotsGate) fetch(ctx context.Context, scheme, host string) *robotstxt.RobotsData {
	robotsURL := fmt.Sprintf("%s://%s/robots.txt", scheme, host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode >= 500 {
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}
	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return nil
	}
	return data
}
