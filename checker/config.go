package checker

import (
	"net/http"
	"time"

	"github.com/Wicoco/sitemap/result"
)

// Defaults for the checker configuration.
const (
	DefaultConcurrency   = 10
	DefaultTimeout       = 5 * time.Second
	DefaultMaxRetries    = 2
	DefaultRetryDelay    = 1 * time.Second
	DefaultChunkPause    = 100 * time.Millisecond
	DefaultProgressEvery = 50
	DefaultUserAgent     = "sitemap-checker/1.0 (+https://github.com/Wicoco/sitemap)"
)

// Config holds checker configuration.
type Config struct {
	Concurrency   int               // Upper bound on simultaneous probes (default 10)
	Timeout       time.Duration     // Per-attempt timeout (default 5s)
	MaxRetries    int               // Additional attempts for transient failures (default 2)
	RetryDelay    time.Duration     // Base delay for linear retry backoff (default 1s)
	ChunkPause    time.Duration     // Pause between chunks, throttling heuristic (default 100ms)
	ProgressEvery int               // Emit a progress marker every N records (default 50)
	RateLimit     int               // Requests per second across all probes, 0 = unlimited
	UserAgent     string            // Identifying header value
	RespectRobots bool              // When set, skip URLs disallowed by robots.txt
	SlowThreshold time.Duration     // Working responses above this count as slow (default 3s)
	Transport     http.RoundTripper // nil = http.DefaultTransport
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Concurrency:   DefaultConcurrency,
		Timeout:       DefaultTimeout,
		MaxRetries:    DefaultMaxRetries,
		RetryDelay:    DefaultRetryDelay,
		ChunkPause:    DefaultChunkPause,
		ProgressEvery: DefaultProgressEvery,
		UserAgent:     DefaultUserAgent,
		SlowThreshold: result.DefaultSlowThreshold,
	}
}
