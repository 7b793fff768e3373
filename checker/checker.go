package checker

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/Wicoco/sitemap/result"
	"github.com/Wicoco/sitemap/sitemap"
)

// Checker drives chunked concurrent availability checks over a record list.
type Checker struct {
	cfg       Config
	transport http.RoundTripper
	limiter   *rate.Limiter
	robots    *RobotsGate
	events    chan<- Event
}

// New creates a Checker with the given configuration.
// The events parameter is optional; pass nil to disable progress events.
func New(cfg Config, events chan<- Event) *Checker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.ProgressEvery <= 0 {
		cfg.ProgressEvery = DefaultProgressEvery
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	c := &Checker{cfg: cfg, transport: cfg.Transport, events: events}
	if c.transport == nil {
		c.transport = http.DefaultTransport
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimit)
	}
	if cfg.RespectRobots {
		// Separate client for robots.txt with a short timeout.
		c.robots = NewRobotsGate(&http.Client{Timeout: 5 * time.Second, Transport: c.transport})
	}
	return c
}

// Config returns the effective configuration after default fixups.
func (c *Checker) Config() Config {
	return c.cfg
}

// Run checks every record and returns the completed result set.
//
// Records are partitioned into contiguous chunks of Concurrency; chunks run
// strictly sequentially with a fixed pause between them, and within a chunk
// every probe runs concurrently. The chunk barrier means one slow URL stalls
// the next chunk from starting; that throttling tradeoff is intentional.
//
// A run always settles all records: cancelling ctx stops probing at the
// next chunk boundary and converts the remaining records into synthetic
// error outcomes, so the bucket partition invariant holds regardless.
func (c *Checker) Run(ctx context.Context, records []sitemap.URLRecord) *result.ResultSet {
	rs := result.NewResultSet(len(records))

	for start := 0; start < len(records); start += c.cfg.Concurrency {
		if start > 0 && c.cfg.ChunkPause > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(c.cfg.ChunkPause):
			}
		}

		chunk := records[start:min(start+c.cfg.Concurrency, len(records))]
		outcomes := make([]result.CheckOutcome, len(chunk))

		if ctx.Err() != nil {
			for i := range chunk {
				outcomes[i] = result.SyntheticFailure(fmt.Sprintf("check cancelled: %v", ctx.Err()))
			}
		} else {
			c.runChunk(ctx, chunk, outcomes)
		}

		// Chunk settled: merge into buckets and report progress. Only this
		// loop touches the buckets, so they need no synchronization.
		for i, rec := range chunk {
			bucket := rs.Add(rec, outcomes[i])
			c.emit(Event{
				URL:       rec.URL,
				Status:    outcomes[i].Status,
				Err:       outcomes[i].Err,
				Bucket:    bucket,
				Processed: rs.Checked(),
				Total:     rs.Total,
				Marker:    rs.Checked()%c.cfg.ProgressEvery == 0 || rs.Checked() == rs.Total,
			})
		}
	}

	rs.Finish()
	return rs
}

// runChunk launches every probe in the chunk concurrently and waits for all
// of them to settle. Each member writes only its own outcome slot; a member
// that fails for any reason other than the probe itself still settles with
// a synthetic error outcome.
func (c *Checker) runChunk(ctx context.Context, chunk []sitemap.URLRecord, outcomes []result.CheckOutcome) {
	g, gctx := errgroup.WithContext(ctx)
	for i, rec := range chunk {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					outcomes[i] = result.SyntheticFailure(fmt.Sprintf("probe panicked: %v", r))
				}
			}()

			if c.limiter != nil {
				if err := c.limiter.Wait(gctx); err != nil {
					outcomes[i] = result.SyntheticFailure(fmt.Sprintf("rate limiter wait: %v", err))
					return nil
				}
			}
			if c.robots != nil && !c.robots.Allowed(gctx, rec.URL, c.cfg.UserAgent) {
				outcomes[i] = result.SyntheticFailure("blocked by robots.txt")
				return nil
			}

			outcomes[i] = CheckWithRetry(gctx, c.transport, rec.URL, c.cfg)
			return nil
		})
	}
	// Members never return errors; failures settle as outcomes.
	_ = g.Wait()
}

func (c *Checker) emit(evt Event) {
	if c.events == nil {
		return
	}
	c.events <- evt
}
