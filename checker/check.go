// Package checker performs bounded-concurrency URL availability checks:
// one lightweight probe per record, transient-failure retries with linear
// backoff, and chunked scheduling with progress event streaming.
package checker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/Wicoco/sitemap/result"
)

// maxRedirects caps how far a redirect chain is followed before the probe
// settles on the last 3xx response.
const maxRedirects = 10

// discardLimit bounds how much of an unexpected body is drained before the
// connection is released for reuse.
const discardLimit = 4 * 1024

// Check performs one reachability probe with a hard timeout: a HEAD request
// (GET fallback on 405), following redirects, never letting a failure
// escape as an error. Retrying is the caller's responsibility.
//
// A chain of followed redirects that lands on a 2xx reports the first hop's
// 3xx status with FinalURL set to where the chain ended; a chain that lands
// on an error reports the final status.
func Check(ctx context.Context, rt http.RoundTripper, rawURL string, cfg Config) result.CheckOutcome {
	reqCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	var firstRedirect, hops int
	client := &http.Client{
		Transport: rt,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			hops = len(via)
			if firstRedirect == 0 && req.Response != nil {
				firstRedirect = req.Response.StatusCode
			}
			if len(via) >= maxRedirects {
				// Settle on the last 3xx instead of failing the probe.
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	start := time.Now()
	resp, err := doRequest(reqCtx, client, http.MethodHead, rawURL, cfg)
	if err == nil && resp.StatusCode == http.StatusMethodNotAllowed {
		// Some servers reject HEAD outright; probe again with GET.
		resp, err = doRequest(reqCtx, client, http.MethodGet, rawURL, cfg)
	}
	elapsed := time.Since(start)

	if err != nil {
		if timedOut(reqCtx, err) {
			return result.CheckOutcome{
				Status:       result.StatusTimeout,
				StatusText:   "TIMEOUT",
				ResponseTime: cfg.Timeout,
				TimedOut:     true,
			}
		}
		return result.CheckOutcome{
			Status:       result.StatusTransportError,
			StatusText:   "ERROR",
			ResponseTime: elapsed,
			Err:          err.Error(),
		}
	}

	out := result.CheckOutcome{
		Status:       resp.StatusCode,
		ResponseTime: elapsed,
	}
	if hops > 0 {
		out.Redirected = true
		out.FinalURL = resp.Request.URL.String()
		if firstRedirect != 0 && resp.StatusCode >= 200 && resp.StatusCode < 300 {
			out.Status = firstRedirect
		}
	}
	out.StatusText = result.StatusLabel(out.Status)
	return out
}

// doRequest issues one request with the probe's identifying and
// cache-disabling headers and releases the response body unread.
func doRequest(ctx context.Context, client *http.Client, method, rawURL string, cfg Config) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", method, err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	// The probe never inspects bodies; drain a little so the connection can
	// be reused, then close.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, discardLimit))
	_ = resp.Body.Close()
	return resp, nil
}

// timedOut reports whether err means the probe's own deadline expired.
func timedOut(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if ctx.Err() == context.DeadlineExceeded {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
