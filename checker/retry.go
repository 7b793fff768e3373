package checker

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Wicoco/sitemap/result"
)

// resetPatterns match transport failures where the peer dropped the
// connection mid-exchange, the one transport failure class likely to succeed
// on retry.
var resetPatterns = []string{
	"connection reset",
	"broken pipe",
	"transport connection broken",
	"eof",
}

// isTransient reports whether an outcome is worth retrying: a timeout, or a
// connection-reset-class transport failure. HTTP statuses and the remaining
// transport failures (DNS, refused connection, TLS) are permanent.
func isTransient(out result.CheckOutcome) bool {
	if out.TimedOut {
		return true
	}
	if out.Status != result.StatusTransportError || out.Err == "" {
		return false
	}
	msg := strings.ToLower(out.Err)
	for _, pattern := range resetPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// CheckWithRetry wraps Check with bounded, linearly backed-off re-attempts
// for transient failures: the k-th retry waits k*RetryDelay before probing
// again. Non-transient outcomes return immediately; exhausting MaxRetries
// returns the last outcome verbatim, so the caller always receives a
// structured outcome.
func CheckWithRetry(ctx context.Context, rt http.RoundTripper, rawURL string, cfg Config) result.CheckOutcome {
	out := Check(ctx, rt, rawURL, cfg)
	for attempt := 1; attempt <= cfg.MaxRetries; attempt++ {
		if !isTransient(out) {
			return out
		}
		select {
		case <-ctx.Done():
			return out
		case <-time.After(time.Duration(attempt) * cfg.RetryDelay):
		}
		out = Check(ctx, rt, rawURL, cfg)
	}
	return out
}
