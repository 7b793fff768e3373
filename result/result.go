// Package result collects check outcomes into disjoint buckets and turns a
// completed run into an aggregate reachability report.
package result

import (
	"net/http"
	"time"

	"github.com/Wicoco/sitemap/sitemap"
)

// Sentinel statuses for outcomes that carried no HTTP response.
const (
	// StatusTimeout marks a probe that was cancelled by its own deadline.
	StatusTimeout = -1
	// StatusTransportError marks a probe that failed below HTTP (DNS,
	// refused connection, reset, TLS).
	StatusTransportError = 0
)

// CheckOutcome is the structured result of one reachability probe attempt.
// It is always a value, never an error: a probe that times out or fails at
// the transport layer still produces an outcome.
type CheckOutcome struct {
	Status       int           // HTTP status, or a sentinel above
	StatusText   string        // "OK", "Not Found", "TIMEOUT", "ERROR"
	ResponseTime time.Duration // elapsed wall-clock; equals the timeout when TimedOut
	Redirected   bool
	FinalURL     string // where a redirect chain ended, empty if not redirected
	TimedOut     bool
	Err          string // transport failure cause, empty otherwise
}

// StatusLabel returns the display text for a status, including sentinels.
func StatusLabel(status int) string {
	switch status {
	case StatusTimeout:
		return "TIMEOUT"
	case StatusTransportError:
		return "ERROR"
	default:
		return http.StatusText(status)
	}
}

// SyntheticFailure builds an error outcome for a record whose checking
// pipeline failed without producing a structured outcome.
func SyntheticFailure(reason string) CheckOutcome {
	return CheckOutcome{
		Status:     StatusTransportError,
		StatusText: "ERROR",
		Err:        reason,
	}
}

// AugmentedResult is one input record merged with its final check outcome;
// it is the unit stored in result buckets.
type AugmentedResult struct {
	sitemap.URLRecord
	CheckOutcome
}

// Bucket names one of the four disjoint result categories.
type Bucket string

const (
	BucketWorking  Bucket = "working"
	BucketWarnings Bucket = "warnings"
	BucketErrors   Bucket = "errors"
	BucketTimeouts Bucket = "timeouts"
)

// Classify deterministically assigns an outcome to exactly one bucket:
// timeouts first, then 2xx to working, 3xx to warnings, everything else
// (4xx/5xx, transport errors, synthetic failures) to errors.
func Classify(out CheckOutcome) Bucket {
	switch {
	case out.TimedOut:
		return BucketTimeouts
	case out.Status >= 200 && out.Status < 300:
		return BucketWorking
	case out.Status >= 300 && out.Status < 400:
		return BucketWarnings
	default:
		return BucketErrors
	}
}

// ResultSet accumulates one run's outcomes. It is created at run start,
// mutated only via Add as outcomes settle, and frozen by Finish. Chunks
// settle sequentially, so Add needs no locking.
type ResultSet struct {
	Working  []AugmentedResult
	Warnings []AugmentedResult
	Errors   []AugmentedResult
	Timeouts []AugmentedResult
	Total    int

	StartedAt time.Time
	Duration  time.Duration
}

// NewResultSet creates a result set for a run over total records.
func NewResultSet(total int) *ResultSet {
	return &ResultSet{Total: total, StartedAt: time.Now()}
}

// Add classifies one outcome, appends the augmented result to its bucket,
// and returns the bucket it landed in. A record is never dropped.
func (rs *ResultSet) Add(rec sitemap.URLRecord, out CheckOutcome) Bucket {
	aug := AugmentedResult{URLRecord: rec, CheckOutcome: out}
	bucket := Classify(out)
	switch bucket {
	case BucketWorking:
		rs.Working = append(rs.Working, aug)
	case BucketWarnings:
		rs.Warnings = append(rs.Warnings, aug)
	case BucketTimeouts:
		rs.Timeouts = append(rs.Timeouts, aug)
	default:
		rs.Errors = append(rs.Errors, aug)
	}
	return bucket
}

// Checked returns how many records have settled so far.
func (rs *ResultSet) Checked() int {
	return len(rs.Working) + len(rs.Warnings) + len(rs.Errors) + len(rs.Timeouts)
}

// Finish records the run duration. The result set is immutable afterwards.
func (rs *ResultSet) Finish() {
	rs.Duration = time.Since(rs.StartedAt)
}
