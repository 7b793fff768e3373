package result

import (
	"fmt"
	"testing"
	"time"

	"github.com/Wicoco/sitemap/sitemap"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		outcome CheckOutcome
		want    Bucket
	}{
		{"200 OK", CheckOutcome{Status: 200}, BucketWorking},
		{"204 No Content", CheckOutcome{Status: 204}, BucketWorking},
		{"301 redirect", CheckOutcome{Status: 301, Redirected: true}, BucketWarnings},
		{"307 redirect", CheckOutcome{Status: 307}, BucketWarnings},
		{"404 not found", CheckOutcome{Status: 404}, BucketErrors},
		{"500 server error", CheckOutcome{Status: 500}, BucketErrors},
		{"transport error", CheckOutcome{Status: StatusTransportError, Err: "connection refused"}, BucketErrors},
		{"timeout", CheckOutcome{Status: StatusTimeout, TimedOut: true}, BucketTimeouts},
		{"timeout wins over status", CheckOutcome{Status: 200, TimedOut: true}, BucketTimeouts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.outcome); got != tt.want {
				t.Errorf("Classify(%+v) = %v, want %v", tt.outcome, got, tt.want)
			}
		})
	}
}

func TestResultSet_AddPartitionsEveryRecord(t *testing.T) {
	outcomes := []CheckOutcome{
		{Status: 200},
		{Status: 301},
		{Status: 404},
		{Status: StatusTimeout, TimedOut: true},
		{Status: StatusTransportError, Err: "dns failure"},
		{Status: 200},
	}

	rs := NewResultSet(len(outcomes))
	for i, out := range outcomes {
		rec := sitemap.URLRecord{URL: fmt.Sprintf("https://example.com/%d", i)}
		rs.Add(rec, out)
	}
	rs.Finish()

	got := len(rs.Working) + len(rs.Warnings) + len(rs.Errors) + len(rs.Timeouts)
	if got != rs.Total {
		t.Errorf("bucket sizes sum to %d, want %d", got, rs.Total)
	}
	if rs.Checked() != rs.Total {
		t.Errorf("Checked() = %d, want %d", rs.Checked(), rs.Total)
	}

	// Every record appears in exactly one bucket.
	seen := map[string]int{}
	for _, bucket := range [][]AugmentedResult{rs.Working, rs.Warnings, rs.Errors, rs.Timeouts} {
		for _, r := range bucket {
			seen[r.URL]++
		}
	}
	if len(seen) != len(outcomes) {
		t.Errorf("expected %d distinct URLs, got %d", len(outcomes), len(seen))
	}
	for url, n := range seen {
		if n != 1 {
			t.Errorf("%s appears in %d buckets", url, n)
		}
	}
}

func TestResultSet_AddReportsBucket(t *testing.T) {
	rs := NewResultSet(2)
	rec := sitemap.URLRecord{URL: "https://example.com"}

	if b := rs.Add(rec, CheckOutcome{Status: 200}); b != BucketWorking {
		t.Errorf("got %v, want working", b)
	}
	if b := rs.Add(rec, SyntheticFailure("worker crashed")); b != BucketErrors {
		t.Errorf("got %v, want errors", b)
	}
}

func TestSyntheticFailure(t *testing.T) {
	out := SyntheticFailure("checking pipeline rejected")

	if out.Status != StatusTransportError {
		t.Errorf("Status = %d, want %d", out.Status, StatusTransportError)
	}
	if out.StatusText != "ERROR" {
		t.Errorf("StatusText = %q, want ERROR", out.StatusText)
	}
	if out.Err != "checking pipeline rejected" {
		t.Errorf("Err = %q", out.Err)
	}
	if out.TimedOut {
		t.Error("synthetic failures are not timeouts")
	}
	if Classify(out) != BucketErrors {
		t.Error("synthetic failures must land in errors")
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{200, "OK"},
		{404, "Not Found"},
		{StatusTimeout, "TIMEOUT"},
		{StatusTransportError, "ERROR"},
	}
	for _, tt := range tests {
		if got := StatusLabel(tt.status); got != tt.want {
			t.Errorf("StatusLabel(%d) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestResultSet_Finish(t *testing.T) {
	rs := NewResultSet(1)
	time.Sleep(5 * time.Millisecond)
	rs.Finish()

	if rs.Duration <= 0 {
		t.Errorf("Duration = %v, want > 0", rs.Duration)
	}
}
