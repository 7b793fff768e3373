package result

import (
	"fmt"
	"testing"
	"time"

	"github.com/Wicoco/sitemap/sitemap"
)

// buildSet fills a result set with the given number of outcomes per bucket.
func buildSet(working, warnings, errors, timeouts int) *ResultSet {
	total := working + warnings + errors + timeouts
	rs := NewResultSet(total)
	n := 0
	add := func(count int, out CheckOutcome) {
		for i := 0; i < count; i++ {
			n++
			rs.Add(sitemap.URLRecord{URL: fmt.Sprintf("https://example.com/%d", n)}, out)
		}
	}
	add(working, CheckOutcome{Status: 200, ResponseTime: 100 * time.Millisecond})
	add(warnings, CheckOutcome{Status: 301, Redirected: true})
	add(errors, CheckOutcome{Status: 500})
	add(timeouts, CheckOutcome{Status: StatusTimeout, TimedOut: true})
	rs.Duration = 2 * time.Second
	return rs
}

func TestBuildReport_CountsAndPercentages(t *testing.T) {
	rs := buildSet(6, 2, 1, 1)

	rep := BuildReport(rs, 0)

	if rep.Total != 10 {
		t.Errorf("Total = %d, want 10", rep.Total)
	}
	if rep.Working.Count != 6 || rep.Working.Percent != 60.0 {
		t.Errorf("Working = %+v, want 6 at 60%%", rep.Working)
	}
	if rep.Warnings.Count != 2 || rep.Warnings.Percent != 20.0 {
		t.Errorf("Warnings = %+v, want 2 at 20%%", rep.Warnings)
	}
	if rep.Errors.Count != 1 || rep.Errors.Percent != 10.0 {
		t.Errorf("Errors = %+v, want 1 at 10%%", rep.Errors)
	}
	if rep.Timeouts.Count != 1 || rep.Timeouts.Percent != 10.0 {
		t.Errorf("Timeouts = %+v, want 1 at 10%%", rep.Timeouts)
	}
}

func TestBuildReport_Throughput(t *testing.T) {
	rs := buildSet(10, 0, 0, 0) // 10 records over 2s

	rep := BuildReport(rs, 0)

	if rep.Throughput != 5.0 {
		t.Errorf("Throughput = %v, want 5.0", rep.Throughput)
	}
}

func TestBuildReport_MeanResponseAndSlowCount(t *testing.T) {
	rs := NewResultSet(3)
	rs.Add(sitemap.URLRecord{URL: "https://example.com/fast"},
		CheckOutcome{Status: 200, ResponseTime: 100 * time.Millisecond})
	rs.Add(sitemap.URLRecord{URL: "https://example.com/slow"},
		CheckOutcome{Status: 200, ResponseTime: 4 * time.Second})
	// Slow but broken records do not count toward the slow tally.
	rs.Add(sitemap.URLRecord{URL: "https://example.com/broken"},
		CheckOutcome{Status: 500, ResponseTime: 5 * time.Second})
	rs.Duration = time.Second

	rep := BuildReport(rs, 3*time.Second)

	wantMean := (100*time.Millisecond + 4*time.Second) / 2
	if rep.MeanResponse != wantMean {
		t.Errorf("MeanResponse = %v, want %v", rep.MeanResponse, wantMean)
	}
	if rep.SlowCount != 1 {
		t.Errorf("SlowCount = %d, want 1", rep.SlowCount)
	}
}

func TestBuildReport_Verdict(t *testing.T) {
	tests := []struct {
		name                                 string
		working, warnings, errors, timeouts int
		want                                 bool
	}{
		{"all working", 100, 0, 0, 0, true},
		{"timeouts under budget", 91, 0, 0, 9, true},
		{"timeouts at budget", 90, 0, 0, 10, false},
		{"single error", 99, 0, 1, 0, false},
		{"redirects do not fail the run", 90, 10, 0, 0, true},
		{"error and timeouts", 89, 0, 1, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := buildSet(tt.working, tt.warnings, tt.errors, tt.timeouts)
			rep := BuildReport(rs, 0)
			if rep.Success != tt.want {
				t.Errorf("Success = %v, want %v", rep.Success, tt.want)
			}
		})
	}
}
