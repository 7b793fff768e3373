package result

import (
	"fmt"
	"io"
	"time"
)

// Display caps keep the textual report readable for large runs; entries
// beyond a cap are summarized as "...and N more".
const (
	maxErrorSample    = 10
	maxTimeoutSample  = 5
	maxRedirectSample = 5
)

// PrintReport writes the human-readable report: bucket counts and
// percentages, timing, throughput, and capped samples of errors, timeouts,
// and redirects.
func PrintReport(w io.Writer, rs *ResultSet, rep Report) {
	writef := func(format string, a ...any) { _, _ = fmt.Fprintf(w, format, a...) }

	writef("URL availability report\n")
	writef("  working:   %d (%.1f%%)\n", rep.Working.Count, rep.Working.Percent)
	writef("  redirects: %d (%.1f%%)\n", rep.Warnings.Count, rep.Warnings.Percent)
	writef("  errors:    %d (%.1f%%)\n", rep.Errors.Count, rep.Errors.Percent)
	writef("  timeouts:  %d (%.1f%%)\n", rep.Timeouts.Count, rep.Timeouts.Percent)
	writef("Checked %d URLs in %s (%.1f/s)\n",
		rep.Total, rep.Duration.Round(time.Millisecond), rep.Throughput)
	if rep.Working.Count > 0 {
		writef("Mean response time: %s, slow responses: %d\n",
			rep.MeanResponse.Round(time.Millisecond), rep.SlowCount)
	}

	if len(rs.Errors) > 0 {
		writef("\nErrors:\n")
		for i, r := range rs.Errors {
			if i == maxErrorSample {
				writef("  ...and %d more\n", len(rs.Errors)-maxErrorSample)
				break
			}
			if r.Err != "" {
				writef("  %s [%s] %s\n", r.URL, StatusLabel(r.Status), r.Err)
			} else {
				writef("  %s [%d %s]\n", r.URL, r.Status, r.StatusText)
			}
		}
	}

	if len(rs.Timeouts) > 0 {
		writef("\nTimeouts:\n")
		for i, r := range rs.Timeouts {
			if i == maxTimeoutSample {
				writef("  ...and %d more\n", len(rs.Timeouts)-maxTimeoutSample)
				break
			}
			writef("  %s (no response within %s)\n", r.URL, r.ResponseTime)
		}
	}

	if len(rs.Warnings) > 0 {
		writef("\nRedirects:\n")
		for i, r := range rs.Warnings {
			if i == maxRedirectSample {
				writef("  ...and %d more\n", len(rs.Warnings)-maxRedirectSample)
				break
			}
			writef("  %s -> %s [%d]\n", r.URL, r.FinalURL, r.Status)
		}
	}

	if rep.Success {
		writef("\nResult: PASS\n")
	} else {
		writef("\nResult: FAIL\n")
	}
}
