package result

import "time"

// timeoutBudget is the fraction of records allowed to time out before the
// run is judged a failure.
const timeoutBudget = 0.10

// DefaultSlowThreshold is the response time above which a working record is
// counted as slow.
const DefaultSlowThreshold = 3 * time.Second

// BucketStats holds the count and share of one bucket.
type BucketStats struct {
	Count   int
	Percent float64
}

// Report is the aggregate view of a completed run.
type Report struct {
	Total    int
	Working  BucketStats
	Warnings BucketStats
	Errors   BucketStats
	Timeouts BucketStats

	Duration   time.Duration
	Throughput float64 // records per second

	MeanResponse time.Duration // over working records only
	SlowCount    int           // working records slower than the threshold

	// Success is the run verdict: no errors and timeouts under budget.
	// It drives the process exit code, not the individual bucket counts.
	Success bool
}

// BuildReport computes counts, rates, timing, and the success verdict from a
// completed result set. slowThreshold <= 0 falls back to the default.
func BuildReport(rs *ResultSet, slowThreshold time.Duration) Report {
	if slowThreshold <= 0 {
		slowThreshold = DefaultSlowThreshold
	}

	rep := Report{
		Total:    rs.Total,
		Working:  bucketStats(len(rs.Working), rs.Total),
		Warnings: bucketStats(len(rs.Warnings), rs.Total),
		Errors:   bucketStats(len(rs.Errors), rs.Total),
		Timeouts: bucketStats(len(rs.Timeouts), rs.Total),
		Duration: rs.Duration,
	}

	if rs.Duration > 0 {
		rep.Throughput = float64(rs.Checked()) / rs.Duration.Seconds()
	}

	if len(rs.Working) > 0 {
		var sum time.Duration
		for _, r := range rs.Working {
			sum += r.ResponseTime
			if r.ResponseTime > slowThreshold {
				rep.SlowCount++
			}
		}
		rep.MeanResponse = sum / time.Duration(len(rs.Working))
	}

	rep.Success = len(rs.Errors) == 0 &&
		float64(len(rs.Timeouts)) < timeoutBudget*float64(rs.Total)

	return rep
}

func bucketStats(count, total int) BucketStats {
	stats := BucketStats{Count: count}
	if total > 0 {
		stats.Percent = 100 * float64(count) / float64(total)
	}
	return stats
}
