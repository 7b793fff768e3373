package result

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// jsonOutput wraps the report and buckets for machine consumption.
type jsonOutput struct {
	Report   Report
	Working  []AugmentedResult
	Warnings []AugmentedResult
	Errors   []AugmentedResult
	Timeouts []AugmentedResult
}

// WriteJSON writes the report plus all four buckets as formatted JSON,
// for CI integration.
func WriteJSON(w io.Writer, rs *ResultSet, rep Report) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	out := jsonOutput{
		Report:   rep,
		Working:  rs.Working,
		Warnings: rs.Warnings,
		Errors:   rs.Errors,
		Timeouts: rs.Timeouts,
	}
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("write json output: %w", err)
	}
	return nil
}

// WriteCSV writes every checked record as CSV, one row per record.
// Always includes a header row.
// Column order: url, bucket, status, status_text, response_ms, redirected, final_url, error
func WriteCSV(w io.Writer, rs *ResultSet) error {
	cw := csv.NewWriter(w)

	header := []string{"url", "bucket", "status", "status_text", "response_ms", "redirected", "final_url", "error"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	buckets := []struct {
		name    Bucket
		entries []AugmentedResult
	}{
		{BucketWorking, rs.Working},
		{BucketWarnings, rs.Warnings},
		{BucketErrors, rs.Errors},
		{BucketTimeouts, rs.Timeouts},
	}
	for _, b := range buckets {
		for _, r := range b.entries {
			record := []string{
				r.URL,
				string(b.name),
				strconv.Itoa(r.Status),
				r.StatusText,
				strconv.FormatInt(r.ResponseTime.Milliseconds(), 10),
				strconv.FormatBool(r.Redirected),
				r.FinalURL,
				r.Err,
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("write csv record for %s: %w", r.URL, err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}
	return nil
}
