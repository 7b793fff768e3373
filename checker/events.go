package checker

import "github.com/Wicoco/sitemap/result"

// Event reports the settlement of one checked record.
type Event struct {
	URL       string
	Status    int
	Err       string
	Bucket    result.Bucket
	Processed int
	Total     int
	// Marker is set on every ProgressEvery-th record (and the last), so
	// sinks can print periodic processed/total lines without bookkeeping.
	Marker bool
}
