// Package sitemap handles the input and output boundaries of the checker:
// parsing URL records from line-format files and sitemap XML documents,
// validating record fields, and serializing records back to sitemap XML.
package sitemap

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Wicoco/sitemap/urlutil"
)

// URLRecord is one input item: a URL plus optional sitemap metadata.
// Records are immutable once parsed; the checker never mutates them.
type URLRecord struct {
	URL        string
	LastMod    string   // ISO-8601 date, empty if absent
	ChangeFreq string   // one of the sitemap changefreq values, empty if absent
	Priority   *float64 // 0.0-1.0, nil if absent
	Source     string   // provenance, e.g. "urls.txt:12" or "sitemap.xml"
}

// changeFreqs enumerates the values allowed by the sitemap protocol.
var changeFreqs = map[string]bool{
	"always":  true,
	"hourly":  true,
	"daily":   true,
	"weekly":  true,
	"monthly": true,
	"yearly":  true,
	"never":   true,
}

// ValidChangeFreq reports whether s is an allowed changefreq value.
func ValidChangeFreq(s string) bool {
	return changeFreqs[s]
}

// ValidLastMod reports whether s is an ISO-8601 date (2006-01-02) or a full
// RFC 3339 timestamp.
func ValidLastMod(s string) bool {
	if _, err := time.Parse("2006-01-02", s); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}

// ValidPriority reports whether p is within the sitemap priority range.
func ValidPriority(p float64) bool {
	return p >= 0.0 && p <= 1.0
}

// Validate checks every populated field of the record.
func (r URLRecord) Validate() error {
	if err := urlutil.Validate(r.URL); err != nil {
		return err
	}
	if r.LastMod != "" && !ValidLastMod(r.LastMod) {
		return fmt.Errorf("lastmod %q is not an ISO-8601 date", r.LastMod)
	}
	if r.ChangeFreq != "" && !ValidChangeFreq(r.ChangeFreq) {
		return fmt.Errorf("changefreq %q is not a valid frequency", r.ChangeFreq)
	}
	if r.Priority != nil && !ValidPriority(*r.Priority) {
		return fmt.Errorf("priority %s is outside [0.0, 1.0]",
			strconv.FormatFloat(*r.Priority, 'f', -1, 64))
	}
	return nil
}
