package sitemap

import (
	"sync"

	bloom "github.com/bits-and-blooms/bloom/v3"

	"github.com/Wicoco/sitemap/urlutil"
)

// seenCapacity sizes the dedup filter for large sitemaps (100k URLs at a
// 0.1% false positive rate). A false positive drops a duplicate-looking URL,
// which is acceptable for dedup.
const seenCapacity = 100_000

// SeenFilter deduplicates URLs with a bloom filter, so memory stays constant
// no matter how large the input list is.
type SeenFilter struct {
	mu     sync.Mutex
	filter *bloom.BloomFilter
}

// NewSeenFilter creates a filter sized for n expected URLs.
func NewSeenFilter(n uint) *SeenFilter {
	if n == 0 {
		n = seenCapacity
	}
	return &SeenFilter{filter: bloom.NewWithEstimates(n, 0.001)}
}

// SeenOrMark reports whether url was seen before, marking it either way.
func (s *SeenFilter) SeenOrMark(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.filter.TestString(url) {
		return true
	}
	s.filter.AddString(url)
	return false
}

// Dedupe removes records whose normalized URL was already present, keeping
// the first occurrence and preserving input order.
func Dedupe(records []URLRecord) []URLRecord {
	seen := NewSeenFilter(uint(len(records)))
	out := records[:0:len(records)]
	for _, rec := range records {
		key := rec.URL
		if normalized, err := urlutil.Normalize(rec.URL); err == nil {
			key = normalized
		}
		if seen.SeenOrMark(key) {
			continue
		}
		out = append(out, rec)
	}
	return out
}
