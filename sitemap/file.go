package sitemap

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/edsrzf/mmap-go"
)

// ReadFile reads a whole input file. Large URL lists are the normal case, so
// the file is memory-mapped and copied out in one pass rather than read
// through buffered I/O. Falls back to a plain read when the file cannot be
// mapped (empty files, pipes).
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat input file: %w", err)
	}
	if info.Size() == 0 {
		return nil, nil
	}

	mapped, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		// Not all file kinds are mappable; fall back to a streaming read.
		data, readErr := io.ReadAll(f)
		if readErr != nil {
			return nil, fmt.Errorf("read input file: %w", readErr)
		}
		return data, nil
	}
	defer func() { _ = mapped.Unmap() }()

	data := make([]byte, len(mapped))
	copy(data, mapped)
	return data, nil
}

// Load reads and parses an input file into deduplicated URL records.
// Files ending in .xml are scanned as sitemap documents; everything else is
// parsed as line-format records. A file that yields zero usable records is
// the one fatal input condition.
func Load(path string) ([]URLRecord, []ParseWarning, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var (
		records  []URLRecord
		warnings []ParseWarning
	)
	if strings.HasSuffix(strings.ToLower(path), ".xml") {
		records, err = ParseXML(data, path)
		if err != nil {
			return nil, nil, err
		}
	} else {
		records, warnings = ParseLines(data, path)
	}

	records = Dedupe(records)
	if len(records) == 0 {
		return nil, warnings, fmt.Errorf("no usable URL records in %s", path)
	}
	return records, warnings, nil
}
