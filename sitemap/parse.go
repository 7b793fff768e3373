package sitemap

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// lineRe extracts a URL followed by optional lastmod, changefreq, and
// priority fields, separated by whitespace or pipes.
var lineRe = regexp.MustCompile(
	`^(\S+)` + // url
		`(?:[\s|]+(\d{4}-\d{2}-\d{2}(?:T[0-9:.+\-]+Z?)?))?` + // lastmod
		`(?:[\s|]+([a-z]+))?` + // changefreq
		`(?:[\s|]+(\d(?:\.\d+)?))?` + // priority
		`[\s|]*$`)

// ParseWarning describes one input line that could not be turned into a
// usable record. Warnings are surfaced to the caller but never abort a parse.
type ParseWarning struct {
	Line   int
	Text   string
	Reason string
}

func (w ParseWarning) String() string {
	return fmt.Sprintf("line %d: %s (%q)", w.Line, w.Reason, w.Text)
}

// ParseLines reads line-format input: one record per line in the form
// `url [lastmod] [changefreq] [priority]`, separated by whitespace or pipes.
// Blank lines and `#` comments are skipped. Malformed lines are reported as
// warnings and dropped; they never fail the parse.
func ParseLines(data []byte, source string) ([]URLRecord, []ParseWarning) {
	var (
		records  []URLRecord
		warnings []ParseWarning
	)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		m := lineRe.FindStringSubmatch(line)
		if m == nil {
			warnings = append(warnings, ParseWarning{lineNo, line, "unrecognized line format"})
			continue
		}

		rec := URLRecord{
			URL:        m[1],
			LastMod:    m[2],
			ChangeFreq: m[3],
			Source:     fmt.Sprintf("%s:%d", source, lineNo),
		}
		if m[4] != "" {
			p, err := strconv.ParseFloat(m[4], 64)
			if err != nil {
				warnings = append(warnings, ParseWarning{lineNo, line, "unparseable priority"})
				continue
			}
			rec.Priority = &p
		}

		if err := rec.Validate(); err != nil {
			warnings = append(warnings, ParseWarning{lineNo, line, err.Error()})
			continue
		}
		records = append(records, rec)
	}
	// Scanner errors only happen on oversized lines here; report as a warning
	// on the line that overflowed.
	if err := scanner.Err(); err != nil {
		warnings = append(warnings, ParseWarning{lineNo + 1, "", err.Error()})
	}

	return records, warnings
}

// ParseXML scans a sitemap XML document and collects the text of every
// <loc> element as a bare URL record. No other sitemap fields are read in
// this path. Returns an error only when the document is not well-formed.
func ParseXML(data []byte, source string) ([]URLRecord, error) {
	var (
		records []URLRecord
		inLoc   bool
		loc     strings.Builder
	)

	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse sitemap XML from %s: %w", source, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "loc" {
				inLoc = true
				loc.Reset()
			}
		case xml.CharData:
			if inLoc {
				loc.Write(t)
			}
		case xml.EndElement:
			if t.Name.Local == "loc" {
				inLoc = false
				u := strings.TrimSpace(loc.String())
				if u != "" {
					records = append(records, URLRecord{URL: u, Source: source})
				}
			}
		}
	}

	return records, nil
}
