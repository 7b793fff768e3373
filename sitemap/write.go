package sitemap

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

const urlsetNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type xmlURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type xmlURLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []xmlURL `xml:"url"`
}

// WriteXML serializes records as a sitemap urlset document. Escaping of
// special characters in URLs and fields is handled by the XML encoder.
func WriteXML(w io.Writer, records []URLRecord) error {
	set := xmlURLSet{Xmlns: urlsetNamespace, URLs: make([]xmlURL, 0, len(records))}
	for _, rec := range records {
		entry := xmlURL{
			Loc:        rec.URL,
			LastMod:    rec.LastMod,
			ChangeFreq: rec.ChangeFreq,
		}
		if rec.Priority != nil {
			entry.Priority = strconv.FormatFloat(*rec.Priority, 'f', 1, 64)
		}
		set.URLs = append(set.URLs, entry)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write sitemap header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("encode sitemap: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush sitemap encoder: %w", err)
	}
	// Encoder output does not end with a newline.
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("write sitemap trailer: %w", err)
	}
	return nil
}
