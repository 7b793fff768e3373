package sitemap

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestReadFile(t *testing.T) {
	content := "https://example.com/one\nhttps://example.com/two\n"
	path := writeTempFile(t, "urls.txt", content)

	data, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != content {
		t.Errorf("got %q, want %q", data, content)
	}
}

func TestReadFile_Empty(t *testing.T) {
	path := writeTempFile(t, "empty.txt", "")

	data, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("expected empty data, got %q", data)
	}
}

func TestReadFile_Missing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_LineFile(t *testing.T) {
	path := writeTempFile(t, "urls.txt",
		"https://example.com/one daily\nhttps://example.com/one daily\nhttps://example.com/two\n")

	records, warnings, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(records) != 2 {
		t.Fatalf("expected duplicates removed, got %d records", len(records))
	}
}

func TestLoad_SitemapFile(t *testing.T) {
	path := writeTempFile(t, "sitemap.xml",
		`<urlset><url><loc>https://example.com/</loc></url><url><loc>https://example.com/about</loc></url></urlset>`)

	records, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Source != path {
		t.Errorf("Source = %q, want %q", records[0].Source, path)
	}
}

func TestLoad_NoUsableRecordsIsFatal(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"empty file", "empty.txt", ""},
		{"comments only", "comments.txt", "# nothing here\n"},
		{"empty sitemap", "empty.xml", "<urlset></urlset>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, tt.file, tt.content)
			if _, _, err := Load(path); err == nil {
				t.Fatal("expected error for input with no records")
			}
		})
	}
}
