package manifest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDataset(t *testing.T) {
	entries := Dataset()

	if len(entries) != 7 {
		t.Fatalf("Expected 7 entries, got %d", len(entries))
	}

	filters := []string{"f090w", "f115w", "f150w", "f200w", "f277w", "f356w", "f444w"}
	for i, entry := range entries {
		if !strings.Contains(entry.URI, filters[i]) {
			t.Errorf("Entry %d URI %q does not contain filter %s", i, entry.URI, filters[i])
		}
		if !strings.HasPrefix(entry.URI, "mast:JWST/product/") {
			t.Errorf("Entry %d URI %q has wrong prefix", i, entry.URI)
		}
		if !strings.HasPrefix(entry.File, "JWST/") {
			t.Errorf("Entry %d File %q has wrong prefix", i, entry.File)
		}
		if filepath.IsAbs(entry.File) {
			t.Errorf("Entry %d File %q must be relative", i, entry.File)
		}
		if !strings.HasSuffix(entry.URL, entry.URI) {
			t.Errorf("Entry %d URL %q does not end with URI %q", i, entry.URL, entry.URI)
		}
	}
}

func TestDatasetIsACopy(t *testing.T) {
	first := Dataset()
	first[0].URI = "clobbered"

	if Dataset()[0].URI == "clobbered" {
		t.Error("Dataset() returned shared state")
	}
}

func TestWrite(t *testing.T) {
	entries := []Entry{
		{URI: "id1", File: "a/x.bin", URL: "http://h/1"},
		{URI: "id2", File: "b/y.bin", URL: "http://h/2"},
	}

	var buf bytes.Buffer
	if err := Write(&buf, "out", entries); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	doc := buf.String()

	if !strings.Contains(doc, "<title>out</title>") {
		t.Error("Manifest is missing the title")
	}
	if !strings.Contains(doc, "<h2>out</h2>") {
		t.Error("Manifest is missing the heading")
	}
	if !strings.Contains(doc, "Total files: 2") {
		t.Error("Manifest is missing the file count")
	}

	if got := strings.Count(doc, "<tr><td>"); got != 2 {
		t.Errorf("Expected 2 data rows, got %d", got)
	}

	// One row per entry, in entry order, with verbatim values.
	row1 := "<tr><td>id1</td><td>a/x.bin</td><td>PUBLIC</td><td>OK</td><td>anonymous</td></tr>"
	row2 := "<tr><td>id2</td><td>b/y.bin</td><td>PUBLIC</td><td>OK</td><td>anonymous</td></tr>"
	i1 := strings.Index(doc, row1)
	i2 := strings.Index(doc, row2)
	if i1 < 0 {
		t.Errorf("Manifest is missing row for id1:\n%s", doc)
	}
	if i2 < 0 {
		t.Errorf("Manifest is missing row for id2:\n%s", doc)
	}
	if i1 >= 0 && i2 >= 0 && i1 > i2 {
		t.Error("Manifest rows are out of entry order")
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	if err := WriteFile(dir, "MAST_TEST", Dataset()); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("Manifest was not written: %v", err)
	}
	if !strings.Contains(string(data), "Total files: 7") {
		t.Error("Manifest file has wrong count")
	}
}
