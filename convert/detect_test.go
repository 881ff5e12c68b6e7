package convert

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func writeZip(t *testing.T, path string, files map[string][]byte) {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, data := range files {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to create %s in zip: %v", name, err)
		}
		if _, err := f.Write(data); err != nil {
			t.Fatalf("Failed to write %s in zip: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to write zip: %v", err)
	}
}

func TestDetectFile(t *testing.T) {
	dir := t.TempDir()

	sqliteHeader := append([]byte("SQLite format 3\x00"), make([]byte, 100)...)
	pngHeader := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

	tests := []struct {
		name string
		data []byte
		want sourceKind
	}{
		{"data.csv", []byte("a,b\n1,2\n"), kindText},
		{"data.TSV", []byte("a\tb\n"), kindText},
		{"empty.csv", nil, kindText},
		{"notes.md", []byte("# title"), kindUnknown},
		{"image.csv", pngHeader, kindUnknown},
		{"db.sqlite", sqliteHeader, kindDatabase},
		{"db.bin", sqliteHeader, kindDatabase},
		{"fake.zip", []byte("not a real zip file"), kindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			if err := os.WriteFile(path, tt.data, 0644); err != nil {
				t.Fatal(err)
			}
			got, err := detectFile(path)
			if err != nil {
				t.Fatalf("detectFile() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("detectFile() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("zip archive", func(t *testing.T) {
		path := filepath.Join(dir, "bundle.zip")
		writeZip(t, path, map[string][]byte{"a.csv": bytes.Repeat([]byte("1,2\n"), 100)})
		got, err := detectFile(path)
		if err != nil {
			t.Fatalf("detectFile() error = %v", err)
		}
		if got != kindArchive {
			t.Errorf("detectFile() = %v, want %v", got, kindArchive)
		}
		if ok, err := isArchiveFile(path); err != nil || !ok {
			t.Errorf("isArchiveFile() = %v, %v", ok, err)
		}
	})
}

func TestIsArchiveFile_NonExistent(t *testing.T) {
	if _, err := isArchiveFile("/nonexistent/file.zip"); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestIsTextInArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.zip")
	writeZip(t, path, map[string][]byte{
		"a.csv":     []byte("x,y\n"),
		"b.txt":     []byte("plain"),
		"readme.md": []byte("text"),
		"img.csv":   {0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a},
	})
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	want := map[string]bool{"a.csv": true, "b.txt": true, "readme.md": false, "img.csv": false}
	for _, f := range r.File {
		got, err := isTextInArchive(f)
		if err != nil {
			t.Errorf("isTextInArchive(%s) error = %v", f.Name, err)
		}
		if got != want[f.Name] {
			t.Errorf("isTextInArchive(%s) = %v, want %v", f.Name, got, want[f.Name])
		}
	}
}

func TestDelimiterFor(t *testing.T) {
	if d := delimiterFor("a.tsv", ','); d != '\t' {
		t.Errorf("tsv delimiter = %q", d)
	}
	if d := delimiterFor("a.csv", ';'); d != ';' {
		t.Errorf("csv delimiter = %q", d)
	}
}
