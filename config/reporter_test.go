package config

import (
	"archive/zip"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestReport(t *testing.T) {
	dir := t.TempDir()
	conf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if r.Name() != conf.Destination {
		t.Errorf("Name() = %s", r.Name())
	}

	stored := filepath.Join(dir, "final.log")
	if err := os.WriteFile(stored, []byte("log line"), 0644); err != nil {
		t.Fatal(err)
	}
	r.Store("final.log", stored)
	r.Store("missing.log", filepath.Join(dir, "missing.log"))
	r.StoreData("config/config.yaml", []byte("version: 1"))
	if err := r.StoreCopy("input", stored); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	if err := r.StoreCopy("input", stored); err != nil {
		t.Fatalf("second StoreCopy() error = %v", err)
	}
	var copies []string
	for _, e := range r.entries {
		if e.temp {
			copies = append(copies, e.actual)
		}
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	zr, err := zip.OpenReader(conf.Destination)
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer zr.Close()
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	if names[0] != "MANIFEST" {
		t.Errorf("first entry = %s", names[0])
	}
	for _, want := range []string{"final.log", "config/config.yaml", "input"} {
		if !slices.Contains(names, want) {
			t.Errorf("%s missing from report %v", want, names)
		}
	}
	if slices.Contains(names, "missing.log") {
		t.Error("absent file must be skipped")
	}
	if len(names) != 5 || !strings.HasPrefix(names[4], "input-") {
		t.Errorf("versioned copy missing: %v", names)
	}

	for _, c := range copies {
		if _, err := os.Stat(c); !os.IsNotExist(err) {
			t.Errorf("temporary copy %s was not removed", c)
		}
	}
	if _, err := os.Stat(stored); err != nil {
		t.Errorf("stored file should not be removed: %v", err)
	}
}

func TestReport_Nil(t *testing.T) {
	var r *Report
	r.Store("a", "b")
	r.StoreData("a", nil)
	if err := r.StoreCopy("a", "b"); err != nil {
		t.Errorf("StoreCopy on nil report = %v", err)
	}
	if r.Name() != "" {
		t.Error("nil report has name")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
}

func TestReport_StoreCopyErrors(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.StoreCopy("x", "/nonexistent/file"); err == nil {
		t.Error("expected error for absent file")
	}
	if err := r.StoreCopy("x", t.TempDir()); err == nil {
		t.Error("expected error for directory")
	}
}
