package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readZipEntries(t *testing.T, name string) map[string]string {
	t.Helper()

	zr, err := zip.OpenReader(name)
	if err != nil {
		t.Fatalf("unable to open report archive: %v", err)
	}
	defer zr.Close()

	entries := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("unable to open entry %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("unable to read entry %s: %v", f.Name, err)
		}
		entries[f.Name] = string(data)
	}
	return entries
}

func TestReport_StoreDataAndClose(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "report.zip")
	r, err := (&ReporterConfig{Destination: dst}).Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	stored := filepath.Join(t.TempDir(), "stored.txt")
	if err := os.WriteFile(stored, []byte("from disk"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	r.StoreData("project.json", []byte(`{"name":"demo"}`))
	r.Store("files/stored.txt", stored)

	if r.Name() == "" {
		t.Error("Name() returned empty string for prepared report")
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	entries := readZipEntries(t, dst)
	if got := entries["project.json"]; got != `{"name":"demo"}` {
		t.Errorf("project.json = %q", got)
	}
	if got := entries["files/stored.txt"]; got != "from disk" {
		t.Errorf("files/stored.txt = %q", got)
	}
	manifest, ok := entries["MANIFEST"]
	if !ok {
		t.Fatal("MANIFEST is missing")
	}
	if !strings.Contains(manifest, "project.json") || !strings.Contains(manifest, "files/stored.txt") {
		t.Errorf("MANIFEST does not list entries: %q", manifest)
	}
}

func TestReport_StoreVersioned(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "report.zip")
	r, err := (&ReporterConfig{Destination: dst}).Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	r.StoreVersioned("export.html", []byte("one"))
	r.StoreVersioned("export.html", []byte("two"))

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	entries := readZipEntries(t, dst)
	var count int
	for name := range entries {
		if strings.HasPrefix(name, "export.html") {
			count++
		}
	}
	if count != 2 {
		t.Errorf("expected 2 versioned entries, got %d", count)
	}
}

func TestReport_StoreDataTwicePanics(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.StoreData("same", []byte("a"))

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate StoreData")
		}
	}()
	r.StoreData("same", []byte("b"))
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
	// all methods must tolerate nil receiver
	r.StoreData("x", nil)
	r.StoreVersioned("x", nil)
	r.Store("x", "y")
	if r.Name() != "" {
		t.Error("Name() of nil report must be empty")
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
