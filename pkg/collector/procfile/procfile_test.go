package procfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "f")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestReadFirstLine(t *testing.T) {
	path := writeFile(t, "Linux version 6.1.0 (gcc)\nsecond\n")
	line, err := ReadFirstLine(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line != "Linux version 6.1.0 (gcc)" {
		t.Fatalf("unexpected first line %q", line)
	}

	empty, err := ReadFirstLine(writeFile(t, ""))
	if err != nil || empty != "" {
		t.Fatalf("empty file should give empty line, got %q err=%v", empty, err)
	}

	if _, err := ReadFirstLine(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestKeyedValue(t *testing.T) {
	path := writeFile(t, "MemTotal:       16318480 kB\nMemFree:         1024 kB\nBroken:\n")

	v, err := KeyedValue(path, "MemFree:")
	if err != nil || v != "1024" {
		t.Fatalf("expected 1024, got %q err=%v", v, err)
	}
	if _, err := KeyedValue(path, "Cached:"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
	if _, err := KeyedValue(path, "Broken:"); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestScanLinesStopsEarly(t *testing.T) {
	path := writeFile(t, "a\nb\nc\n")
	var seen []string
	if err := ScanLines(path, func(line string) bool {
		seen = append(seen, line)
		return line != "b"
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seen) != 2 {
		t.Fatalf("expected scan to stop after b, saw %v", seen)
	}
}
