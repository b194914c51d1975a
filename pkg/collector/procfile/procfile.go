// Package procfile holds the small line readers shared by the procfs collectors.
// Every helper opens the file, reads what it needs, and closes it before returning.
package procfile

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	// ErrMalformed marks input that was read but did not have the expected shape.
	ErrMalformed = errors.New("malformed input")
	// ErrKeyNotFound is returned when a keyed line is absent.
	ErrKeyNotFound = errors.New("key not found")
)

// ScanLines calls fn for every line of path until fn returns false.
func ScanLines(path string, fn func(line string) bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if !fn(scanner.Text()) {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

// ReadFirstLine returns the first line of path without its newline.
// An empty file yields an empty string.
func ReadFirstLine(path string) (string, error) {
	var first string
	err := ScanLines(path, func(line string) bool {
		first = line
		return false
	})
	return first, err
}

// KeyedFields returns the whitespace-separated fields of the first line whose
// leading token equals key, including the key itself.
func KeyedFields(path, key string) ([]string, error) {
	var found []string
	err := ScanLines(path, func(line string) bool {
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == key {
			found = fields
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("%s in %s: %w", key, path, ErrKeyNotFound)
	}
	return found, nil
}

// KeyedValue returns the token following key on its line (e.g. "MemTotal:" -> "16318480").
func KeyedValue(path, key string) (string, error) {
	fields, err := KeyedFields(path, key)
	if err != nil {
		return "", err
	}
	if len(fields) < 2 {
		return "", fmt.Errorf("%s in %s has no value: %w", key, path, ErrMalformed)
	}
	return fields[1], nil
}
