package kernel

import (
	"strconv"
	"strings"

	"github.com/srodi/proctop/pkg/collector/procfile"
)

const prettyNameKey = "PRETTY_NAME"

// versionField indexes the tokens of the first /proc/version line.
type versionField int

const (
	versionOS versionField = iota
	versionWord
	versionRelease
)

// scanLines allows tests to inject read failures.
var scanLines = procfile.ScanLines

// UpTime returns whole seconds since boot, truncating the fractional part of /proc/uptime.
func (r *Reader) UpTime() int64 {
	path := r.path(uptimeFilename)
	line, err := procfile.ReadFirstLine(path)
	if err != nil {
		r.fallback(err, path, "uptime unavailable")
		return 0
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		r.fallback(procfile.ErrMalformed, path, "uptime empty")
		return 0
	}
	secs, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || secs < 0 {
		r.fallback(procfile.ErrMalformed, path, "uptime malformed")
		return 0
	}
	return int64(secs)
}

// Kernel returns the release token of /proc/version (e.g. "6.1.0-18-amd64").
func (r *Reader) Kernel() string {
	path := r.path(versionFilename)
	line, err := procfile.ReadFirstLine(path)
	if err != nil {
		r.fallback(err, path, "version unavailable")
		return Unknown
	}
	fields := strings.Fields(line)
	if len(fields) <= int(versionRelease) {
		r.fallback(procfile.ErrMalformed, path, "version malformed")
		return Unknown
	}
	return fields[versionRelease]
}

// OperatingSystem returns PRETTY_NAME from os-release with its quotes removed
// and underscores shown as spaces.
func (r *Reader) OperatingSystem() string {
	name := Unknown
	err := scanLines(r.osReleasePath, func(line string) bool {
		key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok || key != prettyNameKey {
			return true
		}
		if v := unquote(value); v != "" {
			name = strings.ReplaceAll(v, "_", " ")
		}
		return false
	})
	if err != nil {
		r.fallback(err, r.osReleasePath, "os-release unavailable")
		return Unknown
	}
	return name
}

func unquote(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}
