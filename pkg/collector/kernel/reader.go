// Package kernel reads the system-wide counters and identity strings that the
// kernel exposes under /proc, plus the distribution name from os-release.
//
// None of the Reader methods return errors: a missing or malformed source
// yields the documented fallback value and a debug log entry.
package kernel

import (
	"path/filepath"

	"github.com/rs/zerolog"
)

const (
	// DefaultProcRoot is where procfs is normally mounted.
	DefaultProcRoot = "/proc"
	// DefaultOSReleasePath is the os-release file consulted for the distribution name.
	DefaultOSReleasePath = "/etc/os-release"

	// Unknown is returned for identity strings that cannot be read.
	Unknown = "Unknown"
)

const (
	statFilename    = "stat"
	meminfoFilename = "meminfo"
	uptimeFilename  = "uptime"
	versionFilename = "version"
)

// Reader parses aggregate kernel counters. It holds no state between calls.
type Reader struct {
	procRoot      string
	osReleasePath string
	logger        zerolog.Logger
}

// NewReader returns a Reader rooted at procRoot. Empty arguments select the defaults.
func NewReader(procRoot, osReleasePath string) *Reader {
	if procRoot == "" {
		procRoot = DefaultProcRoot
	}
	if osReleasePath == "" {
		osReleasePath = DefaultOSReleasePath
	}
	return &Reader{
		procRoot:      procRoot,
		osReleasePath: osReleasePath,
		logger:        zerolog.Nop(),
	}
}

// SetLogger attaches a logger used to report fallbacks at debug level.
func (r *Reader) SetLogger(l zerolog.Logger) {
	r.logger = l.With().Str("component", "kernel").Logger()
}

func (r *Reader) path(name string) string {
	return filepath.Join(r.procRoot, name)
}

func (r *Reader) fallback(err error, path string, msg string) {
	r.logger.Debug().Err(err).Str("path", path).Msg(msg)
}
