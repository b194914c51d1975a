// Package process reads per-process counters from /proc/<pid> and enumerates live pids.
//
// Every accessor performs a fresh read. A process that exits between being
// listed and being queried is not an error: the accessor returns its
// documented fallback instead.
package process

import (
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"
)

const (
	// DefaultProcRoot is where procfs is normally mounted.
	DefaultProcRoot = "/proc"
	// DefaultPasswdPath is the account database used to resolve uids.
	DefaultPasswdPath = "/etc/passwd"

	// NoUser is returned when a uid or user name cannot be resolved.
	NoUser = "-"
	// NoRAM is returned when VmSize is unavailable.
	NoRAM = "0"
)

const (
	statFilename    = "stat"
	statusFilename  = "status"
	cmdlineFilename = "cmdline"
	commFilename    = "comm"
)

// Reader reads per-process files. Its only state is configuration.
type Reader struct {
	procRoot   string
	passwdPath string
	hz         uint64
	pageSize   uint64
	logger     zerolog.Logger
}

// NewReader returns a Reader rooted at procRoot. Empty arguments select the defaults.
func NewReader(procRoot, passwdPath string) *Reader {
	if procRoot == "" {
		procRoot = DefaultProcRoot
	}
	if passwdPath == "" {
		passwdPath = DefaultPasswdPath
	}
	return &Reader{
		procRoot:   procRoot,
		passwdPath: passwdPath,
		hz:         ClockTicks(),
		pageSize:   pageSize(),
		logger:     zerolog.Nop(),
	}
}

// SetLogger attaches a logger used to report fallbacks at debug level.
func (r *Reader) SetLogger(l zerolog.Logger) {
	r.logger = l.With().Str("component", "process").Logger()
}

// SetClockTicks overrides the ticks-per-second conversion constant.
func (r *Reader) SetClockTicks(hz uint64) {
	if hz > 0 {
		r.hz = hz
	}
}

func (r *Reader) pidPath(pid int, name string) string {
	return filepath.Join(r.procRoot, strconv.Itoa(pid), name)
}

func (r *Reader) fallback(err error, pid int, path, msg string) {
	r.logger.Debug().Err(err).Int("pid", pid).Str("path", path).Msg(msg)
}
