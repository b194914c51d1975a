package process

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/srodi/proctop/pkg/collector/procfile"
)

const (
	vmSizeKey = "VmSize:"
	uidKey    = "Uid:"
)

// Command returns the first line of /proc/<pid>/cmdline verbatim. Arguments stay NUL-separated.
func (r *Reader) Command(pid int) string {
	path := r.pidPath(pid, cmdlineFilename)
	line, err := procfile.ReadFirstLine(path)
	if err != nil {
		r.fallback(err, pid, path, "cmdline unavailable")
		return ""
	}
	return line
}

// RAM returns VmSize in megabytes with two decimals, or "0".
func (r *Reader) RAM(pid int) string {
	path := r.pidPath(pid, statusFilename)
	raw, err := procfile.KeyedValue(path, vmSizeKey)
	if err != nil {
		r.fallback(err, pid, path, "VmSize unavailable")
		return NoRAM
	}
	kb, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.fallback(procfile.ErrMalformed, pid, path, "VmSize malformed")
		return NoRAM
	}
	return fmt.Sprintf("%.2f", kb/1024)
}

// UID returns the real uid of pid as a string, or "-".
func (r *Reader) UID(pid int) string {
	path := r.pidPath(pid, statusFilename)
	uid, err := procfile.KeyedValue(path, uidKey)
	if err != nil {
		r.fallback(err, pid, path, "Uid unavailable")
		return NoUser
	}
	return uid
}

// User resolves the owner of pid to an account name, or "-".
func (r *Reader) User(pid int) string {
	return r.OwnerName(r.UID(pid))
}

// Name returns the short executable name from /proc/<pid>/comm, or "pid-<N>".
func (r *Reader) Name(pid int) string {
	path := r.pidPath(pid, commFilename)
	line, err := procfile.ReadFirstLine(path)
	name := strings.TrimSpace(line)
	if err != nil || name == "" {
		if err != nil {
			r.fallback(err, pid, path, "comm unavailable")
		}
		return fmt.Sprintf("pid-%d", pid)
	}
	return name
}
