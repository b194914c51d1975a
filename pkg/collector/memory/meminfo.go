// Package memory parses /proc/meminfo.
package memory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/srodi/proctop/pkg/collector/procfile"
)

const (
	memTotalKey = "MemTotal:"
	memFreeKey  = "MemFree:"
)

// Meminfo holds the meminfo values the monitor consumes, in kB.
type Meminfo struct {
	TotalKb float64
	FreeKb  float64
}

// Utilization returns (total-free)/total, or 0 when total is not positive.
func (m Meminfo) Utilization() float64 {
	if m.TotalKb <= 0 {
		return 0
	}
	return (m.TotalKb - m.FreeKb) / m.TotalKb
}

// Read parses "<Key>: <value> [unit]" lines from path. Keys that are absent
// read as zero; a value that is present but not numeric is an error.
func Read(path string) (Meminfo, error) {
	var m Meminfo
	var seenTotal, seenFree bool
	var parseErr error
	err := procfile.ScanLines(path, func(line string) bool {
		fields := strings.Fields(line)
		if len(fields) < 2 || (fields[0] != memTotalKey && fields[0] != memFreeKey) {
			return true
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			parseErr = fmt.Errorf("%s %q: %w", fields[0], fields[1], procfile.ErrMalformed)
			return false
		}
		if fields[0] == memTotalKey {
			m.TotalKb, seenTotal = v, true
		} else {
			m.FreeKb, seenFree = v, true
		}
		return !(seenTotal && seenFree)
	})
	if err != nil {
		return Meminfo{}, fmt.Errorf("reading meminfo: %w", err)
	}
	if parseErr != nil {
		return Meminfo{}, parseErr
	}
	return m, nil
}
