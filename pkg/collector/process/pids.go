package process

import (
	"os"
	"sort"
	"strconv"

	"github.com/srodi/proctop/pkg/collector/procfile"
)

// scanLines allows tests to inject read failures.
var scanLines = procfile.ScanLines

// readDir allows tests to stub directory listing.
var readDir = os.ReadDir

// LivePids lists the numeric directories under the proc root in ascending order.
// It returns an empty slice if the directory cannot be read.
func (r *Reader) LivePids() []int {
	entries, err := readDir(r.procRoot)
	if err != nil {
		r.logger.Debug().Err(err).Str("path", r.procRoot).Msg("proc root unreadable")
		return []int{}
	}
	pids := make([]int, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() || !allDigits(e.Name()) {
			continue
		}
		pid, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		pids = append(pids, pid)
	}
	sort.Ints(pids)
	return pids
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
