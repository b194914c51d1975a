package kernel

import "github.com/srodi/proctop/pkg/collector/memory"

// MemoryUtilization returns (MemTotal-MemFree)/MemTotal from /proc/meminfo.
// It returns 0 when the file is unreadable or MemTotal is zero or missing.
func (r *Reader) MemoryUtilization() float64 {
	path := r.path(meminfoFilename)
	m, err := memory.Read(path)
	if err != nil {
		r.fallback(err, path, "meminfo unavailable")
		return 0
	}
	if m.TotalKb <= 0 {
		r.logger.Debug().Str("path", path).Msg("meminfo total is zero")
	}
	return m.Utilization()
}
