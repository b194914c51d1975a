package report

import (
	"strings"

	"github.com/srodi/proctop/pkg/types"
)

// FilterConfig controls which processes appear in CLI tables.
type FilterConfig struct {
	HideKernel    *bool // nil defaults to true so kernel threads stay hidden unless explicitly shown
	CommandFilter string
}

func (cfg FilterConfig) hideKernelEnabled() bool {
	if cfg.HideKernel == nil {
		return true
	}
	return *cfg.HideKernel
}

// Filter applies HideKernel/command filters before rows are cut to top-K.
func Filter(rows []types.ProcessSnapshot, cfg FilterConfig) []types.ProcessSnapshot {
	needle := strings.ToLower(strings.TrimSpace(cfg.CommandFilter))
	filtered := make([]types.ProcessSnapshot, 0, len(rows))
	for _, row := range rows {
		if passesFilters(row, cfg, needle) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// Top keeps the first topK rows; rows are expected to be ordered already.
func Top(rows []types.ProcessSnapshot, topK int) []types.ProcessSnapshot {
	if topK > 0 && len(rows) > topK {
		return rows[:topK]
	}
	return rows
}

func passesFilters(row types.ProcessSnapshot, cfg FilterConfig, needle string) bool {
	if cfg.hideKernelEnabled() && isKernelThread(row) {
		return false
	}
	if needle != "" {
		if !strings.Contains(strings.ToLower(row.Name), needle) &&
			!strings.Contains(strings.ToLower(row.Command), needle) {
			return false
		}
	}
	return true
}

// isKernelThread treats processes without a command line, or with a well-known
// kernel worker name, as kernel threads.
func isKernelThread(row types.ProcessSnapshot) bool {
	if row.PID == 0 {
		return true
	}
	if row.Command == "" && row.State != "Z" {
		return true
	}
	name := strings.ToLower(row.Name)
	switch {
	case strings.HasPrefix(name, "kworker"), strings.HasPrefix(name, "ksoftirqd"), strings.HasPrefix(name, "kthreadd"),
		strings.HasPrefix(name, "migration"), strings.HasPrefix(name, "watchdog"), strings.HasPrefix(name, "rcu"),
		strings.HasPrefix(name, "irq/"):
		return true
	}
	return false
}
