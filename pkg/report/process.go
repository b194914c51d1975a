// Package report tracks the live process set across polls and shapes it into
// display rows.
package report

import "github.com/srodi/proctop/pkg/types"

// ProcessReader is the per-process read capability a Process delegates to.
type ProcessReader interface {
	LivePids() []int
	CPUUtilization(pid int, systemUpTime int64) float64
	UpTime(pid int, systemUpTime int64) int64
	User(pid int) string
	Command(pid int) string
	RAM(pid int) string
	Name(pid int) string
	State(pid int) string
	RSSKb(pid int) uint64
}

// UpTimeSource reports whole seconds since boot.
type UpTimeSource interface {
	UpTime() int64
}

// Process is a handle on one pid. It caches nothing: every accessor reads
// /proc again, so two accessors called back to back may observe different
// instants of the same process.
type Process struct {
	pid    int
	reader ProcessReader
	clock  UpTimeSource
}

// NewProcess binds a handle to pid.
func NewProcess(pid int, reader ProcessReader, clock UpTimeSource) *Process {
	return &Process{pid: pid, reader: reader, clock: clock}
}

// Pid is the process id the handle is bound to.
func (p *Process) Pid() int { return p.pid }

// User reads the owning account name.
func (p *Process) User() string { return p.reader.User(p.pid) }

// Command reads the raw command line.
func (p *Process) Command() string { return p.reader.Command(p.pid) }

// Name reads the short executable name.
func (p *Process) Name() string { return p.reader.Name(p.pid) }

// State reads the one-letter run state.
func (p *Process) State() string { return p.reader.State(p.pid) }

// RAM reads the virtual size in megabytes.
func (p *Process) RAM() string { return p.reader.RAM(p.pid) }

// RSSKb reads the resident set size in kilobytes.
func (p *Process) RSSKb() uint64 { return p.reader.RSSKb(p.pid) }

// CPUUtilization returns the lifetime CPU share, reading the system uptime afresh.
func (p *Process) CPUUtilization() float64 {
	return p.reader.CPUUtilization(p.pid, p.clock.UpTime())
}

// UpTime returns seconds since the process started, reading the system uptime afresh.
func (p *Process) UpTime() int64 {
	return p.reader.UpTime(p.pid, p.clock.UpTime())
}

// Snapshot fills a display row by calling each accessor once.
func (p *Process) Snapshot() types.ProcessSnapshot {
	return types.ProcessSnapshot{
		PID:     p.pid,
		User:    p.User(),
		Name:    p.Name(),
		Command: p.Command(),
		State:   p.State(),
		CPU:     p.CPUUtilization(),
		RAM:     p.RAM(),
		RSSKb:   p.RSSKb(),
		UpTime:  p.UpTime(),
	}
}
