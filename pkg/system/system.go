// Package system composes the readers, the CPU sampler and the process table
// into the single object a display loop polls.
package system

import (
	"github.com/rs/zerolog"

	"github.com/srodi/proctop/pkg/collector/cpu"
	"github.com/srodi/proctop/pkg/collector/kernel"
	"github.com/srodi/proctop/pkg/collector/process"
	"github.com/srodi/proctop/pkg/report"
	"github.com/srodi/proctop/pkg/types"
)

// KernelReader is the aggregate-counter capability the facade needs.
type KernelReader interface {
	cpu.AggregateReader
	report.UpTimeSource
	MemoryUtilization() float64
	OperatingSystem() string
	Kernel() string
	TotalProcesses() int
	RunningProcesses() int
}

// System owns the session state: one CPU sampler and one process table.
// It is meant to be driven by a single polling goroutine.
type System struct {
	kernel KernelReader
	cpu    *cpu.Sampler
	table  *report.Table
}

// New wires a System from explicit readers.
func New(k KernelReader, procs report.ProcessReader) *System {
	return &System{
		kernel: k,
		cpu:    cpu.NewSampler(k),
		table:  report.NewTable(procs, k),
	}
}

// Options selects where the procfs readers look. Empty fields use the defaults.
type Options struct {
	ProcRoot      string
	OSReleasePath string
	PasswdPath    string
	Logger        *zerolog.Logger
}

// NewLinux builds a System over the real procfs readers.
func NewLinux(opts Options) *System {
	k := kernel.NewReader(opts.ProcRoot, opts.OSReleasePath)
	p := process.NewReader(opts.ProcRoot, opts.PasswdPath)
	s := New(k, p)
	if opts.Logger != nil {
		k.SetLogger(*opts.Logger)
		p.SetLogger(*opts.Logger)
		s.SetLogger(*opts.Logger)
	}
	return s
}

// SetLogger attaches a logger to the sampler and the table.
func (s *System) SetLogger(l zerolog.Logger) {
	s.cpu.SetLogger(l)
	s.table.SetLogger(l)
}

// CPU samples aggregate utilization since the previous call.
func (s *System) CPU() float64 { return s.cpu.Sample() }

// Processes refreshes the process table and returns it ordered by CPU utilization.
func (s *System) Processes() []*report.Process {
	return s.table.Refresh(s.kernel.UpTime())
}

// MemoryUtilization is the share of physical memory in use.
func (s *System) MemoryUtilization() float64 { return s.kernel.MemoryUtilization() }

// OperatingSystem is the os-release pretty name.
func (s *System) OperatingSystem() string { return s.kernel.OperatingSystem() }

// Kernel is the running kernel release.
func (s *System) Kernel() string { return s.kernel.Kernel() }

// UpTime is whole seconds since boot.
func (s *System) UpTime() int64 { return s.kernel.UpTime() }

// TotalProcesses counts processes created since boot.
func (s *System) TotalProcesses() int { return s.kernel.TotalProcesses() }

// RunningProcesses counts runnable processes.
func (s *System) RunningProcesses() int { return s.kernel.RunningProcesses() }

// Snapshot polls everything once and returns plain values for rendering or export.
func (s *System) Snapshot() types.SystemSnapshot {
	procs := s.Processes()
	rows := make([]types.ProcessSnapshot, 0, len(procs))
	for _, p := range procs {
		rows = append(rows, p.Snapshot())
	}
	return types.SystemSnapshot{
		OperatingSystem:  s.OperatingSystem(),
		Kernel:           s.Kernel(),
		UpTime:           s.UpTime(),
		TotalProcesses:   s.TotalProcesses(),
		RunningProcesses: s.RunningProcesses(),
		CPU:              s.CPU(),
		Memory:           s.MemoryUtilization(),
		Processes:        rows,
	}
}
