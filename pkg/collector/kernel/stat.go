package kernel

import (
	"fmt"
	"strconv"

	"github.com/srodi/proctop/pkg/collector/procfile"
	"github.com/srodi/proctop/pkg/types"
)

// cpuField indexes the values that follow the "cpu" label in /proc/stat.
type cpuField int

const (
	cpuUser cpuField = iota
	cpuNice
	cpuSystem
	cpuIdle
	cpuIOWait
	cpuIRQ
	cpuSoftIRQ
	cpuSteal
	cpuGuest
	cpuGuestNice
	cpuFieldCount
)

// cpuRequiredFields is how many values the line must carry; guest columns
// are missing on very old kernels and read as zero.
const cpuRequiredFields = int(cpuSteal) + 1

const (
	cpuLabel          = "cpu"
	processesLabel    = "processes"
	procsRunningLabel = "procs_running"
)

// AggregateCPU returns the "cpu" line of /proc/stat. Any failure yields an all-zero sample.
func (r *Reader) AggregateCPU() types.AggregateCPUSample {
	path := r.path(statFilename)
	fields, err := procfile.KeyedFields(path, cpuLabel)
	if err != nil {
		r.fallback(err, path, "aggregate cpu unavailable")
		return types.AggregateCPUSample{}
	}
	sample, err := parseCPULine(fields[1:])
	if err != nil {
		r.fallback(err, path, "aggregate cpu malformed")
		return types.AggregateCPUSample{}
	}
	return sample
}

func parseCPULine(values []string) (types.AggregateCPUSample, error) {
	if len(values) < cpuRequiredFields {
		return types.AggregateCPUSample{}, fmt.Errorf("cpu line has %d values: %w", len(values), procfile.ErrMalformed)
	}
	var parsed [cpuFieldCount]uint64
	for i := 0; i < int(cpuFieldCount) && i < len(values); i++ {
		v, err := strconv.ParseUint(values[i], 10, 64)
		if err != nil {
			return types.AggregateCPUSample{}, fmt.Errorf("cpu field %d: %w", i, procfile.ErrMalformed)
		}
		parsed[i] = v
	}
	return types.AggregateCPUSample{
		User:      parsed[cpuUser],
		Nice:      parsed[cpuNice],
		System:    parsed[cpuSystem],
		Idle:      parsed[cpuIdle],
		IOWait:    parsed[cpuIOWait],
		IRQ:       parsed[cpuIRQ],
		SoftIRQ:   parsed[cpuSoftIRQ],
		Steal:     parsed[cpuSteal],
		Guest:     parsed[cpuGuest],
		GuestNice: parsed[cpuGuestNice],
	}, nil
}

// TotalProcesses returns the number of forks since boot ("processes"), or 0.
func (r *Reader) TotalProcesses() int {
	return r.statCount(processesLabel)
}

// RunningProcesses returns the number of runnable tasks ("procs_running"), or 0.
func (r *Reader) RunningProcesses() int {
	return r.statCount(procsRunningLabel)
}

func (r *Reader) statCount(label string) int {
	path := r.path(statFilename)
	raw, err := procfile.KeyedValue(path, label)
	if err != nil {
		r.fallback(err, path, label+" unavailable")
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		r.fallback(procfile.ErrMalformed, path, label+" malformed")
		return 0
	}
	return n
}
