package process

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/srodi/proctop/pkg/collector/procfile"
	"github.com/srodi/proctop/pkg/types"
)

// statField is the zero-based position of a value in /proc/<pid>/stat, as listed in proc(5).
type statField int

const (
	statPID statField = iota
	statComm
	statState
	statPPID
	statPGRP
	statSession
	statTTYNr
	statTPGID
	statFlags
	statMinFlt
	statCMinFlt
	statMajFlt
	statCMajFlt
	statUTime
	statSTime
	statCUTime
	statCSTime
	statPriority
	statNice
	statNumThreads
	statITRealValue
	statStartTime
	statVSize
	statRSS
)

// firstAfterComm is the first field that follows the parenthesised comm slot.
const firstAfterComm = statState

// statLine is a /proc/<pid>/stat line split into positional slots.
// The comm slot is taken whole, so names containing spaces or ')' stay in one slot.
type statLine struct {
	comm string
	rest []string
}

func splitStatLine(line string) (statLine, error) {
	open := strings.IndexByte(line, '(')
	closing := strings.LastIndexByte(line, ')')
	if open < 0 || closing < open {
		return statLine{}, fmt.Errorf("comm slot not found: %w", procfile.ErrMalformed)
	}
	return statLine{
		comm: line[open+1 : closing],
		rest: strings.Fields(line[closing+1:]),
	}, nil
}

func (s statLine) field(f statField) (string, error) {
	i := int(f - firstAfterComm)
	if i < 0 || i >= len(s.rest) {
		return "", fmt.Errorf("stat field %d missing: %w", f, procfile.ErrMalformed)
	}
	return s.rest[i], nil
}

func (s statLine) unsigned(f statField) (uint64, error) {
	raw, err := s.field(f)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("stat field %d %q: %w", f, raw, procfile.ErrMalformed)
	}
	return v, nil
}

func parseStat(pid int, line string) (types.ProcessCounters, error) {
	sl, err := splitStatLine(line)
	if err != nil {
		return types.ProcessCounters{}, err
	}
	state, err := sl.field(statState)
	if err != nil {
		return types.ProcessCounters{}, err
	}

	c := types.ProcessCounters{PID: pid, Comm: sl.comm, State: state[0]}
	targets := []struct {
		field statField
		dst   *uint64
	}{
		{statUTime, &c.UTime},
		{statSTime, &c.STime},
		{statCUTime, &c.CUTime},
		{statCSTime, &c.CSTime},
		{statStartTime, &c.StartTimeTicks},
		{statRSS, &c.RSSPages},
	}
	for _, t := range targets {
		v, err := sl.unsigned(t.field)
		if err != nil {
			return types.ProcessCounters{}, err
		}
		*t.dst = v
	}
	return c, nil
}

func (r *Reader) counters(pid int) (types.ProcessCounters, error) {
	line, err := procfile.ReadFirstLine(r.pidPath(pid, statFilename))
	if err != nil {
		return types.ProcessCounters{}, err
	}
	return parseStat(pid, line)
}

// Counters returns the parsed stat line for pid, or a zero value (with PID set) if unavailable.
func (r *Reader) Counters(pid int) types.ProcessCounters {
	c, err := r.counters(pid)
	if err != nil {
		r.fallback(err, pid, r.pidPath(pid, statFilename), "stat unavailable")
		return types.ProcessCounters{PID: pid}
	}
	return c
}

// ActiveJiffies returns utime+stime+cutime+cstime for pid, or 0.
func (r *Reader) ActiveJiffies(pid int) uint64 {
	return r.Counters(pid).ActiveTicks()
}

// UpTime returns how long pid has been running, in seconds, given the system uptime.
// It is 0 when the stat file is gone and never negative.
func (r *Reader) UpTime(pid int, systemUpTime int64) int64 {
	c, err := r.counters(pid)
	if err != nil {
		r.fallback(err, pid, r.pidPath(pid, statFilename), "stat unavailable")
		return 0
	}
	up := r.elapsed(c, systemUpTime)
	if up < 0 {
		return 0
	}
	return up
}

// elapsed is the whole seconds pid has been alive. Start ticks are truncated to
// seconds like the system uptime, so UpTime and CPUUtilization agree.
func (r *Reader) elapsed(c types.ProcessCounters, systemUpTime int64) int64 {
	return systemUpTime - int64(c.StartTimeTicks/r.hz)
}

// CPUUtilization returns the lifetime CPU share of pid: active seconds over seconds alive.
// It returns 0 if the process is gone or its elapsed time is not positive.
func (r *Reader) CPUUtilization(pid int, systemUpTime int64) float64 {
	c, err := r.counters(pid)
	if err != nil {
		r.fallback(err, pid, r.pidPath(pid, statFilename), "stat unavailable")
		return 0
	}
	elapsed := r.elapsed(c, systemUpTime)
	if elapsed <= 0 {
		r.logger.Debug().Int("pid", pid).Int64("elapsed", elapsed).Msg("non-positive elapsed time")
		return 0
	}
	return float64(c.ActiveTicks()) / float64(r.hz) / float64(elapsed)
}

// RSSKb converts the stat rss field (pages) to kilobytes, or 0.
func (r *Reader) RSSKb(pid int) uint64 {
	return r.Counters(pid).RSSPages * r.pageSize / 1024
}

// State returns the one-letter run state of pid, or "" if unavailable.
func (r *Reader) State(pid int) string {
	c := r.Counters(pid)
	if c.State == 0 {
		return ""
	}
	return string(c.State)
}
