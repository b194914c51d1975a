package report

import (
	"sort"

	"github.com/rs/zerolog"
)

// Table is the set of processes observed during a monitoring session.
//
// Pids are only ever added: a process that exits keeps its entry, and its
// accessors fall back to zero values. Table is not safe for concurrent use.
type Table struct {
	reader    ProcessReader
	clock     UpTimeSource
	processes []*Process
	known     map[int]struct{}
	logger    zerolog.Logger
}

// NewTable returns an empty table.
func NewTable(reader ProcessReader, clock UpTimeSource) *Table {
	return &Table{
		reader: reader,
		clock:  clock,
		known:  make(map[int]struct{}),
		logger: zerolog.Nop(),
	}
}

// SetLogger attaches a logger for refresh summaries.
func (t *Table) SetLogger(l zerolog.Logger) {
	t.logger = l.With().Str("component", "table").Logger()
}

// Refresh adds newly seen pids and re-sorts every entry by descending CPU
// utilization. Utilization is read once per pid per refresh; ties go to the
// lower pid. The returned slice is a copy.
func (t *Table) Refresh(systemUpTime int64) []*Process {
	added := 0
	for _, pid := range t.reader.LivePids() {
		if _, ok := t.known[pid]; ok {
			continue
		}
		t.known[pid] = struct{}{}
		t.processes = append(t.processes, NewProcess(pid, t.reader, t.clock))
		added++
	}

	util := make(map[int]float64, len(t.processes))
	for _, p := range t.processes {
		util[p.pid] = t.reader.CPUUtilization(p.pid, systemUpTime)
	}
	sort.SliceStable(t.processes, func(i, j int) bool {
		a, b := t.processes[i], t.processes[j]
		if util[a.pid] == util[b.pid] {
			return a.pid < b.pid
		}
		return util[a.pid] > util[b.pid]
	})

	t.logger.Debug().Int("added", added).Int("known", len(t.processes)).Msg("process table refreshed")
	return t.Processes()
}

// Processes returns the entries in the order of the last Refresh.
func (t *Table) Processes() []*Process {
	out := make([]*Process, len(t.processes))
	copy(out, t.processes)
	return out
}

// KnownPids returns every pid the table has seen, ascending.
func (t *Table) KnownPids() []int {
	pids := make([]int, 0, len(t.known))
	for pid := range t.known {
		pids = append(pids, pid)
	}
	sort.Ints(pids)
	return pids
}

// Len is the number of tracked processes.
func (t *Table) Len() int {
	return len(t.processes)
}
