package types

// DefaultTopK controls how many top processes we display.
const DefaultTopK = 10

// AggregateCPUSample holds the system-wide jiffy counters from the "cpu" line of /proc/stat.
type AggregateCPUSample struct {
	User      uint64
	Nice      uint64
	System    uint64
	Idle      uint64
	IOWait    uint64
	IRQ       uint64
	SoftIRQ   uint64
	Steal     uint64
	Guest     uint64
	GuestNice uint64
}

// IdleTotal is idle + iowait.
func (s AggregateCPUSample) IdleTotal() uint64 {
	return s.Idle + s.IOWait
}

// NonIdleTotal is the time spent doing work. Guest time is already folded into user/nice by the kernel.
func (s AggregateCPUSample) NonIdleTotal() uint64 {
	return s.User + s.Nice + s.System + s.IRQ + s.SoftIRQ + s.Steal
}

// Total is IdleTotal + NonIdleTotal.
func (s AggregateCPUSample) Total() uint64 {
	return s.IdleTotal() + s.NonIdleTotal()
}

// ProcessCounters is the subset of /proc/<pid>/stat consumed by the monitor.
type ProcessCounters struct {
	PID            int
	Comm           string
	State          byte
	UTime          uint64
	STime          uint64
	CUTime         uint64
	CSTime         uint64
	StartTimeTicks uint64
	RSSPages       uint64
}

// ActiveTicks returns utime+stime+cutime+cstime.
func (c ProcessCounters) ActiveTicks() uint64 {
	return c.UTime + c.STime + c.CUTime + c.CSTime
}

// ProcessSnapshot is one display row for a process.
type ProcessSnapshot struct {
	PID     int
	User    string
	Name    string
	Command string
	State   string
	// CPU is the lifetime CPU utilization fraction, nominally in [0,1].
	CPU float64
	// RAM is VmSize in megabytes with two decimals, "0" when unavailable.
	RAM    string
	RSSKb  uint64
	UpTime int64
}

// SystemSnapshot is everything the display layer needs for one refresh.
type SystemSnapshot struct {
	OperatingSystem  string
	Kernel           string
	UpTime           int64
	TotalProcesses   int
	RunningProcesses int
	CPU              float64
	Memory           float64
	Processes        []ProcessSnapshot
}
