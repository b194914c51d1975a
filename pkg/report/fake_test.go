package report

type fakeReader struct {
	live  [][]int
	polls int
	util  map[int]float64
	calls map[string]int
}

func newFakeReader(util map[int]float64, live ...[]int) *fakeReader {
	return &fakeReader{live: live, util: util, calls: map[string]int{}}
}

func (f *fakeReader) LivePids() []int {
	f.calls["pids"]++
	if len(f.live) == 0 {
		return nil
	}
	i := f.polls
	if i >= len(f.live) {
		i = len(f.live) - 1
	}
	f.polls++
	return f.live[i]
}

func (f *fakeReader) CPUUtilization(pid int, _ int64) float64 {
	f.calls["cpu"]++
	return f.util[pid]
}

func (f *fakeReader) UpTime(pid int, systemUpTime int64) int64 {
	f.calls["uptime"]++
	return systemUpTime - int64(pid)
}

func (f *fakeReader) User(int) string { f.calls["user"]++; return "alice" }

func (f *fakeReader) Command(pid int) string {
	f.calls["command"]++
	if pid == 2 {
		return ""
	}
	return "/usr/bin/app"
}

func (f *fakeReader) RAM(int) string   { f.calls["ram"]++; return "12.50" }
func (f *fakeReader) Name(int) string  { return "app" }
func (f *fakeReader) State(int) string { return "S" }
func (f *fakeReader) RSSKb(int) uint64 { return 2048 }

type fakeClock struct {
	up    int64
	reads int
}

func (c *fakeClock) UpTime() int64 {
	c.reads++
	return c.up
}
