package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/srodi/proctop/pkg/report"
	"github.com/srodi/proctop/pkg/types"
)

func sampleSnapshot() types.SystemSnapshot {
	return types.SystemSnapshot{
		OperatingSystem:  "Test Linux",
		Kernel:           "6.8.0",
		UpTime:           3600,
		TotalProcesses:   900,
		RunningProcesses: 2,
		CPU:              0.25,
		Memory:           0.5,
		Processes: []types.ProcessSnapshot{
			{PID: 7, Name: "busy", User: "bob", Command: "/usr/bin/busy", State: "R", CPU: 0.8, RSSKb: 1024, UpTime: 60},
			{PID: 1, Name: "init", User: "root", Command: "/sbin/init", State: "S", CPU: 0.01, RSSKb: 512, UpTime: 3600},
		},
	}
}

func TestCollectBeforeUpdateOnlyHasCounter(t *testing.T) {
	e := NewExporter(5, report.FilterConfig{})
	if n := testutil.CollectAndCount(e); n != 1 {
		t.Fatalf("expected only the refresh counter, got %d metrics", n)
	}
}

func TestCollectPublishesSnapshot(t *testing.T) {
	e := NewExporter(1, report.FilterConfig{})
	e.Update(sampleSnapshot())

	expected := `
# HELP proctop_cpu_utilization_ratio Aggregate CPU utilization over the last refresh interval.
# TYPE proctop_cpu_utilization_ratio gauge
proctop_cpu_utilization_ratio 0.25
# HELP proctop_process_cpu_utilization_ratio Lifetime CPU utilization of the top processes.
# TYPE proctop_process_cpu_utilization_ratio gauge
proctop_process_cpu_utilization_ratio{name="busy",pid="7",user="bob"} 0.8
# HELP proctop_system_info Operating system and kernel identity.
# TYPE proctop_system_info gauge
proctop_system_info{kernel="6.8.0",os="Test Linux"} 1
`
	if err := testutil.CollectAndCompare(e, strings.NewReader(expected),
		"proctop_cpu_utilization_ratio", "proctop_process_cpu_utilization_ratio", "proctop_system_info"); err != nil {
		t.Fatalf("unexpected metrics: %v", err)
	}
	// 1 counter + 6 system series + 3 series for the single top row.
	if n := testutil.CollectAndCount(e); n != 10 {
		t.Fatalf("expected 10 metrics, got %d", n)
	}
}

func TestHandlerServesMetrics(t *testing.T) {
	e := NewExporter(5, report.FilterConfig{})
	e.Update(sampleSnapshot())
	h, err := Handler(e)
	if err != nil {
		t.Fatalf("registering exporter: %v", err)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		"proctop_refreshes_total 1",
		"proctop_uptime_seconds 3600",
		`proctop_process_resident_kilobytes{name="init",pid="1",user="root"} 512`,
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("response missing %q:\n%s", want, body)
		}
	}
}

func TestCollectAppliesDisplayFilter(t *testing.T) {
	snap := sampleSnapshot()
	kworker := types.ProcessSnapshot{PID: 12, Name: "kworker/0:1", User: "root", State: "I", CPU: 0.95}
	exited := types.ProcessSnapshot{PID: 40, Name: "pid-40", User: "-", CPU: 0.9}
	snap.Processes = append([]types.ProcessSnapshot{kworker, exited}, snap.Processes...)

	e := NewExporter(1, report.FilterConfig{})
	e.Update(snap)

	expected := `
# HELP proctop_process_cpu_utilization_ratio Lifetime CPU utilization of the top processes.
# TYPE proctop_process_cpu_utilization_ratio gauge
proctop_process_cpu_utilization_ratio{name="busy",pid="7",user="bob"} 0.8
`
	if err := testutil.CollectAndCompare(e, strings.NewReader(expected),
		"proctop_process_cpu_utilization_ratio"); err != nil {
		t.Fatalf("kernel threads and exited pids should be filtered: %v", err)
	}

	show := false
	all := NewExporter(1, report.FilterConfig{HideKernel: &show})
	all.Update(snap)
	expected = `
# HELP proctop_process_cpu_utilization_ratio Lifetime CPU utilization of the top processes.
# TYPE proctop_process_cpu_utilization_ratio gauge
proctop_process_cpu_utilization_ratio{name="kworker/0:1",pid="12",user="root"} 0.95
`
	if err := testutil.CollectAndCompare(all, strings.NewReader(expected),
		"proctop_process_cpu_utilization_ratio"); err != nil {
		t.Fatalf("unexpected metrics with kernel threads shown: %v", err)
	}
}
