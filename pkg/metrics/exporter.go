// Package metrics exposes the latest system snapshot as Prometheus metrics.
//
// The exporter never polls /proc itself: the display loop hands it each
// snapshot through Update, so scrapes cannot race with the CPU sampler or the
// process table.
package metrics

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/srodi/proctop/pkg/report"
	"github.com/srodi/proctop/pkg/types"
)

const namespace = "proctop"

var processLabels = []string{"pid", "name", "user"}

var (
	cpuDesc = prometheus.NewDesc(namespace+"_cpu_utilization_ratio",
		"Aggregate CPU utilization over the last refresh interval.", nil, nil)
	memDesc = prometheus.NewDesc(namespace+"_memory_utilization_ratio",
		"Share of physical memory not free.", nil, nil)
	uptimeDesc = prometheus.NewDesc(namespace+"_uptime_seconds",
		"Seconds since boot.", nil, nil)
	forksDesc = prometheus.NewDesc(namespace+"_forks_total",
		"Processes created since boot.", nil, nil)
	runningDesc = prometheus.NewDesc(namespace+"_processes_running",
		"Runnable processes.", nil, nil)
	infoDesc = prometheus.NewDesc(namespace+"_system_info",
		"Operating system and kernel identity.", []string{"os", "kernel"}, nil)
	procCPUDesc = prometheus.NewDesc(namespace+"_process_cpu_utilization_ratio",
		"Lifetime CPU utilization of the top processes.", processLabels, nil)
	procRSSDesc = prometheus.NewDesc(namespace+"_process_resident_kilobytes",
		"Resident set size of the top processes.", processLabels, nil)
	procUptimeDesc = prometheus.NewDesc(namespace+"_process_uptime_seconds",
		"Seconds since each top process started.", processLabels, nil)
)

// Exporter is a prometheus.Collector over the most recent snapshot.
type Exporter struct {
	mu        sync.RWMutex
	snap      types.SystemSnapshot
	have      bool
	topK      int
	filter    report.FilterConfig
	refreshes prometheus.Counter
}

// interface guard
var _ prometheus.Collector = (*Exporter)(nil)

// NewExporter returns an exporter that publishes per-process series for at most
// topK rows left after filter, matching what the display table shows.
func NewExporter(topK int, filter report.FilterConfig) *Exporter {
	return &Exporter{
		topK:   topK,
		filter: filter,
		refreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refreshes_total",
			Help:      "Snapshots handed to the exporter.",
		}),
	}
}

// Update replaces the published snapshot. Rows are expected in display order.
func (e *Exporter) Update(snap types.SystemSnapshot) {
	e.mu.Lock()
	e.snap = snap
	e.have = true
	e.mu.Unlock()
	e.refreshes.Inc()
}

// Describe sends every descriptor the exporter can emit.
func (e *Exporter) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{
		cpuDesc, memDesc, uptimeDesc, forksDesc, runningDesc, infoDesc, procCPUDesc, procRSSDesc, procUptimeDesc,
	} {
		ch <- d
	}
	e.refreshes.Describe(ch)
}

// Collect emits the system series and the filtered top-K process series of the last snapshot.
func (e *Exporter) Collect(ch chan<- prometheus.Metric) {
	e.refreshes.Collect(ch)

	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.have {
		return
	}
	s := e.snap
	ch <- prometheus.MustNewConstMetric(cpuDesc, prometheus.GaugeValue, s.CPU)
	ch <- prometheus.MustNewConstMetric(memDesc, prometheus.GaugeValue, s.Memory)
	ch <- prometheus.MustNewConstMetric(uptimeDesc, prometheus.GaugeValue, float64(s.UpTime))
	ch <- prometheus.MustNewConstMetric(forksDesc, prometheus.CounterValue, float64(s.TotalProcesses))
	ch <- prometheus.MustNewConstMetric(runningDesc, prometheus.GaugeValue, float64(s.RunningProcesses))
	ch <- prometheus.MustNewConstMetric(infoDesc, prometheus.GaugeValue, 1, s.OperatingSystem, s.Kernel)

	for _, row := range report.Top(report.Filter(s.Processes, e.filter), e.topK) {
		labels := []string{strconv.Itoa(row.PID), row.Name, row.User}
		ch <- prometheus.MustNewConstMetric(procCPUDesc, prometheus.GaugeValue, row.CPU, labels...)
		ch <- prometheus.MustNewConstMetric(procRSSDesc, prometheus.GaugeValue, float64(row.RSSKb), labels...)
		ch <- prometheus.MustNewConstMetric(procUptimeDesc, prometheus.GaugeValue, float64(row.UpTime), labels...)
	}
}

// Handler returns an HTTP handler serving a dedicated registry that holds e.
func Handler(e *Exporter) (http.Handler, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(e); err != nil {
		return nil, err
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}
