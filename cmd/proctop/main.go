//go:build linux

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/srodi/proctop/pkg/config"
	"github.com/srodi/proctop/pkg/metrics"
	"github.com/srodi/proctop/pkg/report"
	"github.com/srodi/proctop/pkg/system"
	"github.com/srodi/proctop/pkg/types"
	"github.com/srodi/proctop/pkg/ui"
)

const (
	commandWidth    = 60
	gaugeWidth      = 30
	shutdownTimeout = 5 * time.Second
)

type runConfig struct {
	config.Config
	once bool
}

func parseConfig() (runConfig, error) {
	fs := flag.CommandLine
	configPath := fs.String("config", "", "path to a YAML config file")
	interval := fs.Duration(config.FlagInterval, 0, "refresh interval (e.g. 2s, 1m)")
	topK := fs.Int(config.FlagTopK, 0, "number of processes to display")
	hideKernel := fs.Bool(config.FlagHideKernel, true, "hide kernel threads such as kworker, ksoftirqd, etc")
	filter := fs.String(config.FlagFilter, "", "only show processes whose name or command contains this substring (case-insensitive)")
	metricsAddr := fs.String(config.FlagMetricsAddr, "", "serve Prometheus metrics on this address (e.g. :9101)")
	logLevel := fs.String(config.FlagLogLevel, "", "log level (debug, info, warn, error)")
	once := fs.Bool("once", false, "print a single snapshot and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return runConfig{}, err
	}
	config.ApplyEnv(&cfg, fs)

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case config.FlagInterval:
			cfg.Interval = *interval
		case config.FlagTopK:
			cfg.TopK = *topK
		case config.FlagHideKernel:
			cfg.HideKernel = *hideKernel
		case config.FlagFilter:
			cfg.CommandFilter = *filter
		case config.FlagMetricsAddr:
			cfg.MetricsAddr = *metricsAddr
		case config.FlagLogLevel:
			cfg.LogLevel = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		return runConfig{}, err
	}
	return runConfig{Config: cfg, once: *once}, nil
}

func newLogger(cfg config.Config) zerolog.Logger {
	lvl, _ := cfg.Level()
	var l zerolog.Logger
	if term.IsTerminal(int(os.Stderr.Fd())) {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	} else {
		l = zerolog.New(os.Stderr)
	}
	return l.Level(lvl).With().Timestamp().Logger()
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "proctop: %v\n", err)
		os.Exit(2)
	}
	logger := newLogger(cfg.Config)

	sys := system.NewLinux(system.Options{
		ProcRoot:      cfg.ProcRoot,
		OSReleasePath: cfg.OSReleasePath,
		PasswdPath:    cfg.PasswdPath,
		Logger:        &logger,
	})
	filterCfg := report.FilterConfig{HideKernel: &cfg.HideKernel, CommandFilter: cfg.CommandFilter}

	if cfg.once {
		var buf bytes.Buffer
		render(&buf, sys.Snapshot(), filterCfg, cfg.Config, false)
		fmt.Print(buf.String())
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var exporter *metrics.Exporter
	if cfg.MetricsAddr != "" {
		exporter = metrics.NewExporter(cfg.TopK, filterCfg)
	}

	g, ctx := errgroup.WithContext(ctx)
	if exporter != nil {
		g.Go(func() error { return serveMetrics(ctx, cfg.MetricsAddr, exporter, logger) })
	}
	g.Go(func() error { return displayLoop(ctx, sys, exporter, filterCfg, cfg.Config) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("proctop stopped")
	}
}

func displayLoop(ctx context.Context, sys *system.System, exporter *metrics.Exporter, filterCfg report.FilterConfig, cfg config.Config) error {
	cleanupTerminal := enableSingleView()
	defer cleanupTerminal()

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		snap := sys.Snapshot()
		if exporter != nil {
			exporter.Update(snap)
		}
		var buf bytes.Buffer
		render(&buf, snap, filterCfg, cfg, true)
		clearScreen()
		fmt.Print(buf.String())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func serveMetrics(ctx context.Context, addr string, exporter *metrics.Exporter, logger zerolog.Logger) error {
	handler, err := metrics.Handler(exporter)
	if err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info().Str("addr", addr).Msg("serving metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}

func render(buf *bytes.Buffer, snap types.SystemSnapshot, filterCfg report.FilterConfig, cfg config.Config, live bool) {
	buf.WriteString(ui.Banner())
	buf.WriteString("\n")
	if live {
		fmt.Fprintf(buf, "proctop (press Ctrl+C to exit)\n")
		fmt.Fprintf(buf, "Updated: %s | Interval: %v\n\n", time.Now().Format(time.RFC3339), cfg.Interval)
	}

	fmt.Fprintf(buf, "OS:        %s\n", snap.OperatingSystem)
	fmt.Fprintf(buf, "Kernel:    %s\n", snap.Kernel)
	fmt.Fprintf(buf, "CPU:       %s\n", ui.Gauge(snap.CPU, gaugeWidth))
	fmt.Fprintf(buf, "Memory:    %s\n", ui.Gauge(snap.Memory, gaugeWidth))
	fmt.Fprintf(buf, "Processes: %d total, %d running\n", snap.TotalProcesses, snap.RunningProcesses)
	fmt.Fprintf(buf, "Up Time:   %s\n\n", ui.ElapsedTime(snap.UpTime))

	rows := report.Top(report.Filter(snap.Processes, filterCfg), cfg.TopK)
	fmt.Fprintf(buf, "[Top %d by CPU]\n", cfg.TopK)
	if len(rows) == 0 {
		fmt.Fprintf(buf, "[!] No processes matched current filters (topk=%d, hide-kernel=%t)\n", cfg.TopK, cfg.HideKernel)
		return
	}
	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PID\tUSER\tS\tCPU(%)\tRAM(MB)\tTIME+\tCOMMAND")
	for _, row := range rows {
		cmd := ui.Command(row.Command, commandWidth)
		if cmd == "" {
			cmd = "[" + row.Name + "]"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%s\t%s\t%s\n",
			row.PID, row.User, row.State, row.CPU*100, row.RAM, ui.ElapsedTime(row.UpTime), cmd)
	}
	tw.Flush()
}

func clearScreen() {
	fmt.Print("\033[H\033[2J")
}

func enableSingleView() func() {
	stdoutFD := int(os.Stdout.Fd())
	stdinFD := int(os.Stdin.Fd())
	if !term.IsTerminal(stdoutFD) {
		return func() {}
	}

	fmt.Print("\033[?1049h") // switch to alternate buffer
	fmt.Print("\033[?25l")   // hide cursor

	var restore []func()
	if term.IsTerminal(stdinFD) {
		if undoEcho, err := disableInputEcho(stdinFD); err == nil && undoEcho != nil {
			restore = append(restore, undoEcho)
		}
	}

	return func() {
		for i := len(restore) - 1; i >= 0; i-- {
			restore[i]()
		}
		fmt.Print("\033[?25h")   // show cursor
		fmt.Print("\033[?1049l") // restore main buffer
	}
}

// disableInputEcho turns off stdin echo so the alternate-screen view stays clean.
func disableInputEcho(fd int) (func(), error) {
	termState, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return nil, err
	}

	updated := *termState
	updated.Lflag &^= unix.ECHO

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, &updated); err != nil {
		return nil, err
	}

	return func() {
		_ = unix.IoctlSetTermios(fd, unix.TCSETS, termState)
	}, nil
}
