package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.ProcRoot != "/proc" || cfg.PasswdPath != "/etc/passwd" || !cfg.HideKernel {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadOverlaysYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proctop.yaml")
	content := "interval: 500ms\ntop_k: 3\nhide_kernel: false\nproc_root: /host/proc\nlog_level: debug\nmetrics_addr: \":9101\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Interval != 500*time.Millisecond || cfg.TopK != 3 || cfg.HideKernel {
		t.Fatalf("yaml values not applied: %+v", cfg)
	}
	if cfg.ProcRoot != "/host/proc" || cfg.MetricsAddr != ":9101" {
		t.Fatalf("yaml paths not applied: %+v", cfg)
	}
	if cfg.PasswdPath != "/etc/passwd" {
		t.Fatalf("unset keys should keep defaults, got %q", cfg.PasswdPath)
	}
	if lvl, err := cfg.Level(); err != nil || lvl != zerolog.DebugLevel {
		t.Fatalf("expected debug level, got %v err=%v", lvl, err)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("missing file should fail")
	}
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("top_k: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Fatalf("malformed yaml should fail")
	}
	if cfg, err := Load(""); err != nil || cfg != Default() {
		t.Fatalf("empty path should return defaults, got %+v err=%v", cfg, err)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Interval = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("zero interval must be rejected")
	}

	cfg = Default()
	cfg.LogLevel = "loud"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("unknown log level must be rejected")
	}

	cfg = Config{Interval: time.Second, TopK: -4}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TopK != 1 || cfg.ProcRoot != "/proc" || cfg.OSReleasePath != "/etc/os-release" {
		t.Fatalf("expected normalised config, got %+v", cfg)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvPrefix+"INTERVAL", "3s")
	t.Setenv(EnvPrefix+"TOPK", "7")
	t.Setenv(EnvPrefix+"HIDE_KERNEL", "no")
	t.Setenv(EnvPrefix+"PROC_ROOT", "/mnt/proc")
	t.Setenv(EnvPrefix+"LOG_LEVEL", "info")

	cfg := Default()
	ApplyEnv(&cfg, nil)
	if cfg.Interval != 3*time.Second || cfg.TopK != 7 || cfg.HideKernel || cfg.ProcRoot != "/mnt/proc" || cfg.LogLevel != "info" {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestApplyEnvRespectsExplicitFlags(t *testing.T) {
	t.Setenv(EnvPrefix+"TOPK", "7")
	t.Setenv(EnvPrefix+"INTERVAL", "not-a-duration")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	topK := fs.Int(FlagTopK, 0, "")
	if err := fs.Parse([]string{"-" + FlagTopK, "2"}); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	cfg.TopK = *topK
	ApplyEnv(&cfg, fs)
	if cfg.TopK != 2 {
		t.Fatalf("explicit flag should win over env, got %d", cfg.TopK)
	}
	if cfg.Interval != defaultInterval {
		t.Fatalf("invalid env duration should be ignored, got %v", cfg.Interval)
	}
}
