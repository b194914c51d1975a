// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// Flag names shared with the command so explicit flags beat the environment.
const (
	FlagInterval    = "interval"
	FlagTopK        = "topk"
	FlagHideKernel  = "hide-kernel"
	FlagFilter      = "filter"
	FlagMetricsAddr = "metrics-addr"
	FlagLogLevel    = "log-level"
)

// ApplyEnv overrides cfg from PROCTOP_* variables, skipping any setting whose
// flag was explicitly given on fs. fs may be nil.
func ApplyEnv(cfg *Config, fs *flag.FlagSet) {
	if !isFlagSet(fs, FlagInterval) {
		cfg.Interval = getEnvDuration("INTERVAL", cfg.Interval)
	}
	if !isFlagSet(fs, FlagTopK) {
		cfg.TopK = getEnvInt("TOPK", cfg.TopK)
	}
	if !isFlagSet(fs, FlagHideKernel) {
		cfg.HideKernel = getEnvBool("HIDE_KERNEL", cfg.HideKernel)
	}
	if !isFlagSet(fs, FlagFilter) {
		cfg.CommandFilter = getEnvString("FILTER", cfg.CommandFilter)
	}
	if !isFlagSet(fs, FlagMetricsAddr) {
		cfg.MetricsAddr = getEnvString("METRICS_ADDR", cfg.MetricsAddr)
	}
	if !isFlagSet(fs, FlagLogLevel) {
		cfg.LogLevel = getEnvString("LOG_LEVEL", cfg.LogLevel)
	}
	cfg.ProcRoot = getEnvString("PROC_ROOT", cfg.ProcRoot)
	cfg.OSReleasePath = getEnvString("OS_RELEASE_PATH", cfg.OSReleasePath)
	cfg.PasswdPath = getEnvString("PASSWD_PATH", cfg.PasswdPath)
}

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool accepts "true", "1", "yes" and "false", "0", "no" (case-insensitive).
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func isFlagSet(fs *flag.FlagSet, name string) bool {
	if fs == nil {
		return false
	}
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
