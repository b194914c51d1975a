//go:build !linux
// +build !linux

package process

import "os"

const defaultClockTicks = 100

// ClockTicks returns the conventional USER_HZ on platforms without procfs.
func ClockTicks() uint64 {
	return defaultClockTicks
}

func pageSize() uint64 {
	return uint64(os.Getpagesize())
}
