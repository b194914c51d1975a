//go:build linux
// +build linux

package process

import (
	"sync"

	"github.com/tklauser/go-sysconf"
	"golang.org/x/sys/unix"
)

const defaultClockTicks = 100

var (
	clockTicksOnce sync.Once
	clockTicks     uint64
)

// ClockTicks returns the kernel's USER_HZ, read once per process lifetime.
func ClockTicks() uint64 {
	clockTicksOnce.Do(func() {
		hz, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
		if err != nil || hz <= 0 {
			clockTicks = defaultClockTicks
			return
		}
		clockTicks = uint64(hz)
	})
	return clockTicks
}

func pageSize() uint64 {
	return uint64(unix.Getpagesize())
}
