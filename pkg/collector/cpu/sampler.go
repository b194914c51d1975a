package cpu

import (
	"github.com/rs/zerolog"

	"github.com/srodi/proctop/pkg/types"
)

// AggregateReader supplies the system-wide jiffy counters.
type AggregateReader interface {
	AggregateCPU() types.AggregateCPUSample
}

// Sampler turns successive cumulative jiffy readings into a utilization fraction.
//
// A new Sampler has zero baselines, so its first Sample reports the average
// utilization since boot rather than an instantaneous rate. Each Sampler owns
// its baselines; use one per monitoring session and call Sample from a single
// goroutine.
type Sampler struct {
	reader    AggregateReader
	prevTotal uint64
	prevIdle  uint64
	primed    bool
	logger    zerolog.Logger
}

// NewSampler returns an unprimed Sampler reading from r.
func NewSampler(r AggregateReader) *Sampler {
	return &Sampler{reader: r, logger: zerolog.Nop()}
}

// SetLogger attaches a logger used to report guarded divisions at debug level.
func (s *Sampler) SetLogger(l zerolog.Logger) {
	s.logger = l.With().Str("component", "cpu").Logger()
}

// Primed reports whether at least one sample has been taken.
func (s *Sampler) Primed() bool {
	return s.primed
}

// Sample reads the counters and returns busy/total over the interval since the previous call.
// The result is clamped to [0,1]; an interval with no elapsed jiffies yields 0.
func (s *Sampler) Sample() float64 {
	return s.observe(s.reader.AggregateCPU())
}

func (s *Sampler) observe(cur types.AggregateCPUSample) float64 {
	total, idle := cur.Total(), cur.IdleTotal()
	deltaTotal := int64(total) - int64(s.prevTotal)
	deltaIdle := int64(idle) - int64(s.prevIdle)

	s.prevTotal, s.prevIdle, s.primed = total, idle, true

	if deltaTotal <= 0 {
		s.logger.Debug().Int64("delta_total", deltaTotal).Msg("no jiffies elapsed")
		return 0
	}
	util := float64(deltaTotal-deltaIdle) / float64(deltaTotal)
	switch {
	case util < 0:
		return 0
	case util > 1:
		return 1
	}
	return util
}
