package renderer

import (
	"math"
	"sync/atomic"

	"github.com/ghalston/pathtrace-core/pkg/core"
)

// fireflyCeiling bounds a single sample's magnitude; anything brighter is
// censored rather than contributing an unbounded-variance outlier to the
// pixel accumulator (spec.md §4.H step 4).
const fireflyCeiling = 1e4

// BadSampleCounters tallies radiance samples censored before accumulation,
// per spec.md §7's numeric-pathology handling. Safe for concurrent use by
// every render worker; counters are incremented with atomic ops rather than
// a shared lock since tiles never touch the same counter slot's invariants.
type BadSampleCounters struct {
	nan      uint64
	inf      uint64
	negative uint64
	firefly  uint64
}

// Sanitize replaces any non-physical component of c with zero and
// increments the matching counter, returning the censored color.
func (b *BadSampleCounters) Sanitize(c core.Vec3) core.Vec3 {
	return core.Vec3{
		X: b.sanitizeComponent(c.X),
		Y: b.sanitizeComponent(c.Y),
		Z: b.sanitizeComponent(c.Z),
	}
}

func (b *BadSampleCounters) sanitizeComponent(v float64) float64 {
	switch {
	case math.IsNaN(v):
		atomic.AddUint64(&b.nan, 1)
		return 0
	case math.IsInf(v, 0):
		atomic.AddUint64(&b.inf, 1)
		return 0
	case v < 0:
		atomic.AddUint64(&b.negative, 1)
		return 0
	case v > fireflyCeiling:
		atomic.AddUint64(&b.firefly, 1)
		return 0
	default:
		return v
	}
}

func (b *BadSampleCounters) Nan() uint64      { return atomic.LoadUint64(&b.nan) }
func (b *BadSampleCounters) Inf() uint64      { return atomic.LoadUint64(&b.inf) }
func (b *BadSampleCounters) Negative() uint64 { return atomic.LoadUint64(&b.negative) }
func (b *BadSampleCounters) Firefly() uint64  { return atomic.LoadUint64(&b.firefly) }

// RenderStats summarizes one progressive pass.
type RenderStats struct {
	TotalPixels    int
	TotalSamples   int
	AverageSamples float64
}

// PixelStats accumulates the samples taken for a single pixel. Each pixel's
// samples within a pass are produced by exactly one worker, so no locking
// is needed at this granularity (spec.md §5).
type PixelStats struct {
	ColorAccum  core.Vec3
	SampleCount int
}

// AddSample adds a new color sample to the pixel statistics.
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// Color returns the current average color for this pixel.
func (ps *PixelStats) Color() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}
