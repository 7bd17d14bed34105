package renderer

import (
	"math"
	"testing"

	"github.com/ghalston/pathtrace-core/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestPixelStats_AddSampleAccumulatesColorAndCount(t *testing.T) {
	var ps PixelStats
	ps.AddSample(core.NewVec3(1, 0, 0))
	ps.AddSample(core.NewVec3(0, 1, 0))

	assert.Equal(t, 2, ps.SampleCount)
	got := ps.Color()
	assert.InDelta(t, 0.5, got.X, 1e-9)
	assert.InDelta(t, 0.5, got.Y, 1e-9)
}

func TestPixelStats_ColorIsZeroWithNoSamples(t *testing.T) {
	var ps PixelStats
	assert.True(t, ps.Color().IsZero())
}

func TestBadSampleCounters_CensorsNaN(t *testing.T) {
	var b BadSampleCounters
	got := b.Sanitize(core.NewVec3(math.NaN(), 1, 1))
	assert.Equal(t, 0.0, got.X)
	assert.Equal(t, uint64(1), b.Nan())
}

func TestBadSampleCounters_CensorsInf(t *testing.T) {
	var b BadSampleCounters
	got := b.Sanitize(core.NewVec3(math.Inf(1), 0, 0))
	assert.Equal(t, 0.0, got.X)
	assert.Equal(t, uint64(1), b.Inf())
}

func TestBadSampleCounters_CensorsNegative(t *testing.T) {
	var b BadSampleCounters
	got := b.Sanitize(core.NewVec3(-1, 0, 0))
	assert.Equal(t, 0.0, got.X)
	assert.Equal(t, uint64(1), b.Negative())
}

func TestBadSampleCounters_CensorsFirefly(t *testing.T) {
	var b BadSampleCounters
	got := b.Sanitize(core.NewVec3(1e6, 0, 0))
	assert.Equal(t, 0.0, got.X)
	assert.Equal(t, uint64(1), b.Firefly())
}

func TestBadSampleCounters_PassesThroughValidSample(t *testing.T) {
	var b BadSampleCounters
	got := b.Sanitize(core.NewVec3(0.5, 0.25, 0.75))
	assert.Equal(t, core.NewVec3(0.5, 0.25, 0.75), got)
	assert.Equal(t, uint64(0), b.Nan()+b.Inf()+b.Negative()+b.Firefly())
}

func TestBadSampleCounters_IndependentAcrossComponents(t *testing.T) {
	var b BadSampleCounters
	b.Sanitize(core.NewVec3(math.NaN(), math.Inf(1), -1))
	assert.Equal(t, uint64(1), b.Nan())
	assert.Equal(t, uint64(1), b.Inf())
	assert.Equal(t, uint64(1), b.Negative())
}
