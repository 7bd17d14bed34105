package core

import "math"

// Sampler is the source of randomness consumed by the sampling primitives,
// materials and the radiance estimator. Implementations need not be safe
// for concurrent use; the render driver hands each pixel its own stream.
type Sampler interface {
	// Uniform32f returns a float in [0,1) built from 23 mantissa bits.
	Uniform32f() float32

	// Uniform64f returns a float in [0,1) with at least 52 bits of entropy.
	Uniform64f() float64

	// UniformUint32 returns a raw unsigned 32-bit draw.
	UniformUint32() uint32

	// Get2D returns a pair of independent uniform samples in [0,1).
	Get2D() Vec2
}

// splitmix64 is used only to seed the higher quality generators below from a
// single user-supplied seed. http://xoshiro.di.unimi.it/splitmix64.c
type splitmix64 struct {
	x uint64
}

func (s *splitmix64) next() uint64 {
	s.x += 0x9e3779b97f4a7c15
	z := s.x
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Xoroshiro128Plus is a 128-bit-state PRNG with 64-bit outputs and a jump function that advances
// the state equivalently to 2^64 calls to Next, producing a non-overlapping
// subsequence suitable for parallel per-pixel streams.
// http://xoshiro.di.unimi.it/xoroshiro128plus.c
type Xoroshiro128Plus struct {
	s [2]uint64
}

// NewXoroshiro128Plus seeds a new stream from a single 64-bit seed via splitmix64.
func NewXoroshiro128Plus(seed uint64) *Xoroshiro128Plus {
	sm := splitmix64{x: seed}
	s0 := sm.next()
	s1 := sm.next()
	if s0 == 0 {
		s0 = 1
	}
	if s1 == 0 {
		s1 = 1
	}
	return &Xoroshiro128Plus{s: [2]uint64{s0, s1}}
}

func rotl64(x uint64, k uint) uint64 {
	return (x << k) | (x >> (64 - k))
}

func (x *Xoroshiro128Plus) next() uint64 {
	s0 := x.s[0]
	s1 := x.s[1]
	result := s0 + s1

	s1 ^= s0
	x.s[0] = rotl64(s0, 24) ^ s1 ^ (s1 << 16)
	x.s[1] = rotl64(s1, 37)

	return result
}

// Uniform64f masks 52 mantissa bits into a [1,2) double and subtracts 1.
func (x *Xoroshiro128Plus) Uniform64f() float64 {
	bits := (uint64(0x3FF) << 52) | (x.next() >> 12)
	return math.Float64frombits(bits) - 1.0
}

// Uniform32f masks 23 mantissa bits into a [1,2) float and subtracts 1.
func (x *Xoroshiro128Plus) Uniform32f() float32 {
	bits := uint32(x.next()>>41) | 0x3f800000
	return math.Float32frombits(bits) - 1.0
}

// UniformUint32 returns the low 32 bits of a raw draw.
func (x *Xoroshiro128Plus) UniformUint32() uint32 {
	return uint32(x.next())
}

// Get2D draws two independent uniform64f samples.
func (x *Xoroshiro128Plus) Get2D() Vec2 {
	return Vec2{X: x.Uniform64f(), Y: x.Uniform64f()}
}

// Jump advances the state as if Next had been called 2^64 times, producing a
// subsequence guaranteed not to overlap the pre-jump sequence for up to 2^64
// further calls. Used to hand out independent streams across pixels.
func (x *Xoroshiro128Plus) Jump() {
	jump := [2]uint64{0xdf900294d8f554a5, 0x170865df4b3201fc}

	var s0, s1 uint64
	for _, j := range jump {
		for b := uint(0); b < 64; b++ {
			if j&(uint64(1)<<b) != 0 {
				s0 ^= x.s[0]
				s1 ^= x.s[1]
			}
			x.next()
		}
	}
	x.s[0] = s0
	x.s[1] = s1
}

// PCG32 is the O'Neill PCG XSH-RR 64/32 generator. It has no native jump
// function; per-pixel decorrelation instead uses a distinct odd increment
// (initseq) per stream, PCG's documented mechanism for independent streams.
type PCG32 struct {
	state uint64
	inc   uint64
}

// NewPCG32 seeds a stream with the given (state, sequence) pair, matching
// the reference constructor's two-step warm-up.
func NewPCG32(initState, initSeq uint64) *PCG32 {
	p := &PCG32{state: 0, inc: (initSeq << 1) | 1}
	p.next()
	p.state += initState
	p.next()
	return p
}

func (p *PCG32) next() uint32 {
	oldState := p.state
	p.state = oldState*6364136223846793005 + (p.inc | 1)
	xorshifted := uint32(((oldState >> 18) ^ oldState) >> 27)
	rot := uint32(oldState >> 59)
	return (xorshifted >> rot) | (xorshifted << ((-rot) & 31))
}

// Uniform64f assembles two 26-bit draws into a 52-bit mantissa.
func (p *PCG32) Uniform64f() float64 {
	a := uint64(p.next() >> 6)
	b := uint64(p.next() >> 6)
	x := a | (b << 26)
	bits := uint64(0x3FF0000000000000) | x
	return math.Float64frombits(bits) - 1.0
}

// Uniform32f masks 23 mantissa bits into a [1,2) float and subtracts 1.
func (p *PCG32) Uniform32f() float32 {
	x := p.next()
	bits := (x >> 9) | 0x3f800000
	return math.Float32frombits(bits) - 1.0
}

// UniformUint32 returns a raw 32-bit draw.
func (p *PCG32) UniformUint32() uint32 {
	return p.next()
}

// Get2D draws two independent uniform64f samples.
func (p *PCG32) Get2D() Vec2 {
	return Vec2{X: p.Uniform64f(), Y: p.Uniform64f()}
}

// RNGFamily selects which PRNG variant a RandomPool instantiates.
type RNGFamily string

const (
	RNGXoroshiro128Plus RNGFamily = "xoroshiro128plus"
	RNGPCG32            RNGFamily = "pcg32"
)

// RandomPool owns one decorrelated PRNG stream per pixel. Streams are built
// once at construction and never shared across workers, so the render
// driver can hand out disjoint slices without locking.
type RandomPool struct {
	streams       []Sampler
	width, height int
}

// NewRandomPool seeds a root stream from seed and derives one stream per
// pixel. For Xoroshiro128Plus, each subsequent stream is the previous one
// jumped ahead by 2^64 calls, guaranteeing non-overlapping subsequences.
// For PCG32 (no jump function), each pixel gets a distinct odd sequence
// selector derived from its linear index, and an initial state drawn from a
// splitmix64 seeded with seed.
func NewRandomPool(width, height int, seed uint64, family RNGFamily) *RandomPool {
	streams := make([]Sampler, width*height)

	switch family {
	case RNGPCG32:
		sm := splitmix64{x: seed}
		for i := range streams {
			streams[i] = NewPCG32(sm.next(), uint64(i)*2+1)
		}
	default:
		root := NewXoroshiro128Plus(seed)
		for i := range streams {
			clone := *root
			streams[i] = &clone
			root.Jump()
		}
	}

	return &RandomPool{streams: streams, width: width, height: height}
}

// Stream returns the dedicated stream for pixel (x,y).
func (rp *RandomPool) Stream(x, y int) Sampler {
	return rp.streams[y*rp.width+x]
}
