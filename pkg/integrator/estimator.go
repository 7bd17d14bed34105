// Package integrator implements the renderer's light-transport estimator:
// unidirectional path tracing with multiple-importance-sampled direct
// lighting and Russian-roulette termination.
package integrator

import (
	"fmt"
	"math"

	"github.com/ghalston/pathtrace-core/pkg/core"
	"github.com/ghalston/pathtrace-core/pkg/lights"
)

const (
	// DefaultMaxDepth bounds the number of bounces a path may take.
	DefaultMaxDepth = 10

	// DefaultRussianRouletteMinBounces is the bounce count at which Russian
	// roulette termination begins.
	DefaultRussianRouletteMinBounces = 5

	// DefaultDirectLightProbability is the mixture weight given to the
	// direct-luminaire branch when at least one luminaire is visible.
	DefaultDirectLightProbability = 0.5

	// originBiasEpsilon displaces the next ray's origin off the hit surface
	// to avoid immediate self-intersection.
	originBiasEpsilon = 1e-4

	intersectTMin = 1e-4
)

// Estimator computes per-ray radiance via the MIS+Russian-roulette mixture:
// at each bounce, either a luminaire direction or a BxDF-sampled direction
// is drawn, weighted by the balance heuristic implicit in a single mixture
// density (spec.md §4.G).
type Estimator struct {
	MaxDepth                  int
	RussianRouletteMinBounces int
	DirectLightProbability    float64

	// Debug enables assertion panics on estimator invariant violations
	// (spec.md §7: "implementations must assert in debug builds").
	Debug bool

	Logger core.Logger
}

// NewEstimator builds an estimator with the spec's default bounce/RR/MIS
// parameters. logger may be nil.
func NewEstimator(logger core.Logger) *Estimator {
	return &Estimator{
		MaxDepth:                  DefaultMaxDepth,
		RussianRouletteMinBounces: DefaultRussianRouletteMinBounces,
		DirectLightProbability:    DefaultDirectLightProbability,
		Logger:                    logger,
	}
}

// Li estimates the radiance arriving along ray, iteratively unrolling the
// bounce loop rather than recursing (spec.md §4.G).
func (e *Estimator) Li(scene core.Scene, ray core.Ray, rng core.Sampler) core.Vec3 {
	Lo := core.Vec3{}
	T := core.Vec3{X: 1, Y: 1, Z: 1}

	ro := ray.Origin
	rd := ray.Direction

	maxDepth := e.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	rrMinBounces := e.RussianRouletteMinBounces
	pDirectMax := e.DirectLightProbability

	for bounce := 0; bounce < maxDepth; bounce++ {
		sp, t, ok := scene.Intersect(core.NewRay(ro, rd), intersectTMin, math.Inf(1))
		if !ok {
			if env := scene.Environment(); env != nil {
				Lo = Lo.Add(T.MultiplyVec(env.Emit(rd)))
			}
			return Lo
		}

		sp.Ng = sp.Ng.Normalize()
		p := ro.Add(rd.Multiply(t))
		wo := rd.Multiply(-1)

		direct := lights.NewDirectLightSampler(scene.Luminaires(), p)
		pDirect := 0.0
		if direct.CanSample() {
			pDirect = pDirectMax
		}

		var wi core.Vec3
		if rng.Uniform64f() < pDirect {
			wi = direct.Sample(rng)
		} else {
			wi = sp.BxDF.Sample(rng, wo, sp)
		}

		pd := 0.0
		if direct.CanSample() {
			pd = direct.PDF(wi)
		}
		pb := sp.BxDF.PDF(wo, wi, sp)
		pMix := pDirect*pd + (1-pDirect)*pb

		Lo = Lo.Add(T.MultiplyVec(sp.BxDF.Emission(wo, sp)))

		if pMix <= 0 {
			// Only reachable if the branch just sampled had zero density,
			// which should be impossible; drop the path rather than divide
			// by zero (spec.md §4.G edge case, §7 assertion policy).
			if e.Debug {
				panic(fmt.Sprintf("estimator: pMix <= 0 at bounce %d (pd=%v pb=%v)", bounce, pd, pb))
			}
			return Lo
		}

		cosTerm := math.Abs(sp.Ng.Dot(wi))
		T = T.MultiplyVec(sp.BxDF.BxDF(wo, wi, sp)).Multiply(cosTerm / pMix)
		if T.IsZero() {
			return Lo
		}

		if bounce >= rrMinBounces {
			q := math.Min(T.MaxComponent(), 1.0)
			if rng.Uniform64f() < 1-q {
				return Lo
			}
			T = T.Multiply(1.0 / q)
		}

		sign := 1.0
		if sp.Ng.Dot(wi) < 0 {
			sign = -1.0
		}
		ro = p.Add(sp.Ng.Multiply(sign * originBiasEpsilon))
		rd = wi
	}

	return Lo
}
