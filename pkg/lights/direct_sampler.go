package lights

import (
	"math"

	"github.com/ghalston/pathtrace-core/pkg/core"
)

// visibilityEpsilon is the supporting-plane signed-distance threshold below
// which a luminaire is treated as coplanar with (or behind) the shading
// point and excluded from direct sampling, matching the original renderer's
// DirectSampler guard against sampling a triangle one is lying on.
const visibilityEpsilon = 1e-6

// DirectLightSampler importance-samples the scene's cached emissive
// triangles as seen from a single shading point, built fresh per bounce.
// Luminaires whose supporting plane the point does not clear are excluded
// before the alias table is built, so every surviving entry is genuinely
// visible (modulo occlusion, which the estimator does not shadow-test —
// matching the reference implementation's unshadowed direct term).
type DirectLightSampler struct {
	p          core.Vec3
	luminaires []core.Luminaire
	table      *core.AliasTable
}

// NewDirectLightSampler builds the per-point visible set and its alias
// table. Every visible luminaire carries weight 1 (spec.md §4.F: "default
// weight 1 per visible luminaire"); a future refinement could weight by
// projected solid angle instead.
func NewDirectLightSampler(all []core.Luminaire, p core.Vec3) *DirectLightSampler {
	visible := make([]core.Luminaire, 0, len(all))
	for _, l := range all {
		if l.SignedDistance(p) > visibilityEpsilon {
			visible = append(visible, l)
		}
	}

	weights := make([]float64, len(visible))
	for i := range weights {
		weights[i] = 1.0
	}

	return &DirectLightSampler{
		p:          p,
		luminaires: visible,
		table:      core.NewAliasTable(weights),
	}
}

// CanSample reports whether at least one luminaire is visible from p.
func (d *DirectLightSampler) CanSample() bool {
	return len(d.luminaires) > 0
}

// Sample draws a direction from p toward a uniformly sampled point on a
// luminaire chosen proportional to its selection weight.
func (d *DirectLightSampler) Sample(rng core.Sampler) core.Vec3 {
	idx := d.table.Sample(rng.Uniform64f(), rng.Uniform64f())
	if idx < 0 {
		return core.Vec3{}
	}
	l := d.luminaires[idx]
	uv := rng.Get2D()
	b0, b1, b2 := core.SampleUniformTriangle(uv.X, uv.Y)
	point := l.V0.Multiply(b0).Add(l.V1.Multiply(b1)).Add(l.V2.Multiply(b2))
	return point.Subtract(d.p).Normalize()
}

// PDF returns the direction-space density Sample would produce for wi,
// summed coherently over every visible luminaire the ray (p, wi) hits —
// spec.md §4.F's `selectionProb(L) · (1/area) · t² / |wi·Ng|` per hit.
func (d *DirectLightSampler) PDF(wi core.Vec3) float64 {
	if len(d.luminaires) == 0 {
		return 0
	}

	sum := 0.0
	for i, l := range d.luminaires {
		t, ok := rayTriangleIntersect(d.p, wi, l.V0, l.V1, l.V2)
		if !ok {
			continue
		}
		cosTheta := math.Abs(wi.Dot(l.Normal))
		if cosTheta < 1e-12 || l.Area <= 0 {
			continue
		}
		selectionProb := d.table.Probability(i)
		sum += selectionProb * (1.0 / l.Area) * (t * t) / cosTheta
	}
	return sum
}

// rayTriangleIntersect is the Moller-Trumbore test used to evaluate the
// direct sampler's PDF against a luminaire triangle, independent of
// pkg/geometry so the sampler only needs the cached vertices.
func rayTriangleIntersect(origin, dir, v0, v1, v2 core.Vec3) (float64, bool) {
	const epsilon = 1e-8

	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)

	h := dir.Cross(edge2)
	a := edge1.Dot(h)
	if a > -epsilon && a < epsilon {
		return 0, false
	}

	f := 1.0 / a
	s := origin.Subtract(v0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * dir.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return 0, false
	}

	t := f * edge2.Dot(q)
	if t <= epsilon {
		return 0, false
	}
	return t, true
}
