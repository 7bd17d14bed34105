// Package material holds the concrete core.Material implementations.
package material

import (
	"math"

	"github.com/ghalston/pathtrace-core/pkg/core"
)

// Lambertian is a perfectly diffuse BxDF that can optionally carry its own
// emission, matching the original renderer's single LambertianBRDF type
// that serves both ordinary surfaces and area lights.
type Lambertian struct {
	Albedo core.Vec3 // Base reflectance R; the BxDF value is Albedo/pi

	Emissive     core.Vec3 // Radiance emitted toward the front face; zero for non-emitters
	BackEmission bool      // If true, Emissive also radiates from the back face
}

// NewLambertian creates a purely diffuse, non-emissive material.
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// NewAreaLight creates a diffuse material that also emits, the Go analogue
// of constructing a LambertianBRDF with a non-zero Le.
func NewAreaLight(albedo, emission core.Vec3, backEmission bool) *Lambertian {
	return &Lambertian{Albedo: albedo, Emissive: emission, BackEmission: backEmission}
}

// Emission returns the emitted radiance toward wo. Zero on the back face
// unless BackEmission is set.
func (l *Lambertian) Emission(wo core.Vec3, sp *core.ShadingPoint) core.Vec3 {
	if l.Emissive.IsZero() {
		return core.Vec3{}
	}
	if !l.BackEmission && sp.Ng.Dot(wo) < 0 {
		return core.Vec3{}
	}
	return l.Emissive
}

// facingNormal flips sp.Ng to the side of wo, matching the reference
// material's convention of orienting the shading frame to the outgoing ray
// before evaluating or sampling the BxDF.
func facingNormal(wo core.Vec3, sp *core.ShadingPoint) core.Vec3 {
	if sp.Ng.Dot(wo) < 0 {
		return sp.Ng.Negate()
	}
	return sp.Ng
}

// BxDF returns the Lambertian reflectance value R/pi, scaled by the ratio of
// shading-normal to geometric-normal cosines (1 for flat-shaded triangles,
// where Ns==Ng). Zero if wo and wi straddle the geometric normal, which
// would otherwise leak light through a one-sided surface.
func (l *Lambertian) BxDF(wo, wi core.Vec3, sp *core.ShadingPoint) core.Vec3 {
	if sp.Ng.Dot(wi)*sp.Ng.Dot(wo) < 0 {
		return core.Vec3{}
	}

	value := l.Albedo.Multiply(1.0 / math.Pi)

	ngDotWi := sp.Ng.Dot(wi)
	if math.Abs(ngDotWi) < 1e-12 {
		return core.Vec3{}
	}
	shadingRatio := math.Abs(sp.Ns.Dot(wi) / ngDotWi)
	return value.Multiply(shadingRatio)
}

// Sample draws a cosine-weighted direction around the normal facing wo.
func (l *Lambertian) Sample(rng core.Sampler, wo core.Vec3, sp *core.ShadingPoint) core.Vec3 {
	return core.SampleCosineHemisphere(rng, facingNormal(wo, sp))
}

// PDF returns the cosine-hemisphere density of Sample for direction wi.
func (l *Lambertian) PDF(wo, wi core.Vec3, sp *core.ShadingPoint) float64 {
	return core.CosineHemispherePDF(facingNormal(wo, sp), wi)
}

// CanDirectSample reports that diffuse surfaces are valid direct-lighting targets.
func (l *Lambertian) CanDirectSample() bool {
	return true
}
