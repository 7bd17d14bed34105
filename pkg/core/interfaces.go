package core

// Logger is the logging sink used across the renderer. Production code
// wires this to a zap-backed implementation (see pkg/renderer); tests use
// a no-op or buffering stub.
type Logger interface {
	Printf(format string, args ...interface{})
}

// ShadingPoint is populated by Scene.Intersect at a ray-triangle hit.
type ShadingPoint struct {
	Ng       Vec3     // geometric unit normal, outward-facing; may oppose the incoming ray
	Ns       Vec3     // shading normal; equals Ng for flat-shaded triangles
	U, V     float64  // barycentric coordinates; the first vertex carries weight 1-U-V
	Point    Vec3     // world-space hit point
	T        float64  // ray parameter of the hit, for BVH closest-hit bookkeeping
	BxDF     Material // non-owning reference into the scene's material table
	Triangle int      // index of the hit triangle, for luminaire plane lookups
}

// Material is the BxDF capability set every material variant implements.
// The zero value of ScatterResult-less contract matches spec.md §3/§4.E.
type Material interface {
	// Emission returns the radiance emitted toward wo at sp. Zero for
	// non-emitters, and for back-side hits unless BackEmission is set.
	Emission(wo Vec3, sp *ShadingPoint) Vec3

	// BxDF returns the bidirectional reflectance value for the pair
	// (wo, wi). Zero when wo and wi are on opposite sides of sp.Ng.
	BxDF(wo, wi Vec3, sp *ShadingPoint) Vec3

	// Sample draws a proposal direction wi from the material's preferred density.
	Sample(rng Sampler, wo Vec3, sp *ShadingPoint) Vec3

	// PDF returns the density Sample would produce for wi. Zero when wo,
	// wi straddle sp.Ng.
	PDF(wo, wi Vec3, sp *ShadingPoint) float64

	// CanDirectSample declares whether this material is a valid direct-sampling
	// target (true for non-specular materials).
	CanDirectSample() bool
}

// Shape is any primitive the BVH can intersect. The core only ever
// implements triangles, but the interface keeps the BVH generic.
type Shape interface {
	Hit(ray Ray, tMin, tMax float64) (*ShadingPoint, bool)
	BoundingBox() AABB
}

// EnvironmentLight is the optional miss-event collaborator: when a path
// escapes the scene, the estimator asks the attached environment for
// emitted radiance toward the miss direction. Sample/PDF additionally let
// it serve as an importance-sampled light source in its own right.
type EnvironmentLight interface {
	// Emit returns the radiance arriving from direction d (miss-event contribution).
	Emit(d Vec3) Vec3

	// Sample draws a direction from the environment's importance distribution.
	Sample(rng Sampler) Vec3

	// PDF returns the direction-space density Sample would produce for d.
	// Zero when d is non-finite.
	PDF(d Vec3) float64
}

// Scene is the external collaborator the estimator consumes (spec.md §6).
// Implementations must be read-only and safe for concurrent use by many
// render workers.
type Scene interface {
	// Intersect returns the nearest hit along (tMin, tMax), or ok=false on a miss.
	Intersect(ray Ray, tMin, tMax float64) (sp *ShadingPoint, t float64, ok bool)

	// Environment returns the attached environment light, or nil if none.
	Environment() EnvironmentLight

	// Luminaires returns the scene's cached emissive triangles, for the
	// direct light sampler.
	Luminaires() []Luminaire

	// Camera returns the scene's pinhole camera.
	Camera() *Camera
}
