package geometry

import (
	"github.com/ghalston/pathtrace-core/pkg/core"
)

// Triangle is a single triangle primitive, implementing core.Shape.
type Triangle struct {
	V0, V1, V2    core.Vec3 // The three vertices
	UV0, UV1, UV2 core.Vec2 // Per-vertex texture coordinates (optional)
	hasUVs        bool

	N0, N1, N2  core.Vec3 // Per-vertex shading normals (optional)
	hasVertexNs bool

	Material core.Material
	Index    int // index into the owning mesh's triangle list, for luminaire lookups

	normal core.Vec3 // cached geometric (flat) normal
	bbox   core.AABB // cached bounding box
}

// NewTriangle creates a flat-shaded triangle with no custom UVs.
func NewTriangle(v0, v1, v2 core.Vec3, mat core.Material) *Triangle {
	t := &Triangle{V0: v0, V1: v1, V2: v2, Material: mat}
	t.computeNormal()
	t.computeBoundingBox()
	return t
}

// NewTriangleWithUVs creates a triangle with per-vertex UV coordinates.
func NewTriangleWithUVs(v0, v1, v2 core.Vec3, uv0, uv1, uv2 core.Vec2, mat core.Material) *Triangle {
	t := &Triangle{V0: v0, V1: v1, V2: v2, UV0: uv0, UV1: uv1, UV2: uv2, hasUVs: true, Material: mat}
	t.computeNormal()
	t.computeBoundingBox()
	return t
}

// NewTriangleWithVertexNormals creates a triangle with per-vertex shading
// normals, used for smooth-shaded meshes; the BxDF contract consumes the
// interpolated value via ShadingPoint.Ns while ShadingPoint.Ng stays the
// flat geometric normal.
func NewTriangleWithVertexNormals(v0, v1, v2, n0, n1, n2 core.Vec3, mat core.Material) *Triangle {
	t := &Triangle{
		V0: v0, V1: v1, V2: v2,
		N0: n0.Normalize(), N1: n1.Normalize(), N2: n2.Normalize(),
		hasVertexNs: true,
		Material:    mat,
	}
	t.computeNormal()
	t.computeBoundingBox()
	return t
}

func (t *Triangle) computeNormal() {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)
	t.normal = edge1.Cross(edge2).Normalize()
}

func (t *Triangle) computeBoundingBox() {
	t.bbox = core.NewAABBFromPoints(t.V0, t.V1, t.V2)
}

// Area returns the triangle's surface area (half the cross-product length).
func (t *Triangle) Area() float64 {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)
	return 0.5 * edge1.Cross(edge2).Length()
}

// Hit tests ray-triangle intersection using the Moller-Trumbore algorithm.
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*core.ShadingPoint, bool) {
	const epsilon = 1e-8

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -epsilon && a < epsilon {
		return nil, false // ray parallel to triangle plane
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	tParam := f * edge2.Dot(q)
	if tParam < tMin || tParam > tMax {
		return nil, false
	}

	ns := t.normal
	if t.hasVertexNs {
		w := 1.0 - u - v
		ns = t.N0.Multiply(w).Add(t.N1.Multiply(u)).Add(t.N2.Multiply(v)).Normalize()
	}

	sp := &core.ShadingPoint{
		Ng:       t.normal,
		Ns:       ns,
		U:        u,
		V:        v,
		Point:    ray.At(tParam),
		T:        tParam,
		BxDF:     t.Material,
		Triangle: t.Index,
	}
	return sp, true
}

// BoundingBox returns the axis-aligned bounding box for this triangle.
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// GetNormal returns the triangle's flat geometric normal.
func (t *Triangle) GetNormal() core.Vec3 {
	return t.normal
}

// UV returns the interpolated texture coordinate for barycentrics (u,v).
func (t *Triangle) UV(u, v float64) core.Vec2 {
	if !t.hasUVs {
		return core.NewVec2(u, v)
	}
	w := 1.0 - u - v
	return t.UV0.Multiply(w).Add(t.UV1.Multiply(u)).Add(t.UV2.Multiply(v))
}
