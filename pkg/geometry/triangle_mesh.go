package geometry

import (
	"math"

	"github.com/ghalston/pathtrace-core/pkg/core"
)

// TriangleMesh is a collection of triangles with an internal BVH for fast
// ray intersection, used for Cornell-box and other test-fixture geometry.
type TriangleMesh struct {
	triangles []*Triangle
	bvh       *core.BVH
	bbox      core.AABB
	material  core.Material
}

// TriangleMeshOptions holds optional mesh-construction parameters.
type TriangleMeshOptions struct {
	Normals   []core.Vec3     // Optional per-triangle flat-normal override
	Materials []core.Material // Optional per-triangle materials
	Rotation  *core.Vec3      // Optional rotation applied to vertices before faces are built
	Center    *core.Vec3      // Pivot for Rotation
	VertexUVs []core.Vec2     // Optional per-vertex texture coordinates
}

// NewTriangleMesh builds a mesh from a vertex array and a flattened face
// index list (each run of 3 indices is one triangle).
func NewTriangleMesh(vertices []core.Vec3, faces []int, mat core.Material, options *TriangleMeshOptions) *TriangleMesh {
	if len(faces)%3 != 0 {
		panic("face indices must be a multiple of 3")
	}
	numTriangles := len(faces) / 3

	if options != nil {
		if options.Normals != nil && len(options.Normals) != numTriangles {
			panic("number of normals must match number of triangles")
		}
		if options.Materials != nil && len(options.Materials) != numTriangles {
			panic("number of materials must match number of triangles")
		}
		if options.VertexUVs != nil && len(options.VertexUVs) != len(vertices) {
			panic("number of vertex UVs must match number of vertices")
		}
	}

	workingVertices := vertices
	if options != nil && options.Rotation != nil {
		workingVertices = make([]core.Vec3, len(vertices))
		for i, vertex := range vertices {
			if options.Center != nil {
				vertex = vertex.Subtract(*options.Center)
			}
			vertex = rotateVertex(vertex, *options.Rotation)
			if options.Center != nil {
				vertex = vertex.Add(*options.Center)
			}
			workingVertices[i] = vertex
		}
	}

	triangles := make([]*Triangle, numTriangles)
	shapes := make([]core.Shape, numTriangles)

	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]
		if i0 >= len(workingVertices) || i1 >= len(workingVertices) || i2 >= len(workingVertices) ||
			i0 < 0 || i1 < 0 || i2 < 0 {
			panic("face index out of bounds")
		}

		triMat := mat
		if options != nil && options.Materials != nil {
			triMat = options.Materials[i]
		}

		v0, v1, v2 := workingVertices[i0], workingVertices[i1], workingVertices[i2]

		var tri *Triangle
		hasUVs := options != nil && options.VertexUVs != nil
		if hasUVs {
			tri = NewTriangleWithUVs(v0, v1, v2, options.VertexUVs[i0], options.VertexUVs[i1], options.VertexUVs[i2], triMat)
		} else {
			tri = NewTriangle(v0, v1, v2, triMat)
		}
		if options != nil && options.Normals != nil {
			tri.normal = options.Normals[i].Normalize()
		}
		tri.Index = i

		triangles[i] = tri
		shapes[i] = tri
	}

	bvh := core.NewBVH(shapes)

	var bbox core.AABB
	if len(triangles) > 0 {
		bbox = triangles[0].BoundingBox()
		for i := 1; i < len(triangles); i++ {
			bbox = bbox.Union(triangles[i].BoundingBox())
		}
	}

	defaultMaterial := mat
	if options != nil && len(options.Materials) > 0 {
		defaultMaterial = options.Materials[0]
	}

	return &TriangleMesh{triangles: triangles, bvh: bvh, bbox: bbox, material: defaultMaterial}
}

// Hit delegates to the mesh's internal BVH.
func (tm *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64) (*core.ShadingPoint, bool) {
	return tm.bvh.Hit(ray, tMin, tMax)
}

// BoundingBox returns the bounding box of the whole mesh.
func (tm *TriangleMesh) BoundingBox() core.AABB {
	return tm.bbox
}

// TriangleCount returns the number of triangles in the mesh.
func (tm *TriangleMesh) TriangleCount() int {
	return len(tm.triangles)
}

// Triangles returns the individual triangles, e.g. for building a luminaire list.
func (tm *TriangleMesh) Triangles() []*Triangle {
	return tm.triangles
}

// rotateVertex applies rotation around X, Y, Z axes (in that order).
func rotateVertex(vertex, rotation core.Vec3) core.Vec3 {
	if rotation.X != 0 {
		cos := math.Cos(rotation.X)
		sin := math.Sin(rotation.X)
		y := vertex.Y*cos - vertex.Z*sin
		z := vertex.Y*sin + vertex.Z*cos
		vertex = core.NewVec3(vertex.X, y, z)
	}
	if rotation.Y != 0 {
		cos := math.Cos(rotation.Y)
		sin := math.Sin(rotation.Y)
		x := vertex.X*cos + vertex.Z*sin
		z := -vertex.X*sin + vertex.Z*cos
		vertex = core.NewVec3(x, vertex.Y, z)
	}
	if rotation.Z != 0 {
		cos := math.Cos(rotation.Z)
		sin := math.Sin(rotation.Z)
		x := vertex.X*cos - vertex.Y*sin
		y := vertex.X*sin + vertex.Y*cos
		vertex = core.NewVec3(x, y, vertex.Z)
	}
	return vertex
}
