// Package geometry holds the concrete core.Shape implementations: single
// triangles and BVH-accelerated triangle meshes. Shape, AABB and
// ShadingPoint live in pkg/core; this package has no types of its own to
// export beyond the concrete shapes.
package geometry
