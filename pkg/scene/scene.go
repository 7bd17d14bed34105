// Package scene builds in-memory core.Scene implementations: a BVH over
// triangle primitives, a cached luminaire list for direct light sampling,
// an optional environment light, and the scene's pinhole camera.
//
// Scene construction sits outside the estimator's core per spec.md §1
// ("scene loading... external collaborator"); this package exists only to
// give the estimator and render driver something concrete to consume, and
// to provide the test fixtures spec.md's scenarios (S1, S3, S5) exercise.
package scene

import (
	"github.com/ghalston/pathtrace-core/pkg/core"
	"github.com/ghalston/pathtrace-core/pkg/geometry"
	"github.com/ghalston/pathtrace-core/pkg/material"
)

// Scene implements core.Scene over a fixed set of triangle shapes.
type Scene struct {
	bvh         *core.BVH
	luminaires  []core.Luminaire
	environment core.EnvironmentLight
	camera      *core.Camera
}

// New builds a Scene from shapes and an optional environment light.
// Luminaires are derived automatically from every triangle whose material
// is an emissive Lambertian (material.NewAreaLight).
func New(shapes []core.Shape, camera *core.Camera, environment core.EnvironmentLight) *Scene {
	return &Scene{
		bvh:         core.NewBVH(shapes),
		luminaires:  collectLuminaires(shapes),
		environment: environment,
		camera:      camera,
	}
}

// collectLuminaires walks every triangle shape and caches one core.Luminaire
// per triangle whose material emits light, per spec.md §3: "populated once
// at scene build by enumerating primitives flagged as emissive."
func collectLuminaires(shapes []core.Shape) []core.Luminaire {
	var luminaires []core.Luminaire
	for _, shape := range shapes {
		var tris []*geometry.Triangle
		switch s := shape.(type) {
		case *geometry.Triangle:
			tris = []*geometry.Triangle{s}
		case *geometry.TriangleMesh:
			tris = s.Triangles()
		default:
			continue
		}
		for _, tri := range tris {
			lamb, ok := tri.Material.(*material.Lambertian)
			if !ok || lamb.Emissive.IsZero() {
				continue
			}
			luminaires = append(luminaires, core.NewLuminaire(tri.V0, tri.V1, tri.V2, tri.Material))
		}
	}
	return luminaires
}

func (s *Scene) Intersect(ray core.Ray, tMin, tMax float64) (*core.ShadingPoint, float64, bool) {
	sp, ok := s.bvh.Hit(ray, tMin, tMax)
	if !ok {
		return nil, 0, false
	}
	return sp, sp.T, true
}

func (s *Scene) Environment() core.EnvironmentLight { return s.environment }
func (s *Scene) Luminaires() []core.Luminaire       { return s.luminaires }
func (s *Scene) Camera() *core.Camera               { return s.camera }
