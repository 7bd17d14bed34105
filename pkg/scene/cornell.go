package scene

import (
	"github.com/ghalston/pathtrace-core/pkg/core"
	"github.com/ghalston/pathtrace-core/pkg/geometry"
	"github.com/ghalston/pathtrace-core/pkg/material"
)

// quad appends two triangles covering the parallelogram corner, corner+u,
// corner+u+v, corner+v, split along the corner-to-(u+v) diagonal.
func quad(shapes []core.Shape, corner, u, v core.Vec3, mat core.Material) []core.Shape {
	a := corner
	b := corner.Add(u)
	c := corner.Add(u).Add(v)
	d := corner.Add(v)
	return append(shapes,
		geometry.NewTriangle(a, b, c, mat),
		geometry.NewTriangle(a, c, d, mat),
	)
}

// NewCornellScene builds the classic Cornell box: five diffuse walls, a
// rectangular ceiling area light, and a resolutionX×resolutionY pinhole
// camera looking in from outside the box — spec.md's S3 test scenario.
func NewCornellScene(resolutionX, resolutionY int) *Scene {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	light := material.NewAreaLight(core.Vec3{}, core.NewVec3(15, 15, 15), false)

	const boxSize = 555.0
	var shapes []core.Shape

	// Floor
	shapes = quad(shapes,
		core.NewVec3(0, 0, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white)
	// Ceiling
	shapes = quad(shapes,
		core.NewVec3(0, boxSize, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white)
	// Back wall
	shapes = quad(shapes,
		core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), white)
	// Left wall (red)
	shapes = quad(shapes,
		core.NewVec3(0, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(0, boxSize, 0), red)
	// Right wall (green)
	shapes = quad(shapes,
		core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize), green)

	// Ceiling light, inset from the ceiling edges
	const lightSize = 130.0
	lightOffset := (boxSize - lightSize) / 2.0
	shapes = quad(shapes,
		core.NewVec3(lightOffset, boxSize-1, lightOffset),
		core.NewVec3(lightSize, 0, 0), core.NewVec3(0, 0, lightSize),
		light)

	camera := core.NewCamera(
		resolutionX, resolutionY,
		core.NewVec3(278, 278, -800), core.NewVec3(278, 278, 0), core.NewVec3(0, 1, 0),
		40.0, 800.0,
	)

	return New(shapes, camera, nil)
}

// NewEmptyScene builds spec.md's S1 fixture: no geometry, no luminaires, no
// environment. Every pixel's estimate must be exactly (0,0,0).
func NewEmptyScene(resolutionX, resolutionY int) *Scene {
	camera := core.NewCamera(
		resolutionX, resolutionY,
		core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0),
		40.0, 1.0,
	)
	return New(nil, camera, nil)
}
