package scene

import (
	"testing"

	"github.com/ghalston/pathtrace-core/pkg/core"
	"github.com/ghalston/pathtrace-core/pkg/geometry"
	"github.com/ghalston/pathtrace-core/pkg/material"
	"github.com/stretchr/testify/assert"
)

func TestNewCornellScene_HasFiveWallsAndOneLight(t *testing.T) {
	s := NewCornellScene(64, 64)

	assert.Len(t, s.Luminaires(), 2) // the ceiling light quad, split into 2 triangles
	assert.NotNil(t, s.Camera())
	assert.Equal(t, 64, s.Camera().ResolutionX)
}

func TestNewCornellScene_CameraLooksIntoBox(t *testing.T) {
	s := NewCornellScene(64, 64)
	ray := s.Camera().GetRay(32, 32, 0.5, 0.5)

	_, _, ok := s.Intersect(ray, 1e-4, 1e30)
	assert.True(t, ok, "center ray from outside the box should hit a wall")
}

func TestNewCornellScene_LuminairesFaceIntoBox(t *testing.T) {
	s := NewCornellScene(64, 64)
	for _, l := range s.Luminaires() {
		assert.Less(t, l.Normal.Y, 0.0, "ceiling light should face downward into the box")
	}
}

func TestNewEmptyScene_HasNoGeometryOrLuminaires(t *testing.T) {
	s := NewEmptyScene(16, 16)

	assert.Empty(t, s.Luminaires())
	assert.Nil(t, s.Environment())

	ray := s.Camera().GetRay(8, 8, 0.5, 0.5)
	_, _, ok := s.Intersect(ray, 1e-4, 1e30)
	assert.False(t, ok)
}

func TestScene_IntersectReturnsNearestHit(t *testing.T) {
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	tri := geometry.NewTriangle(
		core.NewVec3(-1, -1, 5), core.NewVec3(1, -1, 5), core.NewVec3(0, 1, 5), mat)
	camera := core.NewCamera(4, 4, core.Vec3{}, core.NewVec3(0, 0, 1), core.NewVec3(0, 1, 0), 60, 5)
	s := New([]core.Shape{tri}, camera, nil)

	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1))
	sp, dist, ok := s.Intersect(ray, 1e-4, 1e30)
	assert.True(t, ok)
	assert.InDelta(t, 5.0, dist, 1e-6)
	assert.NotNil(t, sp)
}
