package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCamera_ForwardPointsAtLookAt(t *testing.T) {
	c := NewCamera(400, 400, NewVec3(0, 0, 0), NewVec3(0, 0, -1), NewVec3(0, 1, 0), 45, 1.0)
	assert.InDelta(t, 0.0, c.Forward.X, 1e-9)
	assert.InDelta(t, 0.0, c.Forward.Y, 1e-9)
	assert.InDelta(t, -1.0, c.Forward.Z, 1e-9)
}

func TestCamera_BasisIsOrthonormal(t *testing.T) {
	c := NewCamera(400, 300, NewVec3(278, 278, -800), NewVec3(278, 278, 0), NewVec3(0, 1, 0), 40, 800)

	assert.InDelta(t, 1.0, c.Forward.Length(), 1e-9)
	assert.InDelta(t, 1.0, c.Right.Length(), 1e-9)
	assert.InDelta(t, 1.0, c.Up.Length(), 1e-9)
	assert.InDelta(t, 0.0, c.Forward.Dot(c.Right), 1e-9)
	assert.InDelta(t, 0.0, c.Forward.Dot(c.Up), 1e-9)
	assert.InDelta(t, 0.0, c.Right.Dot(c.Up), 1e-9)

	assert.InDelta(t, -1.0, c.Down.Dot(c.Up), 1e-9)
	assert.InDelta(t, -1.0, c.Left.Dot(c.Right), 1e-9)
}

func TestCamera_CenterPixelRayPointsForward(t *testing.T) {
	c := NewCamera(401, 401, NewVec3(0, 0, 0), NewVec3(0, 0, -1), NewVec3(0, 1, 0), 45, 1.0)

	ray := c.GetRay(200, 200, 0.5, 0.5)
	assert.InDelta(t, c.Forward.X, ray.Direction.X, 1e-6)
	assert.InDelta(t, c.Forward.Y, ray.Direction.Y, 1e-6)
	assert.InDelta(t, c.Forward.Z, ray.Direction.Z, 1e-6)
}

func TestCamera_RayDirectionsAreUnitLength(t *testing.T) {
	c := NewCamera(64, 48, NewVec3(1, 2, 3), NewVec3(0, 0, 0), NewVec3(0, 1, 0), 60, 5.0)

	for _, px := range [][2]int{{0, 0}, {63, 0}, {0, 47}, {63, 47}, {32, 24}} {
		ray := c.GetRay(px[0], px[1], 0.5, 0.5)
		assert.InDelta(t, 1.0, ray.Direction.Length(), 1e-9)
	}
}

func TestCamera_OriginIsAlwaysEye(t *testing.T) {
	eye := NewVec3(10, 20, 30)
	c := NewCamera(100, 100, eye, NewVec3(10, 20, 0), NewVec3(0, 1, 0), 50, 30)

	ray := c.GetRay(17, 83, 0.1, 0.9)
	assert.Equal(t, eye, ray.Origin)
}

func TestCamera_SubpixelJitterShiftsRayAcrossObjectPlane(t *testing.T) {
	c := NewCamera(64, 64, NewVec3(0, 0, 0), NewVec3(0, 0, -1), NewVec3(0, 1, 0), 45, 1.0)

	a := c.GetRay(10, 10, 0.0, 0.0)
	b := c.GetRay(10, 10, 0.999, 0.999)
	assert.NotEqual(t, a.Direction, b.Direction)
}
