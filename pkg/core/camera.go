package core

import "math"

// Camera implements the pinhole model of spec.md §6: an eye point plus a
// right-handed eye/forward/right/down/up/left basis, an object plane at
// focusDistance along forward sized objectPlaneWidth x objectPlaneHeight in
// world units, and an integer pixel grid resolutionX x resolutionY. There is
// no lens aperture or depth of field; the pinhole is exact.
type Camera struct {
	ResolutionX, ResolutionY int

	Eye, Forward, Right, Down, Up, Left Vec3

	ObjectPlaneWidth, ObjectPlaneHeight float64
	FocusDistance                       float64

	objectOrigin Vec3
	stepRight    Vec3
	stepDown     Vec3
}

// NewCamera builds a pinhole camera looking from lookFrom toward lookAt with
// vUp establishing the up direction, vfov in degrees measured over the full
// image height, and the given resolution. focusDistance anchors the object
// plane's world-space scale.
func NewCamera(resolutionX, resolutionY int, lookFrom, lookAt, vUp Vec3, vfov, focusDistance float64) *Camera {
	aspect := float64(resolutionX) / float64(resolutionY)
	theta := vfov * math.Pi / 180
	halfHeight := math.Tan(theta / 2)
	halfWidth := aspect * halfHeight

	forward := lookAt.Subtract(lookFrom).Normalize()
	right := forward.Cross(vUp).Normalize()
	up := right.Cross(forward).Normalize()
	down := up.Multiply(-1)
	left := right.Multiply(-1)

	objectPlaneWidth := 2 * halfWidth * focusDistance
	objectPlaneHeight := 2 * halfHeight * focusDistance

	c := &Camera{
		ResolutionX: resolutionX, ResolutionY: resolutionY,
		Eye: lookFrom, Forward: forward, Right: right, Down: down, Up: up, Left: left,
		ObjectPlaneWidth: objectPlaneWidth, ObjectPlaneHeight: objectPlaneHeight,
		FocusDistance: focusDistance,
	}

	center := lookFrom.Add(forward.Multiply(focusDistance))
	c.objectOrigin = center.
		Subtract(right.Multiply(objectPlaneWidth / 2)).
		Subtract(down.Multiply(objectPlaneHeight / 2))
	c.stepRight = right.Multiply(objectPlaneWidth / float64(resolutionX))
	c.stepDown = down.Multiply(objectPlaneHeight / float64(resolutionY))

	return c
}

// GetRay generates the camera ray for pixel (x,y) with sub-pixel offset
// (u,v) in [0,1), following spec.md §4.H's pinhole rule:
// o = eye; d = normalize(objectOrigin + (x+u)*stepRight + (y+v)*stepDown - eye).
func (c *Camera) GetRay(x, y int, u, v float64) Ray {
	point := c.objectOrigin.
		Add(c.stepRight.Multiply(float64(x) + u)).
		Add(c.stepDown.Multiply(float64(y) + v))
	direction := point.Subtract(c.Eye).Normalize()
	return NewRay(c.Eye, direction)
}
