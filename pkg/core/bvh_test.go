package core

import (
	"math"
	"testing"
)

// mockShape for testing, with a caller-supplied intersection function.
type mockShape struct {
	boundingBox AABB
	hitFn       func(ray Ray, tMin, tMax float64) (*ShadingPoint, bool)
}

func (m mockShape) Hit(ray Ray, tMin, tMax float64) (*ShadingPoint, bool) {
	return m.hitFn(ray, tMin, tMax)
}

func (m mockShape) BoundingBox() AABB {
	return m.boundingBox
}

func noHit(ray Ray, tMin, tMax float64) (*ShadingPoint, bool) {
	return nil, false
}

func TestBVH_LeafThresholdBoundary(t *testing.T) {
	// Create exactly leafThreshold shapes - should create single leaf
	shapes := make([]Shape, 8)
	for i := 0; i < 8; i++ {
		shapes[i] = mockShape{
			boundingBox: NewAABB(NewVec3(float64(i), 0, 0), NewVec3(float64(i)+1, 1, 1)),
			hitFn:       noHit,
		}
	}

	bvh := NewBVH(shapes)
	stats := bvh.getStats()

	if stats.totalNodes != 1 {
		t.Errorf("Expected 1 node for %d shapes, got %d", len(shapes), stats.totalNodes)
	}
	if stats.leafNodes != 1 {
		t.Errorf("Expected 1 leaf node for %d shapes, got %d", len(shapes), stats.leafNodes)
	}

	// Test with leafThreshold + 1 shapes - should split
	shapes = append(shapes, mockShape{
		boundingBox: NewAABB(NewVec3(8, 0, 0), NewVec3(9, 1, 1)),
		hitFn:       noHit,
	})

	bvh = NewBVH(shapes)
	stats = bvh.getStats()

	if stats.totalNodes == 1 {
		t.Errorf("Expected split for %d shapes, but got single node", len(shapes))
	}
	if stats.leafNodes < 2 {
		t.Errorf("Expected at least 2 leaf nodes after split, got %d", stats.leafNodes)
	}
}

func TestBVH_EmptyAndSingleShape(t *testing.T) {
	bvh := NewBVH([]Shape{})
	if bvh.Root != nil {
		t.Error("Expected nil root for empty BVH")
	}

	ray := NewRay(NewVec3(0, 0, 0), NewVec3(1, 0, 0))
	hit, isHit := bvh.Hit(ray, 0.001, 1000.0)
	if isHit {
		t.Error("Expected no hit for empty BVH")
	}
	if hit != nil {
		t.Error("Expected nil hit record for empty BVH")
	}

	shape := mockShape{
		boundingBox: NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1)),
		hitFn: func(ray Ray, tMin, tMax float64) (*ShadingPoint, bool) {
			return &ShadingPoint{T: 1.0}, true
		},
	}

	bvh = NewBVH([]Shape{shape})
	stats := bvh.getStats()

	if stats.totalNodes != 1 {
		t.Errorf("Expected 1 node for single shape, got %d", stats.totalNodes)
	}
	if stats.leafNodes != 1 {
		t.Errorf("Expected 1 leaf node for single shape, got %d", stats.leafNodes)
	}
}

func TestBVH_MultipleHitsInLeaf(t *testing.T) {
	makeHitFn := func(tValue float64) func(ray Ray, tMin, tMax float64) (*ShadingPoint, bool) {
		return func(ray Ray, tMin, tMax float64) (*ShadingPoint, bool) {
			if ray.Direction.X > 0 && tValue >= tMin && tValue <= tMax {
				return &ShadingPoint{T: tValue}, true
			}
			return nil, false
		}
	}

	shapes := []Shape{
		mockShape{
			boundingBox: NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1)),
			hitFn:       makeHitFn(2.0),
		},
		mockShape{
			boundingBox: NewAABB(NewVec3(0.5, 0, 0), NewVec3(1.5, 1, 1)),
			hitFn:       makeHitFn(1.0), // closer
		},
		mockShape{
			boundingBox: NewAABB(NewVec3(1.0, 0, 0), NewVec3(2.0, 1, 1)),
			hitFn:       makeHitFn(3.0), // farther
		},
	}

	bvh := NewBVH(shapes)
	ray := NewRay(NewVec3(-1, 0.5, 0.5), NewVec3(1, 0, 0))

	hit, isHit := bvh.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.T-1.0) > 1e-9 {
		t.Errorf("Expected closest hit at t=1.0, got t=%f", hit.T)
	}
}

func TestBVH_RayHitsBoundingBoxButMissesShapes(t *testing.T) {
	shape := mockShape{
		boundingBox: NewAABB(NewVec3(0, 0, 0), NewVec3(2, 2, 2)),
		hitFn:       noHit,
	}

	bvh := NewBVH([]Shape{shape})
	ray := NewRay(NewVec3(-1, 1, 1), NewVec3(1, 0, 0))

	hit, isHit := bvh.Hit(ray, 0.001, 1000.0)
	if isHit {
		t.Error("Expected miss when ray hits bounding box but misses shape")
	}
	if hit != nil {
		t.Error("Expected nil hit record when no shapes are hit")
	}
}

func TestBVH_StatsCollection(t *testing.T) {
	shapes := make([]Shape, 20)
	for i := 0; i < 20; i++ {
		shapes[i] = mockShape{
			boundingBox: NewAABB(NewVec3(float64(i), 0, 0), NewVec3(float64(i)+1, 1, 1)),
			hitFn:       noHit,
		}
	}

	bvh := NewBVH(shapes)
	stats := bvh.getStats()

	if stats.totalShapes != 20 {
		t.Errorf("Expected 20 total shapes, got %d", stats.totalShapes)
	}
	if stats.leafNodes == 0 {
		t.Error("Expected at least one leaf node")
	}
	if stats.totalNodes < stats.leafNodes {
		t.Error("Total nodes should be >= leaf nodes")
	}
	if stats.maxDepth == 0 {
		t.Error("Expected max depth > 0 for 20 shapes")
	}
}

func TestBVH_IdenticalBoundingBoxes(t *testing.T) {
	sameBoundingBox := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	shapes := make([]Shape, 5)

	makeHitFn := func(tValue float64) func(ray Ray, tMin, tMax float64) (*ShadingPoint, bool) {
		return func(ray Ray, tMin, tMax float64) (*ShadingPoint, bool) {
			if ray.Direction.X > 0 && tValue >= tMin && tValue <= tMax {
				return &ShadingPoint{T: tValue}, true
			}
			return nil, false
		}
	}

	for i := 0; i < 5; i++ {
		shapes[i] = mockShape{
			boundingBox: sameBoundingBox,
			hitFn:       makeHitFn(float64(i + 1)),
		}
	}

	bvh := NewBVH(shapes)
	ray := NewRay(NewVec3(-1, 0.5, 0.5), NewVec3(1, 0, 0))

	hit, isHit := bvh.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.T-1.0) > 1e-9 {
		t.Errorf("Expected closest hit at t=1.0, got t=%f", hit.T)
	}
}

func TestBVH_FiniteWorldBoundsSkipsOversizedShapes(t *testing.T) {
	shapes := []Shape{
		mockShape{boundingBox: NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1)), hitFn: noHit},
		mockShape{boundingBox: NewAABB(NewVec3(-1e6, -1e6, -1e6), NewVec3(1e6, 1e6, 1e6)), hitFn: noHit},
	}

	bvh := NewBVH(shapes)
	if bvh.FiniteWorldRadius <= 0 || bvh.FiniteWorldRadius > 10 {
		t.Errorf("Expected finite world radius derived only from the small shape, got %f", bvh.FiniteWorldRadius)
	}
}
