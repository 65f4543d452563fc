package types

import "math"

// AABB is an axis-aligned bounding box defined by its min and max extents.
type AABB struct {
	Min Vec3
	Max Vec3
}

// EmptyAABB returns a box with inverted extents, ready to be grown with
// Compose. It is the identity element for Compose.
func EmptyAABB() AABB {
	return AABB{
		Min: Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

// Compose grows the box so that it also encloses other.
func (b AABB) Compose(other AABB) AABB {
	return AABB{
		Min: MinVec3(b.Min, other.Min),
		Max: MaxVec3(b.Max, other.Max),
	}
}

// Extents returns max - min on each axis.
func (b AABB) Extents() Vec3 {
	return b.Max.Sub(b.Min)
}

// Halfarea returns dx*dy + dy*dz + dz*dx of the box's extents, the surface
// area heuristic's cheap proxy for full surface area.
func (b AABB) Halfarea() float32 {
	d := b.Extents()
	return d[0]*d[1] + d[1]*d[2] + d[2]*d[0]
}

// Centroid returns the midpoint of the box.
func (b AABB) Centroid() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Inflate grows the box by eps on every side, in place semantics via the
// returned value.
func (b AABB) Inflate(eps float32) AABB {
	e := Vec3{eps, eps, eps}
	return AABB{Min: b.Min.Sub(e), Max: b.Max.Add(e)}
}

// Axis returns the value of v along the given axis (0=X, 1=Y, 2=Z).
func (v Vec3) Axis(axis int) float32 {
	return v[axis]
}
