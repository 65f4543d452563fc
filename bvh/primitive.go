package bvh

import "github.com/achilleasa/svbvh/types"

// Kind tags a Primitive as either a triangle or an opaque sub-intersector.
type Kind uint8

const (
	// TriangleKind marks a Primitive carrying three vertex positions.
	TriangleKind Kind = iota
	// SubIntersectorKind marks a Primitive wrapping an already-built tree.
	SubIntersectorKind
)

// SubIntersector is an opaque handle to an already-built sub-tree, treated
// atomically by the builder. Its Box must enclose everything reachable
// through Tree; the builder never looks inside Tree.
type SubIntersector struct {
	Tree *Intersector
	Box  types.AABB
}

// Primitive is the tagged variant the builder consumes: either a triangle
// (three vertices) or a sub-intersector handle.
type Primitive struct {
	Kind Kind

	// Vertices is populated for TriangleKind primitives, in the order
	// used by the Wald precomputation (A, B, C).
	Vertices [3]types.Vec3

	// Sub is populated for SubIntersectorKind primitives.
	Sub *SubIntersector

	// MaterialID is carried through to the Wald triangle record. Material
	// assignment itself is out of scope for this builder; callers that
	// don't care may leave this at zero.
	MaterialID uint32
}

// NewTriangle builds a triangle primitive from three vertex positions.
func NewTriangle(a, b, c types.Vec3, materialID uint32) Primitive {
	return Primitive{
		Kind:       TriangleKind,
		Vertices:   [3]types.Vec3{a, b, c},
		MaterialID: materialID,
	}
}

// NewSubIntersector wraps an already-built tree and its bounding box as an
// opaque primitive for a parent build.
func NewSubIntersector(tree *Intersector, box types.AABB) Primitive {
	return Primitive{
		Kind: SubIntersectorKind,
		Sub:  &SubIntersector{Tree: tree, Box: box},
	}
}

// isTriangle reports whether p is a triangle primitive.
func (p Primitive) isTriangle() bool {
	return p.Kind == TriangleKind
}

// aabb returns the deterministic bounding box for p.
func (p Primitive) aabb() types.AABB {
	if p.Kind == SubIntersectorKind {
		return p.Sub.Box
	}
	box := types.EmptyAABB()
	box = box.Compose(types.AABB{Min: p.Vertices[0], Max: p.Vertices[0]})
	box = box.Compose(types.AABB{Min: p.Vertices[1], Max: p.Vertices[1]})
	box = box.Compose(types.AABB{Min: p.Vertices[2], Max: p.Vertices[2]})
	return box
}

// centroid returns the primitive's centroid: the arithmetic mean of the
// three vertices for a triangle (not the bbox center — this choice shapes
// the SAH sweep order), or the midpoint of the AABB for a sub-intersector.
func (p Primitive) centroid() types.Vec3 {
	if p.Kind == SubIntersectorKind {
		return p.Sub.Box.Centroid()
	}
	return p.Vertices[0].Add(p.Vertices[1]).Add(p.Vertices[2]).Mul(1.0 / 3.0)
}
