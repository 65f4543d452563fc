package bvh

import "github.com/achilleasa/svbvh/types"

// Intersector is the output of Build: a depth-first node array plus the
// Wald-precomputed triangles its leaves address. It is immutable once
// returned and safe for concurrent read-only use (e.g. by several ray
// traversal goroutines, none of which this package implements).
type Intersector struct {
	root []Node
	acc  []WaldTriangle
}

// Box returns the bounding box of the whole tree, or the zero AABB for an
// Intersector with no nodes.
func (it *Intersector) Box() types.AABB {
	if len(it.root) == 0 {
		return types.AABB{}
	}
	return it.root[0].Box
}

// NodeCount returns the number of entries in the depth-first node array.
func (it *Intersector) NodeCount() int {
	return len(it.root)
}

// Triangles returns the flattened, Wald-precomputed triangle storage that
// triangle leaves index into.
func (it *Intersector) Triangles() []WaldTriangle {
	return it.acc
}

// Node returns the node at the given depth-first index.
func (it *Intersector) Node(id int) Node {
	return it.root[id]
}

// Stats summarizes a built tree, the data the CLI renders as a table after
// a build.
type Stats struct {
	NodeCount            int
	TriangleLeafCount    int
	IntersectorLeafCount int
	TriangleCount        int
	MaxDepth             int
}

// TrianglesPerLeaf returns the mean number of triangles held by triangle
// leaves, or 0 when there are none.
func (s Stats) TrianglesPerLeaf() float64 {
	if s.TriangleLeafCount == 0 {
		return 0
	}
	return float64(s.TriangleCount) / float64(s.TriangleLeafCount)
}

// Stats walks the tree once and summarizes it.
func (it *Intersector) Stats() Stats {
	s := Stats{
		NodeCount:     len(it.root),
		TriangleCount: len(it.acc),
	}
	if len(it.root) == 0 {
		return s
	}
	it.walk(0, 0, &s)
	return s
}

func (it *Intersector) walk(id, depth int, s *Stats) {
	if depth > s.MaxDepth {
		s.MaxDepth = depth
	}
	n := it.root[id]
	if n.IsLeaf() {
		if _, _, ok := n.Triangles(); ok {
			s.TriangleLeafCount++
		} else {
			s.IntersectorLeafCount++
		}
		return
	}
	it.walk(id+1, depth+1, s)
	it.walk(n.FarChild(id), depth+1, s)
}
