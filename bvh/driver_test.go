package bvh

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/achilleasa/svbvh/types"
)

func unitTriangle(offset types.Vec3) Primitive {
	return NewTriangle(
		offset,
		offset.Add(types.XYZ(1, 0, 0)),
		offset.Add(types.XYZ(0, 1, 0)),
		0,
	)
}

func TestBuildEmptyInput(t *testing.T) {
	tree, err := Build(nil, DefaultConfig())
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if tree != nil {
		t.Fatalf("expected a nil Intersector for empty input")
	}
}

func TestBuildNegativeMaxPrimsPerLeaf(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPrimsPerLeaf = -1
	if _, err := Build([]Primitive{unitTriangle(types.Vec3{})}, cfg); err == nil {
		t.Fatalf("expected an error for a negative MaxPrimsPerLeaf")
	}
}

func TestBuildSingleTriangle(t *testing.T) {
	prims := []Primitive{unitTriangle(types.Vec3{})}
	tree, err := Build(prims, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.NodeCount() != 1 {
		t.Fatalf("expected a single node, got %d", tree.NodeCount())
	}
	root := tree.Node(0)
	first, count, ok := root.Triangles()
	if !ok || count != 1 || first != 0 {
		t.Fatalf("expected root to be a 1-triangle leaf, got first=%d count=%d ok=%v", first, count, ok)
	}
}

func TestBuildTwoSeparatedTriangles(t *testing.T) {
	prims := []Primitive{
		unitTriangle(types.XYZ(0, 0, 0)),
		unitTriangle(types.XYZ(10, 0, 0)),
	}
	tree, err := Build(prims, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.NodeCount() != 3 {
		t.Fatalf("expected 3 nodes (1 inner + 2 leaves), got %d", tree.NodeCount())
	}
	root := tree.Node(0)
	if root.IsLeaf() {
		t.Fatalf("expected root to be an inner node")
	}
	if root.Axis() != 0 {
		t.Fatalf("expected root split axis 0, got %d", root.Axis())
	}

	near := tree.Node(1)
	first, count, ok := near.Triangles()
	if !ok || count != 1 {
		t.Fatalf("expected near child to be a 1-triangle leaf")
	}
	got := tree.Triangles()[first].VertK
	if got[0] != 0 {
		t.Fatalf("expected near (left) leaf to hold the x=0 triangle, vertk.u=%v", got[0])
	}
}

func TestBuildCoplanarGrid(t *testing.T) {
	var prims []Primitive
	for row := 0; row < 2; row++ {
		for col := 0; col < 4; col++ {
			prims = append(prims, unitTriangle(types.XYZ(float32(col), float32(row), 0)))
		}
	}
	tree, err := Build(prims, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stats := tree.Stats()
	if stats.TriangleCount != 8 {
		t.Fatalf("expected 8 triangles accounted for, got %d", stats.TriangleCount)
	}
	if stats.MaxDepth > 4 {
		t.Fatalf("expected tree depth <= 4, got %d", stats.MaxDepth)
	}
	if tree.Node(0).Axis() != 0 {
		t.Fatalf("expected root split along the longer (x) side, axis 0")
	}
}

func TestBuildThousandTrianglesSingletonLeaves(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	prims := make([]Primitive, 1000)
	for i := range prims {
		a := types.XYZ(rng.Float32(), rng.Float32(), rng.Float32())
		prims[i] = unitTriangle(a)
	}
	cfg := DefaultConfig()
	cfg.MaxPrimsPerLeaf = 1
	tree, err := Build(prims, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stats := tree.Stats()
	if stats.TriangleLeafCount != 1000 {
		t.Fatalf("expected 1000 leaves, got %d", stats.TriangleLeafCount)
	}
	if tree.NodeCount() != 1999 {
		t.Fatalf("expected 1999 total nodes, got %d", tree.NodeCount())
	}
	innerCount := tree.NodeCount() - stats.TriangleLeafCount - stats.IntersectorLeafCount
	if innerCount != 999 {
		t.Fatalf("expected 999 inner nodes, got %d", innerCount)
	}
}

func TestBuildWithSubIntersector(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	inner := make([]Primitive, 100)
	for i := range inner {
		inner[i] = unitTriangle(types.XYZ(rng.Float32(), rng.Float32(), rng.Float32()))
	}
	innerTree, err := Build(inner, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error building inner tree: %v", err)
	}

	subBox := innerTree.Box()
	prims := append([]Primitive{}, inner...)
	prims = append(prims, NewSubIntersector(innerTree, types.AABB{
		Min: types.XYZ(100, 100, 100),
		Max: types.XYZ(101, 101, 101),
	}))
	_ = subBox

	tree, err := Build(prims, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stats := tree.Stats()
	if stats.IntersectorLeafCount != 1 {
		t.Fatalf("expected exactly 1 sub-intersector leaf, got %d", stats.IntersectorLeafCount)
	}
	if stats.TriangleCount != 100 {
		t.Fatalf("expected the 100 triangles to partition normally, got %d", stats.TriangleCount)
	}

	// Find the sub-intersector leaf and confirm it holds exactly one item.
	found := false
	var walk func(id int)
	walk = func(id int) {
		n := tree.Node(id)
		if n.IsLeaf() {
			if sub, ok := n.SubIntersectorLeaf(); ok {
				found = true
				if sub.Tree != innerTree {
					t.Fatalf("expected the sub-intersector leaf to reference the original inner tree")
				}
			}
			return
		}
		walk(id + 1)
		walk(n.FarChild(id))
	}
	walk(0)
	if !found {
		t.Fatalf("expected to find the sub-intersector leaf")
	}
}

// walkInvariants collects every triangle PrimID reachable from the tree, and
// checks each inner node's box encloses both of its children's boxes
// (containment) plus that leaf counts stay within MaxPrimsPerLeaf.
func walkInvariants(t *testing.T, tree *Intersector, maxPrims int, seen map[uint32]bool) {
	t.Helper()
	var walk func(id int)
	walk = func(id int) {
		n := tree.Node(id)
		if n.IsLeaf() {
			if first, count, ok := n.Triangles(); ok {
				if maxPrims > 0 && int(count) > maxPrims {
					t.Fatalf("leaf at id %d holds %d triangles, exceeding MaxPrimsPerLeaf=%d", id, count, maxPrims)
				}
				tris := tree.Triangles()
				for j := uint32(0); j < count; j++ {
					seen[tris[first+j].PrimID] = true
					if tris[first+j].Num != count {
						t.Fatalf("triangle at acc[%d] has Num=%d, expected %d", first+j, tris[first+j].Num, count)
					}
				}
			}
			return
		}
		near := id + 1
		far := n.FarChild(id)
		nearBox := tree.Node(near).Box
		farBox := tree.Node(far).Box
		box := n.Box
		if !enclosesApprox(box, nearBox) || !enclosesApprox(box, farBox) {
			t.Fatalf("inner node %d does not enclose both children", id)
		}
		walk(near)
		walk(far)
	}
	walk(0)
}

func enclosesApprox(outer, inner types.AABB) bool {
	const slack = 1e-4
	for a := 0; a < 3; a++ {
		if inner.Min[a] < outer.Min[a]-slack || inner.Max[a] > outer.Max[a]+slack {
			return false
		}
	}
	return true
}

func TestBuildInvariantsOnRandomTriangles(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	prims := make([]Primitive, 250)
	for i := range prims {
		prims[i] = unitTriangle(types.XYZ(rng.Float32()*5, rng.Float32()*5, rng.Float32()*5))
	}
	cfg := DefaultConfig()
	tree, err := Build(prims, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[uint32]bool)
	walkInvariants(t, tree, cfg.MaxPrimsPerLeaf, seen)
	if len(seen) != len(prims) {
		t.Fatalf("expected every primitive index to appear in exactly one leaf: saw %d of %d", len(seen), len(prims))
	}
}
