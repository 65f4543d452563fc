package bvh

import (
	"sort"

	"github.com/achilleasa/svbvh/types"
)

// side tags which half of a chosen split a primitive landed in, recorded and
// consumed by the partition step that reorders the other two axes.
type side uint8

const (
	sideLeft side = iota
	sideRight
)

// buildState holds every scratch buffer the sweep/partition/driver trio
// needs, sized once up front. Primitive order within ids[axis] is always a
// permutation of [0,n); all three permutations describe the same underlying
// set for any given [first,last] range, just ordered by a different axis.
type buildState struct {
	prims    []Primitive
	boxes    []types.AABB
	centroid []types.Vec3
	isTri    []bool

	ids [3][]uint32
	pos []side
	tmp []uint32

	// rl is the right-to-left prefix AABB scratch used by sweep: rl[id]
	// holds the union of boxes from id's sweep position to the end of
	// the current range. Reused across every sweep call.
	rl []types.AABB

	cfg Config

	nodes []Node
	acc   []WaldTriangle

	nodeCount, leafCount, maxDepth int
}

func newBuildState(prims []Primitive, cfg Config) *buildState {
	n := len(prims)
	st := &buildState{
		prims:    prims,
		boxes:    make([]types.AABB, n),
		centroid: make([]types.Vec3, n),
		isTri:    make([]bool, n),
		pos:      make([]side, n),
		tmp:      make([]uint32, n),
		rl:       make([]types.AABB, n),
		cfg:      cfg,
		nodes:    make([]Node, 0, 2*n),
		acc:      make([]WaldTriangle, 0, n),
	}
	for a := 0; a < 3; a++ {
		st.ids[a] = make([]uint32, n)
	}
	return st
}

// inject computes the per-primitive AABB/centroid/kind view and populates
// the three axis-sorted id permutations. It returns the union of every
// primitive's box.
func (st *buildState) inject() types.AABB {
	scene := types.EmptyAABB()
	for i, p := range st.prims {
		box := p.aabb()
		st.boxes[i] = box
		st.centroid[i] = p.centroid()
		st.isTri[i] = p.isTriangle()
		scene = scene.Compose(box)
		for a := 0; a < 3; a++ {
			st.ids[a][i] = uint32(i)
		}
	}
	for a := 0; a < 3; a++ {
		axis := a
		ids := st.ids[a]
		sort.SliceStable(ids, func(i, j int) bool {
			return st.centroid[ids[i]].Axis(axis) < st.centroid[ids[j]].Axis(axis)
		})
	}
	return scene
}
