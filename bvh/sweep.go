package bvh

import (
	"math"

	"github.com/achilleasa/svbvh/types"
)

// candidate is the outcome of sweeping one axis over [first,last]: either a
// split (splitIndex >= 0, partitioning ids[axis][first:splitIndex+1] from
// ids[axis][splitIndex+1:last+1]) or a leaf recommendation (splitIndex<0).
// cost is only comparable across candidates returned by sweep for the same
// range — the units change depending on whether the range could leaf.
type candidate struct {
	axis       int
	cost       float32
	splitIndex int
	leftBox    types.AABB
	rightBox   types.AABB
	fullBox    types.AABB
}

// sweep finds the lowest-cost split point along axis for the primitives in
// ids[axis][first:last+1], then decides whether splitting is actually
// cheaper than leaving the range as one leaf. The right-to-left prefix
// pass into rl makes the left-to-right cost scan O(1) per step.
func sweep(st *buildState, axis, first, last int) candidate {
	ids := st.ids[axis]

	lastID := ids[last]
	st.rl[lastID] = st.boxes[lastID]
	for j := last - 1; j >= first; j-- {
		id := ids[j]
		st.rl[id] = st.boxes[id].Compose(st.rl[ids[j+1]])
	}

	box := types.EmptyAABB()
	primnum := last - first + 1
	n := 1
	bestCost := float32(math.MaxFloat32)
	bestJ := first
	var bestLeftBox, bestRightBox types.AABB
	alltris := true

	for j := first; j < last; j++ {
		leftID := ids[j]
		rightID := ids[j+1]
		box = box.Compose(st.boxes[leftID])
		if !st.isTri[leftID] {
			alltris = false
		}

		larea := box.Halfarea()
		rarea := st.rl[rightID].Halfarea()
		cost := larea*float32(n) + rarea*float32(primnum-n)
		n++

		if cost < bestCost {
			bestCost = cost
			bestJ = j
			bestLeftBox = box
			bestRightBox = st.rl[rightID]
		}
	}

	if !st.isTri[lastID] {
		alltris = false
	}
	fullBox := box.Compose(st.boxes[lastID])

	cand := candidate{
		axis:       axis,
		cost:       bestCost,
		splitIndex: bestJ,
		leftBox:    bestLeftBox,
		rightBox:   bestRightBox,
		fullBox:    fullBox,
	}

	if !alltris {
		// A sub-intersector is opaque; it can never join a leaf run, so
		// the leaf-vs-split comparison below does not apply here.
		return cand
	}

	harea := fullBox.Halfarea()
	splitCost := cand.cost*float32(st.cfg.SAHIntersectCost) + float32(st.cfg.SAHTraversalCost)*harea
	cand.cost = splitCost

	if primnum > st.cfg.MaxPrimsPerLeaf {
		return cand
	}

	leafCost := float32(st.cfg.SAHIntersectCost) * float32(primnum) * harea
	if leafCost <= splitCost {
		cand.splitIndex = -1
		cand.cost = leafCost
		cand.leftBox = fullBox
		cand.rightBox = types.AABB{}
	}
	return cand
}

// bestOfThree sweeps all three axes and returns the lowest-cost candidate,
// biased toward the lowest axis index on an exact tie.
func bestOfThree(st *buildState, first, last int) candidate {
	best := sweep(st, 0, first, last)
	for axis := 1; axis < 3; axis++ {
		c := sweep(st, axis, first, last)
		if c.cost < best.cost {
			best = c
		}
	}
	return best
}
