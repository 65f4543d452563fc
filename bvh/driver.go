package bvh

import (
	"errors"
	"fmt"

	"github.com/achilleasa/svbvh/log"
	"github.com/achilleasa/svbvh/types"
)

// ErrEmptyInput is returned by Build when given no primitives. It is not a
// failure: callers should treat a nil *Intersector as "nothing to
// traverse", mirroring the reference builder returning NULL.
var ErrEmptyInput = errors.New("bvh: empty primitive list")

// pendingRange is one entry of the driver's explicit work stack: a
// primitive index range awaiting an inner-or-leaf decision, plus the
// parent node index to patch once this range is finally assigned an id.
// parent == -1 marks a range reached by direct fallthrough from its
// parent's own loop iteration (the "near" child), which needs no patch
// since a near child always lives at parentID+1 implicitly.
type pendingRange struct {
	first, last int
	box         types.AABB
	parent      int
	depth       int
}

// Build partitions prims into a static BVH using a full-axis centroid sweep
// SAH cost model. It returns ErrEmptyInput for an empty slice, and an error
// if cfg.MaxPrimsPerLeaf is negative. All other Config fields are clamped
// into range rather than rejected.
func Build(prims []Primitive, cfg Config) (*Intersector, error) {
	if cfg.MaxPrimsPerLeaf < 0 {
		return nil, fmt.Errorf("bvh: MaxPrimsPerLeaf must not be negative, got %d", cfg.MaxPrimsPerLeaf)
	}
	cfg = cfg.normalize()

	prims = dropDegenerate(prims, cfg.Logger)
	if len(prims) == 0 {
		return nil, ErrEmptyInput
	}

	st := newBuildState(prims, cfg)
	sceneBox := st.inject()

	runBuild(st, sceneBox)

	for i := range st.nodes {
		st.nodes[i].Box = st.nodes[i].Box.Inflate(boxEpsilon)
	}

	if cfg.EmitStats {
		cfg.Logger.Noticef("bvh: %d nodes, %d leaves, %d triangles, max depth %d",
			st.nodeCount, st.leafCount, len(st.acc), st.maxDepth)
	}

	return &Intersector{root: st.nodes, acc: st.acc}, nil
}

// boxEpsilon inflates every emitted box slightly so that a ray grazing a
// face exactly on the boundary is not lost to float rounding.
const boxEpsilon = 1e-6

// dropDegenerate filters out triangles whose Wald precomputation would be
// undefined (zero-area, or a dominant-normal-axis component too small to
// divide by), logging a single Warning with the number dropped. Sub-intersectors are never
// degenerate and pass through untouched.
func dropDegenerate(prims []Primitive, logger log.Logger) []Primitive {
	out := prims[:0:0]
	dropped := 0
	for _, p := range prims {
		if p.Kind == TriangleKind {
			if _, ok := computeWald(p.Vertices[0], p.Vertices[1], p.Vertices[2], p.MaterialID, 0); !ok {
				dropped++
				continue
			}
		}
		out = append(out, p)
	}
	if dropped > 0 && logger != nil {
		logger.Warningf("bvh: dropped %d degenerate triangle(s) before build", dropped)
	}
	return out
}

// runBuild is the iterative smaller-side-first depth-first driver. It
// always falls through into the smaller half of a split inline (so that
// half's id is simply len(nodes) at the moment it is reached — no patch
// needed) and pushes the larger half onto an explicit stack, patching the
// parent's offset field once the pushed half is finally popped and
// assigned its own id. Because every push carries at least half of the
// range it was split from, the stack never holds more than O(log N)
// entries.
func runBuild(st *buildState, sceneBox types.AABB) {
	stack := []pendingRange{{0, len(st.prims) - 1, sceneBox, -1, 0}}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for {
			id := len(st.nodes)
			st.nodes = append(st.nodes, Node{})
			if cur.parent >= 0 {
				st.nodes[cur.parent].setOffset(uint32(id - cur.parent))
			}
			if cur.depth > st.maxDepth {
				st.maxDepth = cur.depth
			}
			st.nodeCount++

			if cur.first == cur.last {
				st.makeLeaf(id, cur.first, cur.last, cur.box)
				break
			}

			best := bestOfThree(st, cur.first, cur.last)
			if best.splitIndex < 0 {
				st.makeLeaf(id, cur.first, cur.last, best.fullBox)
				break
			}

			reorderOtherAxes(st, best.axis, cur.first, cur.last, best.splitIndex)

			leftFirst, leftLast := cur.first, best.splitIndex
			rightFirst, rightLast := best.splitIndex+1, cur.last
			leftCount := leftLast - leftFirst + 1
			rightCount := rightLast - rightFirst + 1

			st.nodes[id].Box = cur.box
			st.nodes[id].setInner(uint8(best.axis))

			contFirst, contLast, contBox := leftFirst, leftLast, best.leftBox
			pushFirst, pushLast, pushBox := rightFirst, rightLast, best.rightBox
			if leftCount > rightCount {
				contFirst, contLast, contBox = rightFirst, rightLast, best.rightBox
				pushFirst, pushLast, pushBox = leftFirst, leftLast, best.leftBox
			}

			stack = append(stack, pendingRange{pushFirst, pushLast, pushBox, id, cur.depth + 1})
			cur = pendingRange{contFirst, contLast, contBox, -1, cur.depth + 1}
		}
	}
}

// makeLeaf finalizes node id as either a triangle leaf (copying the Wald
// precomputation of every triangle in [first,last] into acc) or a
// sub-intersector leaf. A sub-intersector only ever reaches here alone
// (first==last): the sweep step never returns a leaf sentinel for a range
// containing one, since it is opaque and cannot share a leaf with anything
// else.
func (st *buildState) makeLeaf(id, first, last int, box types.AABB) {
	st.leafCount++

	if first == last {
		pidx := st.ids[0][first]
		if p := st.prims[pidx]; p.Kind == SubIntersectorKind {
			st.nodes[id].setIntersectorLeaf(box, p.Sub)
			return
		}
	}

	firstAcc := uint32(len(st.acc))
	var count uint32
	for j := first; j <= last; j++ {
		pidx := st.ids[0][j]
		p := st.prims[pidx]
		w, ok := computeWald(p.Vertices[0], p.Vertices[1], p.Vertices[2], p.MaterialID, uint32(pidx))
		if !ok {
			st.cfg.Logger.Warningf("bvh: triangle %d degenerate at leaf emission, skipping", pidx)
			continue
		}
		st.acc = append(st.acc, w)
		count++
	}
	// Every triangle in a leaf carries the leaf's own total count, so a
	// traversal can walk a run without consulting the node that owns it.
	for j := uint32(0); j < count; j++ {
		st.acc[firstAcc+j].Num = count
	}
	st.nodes[id].setTriLeaf(box, firstAcc, count)
}
