package bvh

import "github.com/achilleasa/svbvh/types"

// flag tags what a Node's payload holds.
type flag uint8

const (
	flagInner flag = iota
	flagTriLeaf
	flagIntersectorLeaf
)

// Node is one entry of a depth-first node array. An inner node's "near"
// child always sits at this node's own array index plus one; Offset locates
// the "far" child (this node's index plus Offset). Which spatial half of
// the split ends up near versus far is decided by subtree size, not by
// split side, so that the explicit work stack used during construction
// never grows past O(log N) entries — see driver.go.
type Node struct {
	Box types.AABB

	flag   flag
	axis   uint8
	offset uint32

	// firstPrim/primCount address a contiguous run of the Intersector's
	// acc slice, valid only when flag == flagTriLeaf.
	firstPrim uint32
	primCount uint32

	// sub is valid only when flag == flagIntersectorLeaf.
	sub *SubIntersector
}

// IsLeaf reports whether n has no children.
func (n Node) IsLeaf() bool {
	return n.flag != flagInner
}

// Axis returns the split axis (0=X, 1=Y, 2=Z). Meaningful only when n is an
// inner node.
func (n Node) Axis() uint8 {
	return n.axis
}

// FarChild returns the array index of n's far child, given n's own index.
// The near child is always id+1. Meaningful only when n is an inner node.
func (n Node) FarChild(id int) int {
	return id + int(n.offset)
}

// Triangles reports whether n is a triangle leaf and, if so, the triangle
// run it addresses into an Intersector's acc slice.
func (n Node) Triangles() (first, count uint32, ok bool) {
	if n.flag != flagTriLeaf {
		return 0, 0, false
	}
	return n.firstPrim, n.primCount, true
}

// SubIntersectorLeaf reports whether n is a sub-intersector leaf and, if so,
// the handle it addresses.
func (n Node) SubIntersectorLeaf() (*SubIntersector, bool) {
	if n.flag != flagIntersectorLeaf {
		return nil, false
	}
	return n.sub, true
}

func (n *Node) setInner(axis uint8) {
	n.flag = flagInner
	n.axis = axis
}

func (n *Node) setOffset(offset uint32) {
	n.offset = offset
}

func (n *Node) setTriLeaf(box types.AABB, first, count uint32) {
	n.Box = box
	n.flag = flagTriLeaf
	n.firstPrim = first
	n.primCount = count
}

func (n *Node) setIntersectorLeaf(box types.AABB, sub *SubIntersector) {
	n.Box = box
	n.flag = flagIntersectorLeaf
	n.sub = sub
}
