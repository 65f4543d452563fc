package bvh

import "github.com/achilleasa/svbvh/types"

const waldEpsilon = 1e-12

// WaldTriangle is a triangle stored in the dominant-normal-axis projected
// form described by Wald's fast ray/triangle test: the dominant axis K is
// dropped, and intersection against the remaining (u,v) plane reduces to a
// handful of multiply-adds instead of a general ray/plane + barycentric
// test. Ray intersection itself is out of scope here; this type only
// carries the precomputed fields a traversal kernel would consume.
type WaldTriangle struct {
	N     types.Vec2 // (N[u]/N[k], N[v]/N[k])
	Bn    types.Vec2 // projected edge coefficients for vertex B
	Cn    types.Vec2 // projected edge coefficients for vertex C
	VertK types.Vec2 // (A[u], A[v])
	Nd    float32    // dot(A, N) / N[k]

	K    uint8 // dominant axis, 0=X 1=Y 2=Z
	Sign uint8 // 1 when N[k] < 0, else 0

	MaterialID uint32
	PrimID     uint32

	// Num is the number of triangles stored in this triangle's leaf; it
	// is the same value for every triangle belonging to the same leaf,
	// letting a traversal walk a leaf run without consulting the node.
	Num uint32
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// dominantAxis returns the index of n's largest-magnitude component.
func dominantAxis(n types.Vec3) uint8 {
	k := uint8(0)
	best := absf(n[0])
	if m := absf(n[1]); m > best {
		k, best = 1, m
	}
	if m := absf(n[2]); m > best {
		k = 2
	}
	return k
}

// computeWald precomputes the Wald projected form for the triangle (a,b,c).
// It returns ok=false for a degenerate triangle: zero cross-product normal,
// or a dominant-axis component too small to divide by safely.
func computeWald(a, b, c types.Vec3, materialID, primID uint32) (WaldTriangle, bool) {
	edgeB := b.Sub(a)
	edgeC := c.Sub(a)
	normal := edgeB.Cross(edgeC)

	k := dominantAxis(normal)
	nk := normal[k]
	if absf(nk) < waldEpsilon {
		return WaldTriangle{}, false
	}

	u := (int(k) + 1) % 3
	v := (int(k) + 2) % 3

	bu, bv := edgeB[u], edgeB[v]
	cu, cv := edgeC[u], edgeC[v]

	d := bu*cv - bv*cu
	if absf(d) < waldEpsilon {
		return WaldTriangle{}, false
	}

	sign := uint8(0)
	if nk < 0 {
		sign = 1
	}

	w := WaldTriangle{
		N:          types.XY(normal[u]/nk, normal[v]/nk),
		Bn:         types.XY(-bv/d, bu/d),
		Cn:         types.XY(cv/d, -cu/d),
		VertK:      types.XY(a[u], a[v]),
		Nd:         a.Dot(normal) / nk,
		K:          k,
		Sign:       sign,
		MaterialID: materialID,
		PrimID:     primID,
	}
	return w, true
}
