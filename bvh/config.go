package bvh

import "github.com/achilleasa/svbvh/log"

// Config tunes a single Build call. The zero value is not ready to use;
// start from DefaultConfig.
type Config struct {
	// MaxPrimsPerLeaf bounds how many primitives a leaf may hold before
	// the sweep is forced to keep splitting. Clamped to [1,16].
	MaxPrimsPerLeaf int

	// SAHIntersectCost is the relative cost of a single ray/primitive
	// intersection test in the SAH cost model. Clamped to [1,16].
	SAHIntersectCost int

	// SAHTraversalCost is the relative cost of descending through one
	// inner node in the SAH cost model. Clamped to [1,16].
	SAHTraversalCost int

	// EmitStats, when true, logs a one-line build summary at Notice level
	// once Build has finished partitioning.
	EmitStats bool

	// Logger receives the stats line and any degenerate-primitive
	// warnings. A nil Logger is replaced with the log package's "bvh"
	// logger.
	Logger log.Logger
}

// DefaultConfig returns the documented defaults: 8 primitives per leaf, a
// SAH intersection cost of 4 and a traversal cost of 4, stats enabled.
func DefaultConfig() Config {
	return Config{
		MaxPrimsPerLeaf:  8,
		SAHIntersectCost: 4,
		SAHTraversalCost: 4,
		EmitStats:        true,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// normalize clamps the three SAH knobs into their documented range and
// substitutes the package's default logger when none was supplied. It does
// not validate MaxPrimsPerLeaf's sign; Build rejects a negative value
// before normalize is ever called.
func (c Config) normalize() Config {
	c.MaxPrimsPerLeaf = clampInt(c.MaxPrimsPerLeaf, 1, 16)
	c.SAHIntersectCost = clampInt(c.SAHIntersectCost, 1, 16)
	c.SAHTraversalCost = clampInt(c.SAHTraversalCost, 1, 16)
	if c.Logger == nil {
		c.Logger = log.New("bvh")
	}
	return c
}
