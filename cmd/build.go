// Package cmd wires the bvh builder and the objloader parser together
// behind a urfave/cli command, mirroring the teacher's cmd package layout.
package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/achilleasa/svbvh/bvh"
	"github.com/achilleasa/svbvh/log"
	"github.com/achilleasa/svbvh/objloader"
)

var logger = log.New("cmd")

// BuildFlags are the flags accepted by the "build" command.
var BuildFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "max-prims-per-leaf",
		Value: 8,
		Usage: "maximum triangles held by a leaf before the sweep keeps splitting",
	},
	cli.IntFlag{
		Name:  "sah-intersect-cost",
		Value: 4,
		Usage: "relative cost of a single ray/primitive test in the SAH model",
	},
	cli.IntFlag{
		Name:  "sah-traversal-cost",
		Value: 4,
		Usage: "relative cost of descending through one inner node in the SAH model",
	},
	cli.BoolFlag{
		Name:  "no-stats",
		Usage: "suppress the one-line build summary normally logged at Notice level",
	},
}

// Build loads a Wavefront OBJ mesh and runs it through bvh.Build, printing a
// stats table for the resulting tree.
func Build(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("missing mesh file argument; usage: svbvh build mesh.obj")
	}
	path := ctx.Args().First()

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	prims, err := objloader.Load(f)
	if err != nil {
		return err
	}

	cfg := bvh.DefaultConfig()
	cfg.MaxPrimsPerLeaf = ctx.Int("max-prims-per-leaf")
	cfg.SAHIntersectCost = ctx.Int("sah-intersect-cost")
	cfg.SAHTraversalCost = ctx.Int("sah-traversal-cost")
	cfg.EmitStats = !ctx.Bool("no-stats")
	cfg.Logger = logger

	start := time.Now()
	tree, err := bvh.Build(prims, cfg)
	elapsed := time.Since(start)
	if err != nil {
		return fmt.Errorf("building %s: %w", path, err)
	}

	printStats(path, tree.Stats(), elapsed)
	return nil
}

func printStats(path string, s bvh.Stats, elapsed time.Duration) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Nodes", "Triangle leaves", "Intersector leaves", "Triangles", "Max depth", "Triangles/leaf", "Build time"})
	table.Append([]string{
		fmt.Sprintf("%d", s.NodeCount),
		fmt.Sprintf("%d", s.TriangleLeafCount),
		fmt.Sprintf("%d", s.IntersectorLeafCount),
		fmt.Sprintf("%d", s.TriangleCount),
		fmt.Sprintf("%d", s.MaxDepth),
		fmt.Sprintf("%.2f", s.TrianglesPerLeaf()),
		elapsed.String(),
	})
	table.Render()

	logger.Noticef("bvh stats for %s\n%s", path, buf.String())
}
