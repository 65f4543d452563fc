package main

import (
	"fmt"
	"os"

	"github.com/achilleasa/svbvh/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "svbvh"
	app.Usage = "build a surface-area-heuristic BVH from a triangle mesh"
	app.Version = "0.0.1"
	app.Commands = []cli.Command{
		{
			Name:  "build",
			Usage: "build a BVH tree from a wavefront obj mesh and print its stats",
			Description: `
Parse a triangle mesh from a wavefront obj file and run it through the
SAH BVH builder, printing a summary table of the resulting tree.`,
			ArgsUsage: "mesh.obj",
			Flags:     cmd.BuildFlags,
			Action:    cmd.Build,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
