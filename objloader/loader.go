// Package objloader parses a Wavefront OBJ file into triangle primitives
// for bvh.Build. It only understands the subset needed to get real
// geometry in front of the builder: vertex positions and faces. Normals,
// texture coordinates, materials, groups and smoothing directives are
// parsed far enough to be skipped, never attached to the output triangles —
// material assignment is out of scope for this builder.
package objloader

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/achilleasa/svbvh/bvh"
	"github.com/achilleasa/svbvh/types"
)

// Load reads a Wavefront OBJ stream and returns one triangle Primitive per
// face. A polygon face with more than three vertices is fan-triangulated
// around its first vertex.
func Load(r io.Reader) ([]bvh.Primitive, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var verts []types.Vec3
	var prims []bvh.Primitive

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("objloader: line %d: %w", lineNo, err)
			}
			verts = append(verts, v)
		case "f":
			idx, err := parseFaceIndices(fields[1:], len(verts))
			if err != nil {
				return nil, fmt.Errorf("objloader: line %d: %w", lineNo, err)
			}
			for i := 1; i < len(idx)-1; i++ {
				prims = append(prims, bvh.NewTriangle(verts[idx[0]], verts[idx[i]], verts[idx[i+1]], 0))
			}
		default:
			// vn, vt, usemtl, mtllib, g, o, s, ... — not in scope.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("objloader: scan: %w", err)
	}
	return prims, nil
}

func parseVertex(fields []string) (types.Vec3, error) {
	if len(fields) < 3 {
		return types.Vec3{}, fmt.Errorf("vertex needs 3 components, got %d", len(fields))
	}
	var v [3]float32
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return types.Vec3{}, fmt.Errorf("bad vertex component %q: %w", fields[i], err)
		}
		v[i] = float32(f)
	}
	return types.XYZ(v[0], v[1], v[2]), nil
}

// parseFaceIndices resolves a face's vertex references ("v", "v/vt",
// "v/vt/vn" or "v//vn") to zero-based indices into verts, handling OBJ's
// 1-based and negative (relative-to-end) indexing.
func parseFaceIndices(fields []string, vertCount int) ([]int, error) {
	if len(fields) < 3 {
		return nil, fmt.Errorf("face needs at least 3 vertices, got %d", len(fields))
	}
	idx := make([]int, len(fields))
	for i, f := range fields {
		ref := strings.SplitN(f, "/", 2)[0]
		n, err := strconv.Atoi(ref)
		if err != nil {
			return nil, fmt.Errorf("bad face index %q: %w", f, err)
		}
		switch {
		case n > 0:
			idx[i] = n - 1
		case n < 0:
			idx[i] = vertCount + n
		default:
			return nil, fmt.Errorf("face index must not be 0")
		}
		if idx[i] < 0 || idx[i] >= vertCount {
			return nil, fmt.Errorf("face index %d out of range (have %d vertices)", n, vertCount)
		}
	}
	return idx, nil
}
