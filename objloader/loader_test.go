package objloader

import (
	"strings"
	"testing"
)

func TestLoadTriangle(t *testing.T) {
	src := `
# a single triangle
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`
	prims, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prims) != 1 {
		t.Fatalf("expected 1 triangle, got %d", len(prims))
	}
}

func TestLoadFanTriangulatesQuad(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`
	prims, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prims) != 2 {
		t.Fatalf("expected a quad to fan-triangulate into 2 triangles, got %d", len(prims))
	}
}

func TestLoadNegativeIndices(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	prims, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prims) != 1 {
		t.Fatalf("expected 1 triangle, got %d", len(prims))
	}
}

func TestLoadIgnoresVertexAttributeLines(t *testing.T) {
	src := `
v 0 0 0
vt 0 0
v 1 0 0
vn 0 0 1
v 0 1 0
usemtl stone
f 1/1/1 2/1/1 3/1/1
`
	prims, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prims) != 1 {
		t.Fatalf("expected vt/vn/usemtl lines to be skipped, got %d triangles", len(prims))
	}
}

func TestLoadBadFaceIndex(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 9
`
	if _, err := Load(strings.NewReader(src)); err == nil {
		t.Fatalf("expected an out-of-range face index to error")
	}
}
