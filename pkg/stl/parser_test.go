package stl

import (
	"bytes"
	"errors"
	"testing"

	"github.com/philipparndt/stlpieces/pkg/geometry"
)

const asciiCube = `solid corner
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
  facet normal 0 0 1
    outer loop
      vertex 1 0 0
      vertex 1 1 0
      vertex 0 1 0
    endloop
  endfacet
endsolid corner
`

func TestParseASCII(t *testing.T) {
	model, err := ParseBytes([]byte(asciiCube))
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}

	if model.Name != "corner" {
		t.Errorf("Name failed: expected corner, got %q", model.Name)
	}
	if model.Len() != 2 {
		t.Fatalf("Len failed: expected 2, got %d", model.Len())
	}
	if model.Triangles[1].V2 != geometry.NewVector3(1, 1, 0) {
		t.Errorf("Vertex failed: expected (1,1,0), got %v", model.Triangles[1].V2)
	}
	if area := model.SurfaceArea(); area != 1.0 {
		t.Errorf("SurfaceArea failed: expected 1, got %v", area)
	}
	if bbox := model.Bounds(); bbox.Max != geometry.NewVector3(1, 1, 0) || bbox.Min != (geometry.Vector3{}) {
		t.Errorf("Bounds failed: got %v..%v", bbox.Min, bbox.Max)
	}
}

func TestParseBinaryWithSolidHeader(t *testing.T) {
	source := NewModel("solid but binary")
	source.AddTriangle(geometry.NewTriangle(
		geometry.NewVector3(0, 0, 1),
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(2, 0, 0),
		geometry.NewVector3(0, 2, 0),
	))

	var buf bytes.Buffer
	if err := source.WriteBinary(&buf); err != nil {
		t.Fatalf("WriteBinary failed: %v", err)
	}

	model, err := ParseBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}
	if model.Len() != 1 {
		t.Fatalf("Len failed: expected 1, got %d", model.Len())
	}
	if model.Triangles[0].V2 != geometry.NewVector3(2, 0, 0) {
		t.Errorf("Vertex failed: expected (2,0,0), got %v", model.Triangles[0].V2)
	}
	if model.Name != "solid but binary" {
		t.Errorf("Name failed: got %q", model.Name)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"too short", "sol"},
		{"incomplete facet", "solid x\nfacet normal 0 0 1\nvertex 0 0 0\nvertex 1 0 0\nendfacet\nendsolid x\n"},
		{"bad number", "solid x\nfacet normal 0 0 1\nvertex a 0 0\n"},
		{"truncated binary", string(append(make([]byte, 80), 5, 0, 0, 0, 1, 2))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseBytes([]byte(tt.data)); err == nil {
				t.Errorf("expected an error")
			}
		})
	}

	if _, err := ParseBytes([]byte("sol")); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}
