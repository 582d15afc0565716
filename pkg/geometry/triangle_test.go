package geometry

import (
	"math"
	"testing"
)

// rightTriangle has legs 3 and 4 in the XY plane
func rightTriangle() Triangle {
	return NewTriangle(
		Vector3{},
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)
}

func TestTriangleArea(t *testing.T) {
	if area := rightTriangle().Area(); math.Abs(area-6) > epsilon {
		t.Errorf("Area failed: expected 6, got %v", area)
	}

	flat := NewTriangle(Vector3{}, NewVector3(0, 0, 0), NewVector3(1, 1, 1), NewVector3(2, 2, 2))
	if area := flat.Area(); area != 0 {
		t.Errorf("Area failed: degenerate facet should have no area, got %v", area)
	}
}

func TestTriangleEdgeLengths(t *testing.T) {
	lengths := rightTriangle().EdgeLengths()
	for i, expected := range []float64{3, 5, 4} {
		if math.Abs(lengths[i]-expected) > epsilon {
			t.Errorf("Edge %d length failed: expected %v, got %v", i, expected, lengths[i])
		}
	}
}

func TestTriangleCalculateNormal(t *testing.T) {
	tri := rightTriangle()
	if n := tri.CalculateNormal(); n != NewVector3(0, 0, 1) {
		t.Errorf("CalculateNormal failed: expected (0,0,1), got %v", n)
	}

	tri.V2, tri.V3 = tri.V3, tri.V2
	if n := tri.CalculateNormal(); n != NewVector3(0, 0, -1) {
		t.Errorf("CalculateNormal failed: reversed winding should flip, got %v", n)
	}
}

func TestTriangleVertices(t *testing.T) {
	v := rightTriangle().Vertices()
	if v[1] != NewVector3(3, 0, 0) || v[2] != NewVector3(0, 4, 0) {
		t.Errorf("Vertices failed: got %v", v)
	}
}
