// Package mesh turns triangle soups into indexed meshes and splits them into
// their connected components.
package mesh

import (
	"fmt"

	"github.com/philipparndt/stlpieces/pkg/geometry"
	"github.com/philipparndt/stlpieces/pkg/stl"
)

// Component is one connected part of a mesh. Face indices refer to the
// component's own vertex slice. Components are never mutated after Split.
type Component struct {
	ID       int
	Vertices [][3]float64
	Faces    [][3]int
}

// VertexCount returns the number of vertices
func (c Component) VertexCount() int {
	return len(c.Vertices)
}

// FaceCount returns the number of triangles
func (c Component) FaceCount() int {
	return len(c.Faces)
}

// Columns returns the vertex positions as separate x, y and z sequences
func (c Component) Columns() (x, y, z []float64) {
	x = make([]float64, len(c.Vertices))
	y = make([]float64, len(c.Vertices))
	z = make([]float64, len(c.Vertices))
	for i, v := range c.Vertices {
		x[i], y[i], z[i] = v[0], v[1], v[2]
	}
	return x, y, z
}

// Triangle returns face i as a geometry triangle
func (c Component) Triangle(i int) geometry.Triangle {
	f := c.Faces[i]
	tri := geometry.Triangle{
		V1: geometry.FromArray(c.Vertices[f[0]]),
		V2: geometry.FromArray(c.Vertices[f[1]]),
		V3: geometry.FromArray(c.Vertices[f[2]]),
	}
	tri.Normal = tri.CalculateNormal()
	return tri
}

// Bounds returns the bounding box of the component
func (c Component) Bounds() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, v := range c.Vertices {
		bbox.Extend(geometry.FromArray(v))
	}
	return bbox
}

// Model converts the component back into a triangle soup, e.g. to write it as STL
func (c Component) Model() *stl.Model {
	model := stl.NewModel(fmt.Sprintf("piece %d", c.ID))
	for i := range c.Faces {
		model.AddTriangle(c.Triangle(i))
	}
	return model
}

// Validate checks that every face references an existing vertex
func (c Component) Validate() error {
	for i, f := range c.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= len(c.Vertices) {
				return fmt.Errorf("component %d: face %d references vertex %d of %d", c.ID, i, idx, len(c.Vertices))
			}
		}
	}
	return nil
}

// Bounds returns the bounding box over all components
func Bounds(components []Component) geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, c := range components {
		bbox.Union(c.Bounds())
	}
	return bbox
}

// FaceOwner maps a face index into the concatenation of all components'
// faces back to the owning component's position in the slice.
func FaceOwner(components []Component, face int) (int, bool) {
	if face < 0 {
		return 0, false
	}
	for i, c := range components {
		if face < len(c.Faces) {
			return i, true
		}
		face -= len(c.Faces)
	}
	return 0, false
}
