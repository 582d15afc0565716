package stl

import (
	"github.com/philipparndt/stlpieces/pkg/geometry"
)

// Model is the facet list of one STL document, before any welding
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates an empty model
func NewModel(name string) *Model {
	return &Model{Name: name, Triangles: []geometry.Triangle{}}
}

// AddTriangle appends a facet
func (m *Model) AddTriangle(t geometry.Triangle) {
	m.Triangles = append(m.Triangles, t)
}

// Len returns the number of facets
func (m *Model) Len() int {
	return len(m.Triangles)
}

// Bounds returns the box around every facet corner
func (m *Model) Bounds() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, t := range m.Triangles {
		for _, v := range t.Vertices() {
			bbox.Extend(v)
		}
	}
	return bbox
}

// SurfaceArea sums the facet areas
func (m *Model) SurfaceArea() (area float64) {
	for _, t := range m.Triangles {
		area += t.Area()
	}
	return area
}
