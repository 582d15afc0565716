package mesh

import (
	"errors"
	"math"

	"github.com/philipparndt/stlpieces/pkg/stl"
)

// ErrEmptyMesh is returned when there is nothing to split
var ErrEmptyMesh = errors.New("mesh has no faces")

// Indexed is a shared-vertex mesh
type Indexed struct {
	Vertices [][3]float64
	Faces    [][3]int
}

// Weld merges identical triangle corners into shared vertices. With a
// positive epsilon, positions are snapped to a grid of that size first.
func Weld(model *stl.Model, epsilon float64) *Indexed {
	ix := &Indexed{
		Vertices: make([][3]float64, 0, len(model.Triangles)),
		Faces:    make([][3]int, 0, len(model.Triangles)),
	}
	vertMap := make(map[[3]float64]int)

	for _, tri := range model.Triangles {
		var face [3]int
		for i, v := range tri.Vertices() {
			pos := v.Array()
			key := pos
			if epsilon > 0 {
				for c := range key {
					key[c] = math.Round(key[c]/epsilon) * epsilon
				}
			}
			idx, ok := vertMap[key]
			if !ok {
				idx = len(ix.Vertices)
				ix.Vertices = append(ix.Vertices, pos)
				vertMap[key] = idx
			}
			face[i] = idx
		}
		ix.Faces = append(ix.Faces, face)
	}

	return ix
}

// disjointSet is a union-find over vertex indices
type disjointSet struct {
	parent []int
	rank   []uint8
}

func newDisjointSet(n int) *disjointSet {
	ds := &disjointSet{parent: make([]int, n), rank: make([]uint8, n)}
	for i := range ds.parent {
		ds.parent[i] = i
	}
	return ds
}

func (ds *disjointSet) find(x int) int {
	for ds.parent[x] != x {
		ds.parent[x] = ds.parent[ds.parent[x]]
		x = ds.parent[x]
	}
	return x
}

func (ds *disjointSet) union(a, b int) {
	ra, rb := ds.find(a), ds.find(b)
	if ra == rb {
		return
	}
	switch {
	case ds.rank[ra] < ds.rank[rb]:
		ds.parent[ra] = rb
	case ds.rank[ra] > ds.rank[rb]:
		ds.parent[rb] = ra
	default:
		ds.parent[rb] = ra
		ds.rank[ra]++
	}
}

// Split partitions the mesh into face-connected components. Components are
// ordered by their first face in the input, and each one renumbers its
// vertices in order of first use. Degenerate faces stay with their vertices.
func Split(ix *Indexed) ([]Component, error) {
	if ix == nil || len(ix.Faces) == 0 {
		return nil, ErrEmptyMesh
	}

	ds := newDisjointSet(len(ix.Vertices))
	for _, f := range ix.Faces {
		ds.union(f[0], f[1])
		ds.union(f[1], f[2])
	}

	// builders are created in order of first face, which fixes component order
	type builder struct {
		remap map[int]int
		comp  Component
	}
	byRoot := make(map[int]*builder)
	var order []*builder

	for _, f := range ix.Faces {
		root := ds.find(f[0])
		b, ok := byRoot[root]
		if !ok {
			b = &builder{remap: make(map[int]int)}
			byRoot[root] = b
			order = append(order, b)
		}

		var face [3]int
		for i, v := range f {
			local, seen := b.remap[v]
			if !seen {
				local = len(b.comp.Vertices)
				b.remap[v] = local
				b.comp.Vertices = append(b.comp.Vertices, ix.Vertices[v])
			}
			face[i] = local
		}
		b.comp.Faces = append(b.comp.Faces, face)
	}

	components := make([]Component, len(order))
	for i, b := range order {
		b.comp.ID = i
		components[i] = b.comp
	}
	return components, nil
}
