// Package scene reads and writes the scene configuration consumed by the
// rendering engine.
package scene

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/philipparndt/stlpieces/pkg/mesh"
	"github.com/philipparndt/stlpieces/pkg/pieces"
)

// ErrMalformed is returned for scene documents that do not have the expected shape
var ErrMalformed = errors.New("malformed scene")

// Export is the root of the scene document
type Export struct {
	Scene Configuration `json:"scene_configuration"`
}

// Configuration lists all pieces of the scene
type Configuration struct {
	TotalPieces int     `json:"total_pieces"`
	Pieces      []Piece `json:"pieces"`
}

// Piece is the exported record of one piece. Position duplicates
// Mesh.Vertices column-wise; existing consumers read either.
type Piece struct {
	ID        int       `json:"id"`
	Direction string    `json:"direction"`
	Position  Columns   `json:"position"`
	Rotation  Rotation  `json:"rotation"`
	Color     string    `json:"color"`
	Enabled   bool      `json:"enabled"`
	Mesh      PieceMesh `json:"mesh"`
	Priority  int       `json:"priority"`
	HelpText  string    `json:"help_text"`
}

// Columns holds vertex coordinates as one sequence per axis
type Columns struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
	Z []float64 `json:"z"`
}

// Rotation holds the rotation angles around each axis
type Rotation struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// PieceMesh is the indexed triangle mesh of a piece
type PieceMesh struct {
	Vertices [][3]float64 `json:"vertices"`
	Faces    [][3]int     `json:"faces"`
}

// Build assembles the scene from piece configurations and their components.
// Every configuration must reference an existing component id.
func Build(configs []pieces.Config, components []mesh.Component) (*Export, error) {
	byID := make(map[int]mesh.Component, len(components))
	for _, c := range components {
		byID[c.ID] = c
	}

	out := &Export{Scene: Configuration{
		TotalPieces: len(configs),
		Pieces:      make([]Piece, 0, len(configs)),
	}}

	for _, cfg := range configs {
		comp, ok := byID[cfg.ID]
		if !ok {
			return nil, fmt.Errorf("piece %d has no component", cfg.ID)
		}

		direction := cfg.Direction
		if direction == "" {
			direction = pieces.DefaultDirection
		}

		x, y, z := comp.Columns()
		out.Scene.Pieces = append(out.Scene.Pieces, Piece{
			ID:        cfg.ID,
			Direction: string(direction),
			Position:  Columns{X: x, Y: y, Z: z},
			Rotation: Rotation{
				X: cfg.Final.RotationX,
				Y: cfg.Final.RotationY,
				Z: cfg.Final.RotationZ,
			},
			Color:    cfg.Color,
			Enabled:  cfg.Enabled,
			Mesh:     PieceMesh{Vertices: comp.Vertices, Faces: comp.Faces},
			Priority: cfg.Priority,
			HelpText: cfg.Annotation,
		})
	}

	return out, nil
}

// Component returns the mesh of a piece as a component
func (p Piece) Component() mesh.Component {
	return mesh.Component{ID: p.ID, Vertices: p.Mesh.Vertices, Faces: p.Mesh.Faces}
}

// Validate checks the structural invariants the decoder relies on
func (e *Export) Validate() error {
	if e.Scene.TotalPieces != len(e.Scene.Pieces) {
		return fmt.Errorf("%w: total_pieces is %d but %d pieces are listed",
			ErrMalformed, e.Scene.TotalPieces, len(e.Scene.Pieces))
	}

	for i, p := range e.Scene.Pieces {
		if len(p.Mesh.Vertices) == 0 || len(p.Mesh.Faces) == 0 {
			return fmt.Errorf("%w: piece at %d has no mesh", ErrMalformed, i)
		}
		if err := p.Component().Validate(); err != nil {
			return fmt.Errorf("%w: piece at %d: %v", ErrMalformed, i, err)
		}
		if _, err := pieces.ParseDirection(p.Direction); err != nil {
			return fmt.Errorf("%w: piece at %d: %w", ErrMalformed, i, err)
		}
		if _, err := ParseHexColor(p.Color); err != nil {
			return fmt.Errorf("%w: piece at %d: %v", ErrMalformed, i, err)
		}
		n := len(p.Mesh.Vertices)
		if len(p.Position.X) != n || len(p.Position.Y) != n || len(p.Position.Z) != n {
			return fmt.Errorf("%w: piece at %d: position has %d/%d/%d values for %d vertices",
				ErrMalformed, i, len(p.Position.X), len(p.Position.Y), len(p.Position.Z), n)
		}
	}

	return nil
}

// UnmarshalJSON decodes the mesh and requires exact triples, which the
// fixed-size array fields would otherwise pad or truncate silently.
func (m *PieceMesh) UnmarshalJSON(data []byte) error {
	var raw struct {
		Vertices [][]float64 `json:"vertices"`
		Faces    [][]int     `json:"faces"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	vertices := make([][3]float64, len(raw.Vertices))
	for i, v := range raw.Vertices {
		if len(v) != 3 {
			return fmt.Errorf("vertex %d has %d coordinates", i, len(v))
		}
		vertices[i] = [3]float64{v[0], v[1], v[2]}
	}

	faces := make([][3]int, len(raw.Faces))
	for i, f := range raw.Faces {
		if len(f) != 3 {
			return fmt.Errorf("face %d has %d indices", i, len(f))
		}
		faces[i] = [3]int{f[0], f[1], f[2]}
	}

	m.Vertices = vertices
	m.Faces = faces
	return nil
}
