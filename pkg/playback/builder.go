// Package playback reconstructs a scene piece by piece in priority order.
package playback

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/stlpieces/pkg/scene"
)

// Piece is one scene piece prepared for playback
type Piece struct {
	ID        int
	Priority  int
	Direction string
	HelpText  string
	Enabled   bool
	Color     string
	RGB       [3]float64
	Vertices  [][3]float64
	Faces     [][3]int
}

// Builder walks a priority-ordered prefix of the scene pieces. The prefix
// only grows or shrinks by one, jumps to the full scene, or resets to empty.
// A Builder is owned by one viewer and is not safe for concurrent use.
type Builder struct {
	sorted    []Piece
	generated int
}

// FromExport sorts the scene pieces by priority, then id. Invalid scenes
// are rejected as a whole.
func FromExport(e *scene.Export) (*Builder, error) {
	if e == nil {
		return nil, errors.New("no scene to play back")
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}

	sorted := make([]Piece, len(e.Scene.Pieces))
	for i, p := range e.Scene.Pieces {
		rgb, err := scene.ParseHexColor(p.Color)
		if err != nil {
			return nil, fmt.Errorf("piece %d: %w", p.ID, err)
		}
		sorted[i] = Piece{
			ID:        p.ID,
			Priority:  p.Priority,
			Direction: p.Direction,
			HelpText:  p.HelpText,
			Enabled:   p.Enabled,
			Color:     p.Color,
			RGB:       rgb,
			Vertices:  p.Mesh.Vertices,
			Faces:     p.Mesh.Faces,
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority < sorted[j].Priority
		}
		return sorted[i].ID < sorted[j].ID
	})

	return &Builder{sorted: sorted}, nil
}

// Total returns the number of pieces in the scene
func (b *Builder) Total() int {
	return len(b.sorted)
}

// Generated returns how many pieces are revealed
func (b *Builder) Generated() int {
	return b.generated
}

// Pieces returns the pieces in playback order
func (b *Builder) Pieces() []Piece {
	out := make([]Piece, len(b.sorted))
	copy(out, b.sorted)
	return out
}

// Last returns the most recently revealed piece
func (b *Builder) Last() (Piece, bool) {
	if b.generated == 0 {
		return Piece{}, false
	}
	return b.sorted[b.generated-1], true
}

// StepForward reveals the next piece. At the end it returns false and
// leaves the prefix unchanged.
func (b *Builder) StepForward() (*Buffer, bool) {
	if b.generated >= len(b.sorted) {
		return nil, false
	}
	b.generated++
	return b.Current(), true
}

// StepBackward hides the last revealed piece. With nothing revealed it
// returns false.
func (b *Builder) StepBackward() (*Buffer, bool) {
	if b.generated <= 0 {
		return nil, false
	}
	b.generated--
	return b.Current(), true
}

// ShowAll reveals every piece
func (b *Builder) ShowAll() *Buffer {
	b.generated = len(b.sorted)
	return b.Current()
}

// Reset hides every piece
func (b *Builder) Reset() *Buffer {
	b.generated = 0
	return b.Current()
}

// Current rebuilds the buffer for the revealed prefix
func (b *Builder) Current() *Buffer {
	return combine(b.sorted[:b.generated])
}

// Opacity is the fade weight of the piece at position idx of a prefix of
// length generated. Older pieces are more transparent.
func Opacity(idx, generated int) float64 {
	if generated <= 0 {
		return 0
	}
	return math.Min(0.9, 0.3+(float64(idx)/float64(generated))*0.6)
}
