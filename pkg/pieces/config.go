// Package pieces holds the per-piece build configuration and the rules that
// evolve it in response to user actions.
package pieces

import (
	"fmt"

	"github.com/philipparndt/stlpieces/pkg/mesh"
)

// Palette assigns piece colors by id. The last entry repeats the first.
var Palette = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#FDCB6E",
	"#6C5CE7", "#A8E6CF", "#FF8ED4", "#FAD390",
	"#55E6C1", "#5F27CD", "#48DBFB", "#FF6B6B",
}

// ColorFor returns the palette color of a piece id
func ColorFor(id int) string {
	n := len(Palette)
	return Palette[((id%n)+n)%n]
}

// FinalCoordinates is the placed position of a piece: its vertex columns and
// a rotation in degrees around each axis.
type FinalCoordinates struct {
	X         []float64 `json:"x"`
	Y         []float64 `json:"y"`
	Z         []float64 `json:"z"`
	RotationX float64   `json:"rotation_x"`
	RotationY float64   `json:"rotation_y"`
	RotationZ float64   `json:"rotation_z"`
}

// Config is the editable configuration of one piece. ID equals the id of
// the component it describes.
type Config struct {
	ID         int              `json:"id"`
	Direction  Direction        `json:"direction"`
	Priority   int              `json:"priority"`
	Enabled    bool             `json:"enabled"`
	Color      string           `json:"color"`
	Annotation string           `json:"help_text"`
	Final      FinalCoordinates `json:"final_coordinates"`
}

// NewConfig creates the default configuration for a component
func NewConfig(c mesh.Component) Config {
	x, y, z := c.Columns()
	return Config{
		ID:        c.ID,
		Direction: DefaultDirection,
		Priority:  c.ID,
		Enabled:   true,
		Color:     ColorFor(c.ID),
		Final:     FinalCoordinates{X: x, Y: y, Z: z},
	}
}

// Initialize creates one default configuration per component, in order
func Initialize(components []mesh.Component) []Config {
	configs := make([]Config, len(components))
	for i, c := range components {
		configs[i] = NewConfig(c)
	}
	return configs
}

// Label is the user-facing name of the piece at index
func Label(index int) string {
	return fmt.Sprintf("Pieza %d", index+1)
}

// SetDirection updates the direction. It is a no-op, reporting false, when
// the direction is unchanged.
func SetDirection(c Config, d Direction) (Config, bool) {
	if c.Direction == d {
		return c, false
	}
	c.Direction = d
	return c, true
}

// SetPriority updates the priority. Unlike SetDirection it is always
// applied and always reports an update, even for the current value.
func SetPriority(c Config, priority int) (Config, bool) {
	c.Priority = priority
	return c, true
}

// ToggleEnabled flips visibility and returns the status notice for it
func ToggleEnabled(c Config) (Config, string) {
	c.Enabled = !c.Enabled
	state := "visible"
	if !c.Enabled {
		state = "oculta"
	}
	return c, fmt.Sprintf("*%s %s", Label(c.ID), state)
}

// Save applies direction and priority together. changed reports whether
// either differs from the values before the call.
func Save(c Config, d Direction, priority int) (Config, bool) {
	before := c
	c, _ = SetDirection(c, d)
	c, _ = SetPriority(c, priority)
	return c, c.Direction != before.Direction || c.Priority != before.Priority
}

// SetAnnotation stores the help text. A nil text leaves the annotation
// alone; an empty string clears it.
func SetAnnotation(c Config, text *string) Config {
	if text != nil {
		c.Annotation = *text
	}
	return c
}

// ModifiedNotice is shown after a save that changed something
func ModifiedNotice(index int) string {
	return fmt.Sprintf("*%s modificada", Label(index))
}

// HighlightOpacity is the draw opacity of a piece while another may be selected
func HighlightOpacity(index, selected int, hasSelection bool) float64 {
	if hasSelection && index != selected {
		return 0.7
	}
	return 1.0
}
