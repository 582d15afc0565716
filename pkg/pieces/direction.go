package pieces

import (
	"errors"
	"fmt"
)

// Direction is the build direction a piece travels in when it is placed.
// The values are part of the scene wire format and must not be translated.
type Direction string

const (
	BottomUp    Direction = "de abajo hacia arriba"
	RightToLeft Direction = "de derecha a izquierda"
	LeftToRight Direction = "de izquierda a derecha"
	TopDown     Direction = "de arriba hacia abajo"
)

// DefaultDirection is assigned to every new piece
const DefaultDirection = BottomUp

// ErrUnknownDirection is returned for strings outside the fixed direction set
var ErrUnknownDirection = errors.New("unknown direction")

var directions = []Direction{BottomUp, RightToLeft, LeftToRight, TopDown}

// Directions lists the valid directions in display order
func Directions() []Direction {
	out := make([]Direction, len(directions))
	copy(out, directions)
	return out
}

// ParseDirection validates a direction string
func ParseDirection(s string) (Direction, error) {
	for _, d := range directions {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// Valid reports whether d is one of the fixed directions
func (d Direction) Valid() bool {
	_, err := ParseDirection(string(d))
	return err == nil
}
