package pieces

import "github.com/philipparndt/stlpieces/pkg/mesh"

// Click is a pick in the 3D view. Piece is the index of the piece that was
// hit, or -1 when the pick could not be mapped to a piece.
type Click struct {
	Piece int
}

// ClickOnTrace builds a click from a trace number. Each piece is drawn as
// one trace, so the trace number is the piece index.
func ClickOnTrace(trace int) *Click {
	return &Click{Piece: trace}
}

// ClickOnFace builds a click from a face index into the concatenation of
// all component faces.
func ClickOnFace(components []mesh.Component, face int) *Click {
	owner, ok := mesh.FaceOwner(components, face)
	if !ok {
		return &Click{Piece: -1}
	}
	return &Click{Piece: owner}
}

// SelectPiece resolves which piece becomes selected. A click wins, and a
// click that does not resolve to one of count pieces selects piece 0. Without
// a click the requested index is used, and without that the fallback.
func SelectPiece(count int, requested *int, click *Click, fallback int) int {
	if click != nil {
		if click.Piece < 0 || click.Piece >= count {
			return 0
		}
		return click.Piece
	}
	if requested != nil {
		return *requested
	}
	return fallback
}
