package viewer

import (
	"image/color"

	"github.com/philipparndt/stlpieces/pkg/geometry"
	"github.com/philipparndt/stlpieces/pkg/mesh"
	"github.com/philipparndt/stlpieces/pkg/pieces"
	"github.com/philipparndt/stlpieces/pkg/playback"
	"github.com/philipparndt/stlpieces/pkg/scene"
)

var fallbackColor = color.RGBA{R: 160, G: 160, B: 160, A: 255}

// Face is one flat colored triangle of a frame
type Face struct {
	V     [3]geometry.Vector3
	Color color.RGBA
	Alpha float64
	// Piece is the piece index for configurator frames and the piece id
	// for playback frames
	Piece int
}

// Frame is everything drawn in one view
type Frame struct {
	Faces []Face
}

// Bounds returns the bounding box of all faces
func (f *Frame) Bounds() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, face := range f.Faces {
		for _, v := range face.V {
			bbox.Extend(v)
		}
	}
	return bbox
}

// FrameFromPieces draws the configurator view. Hidden pieces are left
// out and pieces other than the selected one are dimmed.
func FrameFromPieces(components []mesh.Component, configs []pieces.Config, selected int, hasSelection bool) *Frame {
	frame := &Frame{}
	for i, comp := range components {
		col := fallbackColor
		alpha := pieces.HighlightOpacity(i, selected, hasSelection)
		if i < len(configs) {
			if !configs[i].Enabled {
				continue
			}
			if rgb, err := scene.ParseHexColor(configs[i].Color); err == nil {
				col = toRGBA(rgb)
			}
		}

		for f := range comp.Faces {
			frame.Faces = append(frame.Faces, Face{
				V:     comp.Triangle(f).Vertices(),
				Color: col,
				Alpha: alpha,
				Piece: i,
			})
		}
	}
	return frame
}

// FrameFromBuffer draws a playback buffer with its fade opacities
func FrameFromBuffer(b *playback.Buffer) *Frame {
	frame := &Frame{Faces: make([]Face, 0, b.FaceCount())}
	pos := 0
	for f := 0; f < b.FaceCount(); f++ {
		for pos+1 < len(b.FaceOffsets) && f >= b.FaceOffsets[pos+1] {
			pos++
		}

		idx := b.Face(f)
		frame.Faces = append(frame.Faces, Face{
			V: [3]geometry.Vector3{
				geometry.FromArray(b.Vertex(idx[0])),
				geometry.FromArray(b.Vertex(idx[1])),
				geometry.FromArray(b.Vertex(idx[2])),
			},
			Color: toRGBA(b.FaceColors[f]),
			Alpha: b.Opacity[pos],
			Piece: b.PieceIDs[pos],
		})
	}
	return frame
}

// ParseBackground converts a "#RRGGBB" setting into an opaque color
func ParseBackground(hex string) (color.RGBA, error) {
	rgb, err := scene.ParseHexColor(hex)
	if err != nil {
		return color.RGBA{}, err
	}
	return toRGBA(rgb), nil
}

func toRGBA(rgb [3]float64) color.RGBA {
	return color.RGBA{
		R: uint8(rgb[0]*255 + 0.5),
		G: uint8(rgb[1]*255 + 0.5),
		B: uint8(rgb[2]*255 + 0.5),
		A: 255,
	}
}
