// Package glb exports playback buffers as binary glTF.
package glb

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/philipparndt/stlpieces/internal/logger"
	"github.com/philipparndt/stlpieces/pkg/playback"
)

// ErrEmpty is returned when no piece is revealed
var ErrEmpty = errors.New("nothing to export")

// Build converts a buffer into a glTF document with one mesh and node per
// piece. Vertices are duplicated per face so every face keeps a flat normal
// and color; the piece opacity goes into the color alpha.
func Build(b *playback.Buffer) (*gltf.Document, error) {
	if b == nil || b.IsEmpty() {
		return nil, ErrEmpty
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "stlpieces"

	blend := false
	for _, o := range b.Opacity {
		if o < 1 {
			blend = true
		}
	}

	pbr := &gltf.PBRMetallicRoughness{
		BaseColorFactor: &[4]float32{1, 1, 1, 1},
		MetallicFactor:  gltf.Float(0),
		RoughnessFactor: gltf.Float(1),
	}
	material := &gltf.Material{PBRMetallicRoughness: pbr, AlphaMode: gltf.AlphaOpaque, DoubleSided: true}
	if blend {
		material.AlphaMode = gltf.AlphaBlend
	}
	doc.Materials = []*gltf.Material{material}

	for pos, id := range b.PieceIDs {
		first := b.FaceOffsets[pos]
		last := b.FaceCount()
		if pos+1 < len(b.FaceOffsets) {
			last = b.FaceOffsets[pos+1]
		}

		n := (last - first) * 3
		positions := make([][3]float32, 0, n)
		normals := make([][3]float32, 0, n)
		colors := make([][4]float32, 0, n)
		indices := make([]uint32, 0, n)

		for f := first; f < last; f++ {
			idx := b.Face(f)
			var tri [3][3]float32
			for k, vi := range idx {
				v := b.Vertex(vi)
				tri[k] = [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
			}
			normal := faceNormal(tri)
			rgb := b.FaceColors[f]
			col := [4]float32{float32(rgb[0]), float32(rgb[1]), float32(rgb[2]), float32(b.Opacity[pos])}

			for k := range tri {
				indices = append(indices, uint32(len(positions)))
				positions = append(positions, tri[k])
				normals = append(normals, normal)
				colors = append(colors, col)
			}
		}

		prim := &gltf.Primitive{
			Attributes: map[string]uint32{
				gltf.POSITION: uint32(modeler.WritePosition(doc, positions)),
				gltf.NORMAL:   uint32(modeler.WriteNormal(doc, normals)),
				gltf.COLOR_0:  uint32(modeler.WriteColor(doc, colors)),
			},
			Indices:  gltf.Index(uint32(modeler.WriteIndices(doc, indices))),
			Material: gltf.Index(0),
		}

		name := fmt.Sprintf("piece-%d", id)
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: name, Primitives: []*gltf.Primitive{prim}})
		doc.Nodes = append(doc.Nodes, &gltf.Node{Name: name, Mesh: gltf.Index(uint32(len(doc.Meshes) - 1))})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))
	}

	return doc, nil
}

// Encode writes the buffer as GLB
func Encode(w io.Writer, b *playback.Buffer) error {
	doc, err := Build(b)
	if err != nil {
		return err
	}

	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode glb: %w", err)
	}
	logger.Debug("glb encoded",
		zap.Int("pieces", b.PieceCount()),
		zap.Int("faces", b.FaceCount()))
	return nil
}

func faceNormal(p [3][3]float32) [3]float32 {
	u := [3]float32{p[1][0] - p[0][0], p[1][1] - p[0][1], p[1][2] - p[0][2]}
	v := [3]float32{p[2][0] - p[0][0], p[2][1] - p[0][1], p[2][2] - p[0][2]}
	cross := [3]float32{
		u[1]*v[2] - u[2]*v[1],
		u[2]*v[0] - u[0]*v[2],
		u[0]*v[1] - u[1]*v[0],
	}
	length := float32(math.Sqrt(float64(cross[0]*cross[0] + cross[1]*cross[1] + cross[2]*cross[2])))
	if length > 0 {
		cross[0] /= length
		cross[1] /= length
		cross[2] /= length
	}
	return cross
}
