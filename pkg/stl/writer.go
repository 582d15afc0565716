package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/philipparndt/stlpieces/pkg/geometry"
)

// WriteBinary encodes the model as a binary STL document
func (m *Model) WriteBinary(w io.Writer) error {
	bw := bufio.NewWriter(w)

	header := make([]byte, binaryHeaderSize)
	copy(header, m.Name)
	if _, err := bw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if err := binary.Write(bw, binary.LittleEndian, uint32(len(m.Triangles))); err != nil {
		return fmt.Errorf("failed to write triangle count: %w", err)
	}

	for i, tri := range m.Triangles {
		normal := tri.Normal
		if normal == (geometry.Vector3{}) {
			normal = tri.CalculateNormal()
		}
		facet := binaryFacet{
			Normal: float32s(normal),
			V1:     float32s(tri.V1),
			V2:     float32s(tri.V2),
			V3:     float32s(tri.V3),
		}
		if err := binary.Write(bw, binary.LittleEndian, &facet); err != nil {
			return fmt.Errorf("failed to write triangle %d: %w", i, err)
		}
	}

	return bw.Flush()
}

// WriteFile writes the model as binary STL to filename
func (m *Model) WriteFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := m.WriteBinary(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func float32s(v geometry.Vector3) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
