package playback

// Buffer is the merged mesh of a prefix of pieces. Vertex positions are
// concatenated in prefix order and face indices are rebased onto them.
type Buffer struct {
	X, Y, Z []float64
	I, J, K []int
	// FaceColors holds one normalized RGB triple per face
	FaceColors [][3]float64
	// Per piece of the prefix, in prefix order
	PieceIDs      []int
	Opacity       []float64
	VertexOffsets []int
	FaceOffsets   []int
}

// VertexCount returns the number of merged vertices
func (b *Buffer) VertexCount() int {
	return len(b.X)
}

// FaceCount returns the number of merged faces
func (b *Buffer) FaceCount() int {
	return len(b.I)
}

// PieceCount returns the number of pieces in the buffer
func (b *Buffer) PieceCount() int {
	return len(b.PieceIDs)
}

// IsEmpty reports whether nothing is revealed
func (b *Buffer) IsEmpty() bool {
	return len(b.PieceIDs) == 0
}

// Vertex returns merged vertex i
func (b *Buffer) Vertex(i int) [3]float64 {
	return [3]float64{b.X[i], b.Y[i], b.Z[i]}
}

// Face returns merged face f
func (b *Buffer) Face(f int) [3]int {
	return [3]int{b.I[f], b.J[f], b.K[f]}
}

// FacePiece returns the prefix position of the piece that owns face f
func (b *Buffer) FacePiece(f int) int {
	if f < 0 || f >= b.FaceCount() {
		return -1
	}
	owner := 0
	for idx, start := range b.FaceOffsets {
		if f >= start {
			owner = idx
		}
	}
	return owner
}

func combine(prefix []Piece) *Buffer {
	buf := &Buffer{
		X:             []float64{},
		Y:             []float64{},
		Z:             []float64{},
		I:             []int{},
		J:             []int{},
		K:             []int{},
		FaceColors:    [][3]float64{},
		PieceIDs:      make([]int, 0, len(prefix)),
		Opacity:       make([]float64, 0, len(prefix)),
		VertexOffsets: make([]int, 0, len(prefix)),
		FaceOffsets:   make([]int, 0, len(prefix)),
	}

	offset := 0
	for idx, p := range prefix {
		buf.PieceIDs = append(buf.PieceIDs, p.ID)
		buf.Opacity = append(buf.Opacity, Opacity(idx, len(prefix)))
		buf.VertexOffsets = append(buf.VertexOffsets, offset)
		buf.FaceOffsets = append(buf.FaceOffsets, len(buf.I))

		for _, v := range p.Vertices {
			buf.X = append(buf.X, v[0])
			buf.Y = append(buf.Y, v[1])
			buf.Z = append(buf.Z, v[2])
		}

		for _, f := range p.Faces {
			buf.I = append(buf.I, f[0]+offset)
			buf.J = append(buf.J, f[1]+offset)
			buf.K = append(buf.K, f[2]+offset)
			buf.FaceColors = append(buf.FaceColors, p.RGB)
		}

		offset += len(p.Vertices)
	}

	return buf
}
