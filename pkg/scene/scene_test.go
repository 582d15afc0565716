package scene

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/stlpieces/pkg/mesh"
	"github.com/philipparndt/stlpieces/pkg/pieces"
)

func testComponents() []mesh.Component {
	return []mesh.Component{
		{
			ID:       0,
			Vertices: [][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}},
			Faces:    [][3]int{{0, 1, 2}, {1, 3, 2}},
		},
		{
			ID:       1,
			Vertices: [][3]float64{{5, 0, 0}, {6, 0, 0}, {5, 1, 0}},
			Faces:    [][3]int{{0, 1, 2}},
		},
	}
}

func testExport(t *testing.T) *Export {
	t.Helper()
	comps := testComponents()
	configs := pieces.Initialize(comps)
	configs[1].Annotation = "pieza pequeña"
	configs[1].Priority = 0
	configs[0].Enabled = false

	e, err := Build(configs, comps)
	require.NoError(t, err)
	return e
}

func TestBuild(t *testing.T) {
	e := testExport(t)

	assert.Equal(t, 2, e.Scene.TotalPieces)
	require.Len(t, e.Scene.Pieces, 2)

	p := e.Scene.Pieces[1]
	assert.Equal(t, 1, p.ID)
	assert.Equal(t, "de abajo hacia arriba", p.Direction)
	assert.Equal(t, []float64{5, 6, 5}, p.Position.X)
	assert.Equal(t, p.Mesh.Vertices[2][1], p.Position.Y[2])
	assert.Equal(t, "#4ECDC4", p.Color)
	assert.Equal(t, 0, p.Priority)
	assert.Equal(t, "pieza pequeña", p.HelpText)
	assert.False(t, e.Scene.Pieces[0].Enabled)
	assert.NoError(t, e.Validate())
}

func TestBuildMissingComponent(t *testing.T) {
	configs := pieces.Initialize(testComponents())
	_, err := Build(configs, testComponents()[:1])
	assert.Error(t, err)
}

func TestEncodeWireFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, testExport(t)))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `{"scene_configuration":{"total_pieces":2,"pieces":[{"id":0,`))
	assert.Contains(t, out, `"position":{"x":[0,1,0,1],"y":[0,0,1,1],"z":[0,0,0,0]}`)
	assert.Contains(t, out, `"rotation":{"x":0,"y":0,"z":0}`)
	assert.Contains(t, out, `"mesh":{"vertices":[[5,0,0],[6,0,0],[5,1,0]],"faces":[[0,1,2]]}`)
	assert.Contains(t, out, `"help_text":"pieza pequeña"`)

	var generic map[string]map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &generic))
	assert.Len(t, generic["scene_configuration"]["pieces"], 2)
}

func TestDecodeRoundTrip(t *testing.T) {
	e := testExport(t)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, e))

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, e, decoded)
}

func TestDecodeRejectsMalformed(t *testing.T) {
	piece := func(mesh, extra string) string {
		return `{"id":0,"direction":"de abajo hacia arriba","position":{"x":[0,1,0],"y":[0,0,1],"z":[0,0,0]},` +
			`"rotation":{"x":0,"y":0,"z":0},"color":"#FF6B6B","enabled":true,` + mesh + `,"priority":0,"help_text":""` + extra + `}`
	}
	doc := func(total int, p string) string {
		return `{"scene_configuration":{"total_pieces":` + strconv.Itoa(total) + `,"pieces":[` + p + `]}}`
	}
	good := `"mesh":{"vertices":[[0,0,0],[1,0,0],[0,1,0]],"faces":[[0,1,2]]}`

	_, err := Decode(strings.NewReader(doc(1, piece(good, ""))))
	require.NoError(t, err)

	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"scene_configuration":`},
		{"missing root", `{"pieces":[]}`},
		{"count mismatch", doc(2, piece(good, ""))},
		{"short vertex", doc(1, piece(`"mesh":{"vertices":[[0,0],[1,0,0],[0,1,0]],"faces":[[0,1,2]]}`, ""))},
		{"long face", doc(1, piece(`"mesh":{"vertices":[[0,0,0],[1,0,0],[0,1,0]],"faces":[[0,1,2,0]]}`, ""))},
		{"fractional face", doc(1, piece(`"mesh":{"vertices":[[0,0,0],[1,0,0],[0,1,0]],"faces":[[0,1.5,2]]}`, ""))},
		{"face out of range", doc(1, piece(`"mesh":{"vertices":[[0,0,0],[1,0,0],[0,1,0]],"faces":[[0,1,3]]}`, ""))},
		{"missing mesh", doc(1, piece(`"mesh":{}`, ""))},
		{"unknown direction", strings.Replace(doc(1, piece(good, "")), "de abajo hacia arriba", "sideways", 1)},
		{"bad color", strings.Replace(doc(1, piece(good, "")), "#FF6B6B", "red", 1)},
		{"position mismatch", strings.Replace(doc(1, piece(good, "")), `"x":[0,1,0]`, `"x":[0,1]`, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.data))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestDecodeUnknownDirectionIsDirectionError(t *testing.T) {
	e := testExport(t)
	e.Scene.Pieces[1].Direction = "sideways"

	err := e.Validate()
	assert.ErrorIs(t, err, ErrMalformed)
	assert.ErrorIs(t, err, pieces.ErrUnknownDirection)
}

func TestBuildCountsListedPieces(t *testing.T) {
	comps := testComponents()
	configs := pieces.Initialize(comps)[1:]

	e, err := Build(configs, comps)
	require.NoError(t, err)
	assert.Equal(t, 1, e.Scene.TotalPieces)
	require.NoError(t, e.Validate())

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, e))
	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1, decoded.Scene.TotalPieces)
}

func TestCompressedRoundTrip(t *testing.T) {
	e := testExport(t)

	var buf bytes.Buffer
	require.NoError(t, EncodeCompressed(&buf, e))
	assert.Equal(t, zstdMagic, buf.Bytes()[:4])

	decoded, err := DecodeAuto(&buf)
	require.NoError(t, err)
	assert.Equal(t, e, decoded)
}

func TestRead(t *testing.T) {
	e := testExport(t)
	dir := t.TempDir()

	for _, name := range []string{"scene.json", "scene.json.zst"} {
		path := filepath.Join(dir, name)
		var buf bytes.Buffer
		if IsCompressedPath(name) {
			require.NoError(t, EncodeCompressed(&buf, e))
		} else {
			require.NoError(t, Encode(&buf, e))
		}
		require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

		loaded, err := Read(path)
		require.NoError(t, err)
		assert.Equal(t, e, loaded, name)
	}

	_, err := Read(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestParseHexColor(t *testing.T) {
	rgb, err := ParseHexColor("#FF6B6B")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, rgb[0], 1e-12)
	assert.InDelta(t, 107.0/255.0, rgb[1], 1e-12)
	assert.InDelta(t, 107.0/255.0, rgb[2], 1e-12)

	for _, bad := range []string{"", "FF6B6B", "#FF6B6", "#GG0000", "#FF6B6B00"} {
		_, err := ParseHexColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestReport(t *testing.T) {
	e := testExport(t)
	e.Scene.Pieces[0].HelpText = "  \n"

	report := Report(e)
	require.Len(t, report, 2)

	assert.Equal(t, Summary{
		Index:     0,
		ID:        0,
		Priority:  0,
		Direction: "de abajo hacia arriba",
		Faces:     len(e.Scene.Pieces[0].Mesh.Faces),
	}, report[0])
	assert.True(t, report[1].HasHelpText)
	assert.True(t, report[1].Enabled)
	assert.Equal(t, 1, report[1].ID)
}
