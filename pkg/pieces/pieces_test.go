package pieces

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/stlpieces/pkg/geometry"
	"github.com/philipparndt/stlpieces/pkg/mesh"
)

func intPtr(i int) *int             { return &i }
func strPtr(s string) *string       { return &s }
func dirPtr(d Direction) *Direction { return &d }

func components(n int) []mesh.Component {
	out := make([]mesh.Component, n)
	for i := range out {
		out[i] = mesh.Component{
			ID:       i,
			Vertices: [][3]float64{{float64(i), 0, 0}, {float64(i) + 1, 0, 0}, {float64(i), 1, 0}},
			Faces:    [][3]int{{0, 1, 2}},
		}
	}
	return out
}

func TestInitialize(t *testing.T) {
	for _, n := range []int{0, 1, 5, 13} {
		configs := Initialize(components(n))
		require.Len(t, configs, n)

		for i, c := range configs {
			assert.Equal(t, i, c.ID)
			assert.Equal(t, i, c.Priority)
			assert.True(t, c.Enabled)
			assert.Equal(t, BottomUp, c.Direction)
			assert.Equal(t, Palette[i%len(Palette)], c.Color)
			assert.Empty(t, c.Annotation)
			assert.Equal(t, []float64{float64(i), float64(i) + 1, float64(i)}, c.Final.X)
			assert.Zero(t, c.Final.RotationX)
		}
	}
}

func TestColorFor(t *testing.T) {
	assert.Equal(t, "#FF6B6B", ColorFor(0))
	assert.Equal(t, "#4ECDC4", ColorFor(1))
	assert.Equal(t, "#FF6B6B", ColorFor(11))
	assert.Equal(t, "#FF6B6B", ColorFor(12))
	assert.Equal(t, "#4ECDC4", ColorFor(13))
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions() {
		parsed, err := ParseDirection(string(d))
		require.NoError(t, err)
		assert.Equal(t, d, parsed)
	}

	_, err := ParseDirection("bottom up")
	assert.ErrorIs(t, err, ErrUnknownDirection)
	assert.Len(t, Directions(), 4)
	assert.Equal(t, Direction("de abajo hacia arriba"), Directions()[0])
}

func TestSelectPiece(t *testing.T) {
	tests := []struct {
		name      string
		requested *int
		click     *Click
		fallback  int
		want      int
	}{
		{"click wins over request", intPtr(1), &Click{Piece: 3}, 2, 3},
		{"unresolved click selects first", intPtr(1), &Click{Piece: -1}, 2, 0},
		{"out of range click selects first", nil, &Click{Piece: 10}, 2, 0},
		{"request without click", intPtr(1), nil, 2, 1},
		{"fallback", nil, nil, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectPiece(4, tt.requested, tt.click, tt.fallback))
		})
	}
}

func TestClickOnFace(t *testing.T) {
	comps := components(3)
	assert.Equal(t, 2, ClickOnFace(comps, 2).Piece)
	assert.Equal(t, -1, ClickOnFace(comps, 3).Piece)
	assert.Equal(t, 1, SelectPiece(3, intPtr(0), ClickOnTrace(1), 0))
}

func TestSetDirectionIsNoOpWhenUnchanged(t *testing.T) {
	c := Initialize(components(1))[0]

	same, changed := SetDirection(c, BottomUp)
	assert.False(t, changed)
	assert.Equal(t, c, same)

	next, changed := SetDirection(c, TopDown)
	assert.True(t, changed)
	assert.Equal(t, TopDown, next.Direction)
}

func TestSetPriorityIsNeverNoOp(t *testing.T) {
	c := Initialize(components(3))[2]

	next, updated := SetPriority(c, c.Priority)
	assert.True(t, updated)
	assert.Equal(t, 2, next.Priority)

	next, updated = SetPriority(c, 7)
	assert.True(t, updated)
	assert.Equal(t, 7, next.Priority)
}

func TestToggleEnabled(t *testing.T) {
	c := Initialize(components(2))[1]

	hidden, notice := ToggleEnabled(c)
	assert.False(t, hidden.Enabled)
	assert.Equal(t, "*Pieza 2 oculta", notice)

	shown, notice := ToggleEnabled(hidden)
	assert.True(t, shown.Enabled)
	assert.Equal(t, "*Pieza 2 visible", notice)
}

func TestSave(t *testing.T) {
	c := Initialize(components(2))[1]

	tests := []struct {
		name      string
		direction Direction
		priority  int
		changed   bool
	}{
		{"identical", BottomUp, 1, false},
		{"direction only", LeftToRight, 1, true},
		{"priority only", BottomUp, 5, true},
		{"both", TopDown, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, changed := Save(c, tt.direction, tt.priority)
			assert.Equal(t, tt.changed, changed)
			assert.Equal(t, tt.direction, next.Direction)
			assert.Equal(t, tt.priority, next.Priority)
		})
	}
}

func TestSetAnnotation(t *testing.T) {
	c := Initialize(components(1))[0]

	c = SetAnnotation(c, strPtr("fragile"))
	assert.Equal(t, "fragile", c.Annotation)

	c = SetAnnotation(c, nil)
	assert.Equal(t, "fragile", c.Annotation)

	c = SetAnnotation(c, strPtr(""))
	assert.Empty(t, c.Annotation)
}

func TestResolveCamera(t *testing.T) {
	stored := &Camera{Up: geometry.NewVector3(0, 0, 1), Eye: geometry.NewVector3(3, 0, 0)}
	incoming := &Camera{Up: geometry.NewVector3(0, 1, 0), Eye: geometry.NewVector3(0, 0, 5)}

	assert.Equal(t, *incoming, ResolveCamera(TriggerViewport, incoming, stored))
	assert.Equal(t, *stored, ResolveCamera(TriggerViewport, nil, stored))
	assert.Equal(t, *stored, ResolveCamera(TriggerSave, incoming, stored))
	assert.Equal(t, DefaultCamera(), ResolveCamera(TriggerToggle, nil, nil))
	assert.Equal(t, geometry.NewVector3(1.5, 1.5, 1.5), DefaultCamera().Eye)
}

func TestHighlightOpacity(t *testing.T) {
	assert.Equal(t, 1.0, HighlightOpacity(2, 0, false))
	assert.Equal(t, 1.0, HighlightOpacity(2, 2, true))
	assert.Equal(t, 0.7, HighlightOpacity(1, 2, true))
}
