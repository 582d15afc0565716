package pieces

import (
	"errors"
	"fmt"
)

// ErrPieceOutOfRange is returned when an action names a piece that does not exist
var ErrPieceOutOfRange = errors.New("piece index out of range")

// Trigger names the control that started an update cycle
type Trigger int

const (
	TriggerNone Trigger = iota
	TriggerSelect
	TriggerDirection
	TriggerPriority
	TriggerAnnotation
	TriggerSave
	TriggerToggle
	TriggerViewport
)

func (t Trigger) String() string {
	switch t {
	case TriggerSelect:
		return "select"
	case TriggerDirection:
		return "direction"
	case TriggerPriority:
		return "priority"
	case TriggerAnnotation:
		return "annotation"
	case TriggerSave:
		return "save"
	case TriggerToggle:
		return "toggle"
	case TriggerViewport:
		return "viewport"
	default:
		return "none"
	}
}

// Action is one user interaction. Nil fields carry no input.
type Action struct {
	Trigger    Trigger
	Piece      *int
	Click      *Click
	Direction  *Direction
	Priority   *int
	Annotation *string
	Camera     *Camera
}

// Result is what the panel shows after an update cycle
type Result struct {
	Selected   int
	Direction  Direction
	Priority   int
	Annotation string
	Notice     string
	Camera     Camera
	// Updated reports whether any configuration was written. With pieces
	// present the priority is written on every cycle.
	Updated bool
}

// Store owns the piece configurations of one session together with the
// selected piece and the last camera orientation. A direction picked for
// the selected piece stays staged until it is saved or another piece is
// selected. It is not safe for concurrent use; each session owns its store.
type Store struct {
	configs      []Config
	selected     int
	hasSelection bool
	staged       *Direction
	camera       *Camera
}

// NewStore wraps an initial configuration list
func NewStore(configs []Config) *Store {
	return &Store{configs: cloneConfigs(configs)}
}

// RestoreStore rebuilds a store from persisted state
func RestoreStore(configs []Config, selected int, camera *Camera) *Store {
	s := NewStore(configs)
	if selected >= 0 && selected < len(configs) {
		s.selected = selected
		s.hasSelection = true
	}
	if camera != nil {
		cam := *camera
		s.camera = &cam
	}
	return s
}

// Len returns the number of pieces
func (s *Store) Len() int {
	return len(s.configs)
}

// Configs returns a copy of all configurations
func (s *Store) Configs() []Config {
	return cloneConfigs(s.configs)
}

// Config returns the configuration at index
func (s *Store) Config(index int) (Config, bool) {
	if index < 0 || index >= len(s.configs) {
		return Config{}, false
	}
	return s.configs[index], true
}

// Selected returns the selected piece and whether one was ever selected
func (s *Store) Selected() (int, bool) {
	return s.selected, s.hasSelection
}

// Camera returns the stored camera or the default one
func (s *Store) Camera() Camera {
	return ResolveCamera(TriggerNone, nil, s.camera)
}

// Update runs one update cycle: resolve the selected piece, resolve the
// camera, apply the action and compute the notice. The store is only
// written when the whole cycle succeeds.
func (s *Store) Update(a Action) (Result, error) {
	camera := ResolveCamera(a.Trigger, a.Camera, s.camera)

	if len(s.configs) == 0 {
		s.camera = &camera
		return Result{Camera: camera}, nil
	}

	var click *Click
	if a.Trigger == TriggerViewport {
		click = a.Click
	}
	selected := SelectPiece(len(s.configs), a.Piece, click, s.selected)
	if selected < 0 || selected >= len(s.configs) {
		return Result{}, fmt.Errorf("%w: %d of %d", ErrPieceOutOfRange, selected, len(s.configs))
	}

	piece := s.configs[selected]

	var staged *Direction
	if s.hasSelection && selected == s.selected {
		staged = s.staged
	}

	direction := piece.Direction
	if staged != nil {
		direction = *staged
	}
	if a.Direction != nil {
		if !a.Direction.Valid() {
			return Result{}, fmt.Errorf("%w: %q", ErrUnknownDirection, string(*a.Direction))
		}
		direction = *a.Direction
	}

	priority := piece.Priority
	if a.Priority != nil {
		priority = *a.Priority
	}

	before := piece
	piece, updated := SetPriority(piece, priority)

	var notice string
	switch a.Trigger {
	case TriggerToggle:
		piece, notice = ToggleEnabled(piece)
	case TriggerSave:
		var changed bool
		piece, changed = Save(before, direction, priority)
		if changed {
			notice = ModifiedNotice(selected)
		}
	case TriggerAnnotation:
		if a.Annotation != nil {
			piece = SetAnnotation(piece, a.Annotation)
		}
	}

	staged = nil
	if direction != piece.Direction {
		staged = &direction
	}

	if updated {
		next := cloneConfigs(s.configs)
		next[selected] = piece
		s.configs = next
	}
	s.selected = selected
	s.hasSelection = true
	s.staged = staged
	s.camera = &camera

	return Result{
		Selected:   selected,
		Direction:  direction,
		Priority:   priority,
		Annotation: piece.Annotation,
		Notice:     notice,
		Camera:     camera,
		Updated:    updated,
	}, nil
}

func cloneConfigs(configs []Config) []Config {
	if configs == nil {
		return nil
	}
	out := make([]Config, len(configs))
	copy(out, configs)
	return out
}
