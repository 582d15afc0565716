package playback

import "fmt"

// Step names a playback control
type Step int

const (
	StepForward Step = iota
	StepBackward
	StepAll
	StepReset
)

// ParseStep accepts the short names used on the command line
func ParseStep(s string) (Step, error) {
	switch s {
	case "f", "next", "forward":
		return StepForward, nil
	case "b", "prev", "back", "backward":
		return StepBackward, nil
	case "all", "complete":
		return StepAll, nil
	case "reset", "0":
		return StepReset, nil
	}
	return 0, fmt.Errorf("unknown playback step %q", s)
}

// Apply runs one step. The bool is false when a step hit a boundary and
// nothing changed.
func (b *Builder) Apply(step Step) (*Buffer, bool) {
	switch step {
	case StepForward:
		return b.StepForward()
	case StepBackward:
		return b.StepBackward()
	case StepAll:
		return b.ShowAll(), true
	default:
		return b.Reset(), true
	}
}

// Status is the progress line shown after a step
func (b *Builder) Status(step Step) string {
	switch step {
	case StepForward:
		return fmt.Sprintf("Piezas generadas (Adelante): %d", b.generated)
	case StepBackward:
		return fmt.Sprintf("Piezas generadas (Atrás): %d", b.generated)
	case StepAll:
		return "Modelo completo generado"
	default:
		return fmt.Sprintf("Piezas generadas: %d", b.generated)
	}
}
