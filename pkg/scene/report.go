package scene

import "strings"

// Summary is the report line of one piece
type Summary struct {
	Index       int
	ID          int
	Priority    int
	Direction   string
	Enabled     bool
	Faces       int
	HasHelpText bool
}

// Report summarizes the pieces in document order. Help text made only of
// whitespace counts as none.
func Report(e *Export) []Summary {
	out := make([]Summary, len(e.Scene.Pieces))
	for i, p := range e.Scene.Pieces {
		out[i] = Summary{
			Index:       i,
			ID:          p.ID,
			Priority:    p.Priority,
			Direction:   p.Direction,
			Enabled:     p.Enabled,
			Faces:       len(p.Mesh.Faces),
			HasHelpText: strings.TrimSpace(p.HelpText) != "",
		}
	}
	return out
}
