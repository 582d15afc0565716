package pieces

import "github.com/philipparndt/stlpieces/pkg/geometry"

// Camera is the orientation of the 3D view
type Camera struct {
	Up     geometry.Vector3 `json:"up"`
	Center geometry.Vector3 `json:"center"`
	Eye    geometry.Vector3 `json:"eye"`
}

// DefaultCamera looks at the origin from the (1.5, 1.5, 1.5) diagonal, Y up
func DefaultCamera() Camera {
	return Camera{
		Up:     geometry.NewVector3(0, 1, 0),
		Center: geometry.NewVector3(0, 0, 0),
		Eye:    geometry.NewVector3(1.5, 1.5, 1.5),
	}
}

// ResolveCamera picks the camera to keep after an action. A viewport
// interaction carrying a camera wins; otherwise the stored camera is kept,
// falling back to the default.
func ResolveCamera(trigger Trigger, incoming, stored *Camera) Camera {
	if trigger == TriggerViewport && incoming != nil {
		return *incoming
	}
	if stored != nil {
		return *stored
	}
	return DefaultCamera()
}
