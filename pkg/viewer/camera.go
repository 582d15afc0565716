package viewer

import (
	"math"

	"github.com/philipparndt/stlpieces/pkg/geometry"
	"github.com/philipparndt/stlpieces/pkg/pieces"
)

// Camera represents a 3D camera for viewing the model
type Camera struct {
	Position  geometry.Vector3
	Target    geometry.Vector3
	Up        geometry.Vector3
	FOV       float64 // Field of view in radians
	Distance  float64
	RotationX float64 // Rotation around X axis (vertical)
	RotationY float64 // Rotation around Y axis (horizontal)
}

// NewCamera creates a camera looking at a bounding box from the default
// diagonal
func NewCamera(bbox geometry.BoundingBox) *Camera {
	return CameraFromState(pieces.DefaultCamera(), bbox)
}

// sceneScale converts between the normalized camera state and model units.
// One state unit is half the largest model dimension.
func sceneScale(bbox geometry.BoundingBox) float64 {
	scale := bbox.MaxDimension() / 2
	if scale <= 0 {
		return 1
	}
	return scale
}

// CameraFromState places a camera from a stored view. Center and eye are
// relative to the middle of the bounding box, in units of half its largest
// dimension.
func CameraFromState(state pieces.Camera, bbox geometry.BoundingBox) *Camera {
	scale := sceneScale(bbox)
	target := bbox.Center().Add(state.Center.Mul(scale))
	offset := state.Eye.Sub(state.Center).Mul(scale)

	distance := offset.Length()
	if distance == 0 {
		return CameraFromState(pieces.DefaultCamera(), bbox)
	}

	up := state.Up.Normalize()
	if up.Length() == 0 {
		up = geometry.NewVector3(0, 1, 0)
	}

	return &Camera{
		Position:  target.Add(offset),
		Target:    target,
		Up:        up,
		FOV:       math.Pi / 4, // 45 degrees
		Distance:  distance,
		RotationX: math.Asin(offset.Y / distance),
		RotationY: math.Atan2(offset.X, offset.Z),
	}
}

// State converts the camera back into a stored view for the same bounding box
func (c *Camera) State(bbox geometry.BoundingBox) pieces.Camera {
	scale := sceneScale(bbox)
	center := c.Target.Sub(bbox.Center()).Mul(1 / scale)
	return pieces.Camera{
		Up:     c.Up,
		Center: center,
		Eye:    center.Add(c.Position.Sub(c.Target).Mul(1 / scale)),
	}
}

// Forward returns the viewing direction
func (c *Camera) Forward() geometry.Vector3 {
	return c.Target.Sub(c.Position).Normalize()
}

// UpdatePosition updates camera position based on rotation angles
func (c *Camera) UpdatePosition() {
	x := c.Distance * math.Cos(c.RotationX) * math.Sin(c.RotationY)
	y := c.Distance * math.Sin(c.RotationX)
	z := c.Distance * math.Cos(c.RotationX) * math.Cos(c.RotationY)

	c.Position = c.Target.Add(geometry.NewVector3(x, y, z))
}

// Rotate rotates the camera by the given angles
func (c *Camera) Rotate(deltaX, deltaY float64) {
	c.RotationX += deltaX
	c.RotationY += deltaY

	// Clamp X rotation to prevent gimbal lock
	maxAngle := math.Pi/2 - 0.1
	if c.RotationX > maxAngle {
		c.RotationX = maxAngle
	}
	if c.RotationX < -maxAngle {
		c.RotationX = -maxAngle
	}

	c.UpdatePosition()
}

// Zoom changes the camera distance
func (c *Camera) Zoom(delta float64) {
	c.Distance *= (1.0 + delta)
	if c.Distance < 0.1 {
		c.Distance = 0.1
	}
	c.UpdatePosition()
}

// Project projects a 3D point to 2D screen coordinates. The third value is
// the depth along the viewing direction.
func (c *Camera) Project(point geometry.Vector3, width, height float64) (float64, float64, float64) {
	forward := c.Forward()
	right := forward.Cross(c.Up).Normalize()
	up := right.Cross(forward).Normalize()

	relative := point.Sub(c.Position)
	x := relative.Dot(right)
	y := relative.Dot(up)
	z := relative.Dot(forward)

	if z <= 0.01 {
		z = 0.01
	}

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	screenX := (x/(z*fovScale*aspect))*(width/2) + (width / 2)
	screenY := (-y/(z*fovScale))*(height/2) + (height / 2)

	return screenX, screenY, z
}
