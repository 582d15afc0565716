package viewer

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/stlpieces/pkg/geometry"
	"github.com/philipparndt/stlpieces/pkg/pieces"
)

// PieceView renders a frame of pieces in 3D
type PieceView struct {
	widget.BaseWidget
	frame          *Frame
	bounds         geometry.BoundingBox
	camera         *Camera
	background     color.RGBA
	raster         *Raster
	image          *canvas.Image
	dragStart      *fyne.Position
	isDragging     bool
	width          float64
	height         float64
	onPick         func(piece, face int)
	onCameraChange func(state pieces.Camera)
}

// NewPieceView creates a view of a frame. The camera is framed on bounds,
// which stays fixed while frames change so playback does not jump.
func NewPieceView(frame *Frame, bounds geometry.BoundingBox, state pieces.Camera) *PieceView {
	v := &PieceView{
		frame:      frame,
		bounds:     bounds,
		camera:     CameraFromState(state, bounds),
		background: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		image:      &canvas.Image{FillMode: canvas.ImageFillStretch},
	}
	v.ExtendBaseWidget(v)
	return v
}

// SetOnPick sets the callback for taps on a piece
func (v *PieceView) SetOnPick(callback func(piece, face int)) {
	v.onPick = callback
}

// SetOnCameraChange sets the callback run after the user moved the camera
func (v *PieceView) SetOnCameraChange(callback func(state pieces.Camera)) {
	v.onCameraChange = callback
}

// SetFrame replaces the drawn faces and keeps the camera
func (v *PieceView) SetFrame(frame *Frame) {
	v.frame = frame
	v.Render(v.width, v.height)
}

// SetCamera moves the camera to a stored view
func (v *PieceView) SetCamera(state pieces.Camera) {
	v.camera = CameraFromState(state, v.bounds)
	v.Render(v.width, v.height)
}

// CameraState returns the current view
func (v *PieceView) CameraState() pieces.Camera {
	return v.camera.State(v.bounds)
}

// SetBackground changes the background color
func (v *PieceView) SetBackground(c color.RGBA) {
	v.background = c
	v.Render(v.width, v.height)
}

// CreateRenderer creates the renderer for the widget
func (v *PieceView) CreateRenderer() fyne.WidgetRenderer {
	return &pieceViewRenderer{view: v}
}

// Render redraws the frame at the given size
func (v *PieceView) Render(width, height float64) {
	if width <= 0 || height <= 0 || v.frame == nil {
		return
	}
	v.width = width
	v.height = height

	v.raster = Rasterize(v.frame, v.camera, int(width), int(height), v.background)
	v.image.Image = v.raster.Image
	v.Refresh()
}

// Dragged handles mouse drag events for rotation
func (v *PieceView) Dragged(event *fyne.DragEvent) {
	if v.dragStart != nil {
		deltaX := event.Position.X - v.dragStart.X
		deltaY := event.Position.Y - v.dragStart.Y

		v.camera.Rotate(float64(-deltaY)*0.01, float64(deltaX)*0.01)
		v.Render(v.width, v.height)
	}
	v.dragStart = &event.Position
	v.isDragging = true
}

// DragEnd handles the end of a drag event
func (v *PieceView) DragEnd() {
	v.dragStart = nil
	v.isDragging = false
	v.cameraChanged()
}

// Scrolled handles scroll events for zooming
func (v *PieceView) Scrolled(event *fyne.ScrollEvent) {
	v.camera.Zoom(-float64(event.Scrolled.DY) * 0.001)
	v.Render(v.width, v.height)
	v.cameraChanged()
}

// Tapped picks the piece under the pointer. Taps on the background are
// ignored.
func (v *PieceView) Tapped(event *fyne.PointEvent) {
	if v.isDragging || v.raster == nil {
		return
	}

	face := v.raster.FaceAt(int(event.Position.X), int(event.Position.Y))
	if face < 0 || v.onPick == nil {
		return
	}
	v.onPick(v.frame.Faces[face].Piece, face)
}

func (v *PieceView) cameraChanged() {
	if v.onCameraChange != nil {
		v.onCameraChange(v.CameraState())
	}
}

// pieceViewRenderer implements fyne.WidgetRenderer
type pieceViewRenderer struct {
	view *PieceView
}

func (p *pieceViewRenderer) Layout(size fyne.Size) {
	p.view.image.Resize(size)
	if float64(size.Width) != p.view.width || float64(size.Height) != p.view.height {
		p.view.Render(float64(size.Width), float64(size.Height))
	}
}

func (p *pieceViewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (p *pieceViewRenderer) Refresh() {
	p.view.image.Refresh()
}

func (p *pieceViewRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{p.view.image}
}

func (p *pieceViewRenderer) Destroy() {}
