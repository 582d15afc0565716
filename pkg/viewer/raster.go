package viewer

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
)

// Raster is a rendered frame together with the face drawn at each pixel
type Raster struct {
	Image  *image.RGBA
	zbuf   []float64
	faceID []int
}

// Rasterize draws a frame with flat shading and depth testing. Translucent
// faces are blended over whatever is already behind them.
func Rasterize(frame *Frame, cam *Camera, width, height int, background color.RGBA) *Raster {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	r := &Raster{
		Image:  image.NewRGBA(image.Rect(0, 0, width, height)),
		zbuf:   make([]float64, width*height),
		faceID: make([]int, width*height),
	}
	for i := range r.zbuf {
		r.zbuf[i] = math.MaxFloat64
		r.faceID[i] = -1
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r.Image.SetRGBA(x, y, background)
		}
	}

	forward := cam.Forward()
	w, h := float64(width), float64(height)
	for i, face := range frame.Faces {
		var pts [3][3]float64
		for k, v := range face.V {
			x, y, z := cam.Project(v, w, h)
			pts[k] = [3]float64{x, y, z}
		}

		normal := face.V[1].Sub(face.V[0]).Cross(face.V[2].Sub(face.V[0])).Normalize()
		shade := 0.35 + 0.65*math.Abs(normal.Dot(forward))

		r.fillTriangleWithDepth(pts, i, shadeColor(face.Color, shade), face.Alpha)
	}

	return r
}

// FaceAt returns the index of the frame face drawn at a pixel, or -1
func (r *Raster) FaceAt(x, y int) int {
	b := r.Image.Bounds()
	if x < 0 || y < 0 || x >= b.Max.X || y >= b.Max.Y {
		return -1
	}
	return r.faceID[y*b.Max.X+x]
}

// WritePNG encodes the rendered image
func (r *Raster) WritePNG(w io.Writer) error {
	return png.Encode(w, r.Image)
}

func shadeColor(c color.RGBA, shade float64) color.RGBA {
	return color.RGBA{
		R: uint8(math.Min(255, float64(c.R)*shade)),
		G: uint8(math.Min(255, float64(c.G)*shade)),
		B: uint8(math.Min(255, float64(c.B)*shade)),
		A: 255,
	}
}

func blend(over, under color.RGBA, alpha float64) color.RGBA {
	if alpha >= 1 {
		return over
	}
	mix := func(a, b uint8) uint8 {
		return uint8(alpha*float64(a) + (1-alpha)*float64(b) + 0.5)
	}
	return color.RGBA{R: mix(over.R, under.R), G: mix(over.G, under.G), B: mix(over.B, under.B), A: 255}
}

// fillTriangleWithDepth fills a projected triangle using a scanline
// algorithm with depth interpolation
func (r *Raster) fillTriangleWithDepth(vertices [3][3]float64, face int, col color.RGBA, alpha float64) {
	// Sort vertices by Y coordinate (top to bottom)
	if vertices[0][1] > vertices[1][1] {
		vertices[0], vertices[1] = vertices[1], vertices[0]
	}
	if vertices[1][1] > vertices[2][1] {
		vertices[1], vertices[2] = vertices[2], vertices[1]
	}
	if vertices[0][1] > vertices[1][1] {
		vertices[0], vertices[1] = vertices[1], vertices[0]
	}

	x1, y1, z1 := vertices[0][0], vertices[0][1], vertices[0][2]
	x2, y2, z2 := vertices[1][0], vertices[1][1], vertices[1][2]
	x3, y3, z3 := vertices[2][0], vertices[2][1], vertices[2][2]

	bounds := r.Image.Bounds()
	width := bounds.Max.X

	for y := int(math.Max(0, math.Ceil(y1))); y <= int(math.Min(float64(bounds.Max.Y-1), y3)); y++ {
		fy := float64(y)

		var xs, zs [2]float64
		found := 0
		edge := func(ax, ay, az, bx, by, bz float64) {
			if found == 2 || ay == by || fy < ay || fy > by {
				return
			}
			t := (fy - ay) / (by - ay)
			xs[found] = ax + t*(bx-ax)
			zs[found] = az + t*(bz-az)
			found++
		}
		edge(x1, y1, z1, x2, y2, z2)
		edge(x2, y2, z2, x3, y3, z3)
		edge(x1, y1, z1, x3, y3, z3)

		if found < 2 {
			continue
		}

		xStart, xEnd, zStart, zEnd := xs[0], xs[1], zs[0], zs[1]
		if xStart > xEnd {
			xStart, xEnd = xEnd, xStart
			zStart, zEnd = zEnd, zStart
		}

		for x := int(math.Max(0, math.Ceil(xStart))); x <= int(math.Min(float64(width-1), xEnd)); x++ {
			t := 0.0
			if xEnd != xStart {
				t = (float64(x) - xStart) / (xEnd - xStart)
			}
			z := zStart + t*(zEnd-zStart)

			// Depth test - draw if closer (smaller z)
			idx := y*width + x
			if z < r.zbuf[idx] {
				r.zbuf[idx] = z
				r.faceID[idx] = face
				r.Image.SetRGBA(x, y, blend(col, r.Image.RGBAAt(x, y), alpha))
			}
		}
	}
}
