package analysis

import (
	"fmt"
	"math"

	"github.com/philipparndt/stlpieces/pkg/geometry"
	"github.com/philipparndt/stlpieces/pkg/mesh"
)

// MeasurementResult contains various measurements of a model or piece
type MeasurementResult struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	BoxVolume     float64 // volume of BoundingBox, not of the enclosed solid
	SurfaceArea   float64
	TriangleCount int
	VertexCount   int
	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
}

// AnalyzeComponent performs analysis on one split piece
func AnalyzeComponent(c mesh.Component) *MeasurementResult {
	triangles := make([]geometry.Triangle, c.FaceCount())
	for i := range c.Faces {
		triangles[i] = c.Triangle(i)
	}
	result := analyzeTriangles(triangles)
	result.VertexCount = c.VertexCount()
	return result
}

func analyzeTriangles(triangles []geometry.Triangle) *MeasurementResult {
	result := &MeasurementResult{
		BoundingBox:   geometry.NewBoundingBox(),
		TriangleCount: len(triangles),
	}

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	for _, triangle := range triangles {
		for _, corner := range triangle.Vertices() {
			result.BoundingBox.Extend(corner)
		}
		result.SurfaceArea += triangle.Area()

		for _, length := range triangle.EdgeLengths() {
			totalLength += length
			minLength = math.Min(minLength, length)
			maxLength = math.Max(maxLength, length)
			result.EdgeCount++
		}
	}

	result.Dimensions = result.BoundingBox.Size()
	result.BoxVolume = result.BoundingBox.Volume()

	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}

	return result
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
