package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/stlpieces/internal/config"
	"github.com/philipparndt/stlpieces/pkg/analysis"
	"github.com/philipparndt/stlpieces/pkg/pieces"
)

var infoCmd = &cobra.Command{
	Use:   "info [model]",
	Short: "Display the pieces of a model and their configuration",
	Long:  "Show the model bounding box and, per piece, its size, surface area and current configuration.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	a := mustSetup(config.Overrides{})
	source := args[0]

	s, err := a.Open(context.Background(), source)
	if err != nil {
		fail("Error opening model", err)
	}

	bbox := s.Bounds()
	fmt.Println("Model Information")
	fmt.Println("=================")
	fmt.Printf("File: %s\n", source)
	fmt.Printf("Session: %s", s.ID)
	if s.Restored {
		fmt.Print(" (restored)")
	}
	fmt.Printf("\nPieces: %d\n\n", len(s.Components))

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(bbox.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(bbox.Max))
	fmt.Printf("  Center: %s\n", analysis.FormatVector(bbox.Center()))
	fmt.Printf("  Diagonal: %s\n\n", analysis.FormatMeasurement(bbox.Diagonal(), "units"))

	selected, hasSelection := s.Store.Selected()
	for i, result := range s.Stats() {
		cfg, _ := s.Store.Config(i)
		marker := " "
		if hasSelection && i == selected {
			marker = ">"
		}

		visibility := "visible"
		if !cfg.Enabled {
			visibility = "hidden"
		}

		fmt.Printf("%s %s (%s, %s)\n", marker, pieces.Label(i), cfg.Color, visibility)
		fmt.Printf("    Direction: %s\n", cfg.Direction)
		fmt.Printf("    Priority: %d\n", cfg.Priority)
		if cfg.Annotation != "" {
			fmt.Printf("    Help text: %s\n", cfg.Annotation)
		}
		fmt.Printf("    Triangles: %d  Vertices: %d\n", result.TriangleCount, result.VertexCount)
		fmt.Printf("    Size: %s\n", analysis.FormatVector(result.Dimensions))
		fmt.Printf("    Surface Area: %s\n", analysis.FormatMeasurement(result.SurfaceArea, "units²"))
	}
}
