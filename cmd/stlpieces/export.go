package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/stlpieces/internal/config"
	"github.com/philipparndt/stlpieces/pkg/scene"
)

var (
	exportOutput string
	exportZstd   bool
	exportFrame  string
)

var exportCmd = &cobra.Command{
	Use:   "export [model]",
	Short: "Export the scene configuration of a model",
	Long: `Write the scene configuration consumed by the rendering engine. The file
goes to the output directory unless an absolute path is given; names ending
in .zst are zstd compressed.`,
	Args: cobra.ExactArgs(1),
	Run:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "scene file name (default <model>.scene.json)")
	exportCmd.Flags().BoolVar(&exportZstd, "zstd", false, "compress the scene with zstd")
	exportCmd.Flags().StringVar(&exportFrame, "frame", "", "also render the configured view to this PNG")
}

func runExport(cmd *cobra.Command, args []string) {
	a := mustSetup(config.Overrides{Compress: exportZstd})
	source := args[0]

	s, err := a.Open(context.Background(), source)
	if err != nil {
		fail("Error opening model", err)
	}

	name := exportOutput
	if name != "" && a.Config.Export.Compress && !scene.IsCompressedPath(name) {
		name += ".zst"
	}

	path, err := a.Export(s, name)
	if err != nil {
		fail("Error exporting scene", err)
	}
	fmt.Printf("Scene written to %s (%d pieces)\n", path, len(s.Components))

	if exportFrame != "" {
		png, err := a.RenderFrame(s.Frame(), s.Bounds(), s.Store.Camera(), exportFrame)
		if err != nil {
			fail("Error rendering frame", err)
		}
		fmt.Printf("Frame written to %s\n", png)
	}
}
