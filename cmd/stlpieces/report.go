package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/stlpieces/internal/config"
	"github.com/philipparndt/stlpieces/pkg/scene"
)

var reportCmd = &cobra.Command{
	Use:   "report [scene]",
	Short: "Summarize the pieces of an exported scene",
	Long:  "Print priority, direction and help text presence of every piece of a scene file, in file order.",
	Args:  cobra.ExactArgs(1),
	Run:   runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) {
	mustSetup(config.Overrides{})

	e, err := scene.Read(args[0])
	if err != nil {
		fail("Error loading scene", err)
	}

	fmt.Printf("Scene: %s (%d pieces)\n\n", args[0], e.Scene.TotalPieces)
	for _, s := range scene.Report(e) {
		help := "no"
		if s.HasHelpText {
			help = "yes"
		}
		fmt.Printf("Piece %d (id %d):\n", s.Index, s.ID)
		fmt.Printf("  Priority: %d\n", s.Priority)
		fmt.Printf("  Direction: %s\n", s.Direction)
		fmt.Printf("  Enabled: %t  Faces: %d\n", s.Enabled, s.Faces)
		fmt.Printf("  Has Help Text: %s\n", help)
	}
}
