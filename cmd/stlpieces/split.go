package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/stlpieces/internal/config"
	"github.com/philipparndt/stlpieces/internal/storage"
	"github.com/philipparndt/stlpieces/pkg/pieces"
)

var splitCmd = &cobra.Command{
	Use:   "split [model]",
	Short: "Split a model into pieces and start a new session",
	Long: `Split an STL or OpenSCAD model into its disconnected pieces. Every piece
gets the default configuration; an existing session of the model is replaced.`,
	Args: cobra.ExactArgs(1),
	Run:  runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) {
	a := mustSetup(config.Overrides{})
	source := args[0]

	s, err := a.Split(context.Background(), source)
	if err != nil {
		fail("Error splitting model", err)
	}
	if err := a.Save(s); err != nil {
		fail("Error saving session", err)
	}

	fmt.Printf("Session: %s\n", s.ID)
	fmt.Printf("File: %s\n", source)
	fmt.Printf("Pieces: %d\n\n", len(s.Components))
	for i, c := range s.Components {
		cfg, _ := s.Store.Config(i)
		fmt.Printf("  %-9s %s  %5d vertices %5d faces\n", pieces.Label(i), cfg.Color, c.VertexCount(), c.FaceCount())
	}
	fmt.Printf("\nSaved to %s\n", storage.SessionPath(source))
}
