package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/stlpieces/internal/config"
	"github.com/philipparndt/stlpieces/pkg/pieces"
	"github.com/philipparndt/stlpieces/pkg/playback"
)

var (
	playbackSteps  string
	playbackFrames string
	playbackGLB    string
	playbackWidth  int
	playbackHeight int
)

var playbackCmd = &cobra.Command{
	Use:   "playback [scene]",
	Short: "Replay a scene piece by piece",
	Long: `Replay an exported scene in priority order. Steps are a comma separated
list of f (forward), b (back), all and reset. Each step prints the progress
line and can render a frame and a GLB snapshot of the revealed pieces.`,
	Args: cobra.ExactArgs(1),
	Run:  runPlayback,
}

func init() {
	rootCmd.AddCommand(playbackCmd)

	playbackCmd.Flags().StringVar(&playbackSteps, "steps", "all", "steps to apply, e.g. f,f,b,all,reset")
	playbackCmd.Flags().StringVar(&playbackFrames, "frames", "", "render a PNG per step into this directory")
	playbackCmd.Flags().StringVar(&playbackGLB, "glb", "", "write the final buffer as GLB")
	playbackCmd.Flags().IntVar(&playbackWidth, "width", 0, "frame width (default from config)")
	playbackCmd.Flags().IntVar(&playbackHeight, "height", 0, "frame height (default from config)")
}

func runPlayback(cmd *cobra.Command, args []string) {
	a := mustSetup(config.Overrides{Width: playbackWidth, Height: playbackHeight})

	p, err := a.OpenPlayback(args[0])
	if err != nil {
		fail("Error loading scene", err)
	}
	fmt.Printf("Scene: %s (%d pieces)\n", args[0], p.Builder.Total())

	var steps []playback.Step
	for _, name := range strings.Split(playbackSteps, ",") {
		step, err := playback.ParseStep(strings.TrimSpace(name))
		if err != nil {
			fail("Error", err)
		}
		steps = append(steps, step)
	}

	for i, step := range steps {
		if !p.Step(step) {
			fmt.Printf("%3d: no change (%d of %d)\n", i+1, p.Builder.Generated(), p.Builder.Total())
			continue
		}
		fmt.Printf("%3d: %s\n", i+1, p.Status)
		if last, ok := p.Builder.Last(); ok && step == playback.StepForward {
			fmt.Printf("     %s, %s", pieces.Label(last.ID), last.Direction)
			if last.HelpText != "" {
				fmt.Printf(": %s", last.HelpText)
			}
			fmt.Println()
		}

		if playbackFrames != "" {
			name := filepath.Join(playbackFrames, fmt.Sprintf("frame-%04d.png", i+1))
			if _, err := a.RenderFrame(p.Frame(), p.Bounds(), pieces.DefaultCamera(), name); err != nil {
				fail("Error rendering frame", err)
			}
		}
	}

	if playbackGLB != "" {
		path, err := a.SaveGLB(p, playbackGLB)
		if err != nil {
			fail("Error writing GLB", err)
		}
		fmt.Printf("GLB written to %s\n", path)
	}
}
