package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/stlpieces/internal/app"
	"github.com/philipparndt/stlpieces/internal/config"
	"github.com/philipparndt/stlpieces/pkg/geometry"
	"github.com/philipparndt/stlpieces/pkg/pieces"
)

var (
	pieceNumber int
	clickFace   int
	clickTrace  int
	direction   string
	priority    int
	helpText    string
	cameraEye   string
	cameraUp    string
	cameraAt    string
)

var selectCmd = &cobra.Command{
	Use:   "select [model]",
	Short: "Select a piece by number or by a picked face",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAction(cmd, args[0], pieces.TriggerSelect)
	},
}

var saveCmd = &cobra.Command{
	Use:   "save [model]",
	Short: "Save the direction and priority of a piece",
	Long: `Save the direction and priority of a piece. Directions are given by
number (1-4) or by name:
  1 de abajo hacia arriba
  2 de derecha a izquierda
  3 de izquierda a derecha
  4 de arriba hacia abajo`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAction(cmd, args[0], pieces.TriggerSave)
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle [model]",
	Short: "Hide or show a piece",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAction(cmd, args[0], pieces.TriggerToggle)
	},
}

var annotateCmd = &cobra.Command{
	Use:   "annotate [model]",
	Short: "Set the help text of a piece",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAction(cmd, args[0], pieces.TriggerAnnotation)
	},
}

var cameraCmd = &cobra.Command{
	Use:   "camera [model]",
	Short: "Store the view orientation of a model",
	Long:  "Store the camera used by the viewer and by rendered frames. Vectors are given as x,y,z in units of half the model size.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAction(cmd, args[0], pieces.TriggerViewport)
	},
}

func init() {
	for _, c := range []*cobra.Command{selectCmd, saveCmd, toggleCmd, annotateCmd} {
		c.Flags().IntVarP(&pieceNumber, "piece", "p", 0, "piece number as listed by info (1-based)")
	}

	selectCmd.Flags().IntVar(&clickFace, "click-face", -1, "select the piece owning this face of the whole model")
	selectCmd.Flags().IntVar(&clickTrace, "click-trace", -1, "select the piece drawn as this trace")
	selectCmd.MarkFlagsMutuallyExclusive("piece", "click-face", "click-trace")

	saveCmd.Flags().StringVar(&direction, "direction", "", "build direction (1-4 or name)")
	saveCmd.Flags().IntVar(&priority, "priority", 0, "build priority, lower goes first")
	_ = saveCmd.MarkFlagRequired("piece")

	_ = toggleCmd.MarkFlagRequired("piece")

	annotateCmd.Flags().StringVar(&helpText, "text", "", "help text, empty clears it")
	_ = annotateCmd.MarkFlagRequired("piece")
	_ = annotateCmd.MarkFlagRequired("text")

	cameraCmd.Flags().StringVar(&cameraEye, "eye", "", "eye position x,y,z")
	cameraCmd.Flags().StringVar(&cameraUp, "up", "0,1,0", "up vector x,y,z")
	cameraCmd.Flags().StringVar(&cameraAt, "center", "0,0,0", "look-at point x,y,z")
	_ = cameraCmd.MarkFlagRequired("eye")

	rootCmd.AddCommand(selectCmd, saveCmd, toggleCmd, annotateCmd, cameraCmd)
}

func runAction(cmd *cobra.Command, source string, trigger pieces.Trigger) {
	a := mustSetup(config.Overrides{})

	s, err := a.Open(context.Background(), source)
	if err != nil {
		fail("Error opening model", err)
	}

	action, err := buildAction(cmd, s, trigger)
	if err != nil {
		fail("Error", err)
	}

	res, err := s.Update(action)
	if err != nil {
		fail("Error updating piece", err)
	}
	if err := a.Save(s); err != nil {
		fail("Error saving session", err)
	}

	printResult(s, res)
}

func buildAction(cmd *cobra.Command, s *app.Session, trigger pieces.Trigger) (pieces.Action, error) {
	action := pieces.Action{Trigger: trigger}
	flags := cmd.Flags()

	if flags.Lookup("piece") != nil && flags.Changed("piece") {
		index := pieceNumber - 1
		action.Piece = &index
	}

	switch trigger {
	case pieces.TriggerSelect:
		// A pick in the view is a viewport event
		if flags.Changed("click-face") {
			action.Trigger = pieces.TriggerViewport
			action.Click = pieces.ClickOnFace(s.Components, clickFace)
		}
		if flags.Changed("click-trace") {
			action.Trigger = pieces.TriggerViewport
			action.Click = pieces.ClickOnTrace(clickTrace)
		}
	case pieces.TriggerSave:
		if flags.Changed("direction") {
			d, err := parseDirection(direction)
			if err != nil {
				return action, err
			}
			action.Direction = &d
		}
		if flags.Changed("priority") {
			p := priority
			action.Priority = &p
		}
	case pieces.TriggerAnnotation:
		text := helpText
		action.Annotation = &text
	case pieces.TriggerViewport:
		cam, err := parseCamera(cameraEye, cameraUp, cameraAt)
		if err != nil {
			return action, err
		}
		action.Camera = &cam
	}

	return action, nil
}

// parseDirection accepts a direction name or its 1-based number
func parseDirection(s string) (pieces.Direction, error) {
	if n, err := strconv.Atoi(s); err == nil {
		all := pieces.Directions()
		if n < 1 || n > len(all) {
			return "", fmt.Errorf("%w: number %d", pieces.ErrUnknownDirection, n)
		}
		return all[n-1], nil
	}
	return pieces.ParseDirection(s)
}

func parseVector(s string) (geometry.Vector3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return geometry.Vector3{}, fmt.Errorf("invalid vector %q: expected x,y,z", s)
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid vector %q: %w", s, err)
		}
		v[i] = f
	}
	return geometry.FromArray(v), nil
}

func parseCamera(eye, up, center string) (pieces.Camera, error) {
	var cam pieces.Camera
	var err error
	if cam.Eye, err = parseVector(eye); err != nil {
		return cam, err
	}
	if cam.Up, err = parseVector(up); err != nil {
		return cam, err
	}
	if cam.Center, err = parseVector(center); err != nil {
		return cam, err
	}
	return cam, nil
}

func printResult(s *app.Session, res pieces.Result) {
	if s.Store.Len() == 0 {
		fmt.Println("No pieces")
		return
	}

	fmt.Printf("Selected: %s\n", pieces.Label(res.Selected))
	fmt.Printf("  Direction: %s\n", res.Direction)
	fmt.Printf("  Priority: %d\n", res.Priority)
	fmt.Printf("  Help text: %q\n", res.Annotation)
	fmt.Printf("  Camera: eye %s up %s center %s\n",
		formatVec(res.Camera.Eye), formatVec(res.Camera.Up), formatVec(res.Camera.Center))
	if res.Notice != "" {
		fmt.Println(res.Notice)
	}
}

func formatVec(v geometry.Vector3) string {
	return fmt.Sprintf("%g,%g,%g", v.X, v.Y, v.Z)
}
