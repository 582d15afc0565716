package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/philipparndt/stlpieces/internal/logger"
	"github.com/philipparndt/stlpieces/pkg/openscad"
)

// isOpenSCAD reports whether a source must be rendered first
func isOpenSCAD(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".scad")
}

// loadSource returns the STL document of a model, rendering OpenSCAD
// sources on the way
func loadSource(ctx context.Context, path string) ([]byte, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(absPath))
	switch ext {
	case ".scad":
		renderer := openscad.NewRenderer(filepath.Dir(absPath))
		model, err := renderer.Render(ctx, absPath)
		if err != nil {
			return nil, fmt.Errorf("failed to render OpenSCAD file: %w", err)
		}
		logger.Info("openscad model rendered",
			zap.String("file", absPath),
			zap.Int("facets", model.Len()),
			zap.Float64("area", model.SurfaceArea()))

		var buf bytes.Buffer
		if err := model.WriteBinary(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case ".stl":
		data, err := os.ReadFile(absPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read STL file: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s (expected .stl or .scad)", ext)
	}
}

// WatchList returns the files whose change should reload a source. For
// OpenSCAD that is the source and everything it uses or includes.
func WatchList(path string) ([]string, error) {
	if !isOpenSCAD(path) {
		return []string{path}, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	deps, err := openscad.NewRenderer(filepath.Dir(absPath)).ResolveDependencies(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dependencies: %w", err)
	}
	return deps, nil
}
