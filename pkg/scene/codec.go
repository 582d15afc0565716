package scene

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	"github.com/philipparndt/stlpieces/internal/logger"
)

// zstdMagic starts every zstd frame
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Encode writes the scene as compact JSON. Non-ASCII text is written as is.
func Encode(w io.Writer, e *Export) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(e); err != nil {
		return fmt.Errorf("failed to encode scene: %w", err)
	}
	return nil
}

// EncodeCompressed writes the scene as a zstd compressed JSON document
func EncodeCompressed(w io.Writer, e *Export) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("failed to create compressor: %w", err)
	}
	if err := Encode(zw, e); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// Decode reads a JSON scene and rejects documents with the wrong shape
func Decode(r io.Reader) (*Export, error) {
	dec := json.NewDecoder(r)

	var raw struct {
		Scene *Configuration `json:"scene_configuration"`
	}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if raw.Scene == nil {
		return nil, fmt.Errorf("%w: missing scene_configuration", ErrMalformed)
	}

	e := &Export{Scene: *raw.Scene}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// DecodeAuto decodes plain or zstd compressed scenes
func DecodeAuto(r io.Reader) (*Export, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(len(zstdMagic))
	if !bytes.Equal(head, zstdMagic) {
		return Decode(br)
	}

	zr, err := zstd.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("failed to create decompressor: %w", err)
	}
	defer zr.Close()
	return Decode(zr)
}

// IsCompressedPath reports whether a file name asks for zstd output
func IsCompressedPath(path string) bool {
	return strings.HasSuffix(path, ".zst")
}

// Read loads a plain or compressed scene from path
func Read(path string) (*Export, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene: %w", err)
	}
	defer file.Close()

	e, err := DecodeAuto(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger.Debug("scene loaded",
		zap.String("file", path),
		zap.Int("pieces", e.Scene.TotalPieces))
	return e, nil
}
