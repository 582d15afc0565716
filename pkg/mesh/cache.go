package mesh

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	xxhash "github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/philipparndt/stlpieces/internal/logger"
	"github.com/philipparndt/stlpieces/pkg/stl"
)

// Splitter parses and splits STL documents, remembering the result per
// document content so the same file is never split twice.
type Splitter struct {
	epsilon float64

	mu    sync.Mutex
	cache map[uint64][]Component
}

// NewSplitter creates a splitter with the given weld epsilon
func NewSplitter(epsilon float64) *Splitter {
	return &Splitter{
		epsilon: epsilon,
		cache:   make(map[uint64][]Component),
	}
}

// Digest returns the cache key of an STL document for this splitter
func (s *Splitter) Digest(data []byte) uint64 {
	d := xxhash.New()
	_, _ = d.Write(data)
	var eps [8]byte
	binary.LittleEndian.PutUint64(eps[:], math.Float64bits(s.epsilon))
	_, _ = d.Write(eps[:])
	return d.Sum64()
}

// Split returns the components of an STL document. The bool reports
// whether the result came from the cache.
func (s *Splitter) Split(data []byte) ([]Component, bool, error) {
	key := s.Digest(data)

	s.mu.Lock()
	cached, ok := s.cache[key]
	s.mu.Unlock()
	if ok {
		logger.Debug("split cache hit", zap.String("digest", fmt.Sprintf("%016x", key)))
		return cached, true, nil
	}

	model, err := stl.ParseBytes(data)
	if err != nil {
		return nil, false, err
	}

	ix := Weld(model, s.epsilon)
	logger.Info("mesh loaded",
		zap.Int("bytes", len(data)),
		zap.Int("facets", model.Len()),
		zap.Int("vertices", len(ix.Vertices)),
		zap.Int("faces", len(ix.Faces)),
		zap.String("size", fmt.Sprintf("%.3g", model.Bounds().Size().Array())))

	components, err := Split(ix)
	if err != nil {
		return nil, false, fmt.Errorf("the STL could not be split into components: %w", err)
	}
	logger.Info("mesh split", zap.Int("components", len(components)))

	s.mu.Lock()
	s.cache[key] = components
	s.mu.Unlock()

	return components, false, nil
}

// Len returns the number of cached documents
func (s *Splitter) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cache)
}
