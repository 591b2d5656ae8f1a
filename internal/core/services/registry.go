package services

import (
	"sort"
	"sync"

	"github.com/aideon-labs/aideon-tools/internal/core/domain"
	"github.com/aideon-labs/aideon-tools/internal/core/ports/driven"
)

// Ensure CodecRegistry implements the interface.
var _ driven.CodecRegistry = (*CodecRegistry)(nil)

// CodecRegistry maps data formats to their codecs.
type CodecRegistry struct {
	mu     sync.RWMutex
	codecs map[domain.DataFormat]driven.GraphCodec
}

// NewCodecRegistry creates an empty registry.
func NewCodecRegistry() *CodecRegistry {
	return &CodecRegistry{codecs: make(map[domain.DataFormat]driven.GraphCodec)}
}

// Register adds a codec, replacing any earlier codec for the same format.
func (r *CodecRegistry) Register(codec driven.GraphCodec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codecs[codec.Format()] = codec
}

// Lookup returns the codec for the format.
func (r *CodecRegistry) Lookup(format domain.DataFormat) (driven.GraphCodec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codec, ok := r.codecs[format]
	return codec, ok
}

// Formats returns the registered formats in sorted order.
func (r *CodecRegistry) Formats() []domain.DataFormat {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]domain.DataFormat, 0, len(r.codecs))
	for format := range r.codecs {
		formats = append(formats, format)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}
