package driven

import (
	"context"

	"github.com/aideon-labs/aideon-tools/internal/core/domain"
)

// GraphCodec reads and writes the node graph in one external representation.
// Each codec handles exactly one DataFormat.
type GraphCodec interface {
	// Format returns the representation this codec handles.
	Format() domain.DataFormat

	// Read loads the file at path and normalises it into nodes.
	Read(ctx context.Context, path string, opts domain.ConvertOptions) ([]*domain.Node, error)

	// Write serialises nodes into the file at path.
	Write(ctx context.Context, path string, nodes []*domain.Node, opts domain.ConvertOptions) error
}

// CodecRegistry resolves the codec responsible for a format.
type CodecRegistry interface {
	// Register adds a codec to the registry. A later registration for the
	// same format replaces the earlier one.
	Register(codec GraphCodec)

	// Lookup returns the codec for the format, or false when none is registered.
	Lookup(format domain.DataFormat) (GraphCodec, bool)

	// Formats returns the registered formats in sorted order.
	Formats() []domain.DataFormat
}
