package driving

import (
	"context"
	"time"

	"github.com/aideon-labs/aideon-tools/internal/core/domain"
)

// SyncRequest describes one conversion between two representations.
type SyncRequest struct {
	// From and To are the source and target formats. They must differ.
	From domain.DataFormat
	To   domain.DataFormat

	// Input and Output are the file paths to read and write.
	Input  string
	Output string

	// ContextPath optionally names a JSON file whose content is embedded
	// as the @context of JSON-LD output.
	ContextPath string

	// RDFFormat optionally forces the RDF serialisation. Empty means
	// infer from the output extension, then fall back to the default.
	RDFFormat string

	// Expand runs JSON-LD expansion on JSON-LD input before normalising.
	Expand bool
}

// SyncResult summarises a completed conversion.
type SyncResult struct {
	// Nodes is the number of nodes carried across.
	Nodes int

	// Duration is the wall time the conversion took.
	Duration time.Duration
}

// SyncService executes conversions between representations of a dataset.
type SyncService interface {
	// Sync runs one conversion.
	Sync(ctx context.Context, req SyncRequest) (*SyncResult, error)

	// Watch runs the conversion, then re-runs it whenever the input file
	// changes, until the context is cancelled.
	Watch(ctx context.Context, req SyncRequest) error
}
