// Package jsonld converts between JSON-LD documents and the node model.
// Parsing keeps predicate keys verbatim; pass Expand to resolve @context
// term mappings to absolute IRIs first.
package jsonld

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/piprate/json-gold/ld"
	"go.uber.org/zap"

	"github.com/aideon-labs/aideon-tools/internal/core/domain"
	"github.com/aideon-labs/aideon-tools/internal/core/ports/driven"
	"github.com/aideon-labs/aideon-tools/internal/logger"
)

// Ensure Codec implements the interface.
var _ driven.GraphCodec = (*Codec)(nil)

// Codec handles JSON-LD documents.
type Codec struct{}

// New creates a new JSON-LD codec.
func New() *Codec {
	return &Codec{}
}

// Format returns the representation this codec handles.
func (c *Codec) Format() domain.DataFormat {
	return domain.FormatJSONLD
}

// Read loads a JSON-LD document and normalises it into nodes.
func (c *Codec) Read(_ context.Context, path string, opts domain.ConvertOptions) ([]*domain.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}

	if opts.Expand {
		expanded, err := Expand(doc)
		if err != nil {
			return nil, err
		}
		doc = expanded
	}

	nodes, err := ParseDocument(doc)
	if err != nil {
		return nil, err
	}

	logger.Debug("parsed JSON-LD document",
		zap.String("path", path),
		zap.Int("nodes", len(nodes)))
	return nodes, nil
}

// Write serialises nodes into a pretty-printed JSON-LD document.
func (c *Codec) Write(_ context.Context, path string, nodes []*domain.Node, opts domain.ConvertOptions) error {
	document := NodesToDocument(nodes, opts.Context)

	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return fmt.Errorf("encode JSON-LD: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Expand runs JSON-LD expansion, resolving @context term mappings so every
// key in the result is an absolute IRI or keyword.
func Expand(doc any) ([]any, error) {
	proc := ld.NewJsonLdProcessor()
	options := ld.NewJsonLdOptions("")

	expanded, err := proc.Expand(doc, options)
	if err != nil {
		return nil, fmt.Errorf("%w: expansion failed: %v", domain.ErrInvalidDocument, err)
	}
	return expanded, nil
}
