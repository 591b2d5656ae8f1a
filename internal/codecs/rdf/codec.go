// Package rdf converts between RDF serialisations and the node model.
//
// Both directions pass through expanded JSON-LD: reading parses N-Quads
// (N-Triples being a syntactic subset) into an expanded document which the
// jsonld codec normalises; writing validates that every identifier is an
// IRI or blank node label, builds the expanded document, and serialises it
// back to N-Quads.
package rdf

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/piprate/json-gold/ld"
	"go.uber.org/zap"

	"github.com/aideon-labs/aideon-tools/internal/codecs/jsonld"
	"github.com/aideon-labs/aideon-tools/internal/core/domain"
	"github.com/aideon-labs/aideon-tools/internal/core/ports/driven"
	"github.com/aideon-labs/aideon-tools/internal/logger"
)

// nquadsMIME is the only wire syntax the JSON-LD processor speaks.
const nquadsMIME = "application/n-quads"

// Ensure Codec implements the interface.
var _ driven.GraphCodec = (*Codec)(nil)

// Codec handles N-Triples and N-Quads files.
type Codec struct{}

// New creates a new RDF codec.
func New() *Codec {
	return &Codec{}
}

// Format returns the representation this codec handles.
func (c *Codec) Format() domain.DataFormat {
	return domain.FormatRDF
}

// Read parses an RDF file into nodes. rdf:type statements populate the
// type set; repeated predicates merge into lists; xsd boolean and numeric
// literals map to native scalars.
func (c *Codec) Read(_ context.Context, path string, _ domain.ConvertOptions) ([]*domain.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	proc := ld.NewJsonLdProcessor()
	options := ld.NewJsonLdOptions("")
	options.Format = nquadsMIME
	options.UseNativeTypes = true

	document, err := proc.FromRDF(string(data), options)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrRDF, path, err)
	}

	nodes, err := jsonld.ParseDocument(document)
	if err != nil {
		return nil, err
	}

	logger.Debug("parsed nodes from RDF source",
		zap.String("path", path),
		zap.Int("nodes", len(nodes)))
	return nodes, nil
}

// Write serialises nodes as N-Quads or N-Triples. Output lines are sorted
// so repeated conversions produce identical files.
func (c *Codec) Write(_ context.Context, path string, nodes []*domain.Node, opts domain.ConvertOptions) error {
	serialisation := opts.RDF
	if serialisation == "" {
		serialisation = domain.NQuads
	}

	if serialisation == domain.NTriples {
		for _, node := range nodes {
			if node.Graph != "" {
				return fmt.Errorf("%w: named graph %q cannot be serialised as N-Triples", domain.ErrRDF, node.Graph)
			}
		}
	}

	if err := validateNodes(nodes); err != nil {
		return err
	}

	document := jsonld.NodesToDocument(nodes, nil)

	proc := ld.NewJsonLdProcessor()
	options := ld.NewJsonLdOptions("")
	options.Format = nquadsMIME

	serialised, err := proc.ToRDF(document, options)
	if err != nil {
		return fmt.Errorf("%w: serialise: %v", domain.ErrRDF, err)
	}

	output, ok := serialised.(string)
	if !ok {
		return fmt.Errorf("%w: unexpected serialiser output %T", domain.ErrRDF, serialised)
	}

	if err := os.WriteFile(path, []byte(sortLines(output)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	logger.Debug("wrote RDF output",
		zap.String("path", path),
		zap.String("serialisation", string(serialisation)),
		zap.Int("nodes", len(nodes)))
	return nil
}

// validateNodes checks that everything destined to become an RDF term is
// an IRI or a blank node label. The JSON-LD processor silently drops
// invalid terms; failing loudly matches the tool's contract.
func validateNodes(nodes []*domain.Node) error {
	for _, node := range nodes {
		if err := validateTerm(node.ID); err != nil {
			return fmt.Errorf("node %q: %w", node.ID, err)
		}
		if node.Graph != "" {
			if err := validateTerm(node.Graph); err != nil {
				return fmt.Errorf("graph %q: %w", node.Graph, err)
			}
		}
		for _, typeName := range node.Types {
			if err := validateIRI(typeName); err != nil {
				return fmt.Errorf("type of %q: %w", node.ID, err)
			}
		}
		for _, predicate := range node.PredicateNames() {
			if err := validateIRI(predicate); err != nil {
				return fmt.Errorf("predicate of %q: %w", node.ID, err)
			}
			value := node.Properties[predicate]
			switch value.Kind {
			case domain.ValueRef:
				if err := validateTerm(value.Ref); err != nil {
					return fmt.Errorf("reference %q: %w", value.Ref, err)
				}
			case domain.ValueRefList:
				for _, ref := range value.Refs {
					if err := validateTerm(ref); err != nil {
						return fmt.Errorf("reference %q: %w", ref, err)
					}
				}
			}
		}
	}
	return nil
}

// validateTerm accepts absolute IRIs and blank node labels.
func validateTerm(value string) error {
	if strings.HasPrefix(value, "_:") {
		if len(value) == 2 {
			return fmt.Errorf("%w: empty blank node label", domain.ErrInvalidIRI)
		}
		return nil
	}
	return validateIRI(value)
}

// validateIRI accepts absolute IRIs only.
func validateIRI(value string) error {
	if strings.ContainsAny(value, " \t\r\n<>\"{}|^`") {
		return fmt.Errorf("%w: %q", domain.ErrInvalidIRI, value)
	}
	parsed, err := url.Parse(value)
	if err != nil || parsed.Scheme == "" {
		return fmt.Errorf("%w: %q", domain.ErrInvalidIRI, value)
	}
	return nil
}

func sortLines(output string) string {
	lines := strings.Split(output, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line != "" {
			kept = append(kept, line)
		}
	}
	sort.Strings(kept)
	return strings.Join(kept, "\n") + "\n"
}
