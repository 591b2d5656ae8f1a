package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DataFormat identifies one of the representations the tool converts between.
type DataFormat string

const (
	// FormatJSONLD is a JSON-LD document.
	FormatJSONLD DataFormat = "jsonld"
	// FormatExcel is an XLSX workbook.
	FormatExcel DataFormat = "xlsx"
	// FormatRDF is an RDF serialisation (N-Triples or N-Quads).
	FormatRDF DataFormat = "rdf"
)

// ParseDataFormat resolves a user-supplied format name.
func ParseDataFormat(name string) (DataFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "jsonld", "json-ld":
		return FormatJSONLD, nil
	case "xlsx", "excel":
		return FormatExcel, nil
	case "rdf":
		return FormatRDF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// RDFSerialisation identifies a concrete RDF wire syntax.
type RDFSerialisation string

const (
	// NTriples is the line-based triple syntax (default graph only).
	NTriples RDFSerialisation = "ntriples"
	// NQuads is the line-based quad syntax with named graph support.
	NQuads RDFSerialisation = "nquads"
)

// ParseRDFSerialisation resolves a user-supplied RDF serialisation name.
func ParseRDFSerialisation(name string) (RDFSerialisation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ntriples", "nt", "n-triples":
		return NTriples, nil
	case "nquads", "nq", "n-quads":
		return NQuads, nil
	default:
		return "", fmt.Errorf("%w: RDF serialisation %q", ErrUnknownFormat, name)
	}
}

// DetectRDFSerialisation infers the serialisation from a file extension.
// The boolean reports whether the extension was recognised.
func DetectRDFSerialisation(path string) (RDFSerialisation, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".nt":
		return NTriples, true
	case ".nq":
		return NQuads, true
	default:
		return "", false
	}
}

// ConvertOptions carries the per-conversion knobs codecs honour.
type ConvertOptions struct {
	// Context is the decoded JSON-LD context embedded in JSON-LD output.
	// Nil means no context.
	Context any

	// RDF selects the serialisation used when writing RDF.
	RDF RDFSerialisation

	// Expand runs JSON-LD expansion before normalising, resolving
	// @context term mappings to absolute IRIs.
	Expand bool
}
