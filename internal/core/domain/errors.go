package domain

import "errors"

// Domain errors represent conversion failures.
// These are distinct from infrastructure errors.
var (
	// ErrMissingInput indicates the input file does not exist.
	ErrMissingInput = errors.New("input file not found")

	// ErrUnsupportedConversion indicates the from/to format pair is not supported.
	ErrUnsupportedConversion = errors.New("unsupported conversion")

	// ErrUnknownFormat indicates a format name that could not be parsed.
	ErrUnknownFormat = errors.New("unknown format")

	// ErrInvalidDocument indicates a JSON-LD document that could not be
	// normalised into the node model.
	ErrInvalidDocument = errors.New("invalid JSON-LD document")

	// ErrInvalidWorkbook indicates a workbook that does not follow the
	// sheet conventions produced by the Excel codec.
	ErrInvalidWorkbook = errors.New("invalid workbook structure")

	// ErrInvalidLiteral indicates a cell value that failed to parse back
	// into a typed scalar.
	ErrInvalidLiteral = errors.New("invalid literal value")

	// ErrInvalidIRI indicates an identifier, type, or predicate that is not
	// a valid IRI or blank node label when building RDF output.
	ErrInvalidIRI = errors.New("invalid IRI")

	// ErrRDF indicates an RDF parsing or serialisation failure.
	ErrRDF = errors.New("RDF error")

	// ErrMixedArray indicates a property array mixing literals and object
	// references, which the node model cannot represent.
	ErrMixedArray = errors.New("mixed arrays of literals and object references are not supported")
)
