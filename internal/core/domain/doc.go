// Package domain contains the canonical data model shared by every codec.
//
// All conversions pass through the same representation: a flat list of
// nodes, each carrying an identifier, an optional named graph, a set of
// types, and a predicate → value map. Codecs translate their external
// format to and from this model; they never talk to each other directly.
package domain
