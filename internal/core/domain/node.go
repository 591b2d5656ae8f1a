package domain

import (
	"sort"
)

// Node represents an entity in the graph. It mirrors the JSON-LD node
// object: `@id` semantics for ID, `@type` entries in Types, and one entry
// in Properties per predicate.
type Node struct {
	// ID is the node identifier (IRI, blank node label, or surrogate urn).
	ID string

	// Graph names the graph the node belongs to. Empty means the default graph.
	Graph string

	// Types holds the node's types, sorted and without duplicates.
	Types []string

	// Properties maps predicate → value.
	Properties map[string]Value
}

// NewNode creates a node in the default graph.
func NewNode(id string) *Node {
	return NewGraphNode(id, "")
}

// NewGraphNode creates a node assigned to the given graph.
func NewGraphNode(id, graph string) *Node {
	return &Node{
		ID:         id,
		Graph:      graph,
		Properties: make(map[string]Value),
	}
}

// AddType inserts a type, keeping Types sorted and unique.
func (n *Node) AddType(t string) {
	idx := sort.SearchStrings(n.Types, t)
	if idx < len(n.Types) && n.Types[idx] == t {
		return
	}
	n.Types = append(n.Types, "")
	copy(n.Types[idx+1:], n.Types[idx:])
	n.Types[idx] = t
}

// SetProperty inserts or replaces a property value.
func (n *Node) SetProperty(predicate string, value Value) {
	n.Properties[predicate] = value
}

// MergeProperty combines a new value with any existing value under the
// predicate. Repeated scalars collapse into a scalar list and repeated
// references into a reference list; lists absorb matching additions.
// A shape conflict replaces the existing value.
func (n *Node) MergeProperty(predicate string, value Value) {
	existing, ok := n.Properties[predicate]
	if !ok {
		n.Properties[predicate] = value
		return
	}

	switch {
	case existing.Kind == ValueScalar && value.Kind == ValueScalar:
		n.Properties[predicate] = ScalarListValue([]Scalar{existing.Scalar, value.Scalar})
	case existing.Kind == ValueRef && value.Kind == ValueRef:
		n.Properties[predicate] = RefListValue([]string{existing.Ref, value.Ref})
	case existing.Kind == ValueScalarList && value.Kind == ValueScalar:
		existing.Scalars = append(existing.Scalars, value.Scalar)
		n.Properties[predicate] = existing
	case existing.Kind == ValueRefList && value.Kind == ValueRef:
		existing.Refs = append(existing.Refs, value.Ref)
		n.Properties[predicate] = existing
	case existing.Kind == ValueScalarList && value.Kind == ValueScalarList:
		existing.Scalars = append(existing.Scalars, value.Scalars...)
		n.Properties[predicate] = existing
	case existing.Kind == ValueRefList && value.Kind == ValueRefList:
		existing.Refs = append(existing.Refs, value.Refs...)
		n.Properties[predicate] = existing
	default:
		n.Properties[predicate] = value
	}
}

// PredicateNames returns the node's predicates in sorted order.
func (n *Node) PredicateNames() []string {
	names := make([]string, 0, len(n.Properties))
	for name := range n.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SortNodes orders nodes by graph, then by identifier.
func SortNodes(nodes []*Node) {
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Graph != nodes[j].Graph {
			return nodes[i].Graph < nodes[j].Graph
		}
		return nodes[i].ID < nodes[j].ID
	})
}
