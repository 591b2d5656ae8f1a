package domain

// ValueKind discriminates the shapes a property value can take.
type ValueKind int

const (
	// ValueScalar is a single literal.
	ValueScalar ValueKind = iota
	// ValueRef is an object reference pointing at another node.
	ValueRef
	// ValueScalarList is a list of literals.
	ValueScalarList
	// ValueRefList is a list of object references.
	ValueRefList
)

// Value represents a property value attached to a node.
// Lists are homogeneous: a list holds either literals or references,
// never a mixture.
type Value struct {
	Kind    ValueKind
	Scalar  Scalar
	Ref     string
	Scalars []Scalar
	Refs    []string
}

// ScalarValue wraps a literal as a property value.
func ScalarValue(s Scalar) Value {
	return Value{Kind: ValueScalar, Scalar: s}
}

// RefValue wraps an object reference as a property value.
func RefValue(id string) Value {
	return Value{Kind: ValueRef, Ref: id}
}

// ScalarListValue wraps a literal list as a property value.
func ScalarListValue(items []Scalar) Value {
	return Value{Kind: ValueScalarList, Scalars: items}
}

// RefListValue wraps a reference list as a property value.
func RefListValue(ids []string) Value {
	return Value{Kind: ValueRefList, Refs: ids}
}
