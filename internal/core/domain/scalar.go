package domain

import (
	"encoding/json"
	"fmt"
)

// ScalarKind discriminates the literal types a scalar can hold.
type ScalarKind int

const (
	// ScalarString is a plain string literal.
	ScalarString ScalarKind = iota
	// ScalarNumber is a floating point number literal.
	ScalarNumber
	// ScalarBool is a boolean literal.
	ScalarBool
	// ScalarNull is an explicit JSON null literal.
	ScalarNull
)

// Scalar represents a single literal value in the graph.
// Exactly one of the value fields is meaningful, selected by Kind.
type Scalar struct {
	Kind ScalarKind
	Str  string
	Num  float64
	Bool bool
}

// StringScalar creates a string scalar.
func StringScalar(s string) Scalar {
	return Scalar{Kind: ScalarString, Str: s}
}

// NumberScalar creates a number scalar.
func NumberScalar(n float64) Scalar {
	return Scalar{Kind: ScalarNumber, Num: n}
}

// BoolScalar creates a boolean scalar.
func BoolScalar(b bool) Scalar {
	return Scalar{Kind: ScalarBool, Bool: b}
}

// NullScalar creates a null scalar.
func NullScalar() Scalar {
	return Scalar{Kind: ScalarNull}
}

// JSON returns the scalar as the value used in JSON-LD payloads.
func (s Scalar) JSON() any {
	switch s.Kind {
	case ScalarString:
		return s.Str
	case ScalarNumber:
		return s.Num
	case ScalarBool:
		return s.Bool
	default:
		return nil
	}
}

// ScalarFromJSON converts a decoded JSON value into a scalar.
// Composite values (objects, arrays) are preserved as their compact JSON
// encoding so no data is lost on the spreadsheet path.
func ScalarFromJSON(v any) (Scalar, error) {
	switch value := v.(type) {
	case nil:
		return NullScalar(), nil
	case bool:
		return BoolScalar(value), nil
	case float64:
		return NumberScalar(value), nil
	case string:
		return StringScalar(value), nil
	default:
		raw, err := json.Marshal(value)
		if err != nil {
			return Scalar{}, fmt.Errorf("encode literal: %w", err)
		}
		return StringScalar(string(raw)), nil
	}
}
