package jsonld

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/aideon-labs/aideon-tools/internal/core/domain"
)

// ParseDocument normalises a decoded JSON-LD document into nodes.
// It accepts a top-level array, an object carrying @graph, or a single
// node object. An object carrying both @id and @graph names a graph; its
// members are assigned to that graph.
func ParseDocument(doc any) ([]*domain.Node, error) {
	return parseDocumentValue(doc, "")
}

func parseDocumentValue(value any, graph string) ([]*domain.Node, error) {
	switch v := value.(type) {
	case []any:
		var nodes []*domain.Node
		for _, item := range v {
			parsed, err := parseDocumentValue(item, graph)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, parsed...)
		}
		return nodes, nil
	case map[string]any:
		if members, ok := v["@graph"]; ok {
			return parseGraphContainer(v, members, graph)
		}
		node, err := parseNode(v, graph)
		if err != nil {
			return nil, err
		}
		return []*domain.Node{node}, nil
	default:
		return nil, fmt.Errorf("%w: expected array or object, found %T", domain.ErrInvalidDocument, value)
	}
}

// parseGraphContainer handles an object carrying @graph. Members inherit
// the container's @id as their graph name; a container that also carries
// its own properties is a node of the enclosing graph.
func parseGraphContainer(container map[string]any, members any, graph string) ([]*domain.Node, error) {
	name := graph
	if id, ok := container["@id"].(string); ok && id != "" {
		name = id
	}

	nodes, err := parseDocumentValue(members, name)
	if err != nil {
		return nil, err
	}

	for key := range container {
		if key == "@id" || key == "@graph" || key == "@context" {
			continue
		}
		node, err := parseNode(withoutGraphKey(container), graph)
		if err != nil {
			return nil, err
		}
		return append(nodes, node), nil
	}

	return nodes, nil
}

func withoutGraphKey(container map[string]any) map[string]any {
	object := make(map[string]any, len(container))
	for key, value := range container {
		if key == "@graph" {
			continue
		}
		object[key] = value
	}
	return object
}

func parseNode(object map[string]any, graph string) (*domain.Node, error) {
	id, _ := object["@id"].(string)
	if id == "" {
		id = surrogateID(object)
	}

	node := domain.NewGraphNode(id, graph)

	if rawTypes, ok := object["@type"]; ok {
		switch types := rawTypes.(type) {
		case string:
			node.AddType(types)
		case []any:
			for _, entry := range types {
				if name, ok := entry.(string); ok {
					node.AddType(name)
				}
			}
		default:
			return nil, fmt.Errorf("%w: @type must be a string or array, found %T", domain.ErrInvalidDocument, rawTypes)
		}
	}

	for key, value := range object {
		if key == "@id" || key == "@type" || key == "@context" {
			continue
		}

		parsed, err := parseValue(value)
		if err != nil {
			return nil, fmt.Errorf("parse property %q: %w", key, err)
		}
		node.SetProperty(key, parsed)
	}

	return node, nil
}

func parseValue(value any) (domain.Value, error) {
	switch v := value.(type) {
	case nil:
		return domain.ScalarValue(domain.NullScalar()), nil
	case bool:
		return domain.ScalarValue(domain.BoolScalar(v)), nil
	case float64:
		return domain.ScalarValue(domain.NumberScalar(v)), nil
	case string:
		return domain.ScalarValue(domain.StringScalar(v)), nil
	case []any:
		return parseArray(v)
	case map[string]any:
		if id, ok := v["@id"].(string); ok {
			return domain.RefValue(id), nil
		}
		if _, ok := v["@value"]; ok {
			scalar, err := valueObjectScalar(v)
			if err != nil {
				return domain.Value{}, err
			}
			return domain.ScalarValue(scalar), nil
		}
		// Nested objects are stored as compact JSON strings to avoid
		// accidental data loss while still representing them in Excel.
		return jsonStringValue(v)
	default:
		return domain.Value{}, fmt.Errorf("%w: unsupported value %T", domain.ErrInvalidDocument, value)
	}
}

func parseArray(values []any) (domain.Value, error) {
	var scalars []domain.Scalar
	var refs []string

	for _, entry := range values {
		object, isObject := entry.(map[string]any)
		switch {
		case isObject && hasKey(object, "@id"):
			id, ok := object["@id"].(string)
			if !ok {
				return domain.Value{}, fmt.Errorf("%w: object reference missing @id", domain.ErrInvalidDocument)
			}
			refs = append(refs, id)
		case isObject && hasKey(object, "@value"):
			scalar, err := valueObjectScalar(object)
			if err != nil {
				return domain.Value{}, err
			}
			scalars = append(scalars, scalar)
		case isObject:
			raw, err := json.Marshal(object)
			if err != nil {
				return domain.Value{}, fmt.Errorf("encode nested object: %w", err)
			}
			scalars = append(scalars, domain.StringScalar(string(raw)))
		default:
			scalar, err := domain.ScalarFromJSON(entry)
			if err != nil {
				return domain.Value{}, err
			}
			scalars = append(scalars, scalar)
		}
	}

	switch {
	case len(scalars) > 0 && len(refs) == 0:
		return domain.ScalarListValue(scalars), nil
	case len(scalars) == 0 && len(refs) > 0:
		return domain.RefListValue(refs), nil
	case len(scalars) == 0 && len(refs) == 0:
		return domain.ScalarListValue(nil), nil
	default:
		return domain.Value{}, domain.ErrMixedArray
	}
}

// valueObjectScalar extracts the literal from a @value object, folding a
// @language tag into the string as "value@lang".
func valueObjectScalar(object map[string]any) (domain.Scalar, error) {
	scalar, err := domain.ScalarFromJSON(object["@value"])
	if err != nil {
		return domain.Scalar{}, err
	}
	if lang, ok := object["@language"].(string); ok && lang != "" && scalar.Kind == domain.ScalarString {
		scalar = domain.StringScalar(scalar.Str + "@" + lang)
	}
	return scalar, nil
}

func jsonStringValue(object map[string]any) (domain.Value, error) {
	raw, err := json.Marshal(object)
	if err != nil {
		return domain.Value{}, fmt.Errorf("encode nested object: %w", err)
	}
	return domain.ScalarValue(domain.StringScalar(string(raw))), nil
}

func hasKey(object map[string]any, key string) bool {
	_, ok := object[key]
	return ok
}

// surrogateID derives a deterministic identifier for a node without an @id.
// The canonical JSON of the node (sans @context, keys sorted) feeds a v5
// UUID so repeated runs over the same document agree.
func surrogateID(object map[string]any) string {
	filtered := make(map[string]any, len(object))
	for key, value := range object {
		if key == "@context" {
			continue
		}
		filtered[key] = value
	}

	canonical, err := json.Marshal(filtered)
	if err != nil {
		canonical = nil
	}
	return "urn:uuid:" + uuid.NewSHA1(uuid.NameSpaceOID, canonical).String()
}

// NodesToDocument serialises nodes back into a JSON-LD document.
// Default-graph nodes appear directly under @graph; named-graph nodes are
// grouped under {"@id": <graph>, "@graph": [...]} containers, graphs sorted
// by name.
func NodesToDocument(nodes []*domain.Node, context any) map[string]any {
	defaultGraph := make([]any, 0, len(nodes))
	named := make(map[string][]any)

	for _, node := range nodes {
		entry := nodeToJSON(node)
		if node.Graph == "" {
			defaultGraph = append(defaultGraph, entry)
		} else {
			named[node.Graph] = append(named[node.Graph], entry)
		}
	}

	graphNames := make([]string, 0, len(named))
	for name := range named {
		graphNames = append(graphNames, name)
	}
	sort.Strings(graphNames)

	for _, name := range graphNames {
		defaultGraph = append(defaultGraph, map[string]any{
			"@id":    name,
			"@graph": named[name],
		})
	}

	document := make(map[string]any, 2)
	if context != nil {
		document["@context"] = context
	}
	document["@graph"] = defaultGraph
	return document
}

func nodeToJSON(node *domain.Node) map[string]any {
	object := make(map[string]any, len(node.Properties)+2)
	object["@id"] = node.ID

	switch len(node.Types) {
	case 0:
	case 1:
		object["@type"] = node.Types[0]
	default:
		types := make([]any, len(node.Types))
		for i, t := range node.Types {
			types[i] = t
		}
		object["@type"] = types
	}

	for predicate, value := range node.Properties {
		object[predicate] = valueToJSON(value)
	}

	return object
}

func valueToJSON(value domain.Value) any {
	switch value.Kind {
	case domain.ValueScalar:
		return value.Scalar.JSON()
	case domain.ValueRef:
		return map[string]any{"@id": value.Ref}
	case domain.ValueScalarList:
		items := make([]any, len(value.Scalars))
		for i, scalar := range value.Scalars {
			items[i] = scalar.JSON()
		}
		return items
	case domain.ValueRefList:
		items := make([]any, len(value.Refs))
		for i, ref := range value.Refs {
			items[i] = map[string]any{"@id": ref}
		}
		return items
	default:
		return nil
	}
}
