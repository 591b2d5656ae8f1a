package excel

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/aideon-labs/aideon-tools/internal/core/domain"
)

type nodeKey struct {
	graph string
	id    string
}

// ReadNodes rebuilds nodes from a workbook following the conventions
// produced by WriteWorkbook.
func ReadNodes(path string) ([]*domain.Node, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer file.Close()

	metadataRows, err := requiredSheet(file, MetadataSheet)
	if err != nil {
		return nil, err
	}
	entityRows, err := requiredSheet(file, EntitiesSheet)
	if err != nil {
		return nil, err
	}

	typeSheets, childSheets, err := parseMetadata(metadataRows)
	if err != nil {
		return nil, err
	}

	nodes := make(map[nodeKey]*domain.Node)
	initialiseNodes(entityRows, nodes)

	for _, sheet := range sortedKeys(typeSheets) {
		rows, err := requiredSheet(file, sheet)
		if err != nil {
			return nil, err
		}
		if err := ingestTypeSheet(rows, typeSheets[sheet], nodes); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}
	}

	for _, sheet := range sortedChildSheets(childSheets) {
		rows, err := requiredSheet(file, sheet)
		if err != nil {
			return nil, err
		}
		ingestChildSheet(rows, childSheets[sheet].predicate, nodes)
	}

	result := make([]*domain.Node, 0, len(nodes))
	for _, node := range nodes {
		result = append(result, node)
	}
	domain.SortNodes(result)
	return result, nil
}

func requiredSheet(file *excelize.File, name string) ([][]string, error) {
	index, err := file.GetSheetIndex(name)
	if err != nil || index == -1 {
		return nil, fmt.Errorf("%w: missing sheet %q", domain.ErrInvalidWorkbook, name)
	}

	rows, err := file.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	return rows, nil
}

type childMapping struct {
	typeName  string
	predicate string
}

func parseMetadata(rows [][]string) (map[string]string, map[string]childMapping, error) {
	typeSheets := make(map[string]string)
	childSheets := make(map[string]childMapping)

	for _, row := range skipHeader(rows) {
		kind := cellAt(row, 0)
		if kind == "" {
			continue
		}
		sheet := cellAt(row, 1)
		typeName := cellAt(row, 2)
		predicate := cellAt(row, 3)

		switch kind {
		case "type":
			typeSheets[sheet] = typeName
		case "child":
			childSheets[sheet] = childMapping{typeName: typeName, predicate: predicate}
		default:
			return nil, nil, fmt.Errorf("%w: unknown metadata kind %q", domain.ErrInvalidWorkbook, kind)
		}
	}

	return typeSheets, childSheets, nil
}

func initialiseNodes(rows [][]string, nodes map[nodeKey]*domain.Node) {
	for _, row := range skipHeader(rows) {
		id := cellAt(row, 0)
		if id == "" {
			continue
		}
		typeName := cellAt(row, 1)
		node := ensureNode(nodes, id, cellAt(row, 2))
		if typeName != "" && typeName != UntypedMarker {
			node.AddType(typeName)
		}
	}
}

func ingestTypeSheet(rows [][]string, typeName string, nodes map[nodeKey]*domain.Node) error {
	if len(rows) == 0 {
		return nil
	}
	headers := rows[0]

	for _, row := range skipHeader(rows) {
		id := cellAt(row, 0)
		if id == "" {
			continue
		}

		node := ensureNode(nodes, id, cellAt(row, 1))
		if typeName != "" && typeName != UntypedMarker {
			node.AddType(typeName)
		}

		for col := 2; col < len(row); col++ {
			if col >= len(headers) {
				break
			}
			header := headers[col]
			if header == "" {
				continue
			}

			raw := row[col]
			if strings.TrimSpace(raw) == "" {
				continue
			}

			predicate, value, err := parsePropertyCell(header, raw)
			if err != nil {
				return err
			}
			node.SetProperty(predicate, value)
		}
	}

	return nil
}

func ingestChildSheet(rows [][]string, predicate string, nodes map[nodeKey]*domain.Node) {
	for _, row := range skipHeader(rows) {
		parent := cellAt(row, 0)
		target := cellAt(row, 2)
		if parent == "" || target == "" {
			continue
		}

		node := ensureNode(nodes, parent, cellAt(row, 1))
		node.MergeProperty(predicate, domain.RefListValue([]string{target}))
	}
}

// parsePropertyCell converts a header/value pair from a type sheet row into
// a property entry. Columns suffixed "Id" hold raw object references;
// everything else is JSON-encoded.
func parsePropertyCell(header, raw string) (string, domain.Value, error) {
	if predicate, ok := strings.CutSuffix(header, "Id"); ok && predicate != "" {
		return predicate, domain.RefValue(raw), nil
	}

	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return "", domain.Value{}, fmt.Errorf("%w: %q in column %q", domain.ErrInvalidLiteral, raw, header)
	}

	if items, ok := decoded.([]any); ok {
		scalars := make([]domain.Scalar, 0, len(items))
		for _, item := range items {
			scalar, err := domain.ScalarFromJSON(item)
			if err != nil {
				return "", domain.Value{}, err
			}
			scalars = append(scalars, scalar)
		}
		if len(scalars) == 0 {
			scalars = nil
		}
		return header, domain.ScalarListValue(scalars), nil
	}

	scalar, err := domain.ScalarFromJSON(decoded)
	if err != nil {
		return "", domain.Value{}, err
	}
	return header, domain.ScalarValue(scalar), nil
}

func ensureNode(nodes map[nodeKey]*domain.Node, id, rawGraph string) *domain.Node {
	graph := strings.TrimSpace(rawGraph)
	key := nodeKey{graph: graph, id: id}
	node, ok := nodes[key]
	if !ok {
		node = domain.NewGraphNode(id, graph)
		nodes[key] = node
	}
	return node
}

func skipHeader(rows [][]string) [][]string {
	if len(rows) == 0 {
		return nil
	}
	return rows[1:]
}

func cellAt(row []string, index int) string {
	if index >= len(row) {
		return ""
	}
	return row[index]
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func sortedChildSheets(m map[string]childMapping) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
