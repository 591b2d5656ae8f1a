// Package excel converts between XLSX workbooks and the node model.
//
// The workbook conventions are fixed: an Entities index sheet, a Metadata
// sheet mapping sheets back to types and predicates, one sheet per node
// type, and one child sheet per (type, reference-list predicate) pair.
// Scalar cells hold the JSON encoding of the value so typing survives the
// round trip.
package excel

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/aideon-labs/aideon-tools/internal/core/domain"
)

const (
	// UntypedMarker names the sheet for nodes that declare no type.
	UntypedMarker = "__untyped__"
	// EntitiesSheet stores the entity → type index.
	EntitiesSheet = "Entities"
	// MetadataSheet stores the sheet → type/predicate mappings.
	MetadataSheet = "Metadata"

	// maxSheetNameLen is the workbook limit on sheet name length.
	maxSheetNameLen = 31
)

// SheetTable is a table that will be materialised as one worksheet.
type SheetTable struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// WorkbookData holds all tables required to materialise the workbook.
type WorkbookData struct {
	Tables []SheetTable
}

// BuildWorkbook flattens nodes into the sheet tables described above.
func BuildWorkbook(nodes []*domain.Node) (*WorkbookData, error) {
	names := newSheetNameRegistry()
	names.claim(EntitiesSheet)
	names.claim(MetadataSheet)

	typeBuilders := make(map[string]*typeTableBuilder)
	childBuilders := make(map[childKey]*childTableBuilder)
	var entities [][]string

	for _, node := range nodes {
		nodeTypes := node.Types
		if len(nodeTypes) == 0 {
			nodeTypes = []string{UntypedMarker}
		}

		for typeIndex, typeName := range nodeTypes {
			entities = append(entities, []string{node.ID, typeName, node.Graph})

			builder, ok := typeBuilders[typeName]
			if !ok {
				builder = newTypeTableBuilder()
				typeBuilders[typeName] = builder
			}

			values := make(map[string]string)
			for _, predicate := range node.PredicateNames() {
				value := node.Properties[predicate]
				switch value.Kind {
				case domain.ValueScalar:
					cell, err := scalarCell(value.Scalar)
					if err != nil {
						return nil, err
					}
					builder.addColumn(predicate)
					values[predicate] = cell
				case domain.ValueRef:
					column := predicate + "Id"
					builder.addColumn(column)
					values[column] = value.Ref
				case domain.ValueScalarList:
					cell, err := scalarListCell(value.Scalars)
					if err != nil {
						return nil, err
					}
					builder.addColumn(predicate)
					values[predicate] = cell
				case domain.ValueRefList:
					// Child rows belong to the node's first type only, so
					// multi-typed nodes do not duplicate references.
					if typeIndex != 0 {
						continue
					}
					key := childKey{typeName: typeName, predicate: predicate}
					child, ok := childBuilders[key]
					if !ok {
						child = &childTableBuilder{predicate: predicate}
						childBuilders[key] = child
					}
					for _, target := range value.Refs {
						child.rows = append(child.rows, []string{node.ID, node.Graph, target})
					}
				}
			}

			builder.rows = append(builder.rows, rowData{id: node.ID, graph: node.Graph, values: values})
		}
	}

	sort.Slice(entities, func(i, j int) bool { return lessRow(entities[i], entities[j]) })

	var tables []SheetTable
	var metadataRows [][]string

	for _, typeName := range sortedTypeNames(typeBuilders) {
		builder := typeBuilders[typeName]
		builder.sortRows()
		sheetName := names.assign(typeName)

		metadataRows = append(metadataRows, []string{"type", sheetName, typeName, ""})
		tables = append(tables, builder.table(sheetName))
	}

	for _, key := range sortedChildKeys(childBuilders) {
		builder := childBuilders[key]
		sort.Slice(builder.rows, func(i, j int) bool { return lessRow(builder.rows[i], builder.rows[j]) })
		sheetName := names.assign(key.typeName + "__" + key.predicate)

		metadataRows = append(metadataRows, []string{"child", sheetName, key.typeName, key.predicate})
		tables = append(tables, builder.table(sheetName))
	}

	sort.Slice(tables, func(i, j int) bool { return tables[i].Name < tables[j].Name })

	all := make([]SheetTable, 0, len(tables)+2)
	all = append(all, SheetTable{
		Name:    EntitiesSheet,
		Columns: []string{"id", "type", "graph"},
		Rows:    entities,
	})
	all = append(all, SheetTable{
		Name:    MetadataSheet,
		Columns: []string{"kind", "sheet", "type", "predicate"},
		Rows:    metadataRows,
	})
	all = append(all, tables...)

	return &WorkbookData{Tables: all}, nil
}

type childKey struct {
	typeName  string
	predicate string
}

type rowData struct {
	id     string
	graph  string
	values map[string]string
}

type typeTableBuilder struct {
	columns map[string]struct{}
	rows    []rowData
}

func newTypeTableBuilder() *typeTableBuilder {
	return &typeTableBuilder{columns: make(map[string]struct{})}
}

func (b *typeTableBuilder) addColumn(name string) {
	b.columns[name] = struct{}{}
}

func (b *typeTableBuilder) sortRows() {
	sort.Slice(b.rows, func(i, j int) bool {
		if b.rows[i].graph != b.rows[j].graph {
			return b.rows[i].graph < b.rows[j].graph
		}
		return b.rows[i].id < b.rows[j].id
	})
}

func (b *typeTableBuilder) table(sheetName string) SheetTable {
	columns := make([]string, 0, len(b.columns)+2)
	columns = append(columns, "id", "graph")
	predicates := make([]string, 0, len(b.columns))
	for column := range b.columns {
		predicates = append(predicates, column)
	}
	sort.Strings(predicates)
	columns = append(columns, predicates...)

	rows := make([][]string, 0, len(b.rows))
	for _, row := range b.rows {
		cells := make([]string, 0, len(columns))
		cells = append(cells, row.id, row.graph)
		for _, column := range columns[2:] {
			cells = append(cells, row.values[column])
		}
		rows = append(rows, cells)
	}

	return SheetTable{Name: sheetName, Columns: columns, Rows: rows}
}

type childTableBuilder struct {
	predicate string
	rows      [][]string
}

func (b *childTableBuilder) table(sheetName string) SheetTable {
	return SheetTable{
		Name:    sheetName,
		Columns: []string{"ParentId", "graph", b.predicate + "Id"},
		Rows:    b.rows,
	}
}

func scalarCell(scalar domain.Scalar) (string, error) {
	raw, err := json.Marshal(scalar.JSON())
	if err != nil {
		return "", fmt.Errorf("encode cell value: %w", err)
	}
	return string(raw), nil
}

func scalarListCell(scalars []domain.Scalar) (string, error) {
	items := make([]any, len(scalars))
	for i, scalar := range scalars {
		items[i] = scalar.JSON()
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode cell value: %w", err)
	}
	return string(raw), nil
}

func sortedTypeNames(builders map[string]*typeTableBuilder) []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedChildKeys(builders map[childKey]*childTableBuilder) []childKey {
	keys := make([]childKey, 0, len(builders))
	for key := range builders {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].typeName != keys[j].typeName {
			return keys[i].typeName < keys[j].typeName
		}
		return keys[i].predicate < keys[j].predicate
	})
	return keys
}

func lessRow(a, b []string) bool {
	for i := range a {
		if i >= len(b) {
			return false
		}
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

type sheetNameRegistry struct {
	used map[string]struct{}
}

func newSheetNameRegistry() *sheetNameRegistry {
	return &sheetNameRegistry{used: make(map[string]struct{})}
}

func (r *sheetNameRegistry) claim(name string) {
	r.used[name] = struct{}{}
}

// assign sanitises the raw name and de-duplicates it with numeric suffixes.
func (r *sheetNameRegistry) assign(raw string) string {
	base := sanitiseSheetName(raw)
	if _, taken := r.used[base]; !taken {
		r.used[base] = struct{}{}
		return base
	}

	for counter := 1; ; counter++ {
		suffix := fmt.Sprintf("_%d", counter)
		prefix := base
		if max := maxSheetNameLen - len(suffix); len(prefix) > max {
			prefix = prefix[:max]
		}
		candidate := prefix + suffix
		if _, taken := r.used[candidate]; !taken {
			r.used[candidate] = struct{}{}
			return candidate
		}
	}
}

// sanitiseSheetName replaces characters Excel rejects and enforces the
// 31-character sheet name limit.
func sanitiseSheetName(raw string) string {
	sanitised := strings.Map(func(ch rune) rune {
		switch ch {
		case ':', '\\', '/', '?', '*', '[', ']', '\'', '"':
			return '_'
		}
		if ch < 0x20 || ch == 0x7f {
			return '_'
		}
		return ch
	}, raw)

	sanitised = strings.TrimSpace(sanitised)
	if sanitised == "" {
		sanitised = "Sheet"
	}
	if len(sanitised) > maxSheetNameLen {
		sanitised = sanitised[:maxSheetNameLen]
	}
	return sanitised
}
