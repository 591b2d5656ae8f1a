package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aideon-labs/aideon-tools/internal/codecs/excel"
	"github.com/aideon-labs/aideon-tools/internal/codecs/jsonld"
	"github.com/aideon-labs/aideon-tools/internal/codecs/rdf"
	"github.com/aideon-labs/aideon-tools/internal/core/domain"
	"github.com/aideon-labs/aideon-tools/internal/core/ports/driving"
)

func newFullService() *SyncService {
	registry := NewCodecRegistry()
	registry.Register(jsonld.New())
	registry.Register(excel.New())
	registry.Register(rdf.New())
	return NewSyncService(registry, nil, domain.DefaultSettings())
}

const sampleDocument = `{
	"@graph": [
		{
			"@id": "https://example.org/alice",
			"@type": "https://schema.org/Person",
			"https://schema.org/name": "Alice",
			"https://schema.org/age": 30,
			"https://schema.org/knows": [
				{"@id": "https://example.org/bob"}
			]
		},
		{
			"@id": "https://example.org/bob",
			"@type": "https://schema.org/Person",
			"https://schema.org/name": "Bob"
		}
	]
}`

func TestSync_JSONLDToExcelAndBack(t *testing.T) {
	service := newFullService()
	ctx := context.Background()
	dir := t.TempDir()

	input := filepath.Join(dir, "in.jsonld")
	workbook := filepath.Join(dir, "mid.xlsx")
	output := filepath.Join(dir, "out.jsonld")
	require.NoError(t, os.WriteFile(input, []byte(sampleDocument), 0o644))

	result, err := service.Sync(ctx, driving.SyncRequest{
		From:   domain.FormatJSONLD,
		To:     domain.FormatExcel,
		Input:  input,
		Output: workbook,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Nodes)

	result, err = service.Sync(ctx, driving.SyncRequest{
		From:   domain.FormatExcel,
		To:     domain.FormatJSONLD,
		Input:  workbook,
		Output: output,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Nodes)

	original, err := jsonld.New().Read(ctx, input, domain.ConvertOptions{})
	require.NoError(t, err)
	roundTripped, err := jsonld.New().Read(ctx, output, domain.ConvertOptions{})
	require.NoError(t, err)

	domain.SortNodes(original)
	domain.SortNodes(roundTripped)
	assert.Equal(t, original, roundTripped)
}

func TestSync_JSONLDToRDF(t *testing.T) {
	service := newFullService()
	ctx := context.Background()
	dir := t.TempDir()

	input := filepath.Join(dir, "in.jsonld")
	output := filepath.Join(dir, "out.nq")
	require.NoError(t, os.WriteFile(input, []byte(sampleDocument), 0o644))

	result, err := service.Sync(ctx, driving.SyncRequest{
		From:   domain.FormatJSONLD,
		To:     domain.FormatRDF,
		Input:  input,
		Output: output,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Nodes)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	quads := string(data)
	assert.Contains(t, quads, "<https://example.org/alice>")
	assert.Contains(t, quads, "\"Alice\"")
	assert.Contains(t, quads, "<https://schema.org/Person>")
}
