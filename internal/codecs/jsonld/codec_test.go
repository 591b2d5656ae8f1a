package jsonld

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aideon-labs/aideon-tools/internal/core/domain"
)

func TestCodec_Format(t *testing.T) {
	assert.Equal(t, domain.FormatJSONLD, New().Format())
}

func TestCodec_ReadWrite(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.jsonld")
	output := filepath.Join(dir, "out.jsonld")

	raw := `{
		"@graph": [
			{
				"@id": "https://example.org/alice",
				"@type": "https://schema.org/Person",
				"https://schema.org/name": "Alice"
			}
		]
	}`
	require.NoError(t, os.WriteFile(input, []byte(raw), 0o644))

	codec := New()

	nodes, err := codec.Read(context.Background(), input, domain.ConvertOptions{})
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	require.NoError(t, codec.Write(context.Background(), output, nodes, domain.ConvertOptions{}))

	reread, err := codec.Read(context.Background(), output, domain.ConvertOptions{})
	require.NoError(t, err)
	assert.Equal(t, nodes, reread)
}

func TestCodec_Read_MissingFile(t *testing.T) {
	_, err := New().Read(context.Background(), filepath.Join(t.TempDir(), "absent.jsonld"), domain.ConvertOptions{})
	assert.Error(t, err)
}

func TestCodec_Read_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.jsonld")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := New().Read(context.Background(), path, domain.ConvertOptions{})
	assert.Error(t, err)
}

func TestCodec_Read_ExpandResolvesContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.jsonld")
	raw := `{
		"@context": {"name": "https://schema.org/name"},
		"@id": "https://example.org/alice",
		"name": "Alice"
	}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	nodes, err := New().Read(context.Background(), path, domain.ConvertOptions{Expand: true})
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	value, ok := nodes[0].Properties["https://schema.org/name"]
	require.True(t, ok, "expansion should rewrite term keys to IRIs")
	require.Equal(t, domain.ValueScalarList, value.Kind)
	require.Len(t, value.Scalars, 1)
	assert.Equal(t, domain.StringScalar("Alice"), value.Scalars[0])
}

func TestCodec_Write_EmbedsContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonld")

	node := domain.NewNode("https://example.org/a")
	contextDoc := map[string]any{"name": "https://schema.org/name"}

	require.NoError(t, New().Write(context.Background(), path, []*domain.Node{node},
		domain.ConvertOptions{Context: contextDoc}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"@context"`)
	assert.Contains(t, string(data), "https://schema.org/name")
}
