package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aideon-labs/aideon-tools/internal/core/domain"
)

type stubCodec struct {
	format domain.DataFormat
}

func (c *stubCodec) Format() domain.DataFormat { return c.format }

func (c *stubCodec) Read(_ context.Context, _ string, _ domain.ConvertOptions) ([]*domain.Node, error) {
	return nil, nil
}

func (c *stubCodec) Write(_ context.Context, _ string, _ []*domain.Node, _ domain.ConvertOptions) error {
	return nil
}

func TestCodecRegistry_RegisterAndLookup(t *testing.T) {
	registry := NewCodecRegistry()
	codec := &stubCodec{format: domain.FormatJSONLD}

	registry.Register(codec)

	found, ok := registry.Lookup(domain.FormatJSONLD)
	require.True(t, ok)
	assert.Same(t, codec, found)

	_, ok = registry.Lookup(domain.FormatRDF)
	assert.False(t, ok)
}

func TestCodecRegistry_ReplacesEarlierCodec(t *testing.T) {
	registry := NewCodecRegistry()
	first := &stubCodec{format: domain.FormatExcel}
	second := &stubCodec{format: domain.FormatExcel}

	registry.Register(first)
	registry.Register(second)

	found, ok := registry.Lookup(domain.FormatExcel)
	require.True(t, ok)
	assert.Same(t, second, found)
}

func TestCodecRegistry_FormatsSorted(t *testing.T) {
	registry := NewCodecRegistry()
	registry.Register(&stubCodec{format: domain.FormatExcel})
	registry.Register(&stubCodec{format: domain.FormatJSONLD})
	registry.Register(&stubCodec{format: domain.FormatRDF})

	assert.Equal(t,
		[]domain.DataFormat{domain.FormatJSONLD, domain.FormatRDF, domain.FormatExcel},
		registry.Formats())
}
