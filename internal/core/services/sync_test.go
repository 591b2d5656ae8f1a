package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aideon-labs/aideon-tools/internal/core/domain"
	"github.com/aideon-labs/aideon-tools/internal/core/ports/driven"
	"github.com/aideon-labs/aideon-tools/internal/core/ports/driving"
)

// fakeCodec records calls and returns canned nodes.
type fakeCodec struct {
	format    domain.DataFormat
	nodes     []*domain.Node
	readErr   error
	writeErr  error
	readOpts  domain.ConvertOptions
	writeOpts domain.ConvertOptions
	written   []*domain.Node
	writePath string
}

func (c *fakeCodec) Format() domain.DataFormat { return c.format }

func (c *fakeCodec) Read(_ context.Context, _ string, opts domain.ConvertOptions) ([]*domain.Node, error) {
	c.readOpts = opts
	return c.nodes, c.readErr
}

func (c *fakeCodec) Write(_ context.Context, path string, nodes []*domain.Node, opts domain.ConvertOptions) error {
	c.writeOpts = opts
	c.written = nodes
	c.writePath = path
	return c.writeErr
}

// fakeJournal captures recorded entries.
type fakeJournal struct {
	entries   []driven.JournalEntry
	recordErr error
}

func (j *fakeJournal) Record(_ context.Context, entry driven.JournalEntry) error {
	j.entries = append(j.entries, entry)
	return j.recordErr
}

func (j *fakeJournal) List(_ context.Context, _ int) ([]driven.JournalEntry, error) {
	return j.entries, nil
}

func newTestFixture(t *testing.T) (*SyncService, *fakeCodec, *fakeCodec, *fakeJournal, driving.SyncRequest) {
	t.Helper()

	source := &fakeCodec{
		format: domain.FormatJSONLD,
		nodes:  []*domain.Node{domain.NewNode("https://example.org/a")},
	}
	target := &fakeCodec{format: domain.FormatExcel}
	journal := &fakeJournal{}

	registry := NewCodecRegistry()
	registry.Register(source)
	registry.Register(target)

	service := NewSyncService(registry, journal, domain.DefaultSettings())

	input := filepath.Join(t.TempDir(), "in.jsonld")
	require.NoError(t, os.WriteFile(input, []byte("{}"), 0o644))

	req := driving.SyncRequest{
		From:   domain.FormatJSONLD,
		To:     domain.FormatExcel,
		Input:  input,
		Output: filepath.Join(t.TempDir(), "out.xlsx"),
	}

	return service, source, target, journal, req
}

func TestSync_Succeeds(t *testing.T) {
	service, source, target, journal, req := newTestFixture(t)

	result, err := service.Sync(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Nodes)
	assert.Equal(t, source.nodes, target.written)
	assert.Equal(t, req.Output, target.writePath)

	require.Len(t, journal.entries, 1)
	entry := journal.entries[0]
	assert.Equal(t, domain.FormatJSONLD, entry.From)
	assert.Equal(t, domain.FormatExcel, entry.To)
	assert.Equal(t, 1, entry.Nodes)
}

func TestSync_SameFormatRejected(t *testing.T) {
	service, _, _, _, req := newTestFixture(t)
	req.To = req.From

	_, err := service.Sync(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrUnsupportedConversion)
}

func TestSync_MissingInput(t *testing.T) {
	service, _, _, _, req := newTestFixture(t)
	req.Input = filepath.Join(t.TempDir(), "absent.jsonld")

	_, err := service.Sync(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrMissingInput)
}

func TestSync_UnknownTargetCodec(t *testing.T) {
	service, _, _, _, req := newTestFixture(t)
	req.To = domain.FormatRDF

	_, err := service.Sync(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrUnsupportedConversion)
}

func TestSync_ReadErrorPropagates(t *testing.T) {
	service, source, _, journal, req := newTestFixture(t)
	source.readErr = errors.New("corrupt document")

	_, err := service.Sync(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt document")
	assert.Empty(t, journal.entries)
}

func TestSync_JournalFailureTolerated(t *testing.T) {
	service, _, _, journal, req := newTestFixture(t)
	journal.recordErr = errors.New("disk full")

	_, err := service.Sync(context.Background(), req)
	assert.NoError(t, err)
}

func TestSync_NilJournalTolerated(t *testing.T) {
	_, source, target, _, req := newTestFixture(t)

	registry := NewCodecRegistry()
	registry.Register(source)
	registry.Register(target)
	service := NewSyncService(registry, nil, domain.DefaultSettings())

	_, err := service.Sync(context.Background(), req)
	assert.NoError(t, err)
}

func TestSync_LoadsContextDocument(t *testing.T) {
	service, _, target, _, req := newTestFixture(t)

	contextPath := filepath.Join(t.TempDir(), "context.json")
	require.NoError(t, os.WriteFile(contextPath, []byte(`{"name": "https://schema.org/name"}`), 0o644))
	req.ContextPath = contextPath

	_, err := service.Sync(context.Background(), req)
	require.NoError(t, err)

	contextDoc, ok := target.writeOpts.Context.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "https://schema.org/name", contextDoc["name"])
}

func TestSync_InvalidContextDocument(t *testing.T) {
	service, _, _, _, req := newTestFixture(t)

	contextPath := filepath.Join(t.TempDir(), "context.json")
	require.NoError(t, os.WriteFile(contextPath, []byte("{broken"), 0o644))
	req.ContextPath = contextPath

	_, err := service.Sync(context.Background(), req)
	assert.Error(t, err)
}

func TestSync_RDFSerialisationResolution(t *testing.T) {
	tests := []struct {
		name      string
		rdfFormat string
		output    string
		want      domain.RDFSerialisation
	}{
		{name: "explicit flag wins", rdfFormat: "ntriples", output: "out.nq", want: domain.NTriples},
		{name: "extension detected", rdfFormat: "", output: "out.nt", want: domain.NTriples},
		{name: "settings default", rdfFormat: "", output: "out.rdf", want: domain.NQuads},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &fakeCodec{format: domain.FormatJSONLD}
			target := &fakeCodec{format: domain.FormatRDF}

			registry := NewCodecRegistry()
			registry.Register(source)
			registry.Register(target)
			service := NewSyncService(registry, nil, domain.DefaultSettings())

			input := filepath.Join(t.TempDir(), "in.jsonld")
			require.NoError(t, os.WriteFile(input, []byte("{}"), 0o644))

			_, err := service.Sync(context.Background(), driving.SyncRequest{
				From:      domain.FormatJSONLD,
				To:        domain.FormatRDF,
				Input:     input,
				Output:    filepath.Join(t.TempDir(), tt.output),
				RDFFormat: tt.rdfFormat,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, target.writeOpts.RDF)
		})
	}
}

func TestSync_InvalidRDFFormatFlag(t *testing.T) {
	source := &fakeCodec{format: domain.FormatJSONLD}
	target := &fakeCodec{format: domain.FormatRDF}

	registry := NewCodecRegistry()
	registry.Register(source)
	registry.Register(target)
	service := NewSyncService(registry, nil, domain.DefaultSettings())

	input := filepath.Join(t.TempDir(), "in.jsonld")
	require.NoError(t, os.WriteFile(input, []byte("{}"), 0o644))

	_, err := service.Sync(context.Background(), driving.SyncRequest{
		From:      domain.FormatJSONLD,
		To:        domain.FormatRDF,
		Input:     input,
		Output:    filepath.Join(t.TempDir(), "out.nq"),
		RDFFormat: "turtle",
	})
	assert.ErrorIs(t, err, domain.ErrUnknownFormat)
}

func TestIsUsageError(t *testing.T) {
	assert.True(t, IsUsageError(domain.ErrUnknownFormat))
	assert.True(t, IsUsageError(domain.ErrUnsupportedConversion))
	assert.True(t, IsUsageError(domain.ErrMissingInput))
	assert.False(t, IsUsageError(errors.New("other")))
}

func TestWatch_StopsOnCancelledContext(t *testing.T) {
	service, _, _, _, req := newTestFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := service.Watch(ctx, req)
	assert.ErrorIs(t, err, context.Canceled)
}
