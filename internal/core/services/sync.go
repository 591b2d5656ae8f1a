package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/aideon-labs/aideon-tools/internal/core/domain"
	"github.com/aideon-labs/aideon-tools/internal/core/ports/driven"
	"github.com/aideon-labs/aideon-tools/internal/core/ports/driving"
	"github.com/aideon-labs/aideon-tools/internal/logger"
)

// Ensure SyncService implements the interface.
var _ driving.SyncService = (*SyncService)(nil)

// SyncService executes conversions between dataset representations.
type SyncService struct {
	registry driven.CodecRegistry
	journal  driven.SyncJournal
	settings domain.Settings
}

// NewSyncService creates a sync service. The journal is optional - if nil,
// conversions run unrecorded.
func NewSyncService(registry driven.CodecRegistry, journal driven.SyncJournal, settings domain.Settings) *SyncService {
	return &SyncService{
		registry: registry,
		journal:  journal,
		settings: settings,
	}
}

// Sync runs one conversion.
func (s *SyncService) Sync(ctx context.Context, req driving.SyncRequest) (*driving.SyncResult, error) {
	started := time.Now()

	// 1. Validate the request shape
	if req.From == req.To {
		return nil, fmt.Errorf("%w: from %s to %s", domain.ErrUnsupportedConversion, req.From, req.To)
	}
	if _, err := os.Stat(req.Input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingInput, req.Input)
	}

	// 2. Resolve codecs
	source, ok := s.registry.Lookup(req.From)
	if !ok {
		return nil, fmt.Errorf("%w: no codec for %s", domain.ErrUnsupportedConversion, req.From)
	}
	target, ok := s.registry.Lookup(req.To)
	if !ok {
		return nil, fmt.Errorf("%w: no codec for %s", domain.ErrUnsupportedConversion, req.To)
	}

	// 3. Assemble conversion options
	opts, err := s.buildOptions(req)
	if err != nil {
		return nil, err
	}

	logger.Debug("resolved sync request",
		zap.String("from", string(req.From)),
		zap.String("to", string(req.To)),
		zap.String("input", req.Input),
		zap.String("output", req.Output),
		zap.Bool("has_context", opts.Context != nil))

	// 4. Read, then write
	nodes, err := source.Read(ctx, req.Input, opts)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", req.From, err)
	}
	if err := target.Write(ctx, req.Output, nodes, opts); err != nil {
		return nil, fmt.Errorf("write %s: %w", req.To, err)
	}

	result := &driving.SyncResult{
		Nodes:    len(nodes),
		Duration: time.Since(started),
	}

	logger.Info("synchronised dataset",
		zap.String("from", string(req.From)),
		zap.String("to", string(req.To)),
		zap.Int("nodes", result.Nodes),
		zap.Duration("duration", result.Duration))

	// 5. Record the conversion (best effort)
	s.record(ctx, req, result)

	return result, nil
}

// buildOptions loads the optional context document and resolves the RDF
// serialisation: explicit flag, then output extension, then the configured
// default.
func (s *SyncService) buildOptions(req driving.SyncRequest) (domain.ConvertOptions, error) {
	opts := domain.ConvertOptions{Expand: req.Expand}

	if req.ContextPath != "" {
		data, err := os.ReadFile(req.ContextPath)
		if err != nil {
			return opts, fmt.Errorf("read context %s: %w", req.ContextPath, err)
		}
		var contextDoc any
		if err := json.Unmarshal(data, &contextDoc); err != nil {
			return opts, fmt.Errorf("parse context %s: %w", req.ContextPath, err)
		}
		opts.Context = contextDoc
	}

	if req.To != domain.FormatRDF {
		return opts, nil
	}

	if req.RDFFormat != "" {
		serialisation, err := domain.ParseRDFSerialisation(req.RDFFormat)
		if err != nil {
			return opts, err
		}
		opts.RDF = serialisation
		return opts, nil
	}

	if serialisation, ok := domain.DetectRDFSerialisation(req.Output); ok {
		opts.RDF = serialisation
		return opts, nil
	}

	fallback, err := domain.ParseRDFSerialisation(s.settings.DefaultRDFFormat)
	if err != nil {
		fallback = domain.NQuads
	}
	opts.RDF = fallback
	return opts, nil
}

func (s *SyncService) record(ctx context.Context, req driving.SyncRequest, result *driving.SyncResult) {
	if s.journal == nil {
		return
	}

	entry := driven.JournalEntry{
		From:     req.From,
		To:       req.To,
		Input:    req.Input,
		Output:   req.Output,
		Nodes:    result.Nodes,
		Duration: result.Duration,
		SyncedAt: time.Now(),
	}
	if err := s.journal.Record(ctx, entry); err != nil {
		logger.Warn("journal entry not recorded", zap.Error(err))
	}
}

// IsUsageError reports whether the error stems from the request itself
// rather than from the data, so callers can show usage help.
func IsUsageError(err error) bool {
	return errors.Is(err, domain.ErrUnknownFormat) ||
		errors.Is(err, domain.ErrUnsupportedConversion) ||
		errors.Is(err, domain.ErrMissingInput)
}
