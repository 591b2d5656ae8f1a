package excel

import (
	"context"

	"go.uber.org/zap"

	"github.com/aideon-labs/aideon-tools/internal/core/domain"
	"github.com/aideon-labs/aideon-tools/internal/core/ports/driven"
	"github.com/aideon-labs/aideon-tools/internal/logger"
)

// Ensure Codec implements the interface.
var _ driven.GraphCodec = (*Codec)(nil)

// Codec handles XLSX workbooks.
type Codec struct{}

// New creates a new Excel codec.
func New() *Codec {
	return &Codec{}
}

// Format returns the representation this codec handles.
func (c *Codec) Format() domain.DataFormat {
	return domain.FormatExcel
}

// Read rebuilds nodes from a workbook.
func (c *Codec) Read(_ context.Context, path string, _ domain.ConvertOptions) ([]*domain.Node, error) {
	nodes, err := ReadNodes(path)
	if err != nil {
		return nil, err
	}

	logger.Debug("read nodes from workbook",
		zap.String("path", path),
		zap.Int("nodes", len(nodes)))
	return nodes, nil
}

// Write flattens nodes into a workbook.
func (c *Codec) Write(_ context.Context, path string, nodes []*domain.Node, _ domain.ConvertOptions) error {
	workbook, err := BuildWorkbook(nodes)
	if err != nil {
		return err
	}

	logger.Debug("workbook constructed",
		zap.String("path", path),
		zap.Int("sheets", len(workbook.Tables)))
	return WriteWorkbook(path, workbook)
}
