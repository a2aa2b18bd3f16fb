// Package pipeline runs a full extraction pass over one input blob.
package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bdcommerce/order-extractor/internal/common"
	"github.com/bdcommerce/order-extractor/internal/export"
	"github.com/bdcommerce/order-extractor/internal/extract"
	"github.com/bdcommerce/order-extractor/internal/patterns"
	"github.com/bdcommerce/order-extractor/internal/segment"
)

// Processor coordinates segmentation, field extraction, validation and
// export assembly. Stateless across runs; safe for concurrent use.
type Processor struct {
	Logger    *slog.Logger
	Segmenter *segment.Segmenter
	Extractor *extract.Extractor
	Writer    *export.Writer
}

// Summary is the diagnostics surface for one run: what was detected,
// what was exported, and why the rest was rejected.
type Summary struct {
	RunID    uuid.UUID
	Blocks   int
	Rows     []export.Row
	Rejected []export.Rejected
}

func NewProcessor(lib *patterns.Library, writer *export.Writer, logger *slog.Logger) *Processor {
	if lib == nil {
		lib = patterns.Default()
	}
	if writer == nil {
		writer = export.NewWriter("", logger)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		Logger:    logger,
		Segmenter: segment.New(lib),
		Extractor: extract.New(lib),
		Writer:    writer,
	}
}

// Process runs segmentation, extraction, validation and assembly over
// one input string. Blank input yields ErrNoInput before segmentation;
// a run where every block fails validation yields ErrNoValidData along
// with the summary so callers can still report per-block diagnostics.
func (p *Processor) Process(ctx context.Context, input string) (*Summary, error) {
	start := time.Now()
	runID := uuid.New()
	if strings.TrimSpace(input) == "" {
		p.Logger.Warn("pipeline.run.empty", "run_id", runID)
		return nil, common.ErrNoInput
	}

	blocks := p.Segmenter.Split(input)
	recs := make([]extract.Record, 0, len(blocks))
	for _, b := range blocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		recs = append(recs, p.Extractor.Extract(b))
	}

	rows, rejected := export.Assemble(recs)
	summary := &Summary{
		RunID:    runID,
		Blocks:   len(blocks),
		Rows:     rows,
		Rejected: rejected,
	}

	for _, rej := range rejected {
		p.Logger.Warn("pipeline.record.rejected",
			"run_id", runID,
			"entry", rej.BlockIndex,
			"missing", rej.Missing,
		)
	}

	if len(rows) == 0 {
		p.Logger.Warn("pipeline.run.no_valid_data", "run_id", runID, "blocks", len(blocks))
		return summary, common.ErrNoValidData
	}

	p.Logger.Info("pipeline.run.ok",
		"run_id", runID,
		"blocks", len(blocks),
		"valid", len(rows),
		"rejected", len(rejected),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return summary, nil
}

// ProcessToXLSX runs Process and serializes the valid rows. A writer
// failure surfaces as ErrExportFailed; the summary is still returned
// because the extracted data exists even when no artifact was produced.
func (p *Processor) ProcessToXLSX(ctx context.Context, input string) (*Summary, []byte, error) {
	summary, err := p.Process(ctx, input)
	if err != nil {
		return summary, nil, err
	}
	data, err := p.Writer.WriteXLSX(summary.Rows)
	if err != nil {
		p.Logger.Error("pipeline.export.failed", "run_id", summary.RunID, "err", err)
		return summary, nil, common.WrapError(common.ErrExportFailed, err.Error())
	}
	return summary, data, nil
}
