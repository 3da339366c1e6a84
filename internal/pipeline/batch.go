package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/models"
)

// DuplicateRegistry tracks purchase-order numbers already processed, so a
// re-uploaded document is flagged instead of silently re-imported.
type DuplicateRegistry interface {
	Has(ctx context.Context, poNumber string) (bool, error)
	Add(ctx context.Context, poNumber string) error
}

// BatchResult summarizes one batch run. Orders that failed extraction are
// absent from Orders and recorded in Failures by source path.
type BatchResult struct {
	ID         uuid.UUID
	Orders     []*models.Order
	Duplicates []string // PO numbers seen before this batch or earlier in it
	Failures   map[string]error
}

// RunBatch processes files strictly sequentially so the duplicate registry
// observes a consistent, monotonically growing seen-set. A per-file
// extraction failure is recorded and the batch continues; cancellation stops
// scheduling further files and returns the orders assembled so far. Each
// order is self-contained, so nothing needs rolling back.
func (p *Processor) RunBatch(ctx context.Context, paths []string, force models.TemplateType, registry DuplicateRegistry) *BatchResult {
	result := &BatchResult{
		ID:       uuid.New(),
		Failures: make(map[string]error),
	}
	p.Logger.Info("batch.start", "batch_id", result.ID.String(), "files", len(paths))

	for _, path := range paths {
		if ctx.Err() != nil {
			p.Logger.Warn("batch.cancelled", "batch_id", result.ID.String(), "done", len(result.Orders))
			break
		}

		order, err := p.ProcessFile(ctx, path, force)
		if err != nil {
			result.Failures[path] = err
			continue
		}
		result.Orders = append(result.Orders, order)

		po := order.PurchaseOrderNumber
		if po == "" || registry == nil {
			continue
		}
		seen, err := registry.Has(ctx, po)
		if err != nil {
			p.Logger.Warn("batch.registry.check_failed", "po", po, "err", err)
			continue
		}
		if seen {
			result.Duplicates = append(result.Duplicates, po)
			p.Logger.Warn("batch.duplicate_po", "po", po, "file", order.SourceFilename)
			continue
		}
		if err := registry.Add(ctx, po); err != nil {
			p.Logger.Warn("batch.registry.add_failed", "po", po, "err", err)
		}
	}

	p.Logger.Info("batch.done",
		"batch_id", result.ID.String(),
		"orders", len(result.Orders),
		"failures", len(result.Failures),
		"duplicates", len(result.Duplicates),
	)
	return result
}
