// Package pipeline coordinates the per-file stages: extract text, classify
// template, parse line items, resolve against the catalog, normalize
// quantities, and assemble the order.
package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/catalog"
	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/convert"
	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/extractor"
	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/models"
	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/parser"
)

// Processor runs the extraction pipeline for single files.
type Processor struct {
	// Extract turns a PDF path into first-page text. Defaults to
	// extractor.ExtractFirstPage; tests substitute their own.
	Extract     func(path string) (string, error)
	Resolver    *catalog.Resolver
	Conversions convert.Table
	Logger      *slog.Logger
}

func NewProcessor(resolver *catalog.Resolver, conversions convert.Table, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		Extract:     extractor.ExtractFirstPage,
		Resolver:    resolver,
		Conversions: conversions,
		Logger:      logger,
	}
}

// ProcessFile runs the full pipeline for one PDF. A non-empty force skips
// template auto-detection. Extraction failure is the only error; a document
// that parses to nothing yields an empty order for manual review.
func (p *Processor) ProcessFile(ctx context.Context, path string, force models.TemplateType) (*models.Order, error) {
	text, err := p.Extract(path)
	if err != nil {
		p.Logger.Error("pipeline.extract.failed", "file", path, "err", err)
		return nil, err
	}
	return p.ProcessText(ctx, text, filepath.Base(path), force)
}

// ProcessText runs classification, parsing, resolution and assembly over
// already-extracted text.
func (p *Processor) ProcessText(ctx context.Context, text, filename string, force models.TemplateType) (*models.Order, error) {
	template := force
	if template == "" {
		template = parser.Classify(text)
	}
	tp, err := parser.New(template)
	if err != nil {
		return nil, err
	}

	order, err := tp.Parse(text, filename)
	if err != nil {
		return nil, err
	}
	p.Logger.Debug("pipeline.parse.ok",
		"file", order.SourceFilename,
		"template", tp.TemplateName(),
		"items", len(order.LineItems),
	)

	p.resolveItems(ctx, order)
	Assemble(order, p.Conversions)

	p.Logger.Info("pipeline.file.ok",
		"file", order.SourceFilename,
		"po", order.PurchaseOrderNumber,
		"items", len(order.LineItems),
		"total", order.Total.String(),
	)
	return order, nil
}

// resolveItems enriches each line item with its canonical catalog identity.
// This is the only place parsing output is retroactively corrected, and it
// happens at most once per item.
func (p *Processor) resolveItems(ctx context.Context, order *models.Order) {
	for i := range order.LineItems {
		item := &order.LineItems[i]
		res := p.Resolver.Resolve(ctx, item.ProductCode, item.Description)
		item.CatalogMatch = res.Match

		switch res.Match {
		case models.MatchNone, models.MatchError:
			continue
		}
		if res.Code != item.ProductCode {
			item.OriginalProductCode = item.ProductCode
			item.ProductCode = res.Code
		}
		if res.Description != "" {
			item.Description = res.Description
		}
	}
}
