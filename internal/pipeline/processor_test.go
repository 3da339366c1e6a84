package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/catalog"
	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/convert"
	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/models"
)

type memSource struct {
	entries []catalog.Entry
}

func (s *memSource) LoadEntries(ctx context.Context) ([]catalog.Entry, error) {
	return s.entries, nil
}

// memRegistry is an in-memory DuplicateRegistry.
type memRegistry struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newMemRegistry() *memRegistry {
	return &memRegistry{seen: make(map[string]bool)}
}

func (r *memRegistry) Has(ctx context.Context, po string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seen[po], nil
}

func (r *memRegistry) Add(ctx context.Context, po string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen[po] = true
	return nil
}

func newTestProcessor(entries []catalog.Entry, conversions convert.Table) *Processor {
	resolver := catalog.NewResolver(catalog.New(&memSource{entries: entries}, 0), nil)
	if conversions == nil {
		conversions = convert.StaticTable{}
	}
	return NewProcessor(resolver, conversions, nil)
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestProcessText_EndToEnd(t *testing.T) {
	entries := []catalog.Entry{
		{Code: "BAN", Description: "Bananas"},
		{Code: "4188K", Description: "Baby Spinach"},
	}
	conversions := convert.StaticTable{
		"4188K": {DisplayName: "Baby Spinach", EachWeightGrams: 200},
	}
	p := newTestProcessor(entries, conversions)

	text := `Purchase Order No: 78421
Order Date: 14/03/2025
Customer Code: KH102
12 BANANAS LOOSE BAN 1xBox 15.50 186.00`

	order, err := p.ProcessText(context.Background(), text, "78421.pdf", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order.TemplateType != models.TemplateStandard {
		t.Errorf("template: got %q, want %q", order.TemplateType, models.TemplateStandard)
	}
	if len(order.LineItems) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(order.LineItems))
	}

	item := order.LineItems[0]
	if item.CatalogMatch != models.MatchDirect {
		t.Errorf("match: got %q, want %q", item.CatalogMatch, models.MatchDirect)
	}
	// Direct match replaces the scraped description with the catalog one.
	if item.Description != "Bananas" {
		t.Errorf("description: got %q, want %q", item.Description, "Bananas")
	}
	if !order.Total.Equal(dec(t, "186.00")) {
		t.Errorf("total: got %s, want 186.00", order.Total)
	}
}

func TestProcessText_ResolutionRewritesCode(t *testing.T) {
	entries := []catalog.Entry{
		{Code: "4112E", Description: "Strawberries"},
	}
	p := newTestProcessor(entries, nil)

	text := `Purchase Order No: 5
3 STRAWBERRIES XXX 1xEach 2.00 6.00`

	order, err := p.ProcessText(context.Background(), text, "5.pdf", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item := order.LineItems[0]
	if item.CatalogMatch != models.MatchReverseExact {
		t.Fatalf("match: got %q, want %q", item.CatalogMatch, models.MatchReverseExact)
	}
	if item.ProductCode != "4112E" {
		t.Errorf("code: got %q, want %q", item.ProductCode, "4112E")
	}
	if item.OriginalProductCode != "XXX" {
		t.Errorf("original code: got %q, want %q", item.OriginalProductCode, "XXX")
	}
}

func TestProcessText_ForcedTemplate(t *testing.T) {
	p := newTestProcessor(nil, nil)

	// The consolidated marker is present, but the caller forces standard.
	text := `Consolidated Purchase Order
Purchase Order No: 6
4 SAMPLE CRATE SMP 1xBox 0.00 0.00`

	order, err := p.ProcessText(context.Background(), text, "6.pdf", models.TemplateStandard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.TemplateType != models.TemplateStandard {
		t.Errorf("template: got %q, want %q", order.TemplateType, models.TemplateStandard)
	}
	// Standard keeps the zero-priced line that consolidated would drop.
	if len(order.LineItems) != 1 {
		t.Errorf("expected 1 line item, got %d", len(order.LineItems))
	}
}

func TestProcessText_UnknownForcedTemplate(t *testing.T) {
	p := newTestProcessor(nil, nil)
	if _, err := p.ProcessText(context.Background(), "anything", "x.pdf", "bogus"); err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestProcessFile_ExtractionFailure(t *testing.T) {
	p := newTestProcessor(nil, nil)
	p.Extract = func(path string) (string, error) {
		return "", errors.New("unreadable")
	}
	if _, err := p.ProcessFile(context.Background(), "/tmp/bad.pdf", ""); err == nil {
		t.Fatal("expected extraction error")
	}
}

func TestRunBatch(t *testing.T) {
	p := newTestProcessor(nil, nil)
	texts := map[string]string{
		"a.pdf": "Purchase Order No: 100\n2 APPLES GALA APG 1xBox 3.00 6.00",
		"b.pdf": "Purchase Order No: 101\n1 PEARS PRC 1xBox 4.00 4.00",
		"c.pdf": "Purchase Order No: 100\n2 APPLES GALA APG 1xBox 3.00 6.00",
	}
	p.Extract = func(path string) (string, error) {
		text, ok := texts[path]
		if !ok {
			return "", fmt.Errorf("no such file %s", path)
		}
		return text, nil
	}

	registry := newMemRegistry()
	result := p.RunBatch(context.Background(),
		[]string{"a.pdf", "b.pdf", "c.pdf", "d.pdf"}, "", registry)

	if len(result.Orders) != 3 {
		t.Errorf("orders: got %d, want 3", len(result.Orders))
	}
	if len(result.Failures) != 1 {
		t.Errorf("failures: got %d, want 1", len(result.Failures))
	}
	if _, ok := result.Failures["d.pdf"]; !ok {
		t.Error("expected d.pdf in failures")
	}
	// c.pdf repeats PO 100 within the batch.
	if len(result.Duplicates) != 1 || result.Duplicates[0] != "100" {
		t.Errorf("duplicates: got %v, want [100]", result.Duplicates)
	}
}

func TestRunBatch_PreRegisteredDuplicate(t *testing.T) {
	p := newTestProcessor(nil, nil)
	p.Extract = func(path string) (string, error) {
		return "Purchase Order No: 200\n1 LIMES LIM 1xBox 2.00 2.00", nil
	}

	registry := newMemRegistry()
	if err := registry.Add(context.Background(), "200"); err != nil {
		t.Fatal(err)
	}

	result := p.RunBatch(context.Background(), []string{"x.pdf"}, "", registry)
	if len(result.Duplicates) != 1 {
		t.Fatalf("duplicates: got %v, want [200]", result.Duplicates)
	}
	// The duplicate order is still parsed and returned for review.
	if len(result.Orders) != 1 {
		t.Errorf("orders: got %d, want 1", len(result.Orders))
	}
}

func TestRunBatch_CancellationKeepsCompleted(t *testing.T) {
	p := newTestProcessor(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())

	processed := 0
	p.Extract = func(path string) (string, error) {
		processed++
		if processed == 2 {
			cancel()
		}
		return fmt.Sprintf("Purchase Order No: %d\n1 LIMES LIM 1xBox 2.00 2.00", 300+processed), nil
	}

	result := p.RunBatch(ctx, []string{"1.pdf", "2.pdf", "3.pdf", "4.pdf"}, "", newMemRegistry())

	if processed != 2 {
		t.Errorf("processed: got %d, want 2 (cancellation must stop scheduling)", processed)
	}
	if len(result.Orders) != 2 {
		t.Errorf("orders: got %d, want 2 (completed orders stay intact)", len(result.Orders))
	}
}

func TestAssemble(t *testing.T) {
	conversions := convert.StaticTable{
		"4188K": {EachWeightGrams: 200},
	}
	order := &models.Order{
		LineItems: []models.LineItem{
			models.NewLineItem("4188K", "Baby Spinach", models.UnitKilo, dec(t, "0.6"), dec(t, "10.00")),
			models.NewLineItem("BAN", "Bananas", models.UnitBox, dec(t, "2"), dec(t, "4.00")),
		},
	}

	Assemble(order, conversions)

	if !order.LineItems[0].ConversionApplied {
		t.Error("expected the spinach line to convert")
	}
	if order.LineItems[1].ConversionApplied {
		t.Error("integral quantity must not convert")
	}
	if !order.Total.Equal(dec(t, "14.00")) {
		t.Errorf("total: got %s, want 14.00", order.Total)
	}
}
