package parser

import (
	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/models"
)

// ConsolidatedParser handles the "Consolidated Purchase Order" layout.
//
// Consolidated orders group several departments' requirements into one
// document. The header labels and the item table match the standard layout,
// but consolidated documents are noisier, so candidates are only accepted
// when they carry a positive quantity, a product code and a positive unit
// price.
type ConsolidatedParser struct{}

func (p *ConsolidatedParser) TemplateName() string {
	return "Consolidated"
}

func (p *ConsolidatedParser) Parse(text, filename string) (*models.Order, error) {
	order := &models.Order{
		SourceFilename: filename,
		TemplateType:   models.TemplateConsolidated,
	}
	parseTabularHeaders(order, text)

	for _, item := range tabularLineItems(text) {
		if !item.Quantity.IsPositive() {
			continue
		}
		if item.ProductCode == "" {
			continue
		}
		if !item.UnitPrice.IsPositive() {
			continue
		}
		order.LineItems = append(order.LineItems, item)
	}
	order.RecalculateTotal()
	return order, nil
}
