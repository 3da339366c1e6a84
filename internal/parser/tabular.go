package parser

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/models"
)

// Standard and consolidated purchase orders share one tabular line layout:
//
//	Quantity | Description | Code | Pack (1xWORD) | Unit price | Net price
//
// Example line: "12 BANANAS LOOSE BAN 1xBox 15.50 186.00"
//
// The pattern is applied repeatedly until the text is exhausted. The lazy
// description group hands the last uppercase word before the pack token to
// the code group.
var tabularItemPattern = regexp.MustCompile(
	`(\d+(?:\.\d+)?)\s+([A-Z][A-Z ]+?)\s+([A-Z]+)\s+(1x\S+)\s+([\d,]+(?:\.\d+)?)\s+([\d,]+(?:\.\d+)?)`,
)

// tabularLineItems extracts every candidate line item the tabular pattern
// finds in the text. Acceptance policy is the caller's concern: the standard
// template keeps every candidate, the consolidated template filters.
func tabularLineItems(text string) []models.LineItem {
	var items []models.LineItem
	for _, m := range tabularItemPattern.FindAllStringSubmatch(text, -1) {
		qty, err := parseDecimal(m[1])
		if err != nil {
			continue
		}
		unitPrice, err := parseDecimal(m[5])
		if err != nil {
			continue
		}
		docNet, err := parseDecimal(m[6])
		if err != nil {
			continue
		}

		item := models.NewLineItem(m[3], m[2], parseCaseUnit(m[4]), qty, unitPrice)
		// The document's own net column is only used as a cross-check; the
		// stored net price is always quantity * unit price.
		if docNet.Sub(item.NetPrice).Abs().GreaterThan(decimal.NewFromFloat(0.01)) {
			item.HasWarning = true
			item.Note = "document net price disagrees with quantity x unit price"
		}
		items = append(items, item)
	}
	return items
}
