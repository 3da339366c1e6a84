package convert

import (
	"github.com/shopspring/decimal"

	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/models"
)

// Notes attached by the normalizer. The three outcomes are qualitatively
// different and the export pre-flight gate distinguishes them.
const (
	NoteNoConversion = "no conversion factor for product; quantity left fractional"
	NoteStillDecimal = "conversion still yields a fractional unit count; quantity left unchanged"
	NoteNoWholeUnits = "conversion rounds to zero units; quantity left unchanged"
)

var (
	grams     = decimal.NewFromInt(1000)
	tolerance = decimal.NewFromFloat(0.001)
)

// Normalize converts a fractional quantity into an integral "each" count.
// It re-derives everything from the OriginalQuantity/OriginalUnitPrice
// snapshots, never from the possibly-mutated working fields, so it is
// idempotent and safe to re-invoke after a manual edit to quantity or
// product code.
//
// The net price is pinned to OriginalQuantity * OriginalUnitPrice and the
// unit price back-derived from it, so a successful conversion never changes
// what the customer pays.
func Normalize(item *models.LineItem, table Table) {
	clearConversionState(item)
	item.NetPrice = item.OriginalQuantity.Mul(item.OriginalUnitPrice)

	if item.OriginalQuantity.IsInteger() {
		item.Quantity = item.OriginalQuantity
		item.UnitPrice = item.OriginalUnitPrice
		return
	}

	factor, ok := table.Lookup(item.ProductCode)
	if !ok || factor.EachWeightGrams <= 0 {
		// Kept fractional on purpose: the operator reviews flagged items,
		// clamping here would silently change the order.
		keepFractional(item, NoteNoConversion)
		return
	}

	eachUnits := item.OriginalQuantity.
		Mul(grams).
		Div(decimal.NewFromInt(factor.EachWeightGrams)).
		Round(2)
	whole := eachUnits.Round(0)

	if whole.IsZero() {
		keepFractional(item, NoteNoWholeUnits)
		return
	}
	if eachUnits.Sub(whole).Abs().GreaterThan(tolerance) {
		keepFractional(item, NoteStillDecimal)
		return
	}

	item.Quantity = whole
	item.UnitPrice = item.NetPrice.Div(whole)
	item.ConversionApplied = true
}

func keepFractional(item *models.LineItem, note string) {
	item.Quantity = item.OriginalQuantity
	item.UnitPrice = item.OriginalUnitPrice
	item.HasWarning = true
	item.Note = note
}

// clearConversionState resets the normalizer's own outputs without touching
// warnings set elsewhere (e.g. by the parser).
func clearConversionState(item *models.LineItem) {
	item.ConversionApplied = false
	switch item.Note {
	case NoteNoConversion, NoteStillDecimal, NoteNoWholeUnits:
		item.Note = ""
		item.HasWarning = false
	}
}
