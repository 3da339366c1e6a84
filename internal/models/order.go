package models

import (
	"github.com/shopspring/decimal"
)

// TemplateType represents supported purchase-order document layouts.
type TemplateType string

const (
	TemplateStandard     TemplateType = "standard"
	TemplateConsolidated TemplateType = "consolidated"
	TemplatePickingNote  TemplateType = "pickingnote"
)

// CaseUnit is the unit-of-sale classification for a line item.
type CaseUnit string

const (
	UnitEach CaseUnit = "Each" // discrete countable units
	UnitKilo CaseUnit = "Kilo" // sold by weight
	UnitBox  CaseUnit = "Box"  // sold by case
)

// Suffix returns the single-letter SKU suffix for the unit.
func (u CaseUnit) Suffix() string {
	switch u {
	case UnitKilo:
		return "K"
	case UnitBox:
		return "B"
	default:
		return "E"
	}
}

// MatchKind records how a line item's product identity was resolved
// against the catalog.
type MatchKind string

const (
	MatchNone           MatchKind = "none"
	MatchDirect         MatchKind = "direct"
	MatchFallback       MatchKind = "fallback"
	MatchReverseExact   MatchKind = "reverse_exact"
	MatchReverseSimple  MatchKind = "reverse_simple"
	MatchReverseKeyword MatchKind = "reverse_keyword"
	MatchReversePartial MatchKind = "reverse_partial"
	MatchError          MatchKind = "error"
)

// LineItem is a single product row extracted from a purchase order.
//
// OriginalQuantity and OriginalUnitPrice are parse-time snapshots and are
// never overwritten after construction; the quantity normalizer re-derives
// Quantity, UnitPrice and NetPrice from them so that
// NetPrice == OriginalQuantity * OriginalUnitPrice holds at all times.
type LineItem struct {
	Quantity            decimal.Decimal `json:"quantity"`
	OriginalQuantity    decimal.Decimal `json:"originalQuantity"`
	Description         string          `json:"description"`
	ProductCode         string          `json:"productCode"`
	OriginalProductCode string          `json:"originalProductCode,omitempty"`
	CaseUnit            CaseUnit        `json:"caseUnit"`
	UnitPrice           decimal.Decimal `json:"unitPrice"`
	OriginalUnitPrice   decimal.Decimal `json:"originalUnitPrice"`
	NetPrice            decimal.Decimal `json:"netPrice"`
	CatalogMatch        MatchKind       `json:"catalogMatch"`
	ConversionApplied   bool            `json:"conversionApplied"`
	HasWarning          bool            `json:"hasWarning"`
	Note                string          `json:"note,omitempty"`
}

// NewLineItem constructs a line item from parsed values, snapshotting the
// original quantity and unit price.
func NewLineItem(code, description string, unit CaseUnit, qty, unitPrice decimal.Decimal) LineItem {
	return LineItem{
		Quantity:          qty,
		OriginalQuantity:  qty,
		Description:       description,
		ProductCode:       code,
		CaseUnit:          unit,
		UnitPrice:         unitPrice,
		OriginalUnitPrice: unitPrice,
		NetPrice:          qty.Mul(unitPrice),
		CatalogMatch:      MatchNone,
	}
}

// SKUSuffix returns the export unit suffix for the item. A converted item
// is sold as discrete units, so conversion forces the Each suffix whatever
// the nominal case unit says.
func (li *LineItem) SKUSuffix() string {
	if li.ConversionApplied {
		return UnitEach.Suffix()
	}
	return li.CaseUnit.Suffix()
}

// SKU is the product code plus unit suffix as exported downstream.
func (li *LineItem) SKU() string {
	return li.ProductCode + li.SKUSuffix()
}

// Order is one purchase-order document's worth of extracted data.
// Dates are free-form DD/MM/YYYY strings.
type Order struct {
	SourceFilename      string          `json:"sourceFilename"`
	TemplateType        TemplateType    `json:"templateType"`
	CustomerCode        string          `json:"customerCode"`
	CustomerName        string          `json:"customerName"`
	PurchaseOrderNumber string          `json:"purchaseOrderNumber"`
	OrderDate           string          `json:"orderDate"`
	DeliveryDate        string          `json:"deliveryDate"`
	LineItems           []LineItem      `json:"lineItems"`
	Total               decimal.Decimal `json:"total"`
}

// RecalculateTotal sets Total to the sum of current line-item net prices.
// Call after any mutation to a line item.
func (o *Order) RecalculateTotal() {
	total := decimal.Zero
	for i := range o.LineItems {
		total = total.Add(o.LineItems[i].NetPrice)
	}
	o.Total = total
}

// Warnings returns the line items currently flagged for review.
func (o *Order) Warnings() []LineItem {
	var out []LineItem
	for _, li := range o.LineItems {
		if li.HasWarning {
			out = append(out, li)
		}
	}
	return out
}
