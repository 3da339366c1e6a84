package export

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/models"
)

// Issue is one problem the operator must review before export. It carries
// enough to locate the offender: which file, which code, which quantity.
type Issue struct {
	Kind         string          `json:"kind"`
	File         string          `json:"file"`
	CustomerCode string          `json:"customerCode,omitempty"`
	ProductCode  string          `json:"productCode,omitempty"`
	Quantity     decimal.Decimal `json:"quantity,omitempty"`
	Detail       string          `json:"detail"`
}

func (i Issue) String() string {
	out := i.Kind + " " + i.File
	if i.CustomerCode != "" {
		out += " customer=" + i.CustomerCode
	}
	if i.ProductCode != "" {
		out += " product=" + i.ProductCode
	}
	return out + ": " + i.Detail
}

// Issue kinds.
const (
	IssueMissingEmail      = "missing_customer_email"
	IssueItemWarning       = "item_warning"
	IssueFractionalQtyLeft = "fractional_quantity"
)

// Preflight enumerates everything that would block or taint an import:
// customers with no email on file, items still flagged with warnings, and
// quantities left fractional after normalization. An empty result means the
// batch is clean to export.
func (w *Writer) Preflight(ctx context.Context, orders []*models.Order) ([]Issue, error) {
	var issues []Issue
	for _, order := range orders {
		email, err := w.lookupEmail(ctx, order.CustomerCode)
		if err != nil {
			return nil, err
		}
		if email == "" {
			issues = append(issues, Issue{
				Kind:         IssueMissingEmail,
				File:         order.SourceFilename,
				CustomerCode: order.CustomerCode,
				Detail:       "no import email on file for customer",
			})
		}

		for _, item := range order.LineItems {
			if item.HasWarning {
				issues = append(issues, Issue{
					Kind:        IssueItemWarning,
					File:        order.SourceFilename,
					ProductCode: item.ProductCode,
					Quantity:    item.Quantity,
					Detail:      item.Note,
				})
			}
			if !item.Quantity.IsInteger() {
				issues = append(issues, Issue{
					Kind:        IssueFractionalQtyLeft,
					File:        order.SourceFilename,
					ProductCode: item.ProductCode,
					Quantity:    item.Quantity,
					Detail:      "quantity is still fractional after normalization",
				})
			}
		}
	}
	return issues, nil
}
