package parser

import (
	"testing"
)

func TestConsolidatedParser_Parse(t *testing.T) {
	p := &ConsolidatedParser{}

	text := `Consolidated Purchase Order
Purchase Order No: 90331
Order Date: 02/04/2025
Customer Code: SH204
Customer: Shire Hall Restaurant

8 CARROTS LOOSE CAR 1xBox 6.25 50.00
2 WATERMELON WML 1xEach 4.50 9.00`

	order, err := p.Parse(text, "90331.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order.PurchaseOrderNumber != "90331" {
		t.Errorf("po number: got %q, want %q", order.PurchaseOrderNumber, "90331")
	}
	if len(order.LineItems) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(order.LineItems))
	}
	if !order.Total.Equal(dec(t, "59.00")) {
		t.Errorf("total: got %s, want 59.00", order.Total)
	}
}

func TestConsolidatedParser_FiltersInvalidCandidates(t *testing.T) {
	p := &ConsolidatedParser{}

	// Zero-priced lines that the standard template would keep are rejected
	// here. The asymmetry between the two templates is intentional.
	text := `Consolidated Purchase Order
Purchase Order No: 90332
4 SAMPLE CRATE SMP 1xBox 0.00 0.00
6 ONIONS RED ONR 1xBox 3.10 18.60`

	order, err := p.Parse(text, "90332.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(order.LineItems) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(order.LineItems))
	}
	if order.LineItems[0].ProductCode != "ONR" {
		t.Errorf("code: got %q, want %q", order.LineItems[0].ProductCode, "ONR")
	}
	if !order.Total.Equal(dec(t, "18.60")) {
		t.Errorf("total: got %s, want 18.60", order.Total)
	}
}
