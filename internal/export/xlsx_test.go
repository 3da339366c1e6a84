package export

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/models"
)

// mapEmails is an in-memory EmailLookup.
type mapEmails map[string]string

func (m mapEmails) CustomerEmail(ctx context.Context, code string) (string, error) {
	return m[code], nil
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func testOrder(t *testing.T) *models.Order {
	t.Helper()
	order := &models.Order{
		SourceFilename:      "78421.pdf",
		TemplateType:        models.TemplateStandard,
		CustomerCode:        "KH102",
		CustomerName:        "Kings Head Kitchen",
		PurchaseOrderNumber: "78421",
		OrderDate:           "14/03/2025",
		DeliveryDate:        "15/03/2025",
		LineItems: []models.LineItem{
			models.NewLineItem("BAN", "Bananas", models.UnitBox, dec(t, "12"), dec(t, "15.50")),
			models.NewLineItem("4188", "Baby Spinach", models.UnitKilo, dec(t, "3"), dec(t, "2.00")),
		},
	}
	order.RecalculateTotal()
	return order
}

func openRows(t *testing.T, data []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Orders")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	return rows
}

func TestWriteXLSX(t *testing.T) {
	w := NewWriter(mapEmails{"KH102": "orders@kingshead.example"}, "HOC", "Harvest Oak Catering Supplies", nil)

	data, err := w.WriteXLSX(context.Background(), []*models.Order{testOrder(t)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows := openRows(t, data)
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 item rows, got %d rows", len(rows))
	}
	if len(rows[0]) != ColumnCount {
		t.Errorf("header columns: got %d, want %d", len(rows[0]), ColumnCount)
	}

	first := rows[1]
	if first[0] != "KH102" {
		t.Errorf("customer code: got %q, want %q", first[0], "KH102")
	}
	if first[2] != "orders@kingshead.example" {
		t.Errorf("email: got %q, want %q", first[2], "orders@kingshead.example")
	}
	if first[10] != "GBP" {
		t.Errorf("currency: got %q, want %q", first[10], "GBP")
	}
	if first[11] != "192.00" {
		t.Errorf("order total: got %q, want %q", first[11], "192.00")
	}
	if first[12] != "BANB" {
		t.Errorf("sku: got %q, want %q", first[12], "BANB")
	}
	if first[17] != "15.5000" {
		t.Errorf("unit price: got %q, want %q", first[17], "15.5000")
	}
	if first[18] != "186.00" {
		t.Errorf("net price: got %q, want %q", first[18], "186.00")
	}

	// Order-level columns appear on the first item row only.
	second := rows[2]
	if second[0] != "" || second[3] != "" || second[11] != "" {
		t.Errorf("order columns leaked onto second row: %v", second[:12])
	}
	if second[12] != "4188K" {
		t.Errorf("sku: got %q, want %q", second[12], "4188K")
	}
}

func TestWriteXLSX_ConversionForcesEachSuffix(t *testing.T) {
	order := testOrder(t)
	order.LineItems[1].ConversionApplied = true

	w := NewWriter(nil, "HOC", "Harvest Oak Catering Supplies", nil)
	data, err := w.WriteXLSX(context.Background(), []*models.Order{order})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows := openRows(t, data)
	second := rows[2]
	if second[12] != "4188E" {
		t.Errorf("sku: got %q, want %q", second[12], "4188E")
	}
	if second[14] != "E" {
		t.Errorf("unit: got %q, want %q", second[14], "E")
	}
	if second[19] != "Y" {
		t.Errorf("conversion flag: got %q, want %q", second[19], "Y")
	}
}

func TestWriteXLSX_WarningFlag(t *testing.T) {
	order := testOrder(t)
	order.LineItems[0].HasWarning = true
	order.LineItems[0].Note = "check quantity"

	w := NewWriter(nil, "HOC", "Harvest Oak Catering Supplies", nil)
	data, err := w.WriteXLSX(context.Background(), []*models.Order{order})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows := openRows(t, data)
	first := rows[1]
	if first[20] != "Y" {
		t.Errorf("warning flag: got %q, want %q", first[20], "Y")
	}
	if first[21] != "check quantity" {
		t.Errorf("note: got %q, want %q", first[21], "check quantity")
	}
}

func TestPreflight(t *testing.T) {
	order := testOrder(t)
	order.LineItems[0].HasWarning = true
	order.LineItems[0].Note = "document net price disagrees with quantity x unit price"
	order.LineItems[1].Quantity = dec(t, "2.5")

	w := NewWriter(mapEmails{}, "HOC", "Harvest Oak Catering Supplies", nil)
	issues, err := w.Preflight(context.Background(), []*models.Order{order})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	kinds := make(map[string]int)
	for _, issue := range issues {
		kinds[issue.Kind]++
	}
	if kinds[IssueMissingEmail] != 1 {
		t.Errorf("missing email issues: got %d, want 1", kinds[IssueMissingEmail])
	}
	if kinds[IssueItemWarning] != 1 {
		t.Errorf("item warning issues: got %d, want 1", kinds[IssueItemWarning])
	}
	if kinds[IssueFractionalQtyLeft] != 1 {
		t.Errorf("fractional quantity issues: got %d, want 1", kinds[IssueFractionalQtyLeft])
	}
}

func TestPreflight_CleanBatch(t *testing.T) {
	w := NewWriter(mapEmails{"KH102": "orders@kingshead.example"}, "HOC", "Harvest Oak Catering Supplies", nil)
	issues, err := w.Preflight(context.Background(), []*models.Order{testOrder(t)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("expected no issues, got %v", issues)
	}
}
