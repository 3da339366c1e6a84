// Package export serializes assembled orders into the downstream ordering
// system's fixed 79-column spreadsheet import format.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/models"
)

// EmailLookup resolves a customer code to the import email address.
type EmailLookup interface {
	CustomerEmail(ctx context.Context, code string) (string, error)
}

// importHeaders is the downstream system's fixed import template. The
// column set and order are dictated by that system; columns we have no data
// for are emitted empty but must still exist.
var importHeaders = []string{
	"Customer Code", "Customer Name", "Customer Email", "PO Number",
	"Order Date", "Delivery Date", "Source File", "Template",
	"Vendor Code", "Vendor Name", "Currency", "Order Total",
	"SKU", "Product Code", "Unit", "Product Description",
	"Quantity", "Unit Price", "Net Price", "Conversion Applied",
	"Warning", "Note",
	"Address Line 1", "Address Line 2", "Address Line 3", "Town",
	"County", "Postcode", "Country", "Contact Name", "Contact Phone",
	"Contact Email", "Department", "Cost Centre", "Nominal Code",
	"Tax Code", "Tax Rate", "Tax Amount", "Gross Price",
	"Discount Rate", "Discount Amount", "Exchange Rate",
	"Payment Terms", "Settlement Days", "Buyer Code", "Buyer Name",
	"Supplier Ref", "GLN", "Site Code", "Site Name", "Route Code",
	"Drop Sequence", "Pack Size", "Weight Kg", "Country of Origin",
	"Commodity Code", "Batch Ref", "Lot Number", "Use By Date",
	"Promotion Code", "Promotion Desc", "Substitution Allowed",
	"Backorder Allowed", "Line Status", "Order Status", "Created By",
	"Created At", "Updated By", "Updated At", "Import Batch",
	"Source System", "Notes 2", "Reserved 1", "Reserved 2",
	"Reserved 3", "Reserved 4", "Reserved 5", "Reserved 6", "Reserved 7",
}

// ColumnCount is the width of the import template.
const ColumnCount = 79

// Writer produces XLSX workbooks in the import format.
type Writer struct {
	Emails     EmailLookup
	VendorCode string
	VendorName string
	Logger     *slog.Logger
}

func NewWriter(emails EmailLookup, vendorCode, vendorName string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{Emails: emails, VendorCode: vendorCode, VendorName: vendorName, Logger: logger}
}

// WriteXLSX returns an XLSX workbook (as bytes) with one row per
// (order, line item) pair. Order-level columns are populated only on each
// order's first line-item row; every later row for that order leaves them
// blank. SKU, quantity and net price come from the pipeline unmodified.
func (w *Writer) WriteXLSX(ctx context.Context, orders []*models.Order) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Orders"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for i, h := range importHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	written := 0
	for _, order := range orders {
		email, err := w.lookupEmail(ctx, order.CustomerCode)
		if err != nil {
			return nil, err
		}

		for i := range order.LineItems {
			item := &order.LineItems[i]

			write := func(col int, v any) {
				cell, _ := excelize.CoordinatesToCellName(col, row)
				_ = f.SetCellValue(sheet, cell, v)
			}

			if i == 0 {
				write(1, order.CustomerCode)
				write(2, order.CustomerName)
				write(3, email)
				write(4, order.PurchaseOrderNumber)
				write(5, order.OrderDate)
				write(6, order.DeliveryDate)
				write(7, order.SourceFilename)
				write(8, string(order.TemplateType))
				write(9, w.VendorCode)
				write(10, w.VendorName)
				write(11, "GBP")
				write(12, order.Total.StringFixed(2))
			}

			write(13, item.SKU())
			write(14, item.ProductCode)
			write(15, item.SKUSuffix())
			write(16, item.Description)
			write(17, item.Quantity.String())
			write(18, item.UnitPrice.StringFixed(4))
			write(19, item.NetPrice.StringFixed(2))
			if item.ConversionApplied {
				write(20, "Y")
			}
			if item.HasWarning {
				write(21, "Y")
			}
			write(22, item.Note)

			row++
			written++
		}
	}

	_ = f.SetColWidth(sheet, "A", "C", 18)
	_ = f.SetColWidth(sheet, "D", "H", 14)
	_ = f.SetColWidth(sheet, "M", "P", 24)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	w.Logger.Info("export.xlsx.ok",
		"orders", len(orders),
		"rows", written,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func (w *Writer) lookupEmail(ctx context.Context, customerCode string) (string, error) {
	if w.Emails == nil || customerCode == "" {
		return "", nil
	}
	return w.Emails.CustomerEmail(ctx, customerCode)
}
