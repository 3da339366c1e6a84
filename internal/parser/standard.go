package parser

import (
	"regexp"

	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/models"
)

// StandardParser handles the plain supplier purchase-order layout.
//
// Standard orders carry labeled header fields followed by a priced item
// table:
//
//	Purchase Order No: 78421
//	Order Date: 14/03/2025    Delivery Date: 15/03/2025
//	Customer Code: KH102   Customer: Kings Head Kitchen
//	12 BANANAS LOOSE BAN 1xBox 15.50 186.00
type StandardParser struct{}

func (p *StandardParser) TemplateName() string {
	return "Standard"
}

var (
	standardPONumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Purchase\s+Order\s+(?:No|Number)\.?\s*[:#]?\s*(\S+)`),
		regexp.MustCompile(`(?i)\bPO\s+(?:No|Number)\.?\s*[:#]?\s*(\S+)`),
		regexp.MustCompile(`(?i)\bOrder\s+(?:No|Number)\.?\s*[:#]?\s*(\S+)`),
	}
	standardOrderDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Order\s+Date\s*[:#]?\s*(\d{1,2}/\d{1,2}/\d{4})`),
		regexp.MustCompile(`(?i)Date\s+of\s+Order\s*[:#]?\s*(\d{1,2}/\d{1,2}/\d{4})`),
		regexp.MustCompile(`(?i)\bDated?\s*[:#]\s*(\d{1,2}/\d{1,2}/\d{4})`),
	}
	standardDeliveryDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Delivery\s+Date\s*[:#]?\s*(\d{1,2}/\d{1,2}/\d{4})`),
		regexp.MustCompile(`(?i)Deliver\s+(?:on|by)\s*[:#]?\s*(\d{1,2}/\d{1,2}/\d{4})`),
	}
	standardCustomerCodePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Customer\s+(?:Code|Ref)\.?\s*[:#]?\s*(\S+)`),
		regexp.MustCompile(`(?i)Account\s+(?:No|Code)\.?\s*[:#]?\s*(\S+)`),
	}
	standardCustomerNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Customer\s+Name\s*[:#]?\s*([^\n]+)`),
		regexp.MustCompile(`(?i)Customer\s*[:#]\s*([^\n]+)`),
		regexp.MustCompile(`(?i)Deliver(?:y)?\s+To\s*[:#]?\s*([^\n]+)`),
	}
)

func (p *StandardParser) Parse(text, filename string) (*models.Order, error) {
	order := &models.Order{
		SourceFilename: filename,
		TemplateType:   models.TemplateStandard,
	}
	parseTabularHeaders(order, text)

	// Legacy behavior: the standard template accepts every candidate line,
	// including zero-priced or codeless ones. The consolidated template
	// applies a stricter gate; the two are intentionally not unified.
	order.LineItems = tabularLineItems(text)
	order.RecalculateTotal()
	return order, nil
}

// parseTabularHeaders fills the shared header fields for the standard and
// consolidated layouts.
func parseTabularHeaders(order *models.Order, text string) {
	order.PurchaseOrderNumber = firstMatch(text, standardPONumberPatterns)
	order.OrderDate = firstMatch(text, standardOrderDatePatterns)
	order.DeliveryDate = firstMatch(text, standardDeliveryDatePatterns)
	order.CustomerCode = firstMatch(text, standardCustomerCodePatterns)
	order.CustomerName = firstMatch(text, standardCustomerNamePatterns)
}
