package parser

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/models"
)

// PickingNoteParser handles warehouse picking-note documents.
//
// Picking notes are the loosest of the three layouts: no prices, no reliable
// table footer, and product lines that drift between formats:
//
//	Basket ID: 12345
//	Order date: 30-Jul-2025
//	4021AB Fresh Kiwi 1x5Kg 2.5
//	4022B Baby Spinach 4
//
// Every extracted item gets zero prices; the order total stays zero.
type PickingNoteParser struct {
	Logger *slog.Logger
}

func (p *PickingNoteParser) TemplateName() string {
	return "Picking Note"
}

// productLinePrefix marks lines that open with a product-code-like token
// (digits followed by letters).
var productLinePrefix = regexp.MustCompile(`^\d+[A-Z]`)

// tableFooters are tokens that normally end the product table. A footer line
// that itself still looks like a product line keeps the capture going,
// because many picking notes have no deterministic footer at all.
var tableFooters = []string{"Total", "Delivery", "Comments"}

// The four line patterns, in fixed priority order from strictest to loosest.
// First match wins per line. Each captures (code, description, [pack], qty).
var pickingLinePatterns = []struct {
	name    string
	re      *regexp.Regexp
	hasPack bool
}{
	{"code+pack", regexp.MustCompile(`^(\d{3,6}[A-Z]{1,5})\s+(.+?)\s+(1x\S+)\s+(\d+(?:\.\d+)?)\s*$`), true},
	{"code", regexp.MustCompile(`^(\d{3,6}[A-Z]{1,5})\s+(.+?)\s+(\d+(?:\.\d+)?)\s*$`), false},
	{"loose+pack", regexp.MustCompile(`^([A-Z0-9]{3,10})\s+(.+?)\s+(1x\S+)\s+(\d+(?:\.\d+)?)\s*$`), true},
	{"loose", regexp.MustCompile(`^([A-Z0-9]{3,10})\s+(.+?)\s+(\d+(?:\.\d+)?)\s*$`), false},
}

// sweepPattern is the maximally permissive fallback: 4-6 digits plus 1-5
// letters, 10-80 arbitrary characters of description, then a number.
var sweepPattern = regexp.MustCompile(`(?m)(\d{4,6}[A-Za-z]{1,5})\s+(.{10,80}?)\s+(\d+(?:\.\d+)?)\s*$`)

var (
	basketIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Basket\s*ID\s*[:#]?\s*(\w+)`),
	}
	pickingOrderDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Order\s+date\s*[:#]?\s*(\d{1,2}-[A-Za-z]{3,9}-\d{4})`),
	}
	pickingDeliveryDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Delivery\s+date\s*[:#]?\s*(\d{1,2}-[A-Za-z]{3,9}-\d{4})`),
	}
	customerRefPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Customer\s+ref\.?\s*[:#]?\s*(\S+)`),
	}
)

// organizationKeywords identify the customer line inside the delivery
// address block.
var organizationKeywords = []string{"Ltd", "Hospital", "Kitchen", "Restaurant"}

func (p *PickingNoteParser) Parse(text, filename string) (*models.Order, error) {
	log := p.Logger
	if log == nil {
		log = slog.Default()
	}

	order := &models.Order{
		SourceFilename: filename,
		TemplateType:   models.TemplatePickingNote,
	}

	order.PurchaseOrderNumber = firstMatch(text, basketIDPatterns)
	order.OrderDate = convertDashDate(firstMatch(text, pickingOrderDatePatterns))
	order.DeliveryDate = convertDashDate(firstMatch(text, pickingDeliveryDatePatterns))
	order.CustomerCode = firstMatch(text, customerRefPatterns)
	order.CustomerName = findDeliveryAddressName(text)

	lines := strings.Split(text, "\n")
	region := isolateProductTable(lines)

	for _, line := range region {
		item, method, ok := parsePickingLine(line)
		if !ok {
			continue
		}
		if !validPickingItem(item) {
			log.Debug("picking note line rejected by validation",
				"file", filename, "line", line, "method", method)
			continue
		}
		order.LineItems = append(order.LineItems, item)
	}

	// The primary loop under-extracts on some real documents. When it finds
	// too few items, re-scan the whole text with the permissive pattern and
	// add codes not already captured. Recall over precision: the sweep can
	// duplicate a product under a differently-spelled code, and no
	// de-duplication by description is attempted.
	if len(order.LineItems) < 5 {
		p.fallbackSweep(text, order, log)
	}

	order.RecalculateTotal()
	return order, nil
}

// isolateProductTable returns the slice of lines that make up the product
// table. Capture begins at the first product-looking line or at a header
// line naming both Description and Quantity, and ends at the first blank or
// footer line. A footer line that itself still looks like a product line
// keeps the capture going.
func isolateProductTable(lines []string) []string {
	start := -1
	for i, raw := range lines {
		line := normalizeLine(raw)
		if productLinePrefix.MatchString(line) {
			start = i
			break
		}
		if strings.Contains(line, "Description") && strings.Contains(line, "Quantity") {
			start = i
			break
		}
	}
	if start == -1 {
		return nil
	}

	var region []string
	for i := start; i < len(lines); i++ {
		line := normalizeLine(lines[i])
		ends := line == "" || containsAnyKeyword(line, tableFooters)
		if ends && !productLinePrefix.MatchString(line) {
			break
		}
		region = append(region, line)
	}
	return region
}

// parsePickingLine tries the four line patterns in priority order.
func parsePickingLine(line string) (models.LineItem, string, bool) {
	for _, pat := range pickingLinePatterns {
		m := pat.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		var code, desc, pack, qtyStr string
		if pat.hasPack {
			code, desc, pack, qtyStr = m[1], m[2], m[3], m[4]
		} else {
			code, desc, qtyStr = m[1], m[2], m[3]
		}
		qty, err := parseDecimal(qtyStr)
		if err != nil {
			continue
		}
		unit := models.UnitEach
		if pack != "" {
			unit = parsePickingPack(pack)
		}
		item := models.NewLineItem(code, strings.TrimSpace(desc), unit, qty, decimal.Zero)
		return item, pat.name, true
	}
	return models.LineItem{}, "", false
}

var sizedPackPattern = regexp.MustCompile(`(?i)^1x\d`)

// parsePickingPack classifies a picking-note pack token. A token with a pack
// size between the "1x" and the unit word (e.g. "1x5Kg") describes a
// countable pack and therefore an Each item; only bare unit tokens such as
// "1xBox" or "1xKg" force a different case unit.
func parsePickingPack(token string) models.CaseUnit {
	if sizedPackPattern.MatchString(token) {
		return models.UnitEach
	}
	return parseCaseUnit(token)
}

func validPickingItem(item models.LineItem) bool {
	if len(item.ProductCode) < 3 {
		return false
	}
	if len(item.Description) < 3 {
		return false
	}
	if !item.Quantity.IsPositive() {
		return false
	}
	return item.Quantity.LessThan(decimal.NewFromInt(10000))
}

func (p *PickingNoteParser) fallbackSweep(text string, order *models.Order, log *slog.Logger) {
	seen := make(map[string]bool, len(order.LineItems))
	for _, li := range order.LineItems {
		seen[li.ProductCode] = true
	}

	limit := decimal.NewFromInt(1000)
	for _, m := range sweepPattern.FindAllStringSubmatch(text, -1) {
		code := m[1]
		if seen[code] {
			continue
		}
		qty, err := parseDecimal(m[3])
		if err != nil || !qty.IsPositive() || !qty.LessThan(limit) {
			continue
		}
		item := models.NewLineItem(code, strings.TrimSpace(m[2]), models.UnitEach, qty, decimal.Zero)
		seen[code] = true
		order.LineItems = append(order.LineItems, item)
		log.Debug("picking note fallback sweep added item",
			"file", order.SourceFilename, "code", code)
	}
}

// findDeliveryAddressName scans the delivery address block for a line that
// names an organization.
func findDeliveryAddressName(text string) string {
	lines := strings.Split(text, "\n")
	inAddress := false
	scanned := 0
	for _, raw := range lines {
		line := normalizeLine(raw)
		if !inAddress {
			if containsIgnoreCase(line, "Delivery Address") {
				inAddress = true
			}
			continue
		}
		if scanned >= 8 || line == "" {
			break
		}
		scanned++
		if containsAnyKeyword(line, organizationKeywords) {
			return line
		}
	}
	return ""
}

func containsAnyKeyword(line string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(line, kw) {
			return true
		}
	}
	return false
}
