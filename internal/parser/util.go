package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/models"
)

// monthNumbers maps picking-note month abbreviations to two-digit month
// strings. Unrecognized months deliberately fall back to "01" rather than
// failing the parse; the operator reviews dates before export anyway.
var monthNumbers = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04",
	"may": "05", "jun": "06", "jul": "07", "aug": "08",
	"sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

var dashDatePattern = regexp.MustCompile(`\b(\d{1,2})-([A-Za-z]{3,9})-(\d{4})\b`)

// convertDashDate turns a "D-Mon-YYYY" date into "DD/MM/YYYY".
// Returns the input unchanged when it does not look like a dash date.
func convertDashDate(s string) string {
	m := dashDatePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return s
	}
	day := m[1]
	if len(day) == 1 {
		day = "0" + day
	}
	month, ok := monthNumbers[strings.ToLower(m[2][:3])]
	if !ok {
		month = "01"
	}
	return fmt.Sprintf("%s/%s/%s", day, month, m[3])
}

// parseDecimal converts a numeric string like "1,234.56" to a decimal.
// Currency symbols and thousands separators are stripped first.
func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "Â£", "")
	s = strings.ReplaceAll(s, "£", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" || s == "-" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// parseCaseUnit classifies a "1xWORD" pack token into a case unit.
// Example tokens: "1x5Kg", "1xEach", "1xBox", "1xCase".
func parseCaseUnit(token string) models.CaseUnit {
	lower := strings.ToLower(token)
	switch {
	case strings.Contains(lower, "kg") || strings.Contains(lower, "kilo"):
		return models.UnitKilo
	case strings.Contains(lower, "box") || strings.Contains(lower, "case"):
		return models.UnitBox
	default:
		return models.UnitEach
	}
}

// normalizeLine cleans up common PDF extraction artifacts.
func normalizeLine(line string) string {
	line = strings.ReplaceAll(line, " ", " ")
	line = strings.ReplaceAll(line, "​", "")
	return strings.TrimSpace(line)
}

// firstMatch tries an ordered list of labeled patterns against the text and
// returns the first capture group of the first pattern that matches. Header
// fields are best-effort: no pattern matching means an empty field, not an
// error.
func firstMatch(text string, patterns []*regexp.Regexp) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

func containsIgnoreCase(text, substr string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(substr))
}
