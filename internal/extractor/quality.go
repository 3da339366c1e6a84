package extractor

import (
	"strings"
	"unicode"
)

// commonWords appear in virtually all supplier purchase-order documents.
// Extracted text containing none of these is likely garbage from an
// identity-encoded font.
var commonWords = []string{
	"order", "purchase", "customer", "delivery", "date", "quantity",
	"description", "price", "total", "product", "code", "supplier",
	"basket", "picking", "ref", "page",
}

// textQuality returns the ratio of basic ASCII readable characters to total
// characters. A strict ASCII check is used on purpose: unicode.IsLetter
// matches the accented garbage that identity-encoded fonts produce.
func textQuality(text string) float64 {
	total := 0
	readable := 0
	for _, r := range text {
		total++
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
			strings.ContainsRune(".,-/:;()'\"£$%&@#!?+=*x\t", r) {
			readable++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

func containsCommonWords(text string) bool {
	lower := strings.ToLower(text)
	for _, word := range commonWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// isReadableText requires enough text (>50 chars), mostly readable ASCII
// (>60%), and at least one word a purchase order would actually contain.
func isReadableText(text string) bool {
	if len(strings.TrimSpace(text)) <= 50 {
		return false
	}
	if textQuality(text) <= 0.6 {
		return false
	}
	return containsCommonWords(text)
}
