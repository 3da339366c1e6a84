// Package extractor turns a purchase-order PDF into the flat text of its
// first page. Orders are single-page documents; anything past page one is
// boilerplate the parsers never need.
package extractor

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os/exec"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrExtraction marks a file that cannot be opened or tokenized. It is the
// only per-file hard failure in the pipeline; a batch reports it and moves
// on to the next file.
var ErrExtraction = errors.New("pdf text extraction failed")

// ExtractFirstPage reads a PDF file and returns the text of its first page
// as newline-joined rows. It tries multiple extraction methods to handle
// different PDF encodings, falling back to the external pdftotext command
// (poppler-utils) when the Go library cannot decode the document.
func ExtractFirstPage(filePath string) (string, error) {
	text, libErr := extractWithLibrary(filePath)
	if libErr == nil && isReadableText(text) {
		return text, nil
	}

	popplerText, popplerErr := extractWithPdftotext(filePath)
	if popplerErr == nil && isReadableText(popplerText) {
		return popplerText, nil
	}

	if libErr != nil {
		return "", fmt.Errorf("%w: %v; the PDF may use custom fonts or be image-based", ErrExtraction, libErr)
	}
	return "", fmt.Errorf("%w: no readable text on the first page; the file may be scanned or use undecodable font encodings", ErrExtraction)
}

// extractWithLibrary uses the ledongthuc/pdf library, trying layout-ordered
// row extraction first and plain-text extraction after.
func extractWithLibrary(filePath string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf library crashed: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(filePath)
	if openErr != nil {
		return "", openErr
	}
	defer f.Close()

	if r.NumPage() == 0 {
		return "", fmt.Errorf("pdf has no pages")
	}

	page := r.Page(1)
	if page.V.IsNull() {
		return "", fmt.Errorf("first page is empty")
	}

	if text := extractByRow(page); isReadableText(text) {
		return text, nil
	}
	if text := extractByContent(page); isReadableText(text) {
		return text, nil
	}
	if text := extractPlainText(page); isReadableText(text) {
		return text, nil
	}

	// Last library attempt: whole-document plain text. Single-page orders
	// make this equivalent to page one.
	reader, ptErr := r.GetPlainText()
	if ptErr != nil {
		return "", ptErr
	}
	data, readErr := io.ReadAll(reader)
	if readErr != nil {
		return "", readErr
	}
	return strings.TrimSpace(string(data)), nil
}

// extractByRow preserves the tabular layout best on well-structured PDFs.
func extractByRow(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err != nil {
		return ""
	}
	var lines []string
	for _, row := range rows {
		var parts []string
		for _, word := range row.Content {
			parts = append(parts, word.S)
		}
		line := strings.TrimSpace(strings.Join(parts, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// extractByContent reconstructs rows from raw text objects by grouping on Y
// coordinate and sorting by X. Large X gaps become column separators, which
// keeps the quantity/description/code columns apart for the parsers.
func extractByContent(page pdf.Page) string {
	content := page.Content()
	if len(content.Text) == 0 {
		return ""
	}

	type textItem struct {
		x float64
		s string
	}
	rowMap := make(map[int][]textItem)
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		yKey := int(math.Round(t.Y))
		rowMap[yKey] = append(rowMap[yKey], textItem{x: t.X, s: t.S})
	}

	// PDF Y runs bottom-to-top
	yKeys := make([]int, 0, len(rowMap))
	for y := range rowMap {
		yKeys = append(yKeys, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

	var lines []string
	for _, y := range yKeys {
		items := rowMap[y]
		sort.Slice(items, func(a, b int) bool {
			return items[a].x < items[b].x
		})

		var parts []string
		var prevX float64
		for j, item := range items {
			if j > 0 && item.x-prevX > 15 {
				parts = append(parts, "  ")
			}
			parts = append(parts, item.s)
			prevX = item.x
		}
		line := strings.TrimSpace(strings.Join(parts, ""))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func extractPlainText(page pdf.Page) string {
	fontNames := page.Fonts()
	fonts := make(map[string]*pdf.Font)
	for _, name := range fontNames {
		f := page.Font(name)
		fonts[name] = &f
	}
	text, err := page.GetPlainText(fonts)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// extractWithPdftotext shells out to poppler-utils for PDFs the Go library
// cannot handle, extracting only the first page with layout preserved.
func extractWithPdftotext(filePath string) (string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return "", fmt.Errorf("pdftotext not available: %v", err)
	}
	out, err := exec.Command("pdftotext", "-layout", "-f", "1", "-l", "1", filePath, "-").Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext failed: %v", err)
	}
	text := strings.TrimSpace(string(out))
	if text == "" {
		return "", fmt.Errorf("pdftotext produced no output")
	}
	return text, nil
}
