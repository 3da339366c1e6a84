package parser

import (
	"fmt"

	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/models"
)

// Parser defines the interface for purchase-order template parsers.
type Parser interface {
	// Parse takes the extracted first-page text and returns a structured order.
	// Missing header fields and unmatched lines yield empty values, never errors;
	// a document with no recognizable content produces an empty order for
	// manual review.
	Parse(text, filename string) (*models.Order, error)
	// TemplateName returns the human-readable template name.
	TemplateName() string
}

// New returns the appropriate parser for the given template type.
func New(t models.TemplateType) (Parser, error) {
	switch t {
	case models.TemplateStandard:
		return &StandardParser{}, nil
	case models.TemplateConsolidated:
		return &ConsolidatedParser{}, nil
	case models.TemplatePickingNote:
		return &PickingNoteParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported template type: %q", t)
	}
}

// Classify identifies the document template from its text content.
// The picking-note marker is checked before the consolidated marker; a
// document carrying both classifies as a picking note. There is no error
// case: anything unrecognized falls back to the standard template.
func Classify(text string) models.TemplateType {
	if containsIgnoreCase(text, "Picking Note") {
		return models.TemplatePickingNote
	}
	if containsIgnoreCase(text, "Consolidated Purchase Order") {
		return models.TemplateConsolidated
	}
	return models.TemplateStandard
}
