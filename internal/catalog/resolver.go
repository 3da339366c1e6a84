package catalog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/models"
)

// Resolution is the outcome of resolving an extracted (code, description)
// pair. Match signals confidence; resolution never fails outright. A
// not-found outcome returns the original pair with MatchNone, and a catalog
// backing-store failure returns it with MatchError.
type Resolution struct {
	Code        string
	Description string
	Match       models.MatchKind
}

// fallbackNames is the small static table consulted after both direct and
// reverse lookup fail: the code with its trailing unit suffix stripped is
// looked up here.
var fallbackNames = map[string]string{
	"4021": "Kiwi Fruit",
	"4035": "Bananas",
	"4112": "Strawberries",
	"4188": "Baby Spinach",
	"HM107": "Rosemary Dust",
	"SAL20": "Mixed Salad Leaves",
}

// Resolver resolves product identity against the catalog.
type Resolver struct {
	catalog *Catalog
	logger  *slog.Logger
}

func NewResolver(c *Catalog, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{catalog: c, logger: logger}
}

// Resolve returns the best-known canonical identity for the pair. Attempts,
// each short-circuiting on success: direct code lookup (with one reload and
// retry on miss), reverse description lookup through the strategy tiers,
// the static fallback table, then MatchNone.
func (r *Resolver) Resolve(ctx context.Context, code, description string) Resolution {
	if err := r.catalog.RefreshIfStale(ctx); err != nil {
		r.logger.Warn("catalog refresh failed", "code", code, "err", err)
		return Resolution{Code: code, Description: description, Match: models.MatchError}
	}

	if desc, ok := r.catalog.Lookup(code); ok {
		return Resolution{Code: code, Description: desc, Match: models.MatchDirect}
	}

	// A miss may just mean the snapshot predates the product: reload once
	// and retry before falling through to reverse lookup.
	if err := r.catalog.Refresh(ctx); err != nil {
		r.logger.Warn("catalog reload failed", "code", code, "err", err)
		return Resolution{Code: code, Description: description, Match: models.MatchError}
	}
	if desc, ok := r.catalog.Lookup(code); ok {
		return Resolution{Code: code, Description: desc, Match: models.MatchDirect}
	}

	if len(strings.TrimSpace(description)) > 2 {
		if res, ok := r.reverse(description); ok {
			return res
		}
	}

	if res, ok := fallbackByCode(code); ok {
		return res
	}

	return Resolution{Code: code, Description: description, Match: models.MatchNone}
}

func (r *Resolver) reverse(description string) (Resolution, bool) {
	entries := r.catalog.Entries()
	for _, strat := range reverseStrategies {
		matches := strat.match(description, entries)
		if len(matches) == 0 {
			continue
		}
		best := pickByUnitPriority(matches)
		return Resolution{Code: best.Code, Description: best.Description, Match: strat.kind}, true
	}
	return Resolution{}, false
}

// fallbackByCode strips a trailing single-letter unit suffix from the code
// and looks the remainder up in the static name table.
func fallbackByCode(code string) (Resolution, bool) {
	if len(code) < 2 {
		return Resolution{}, false
	}
	suffix := code[len(code)-1:]
	if suffix != "E" && suffix != "K" && suffix != "B" {
		return Resolution{}, false
	}
	base := code[:len(code)-1]
	name, ok := fallbackNames[base]
	if !ok {
		return Resolution{}, false
	}
	return Resolution{Code: code, Description: name, Match: models.MatchFallback}, true
}
