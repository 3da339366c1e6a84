// Package convert turns fractional weight-based quantities into whole-unit
// counts using per-product weight-conversion factors, preserving each line's
// total monetary value.
package convert

// Factor is one conversion-table row: grams per discrete unit of a product.
type Factor struct {
	DisplayName     string
	EachWeightGrams int64
}

// Table looks up a product's weight-conversion factor by exact code.
type Table interface {
	Lookup(code string) (Factor, bool)
}

// StaticTable is an in-memory Table. The pipeline loads the conversion store
// into one of these before a batch begins and treats it as read-only.
type StaticTable map[string]Factor

func (t StaticTable) Lookup(code string) (Factor, bool) {
	f, ok := t[code]
	return f, ok
}
