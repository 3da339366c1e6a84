package pipeline

import (
	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/convert"
	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/models"
)

// Assemble applies the quantity normalizer to every line item and recomputes
// the order total. Pure aggregation, no additional policy. The UI calls this
// again after any manual edit to a quantity or product code.
func Assemble(order *models.Order, conversions convert.Table) {
	for i := range order.LineItems {
		convert.Normalize(&order.LineItems[i], conversions)
	}
	order.RecalculateTotal()
}
