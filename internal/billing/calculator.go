package billing

import (
	"github.com/shopspring/decimal"

	"go-billing-ws/internal/model"
)

// Totals is the calculator output for one bill
type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	TaxAmount  decimal.Decimal `json:"tax_amount"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// Calculator reduces line items into subtotal, tax and grand total.
// Sums run over full-precision per-line values; rounding happens only
// at display time, never inside the accumulation.
type Calculator struct {
	defaultRate decimal.Decimal // percentage 0-100, applied when an item has no rate
}

// NewCalculator creates a Calculator with the global default tax rate
func NewCalculator(defaultRate decimal.Decimal) *Calculator {
	return &Calculator{defaultRate: defaultRate}
}

// EffectiveRate resolves the tax rate for one item
func (c *Calculator) EffectiveRate(item model.LineItem) decimal.Decimal {
	if item.TaxRate != nil {
		return *item.TaxRate
	}
	return c.defaultRate
}

// Compute reduces the ordered items into bill totals. An empty item list
// is valid input and yields zero for all three fields.
func (c *Calculator) Compute(items model.LineItems) Totals {
	hundred := decimal.NewFromInt(100)
	totals := Totals{
		Subtotal:   decimal.Zero,
		TaxAmount:  decimal.Zero,
		GrandTotal: decimal.Zero,
	}

	for _, item := range items {
		lineAmount := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		lineTax := lineAmount.Mul(c.EffectiveRate(item)).Div(hundred)

		totals.Subtotal = totals.Subtotal.Add(lineAmount)
		totals.TaxAmount = totals.TaxAmount.Add(lineTax)
	}

	totals.GrandTotal = totals.Subtotal.Add(totals.TaxAmount)
	return totals
}

// Display formats an amount for rendering (2 decimal places). The
// rounded value is never fed back into any sum.
func Display(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
