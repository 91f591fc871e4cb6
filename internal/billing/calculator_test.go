package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-billing-ws/internal/model"
)

func item(price string, qty int, rate *string) model.LineItem {
	li := model.LineItem{
		LineID:   "line-" + price,
		Quantity: qty,
		Product: model.ProductSnapshot{
			Name:  "item",
			Price: decimal.RequireFromString(price),
		},
	}
	if rate != nil {
		r := decimal.RequireFromString(*rate)
		li.TaxRate = &r
	}
	return li
}

func rate(s string) *string { return &s }

func TestComputeEmptyItems(t *testing.T) {
	calc := NewCalculator(decimal.NewFromInt(18))

	t.Run("nil items yield zeros", func(t *testing.T) {
		totals := calc.Compute(nil)
		assert.True(t, totals.Subtotal.IsZero())
		assert.True(t, totals.TaxAmount.IsZero())
		assert.True(t, totals.GrandTotal.IsZero())
	})

	t.Run("empty slice yields zeros", func(t *testing.T) {
		totals := calc.Compute(model.LineItems{})
		assert.True(t, totals.GrandTotal.IsZero())
	})
}

func TestComputeMixedRates(t *testing.T) {
	// items = [{price:100, qty:2, rate:5}, {price:50, qty:1, rate:18}]
	// subtotal = 250, tax = 10 + 9 = 19, grand total = 269
	calc := NewCalculator(decimal.Zero)
	totals := calc.Compute(model.LineItems{
		item("100", 2, rate("5")),
		item("50", 1, rate("18")),
	})

	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(250)), "subtotal = %s", totals.Subtotal)
	assert.True(t, totals.TaxAmount.Equal(decimal.NewFromInt(19)), "tax = %s", totals.TaxAmount)
	assert.True(t, totals.GrandTotal.Equal(decimal.NewFromInt(269)), "grand total = %s", totals.GrandTotal)
}

func TestComputeDefaultRateFallback(t *testing.T) {
	calc := NewCalculator(decimal.NewFromInt(10))

	t.Run("missing rate uses the global default", func(t *testing.T) {
		totals := calc.Compute(model.LineItems{item("100", 1, nil)})
		assert.True(t, totals.TaxAmount.Equal(decimal.NewFromInt(10)))
		assert.True(t, totals.GrandTotal.Equal(decimal.NewFromInt(110)))
	})

	t.Run("explicit zero rate beats the default", func(t *testing.T) {
		totals := calc.Compute(model.LineItems{item("100", 1, rate("0"))})
		assert.True(t, totals.TaxAmount.IsZero())
	})
}

func TestComputeNoIntermediateRounding(t *testing.T) {
	// Fractional per-line values must accumulate at full precision;
	// 0.333 * 3 = 0.999 exactly, not 1.00
	calc := NewCalculator(decimal.Zero)
	totals := calc.Compute(model.LineItems{item("0.333", 3, rate("0"))})

	require.True(t, totals.Subtotal.Equal(decimal.RequireFromString("0.999")),
		"subtotal = %s", totals.Subtotal)
	assert.Equal(t, "1.00", Display(totals.Subtotal), "rounding applies at display only")
}

func TestComputeSingleItem(t *testing.T) {
	calc := NewCalculator(decimal.Zero)
	totals := calc.Compute(model.LineItems{item("49.50", 4, rate("12"))})

	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(198)))
	assert.True(t, totals.TaxAmount.Equal(decimal.RequireFromString("23.76")))
	assert.True(t, totals.GrandTotal.Equal(decimal.RequireFromString("221.76")))
}

func TestComputeRepeatedProductDifferentRates(t *testing.T) {
	// The same product billed twice at different rates stays two lines
	calc := NewCalculator(decimal.Zero)
	items := model.LineItems{
		item("100", 1, rate("5")),
		item("100", 1, rate("18")),
	}
	items[0].LineID = "a"
	items[1].LineID = "b"

	totals := calc.Compute(items)
	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(200)))
	assert.True(t, totals.TaxAmount.Equal(decimal.NewFromInt(23)))
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "269.00", Display(decimal.NewFromInt(269)))
	assert.Equal(t, "23.76", Display(decimal.RequireFromString("23.758")))
	assert.Equal(t, "0.00", Display(decimal.Zero))
}
