package model

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Totals are the derived invoice figures. Invariant:
// total = subtotal + tax - discount with tax = subtotal * rate / 100.
type Totals struct {
	Subtotal decimal.Decimal `yaml:"subtotal" json:"subtotal"`
	Tax      decimal.Decimal `yaml:"tax" json:"tax"`
	Discount decimal.Decimal `yaml:"discount" json:"discount"`
	Total    decimal.Decimal `yaml:"total" json:"total"`
}

// ComputeTotals derives the invoice totals from the line items, the tax rate
// percentage and the absolute discount amount.
func ComputeTotals(items []LineItem, taxRate, discount decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Quantity.Mul(item.UnitPrice))
	}
	tax := subtotal.Mul(taxRate).Div(hundred)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Discount: discount,
		Total:    subtotal.Add(tax).Sub(discount),
	}
}

// Refresh recomputes every line amount and the invoice totals in one pass.
// Call it after any quantity, price, tax rate, or discount mutation.
func (c *DataContext) Refresh() {
	for i := range c.LineItems {
		c.LineItems[i].Recompute()
	}
	c.Totals = ComputeTotals(c.LineItems, c.Invoice.TaxRate, c.Invoice.Discount)
}

// SetDiscountAmount fixes the absolute discount and recomputes the mirrored
// percentage against the current subtotal.
func (c *DataContext) SetDiscountAmount(amount decimal.Decimal) {
	c.Invoice.Discount = amount
	subtotal := ComputeTotals(c.LineItems, decimal.Zero, decimal.Zero).Subtotal
	if subtotal.IsZero() {
		c.Invoice.DiscountPercent = decimal.Zero
	} else {
		c.Invoice.DiscountPercent = amount.Mul(hundred).Div(subtotal).Round(2)
	}
	c.Refresh()
}

// SetDiscountPercent fixes the discount percentage and recomputes the
// mirrored absolute amount against the current subtotal.
func (c *DataContext) SetDiscountPercent(pct decimal.Decimal) {
	c.Invoice.DiscountPercent = pct
	subtotal := ComputeTotals(c.LineItems, decimal.Zero, decimal.Zero).Subtotal
	c.Invoice.Discount = subtotal.Mul(pct).Div(hundred).Round(2)
	c.Refresh()
}
