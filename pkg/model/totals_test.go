package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeTotals(t *testing.T) {
	items := []LineItem{
		{ID: 1, Description: "Enterprise Solution", Quantity: dec("1"), UnitPrice: dec("50000")},
		{ID: 2, Description: "Support Hours", Quantity: dec("40"), UnitPrice: dec("225")},
	}

	totals := ComputeTotals(items, dec("18"), decimal.Zero)

	if got, want := totals.Subtotal, dec("59000"); !got.Equal(want) {
		t.Fatalf("subtotal = %s, want %s", got, want)
	}
	if got, want := totals.Tax, dec("10620"); !got.Equal(want) {
		t.Fatalf("tax = %s, want %s", got, want)
	}
	if got, want := totals.Total, dec("69620"); !got.Equal(want) {
		t.Fatalf("total = %s, want %s", got, want)
	}
}

func TestComputeTotalsDiscount(t *testing.T) {
	items := []LineItem{
		{ID: 1, Quantity: dec("2"), UnitPrice: dec("100")},
	}

	totals := ComputeTotals(items, dec("10"), dec("20"))

	// total = subtotal + tax - discount, exactly.
	want := totals.Subtotal.Add(totals.Tax).Sub(totals.Discount)
	if !totals.Total.Equal(want) {
		t.Fatalf("total = %s, want %s", totals.Total, want)
	}
	if !totals.Total.Equal(dec("200")) {
		t.Fatalf("total = %s, want 200", totals.Total)
	}
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals := ComputeTotals(nil, dec("18"), decimal.Zero)
	if !totals.Subtotal.IsZero() || !totals.Tax.IsZero() || !totals.Total.IsZero() {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
}

func TestRefreshRecomputesLineAmounts(t *testing.T) {
	ctx := DataContext{
		LineItems: []LineItem{
			{ID: 1, Quantity: dec("3"), UnitPrice: dec("15"), Amount: dec("999")},
		},
	}
	ctx.Invoice.TaxRate = dec("0")

	ctx.Refresh()

	if got, want := ctx.LineItems[0].Amount, dec("45"); !got.Equal(want) {
		t.Fatalf("amount = %s, want %s", got, want)
	}
	if got, want := ctx.Totals.Subtotal, dec("45"); !got.Equal(want) {
		t.Fatalf("subtotal = %s, want %s", got, want)
	}
}

func TestDiscountMirroring(t *testing.T) {
	ctx := DataContext{
		LineItems: []LineItem{
			{ID: 1, Quantity: dec("1"), UnitPrice: dec("1000")},
		},
	}

	ctx.SetDiscountPercent(dec("10"))
	if got, want := ctx.Invoice.Discount, dec("100"); !got.Equal(want) {
		t.Fatalf("discount amount = %s, want %s", got, want)
	}
	if got, want := ctx.Totals.Discount, dec("100"); !got.Equal(want) {
		t.Fatalf("totals discount = %s, want %s", got, want)
	}

	ctx.SetDiscountAmount(dec("250"))
	if got, want := ctx.Invoice.DiscountPercent, dec("25"); !got.Equal(want) {
		t.Fatalf("discount percent = %s, want %s", got, want)
	}
}

func TestDiscountPercentZeroSubtotal(t *testing.T) {
	var ctx DataContext
	ctx.SetDiscountAmount(dec("50"))
	if !ctx.Invoice.DiscountPercent.IsZero() {
		t.Fatalf("percent = %s, want 0 on empty invoice", ctx.Invoice.DiscountPercent)
	}
}
