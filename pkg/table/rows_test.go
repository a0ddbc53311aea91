package table

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-invoicegen/pkg/currency"
	"github.com/goliatone/go-invoicegen/pkg/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func usd() func(decimal.Decimal) string {
	return currency.NewFormatter("USD").FormatFunc()
}

func items(n int) []model.LineItem {
	out := make([]model.LineItem, 0, n)
	for i := 0; i < n; i++ {
		item := model.LineItem{
			ID:          i + 1,
			Description: "Item",
			Quantity:    dec("2"),
			UnitPrice:   dec("10"),
		}
		item.Recompute()
		out = append(out, item)
	}
	return out
}

func TestRowsOnePerItem(t *testing.T) {
	for _, n := range []int{1, 3, 7} {
		got := Rows(items(n), usd())
		if count := strings.Count(got, "<tr>"); count != n {
			t.Errorf("items=%d produced %d rows", n, count)
		}
		if count := strings.Count(got, "<td"); count != n*4 {
			t.Errorf("items=%d produced %d cells, want %d", n, count, n*4)
		}
	}
}

func TestRowsEmpty(t *testing.T) {
	if got := Rows(nil, usd()); got != "" {
		t.Fatalf("Rows(nil) = %q, want empty", got)
	}
	if got := Rows([]model.LineItem{}, usd()); got != "" {
		t.Fatalf("Rows(empty) = %q, want empty", got)
	}
}

func TestRowsContent(t *testing.T) {
	row := []model.LineItem{{
		ID:          1,
		Description: "Support Hours",
		Quantity:    dec("40"),
		UnitPrice:   dec("225"),
		Amount:      dec("9000"),
	}}

	got := Rows(row, usd())

	for _, want := range []string{"Support Hours", ">40<", "$225.00", "$9,000.00"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %q", want, got)
		}
	}
}

func TestRowsEscapesDescription(t *testing.T) {
	row := []model.LineItem{{
		ID:          1,
		Description: `<img src=x onerror=alert(1)> & "quotes"`,
		Quantity:    dec("1"),
		UnitPrice:   dec("1"),
		Amount:      dec("1"),
	}}

	got := Rows(row, usd())

	if strings.Contains(got, "<img") {
		t.Fatalf("markup injected through description: %q", got)
	}
	if !strings.Contains(got, "&lt;img") || !strings.Contains(got, "&amp;") {
		t.Fatalf("description not escaped: %q", got)
	}
}
