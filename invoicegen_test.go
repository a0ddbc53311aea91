package invoicegen

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-invoicegen/pkg/model"
)

func TestRenderHTMLWithDefaultTemplate(t *testing.T) {
	data := model.DataContext{
		Company:  model.Company{Name: "Acme Corp"},
		Customer: model.Customer{Name: "Globex Inc"},
		Invoice: model.Invoice{
			Number:  "INV-0042",
			TaxRate: decimal.NewFromInt(18),
		},
		LineItems: []model.LineItem{
			{Description: "Implementation", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1000)},
		},
	}

	html, err := RenderHTML(context.Background(), DefaultTemplate(), data)
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}

	for _, want := range []string{"Acme Corp", "Globex Inc", "INV-0042", "Implementation", "$1,000.00", "$1,180.00"} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(html, "{{") {
		t.Error("output contains unresolved tokens")
	}
}

func TestDefaultTemplateSeeded(t *testing.T) {
	tpl := DefaultTemplate()
	if tpl.HeaderMarkup == "" || tpl.FooterMarkup == "" || tpl.TableMarkup == "" {
		t.Fatal("default template has empty sections")
	}
	if !strings.Contains(tpl.TableMarkup, "{{items_rows}}") {
		t.Fatal("default table missing the rows marker")
	}
}
