package main

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-invoicegen/pkg/model"
)

// dataFixture mirrors model.DataContext with plain scalars so fixtures stay
// hand-editable; decimal fields are parsed after unmarshaling.
type dataFixture struct {
	Company  model.Company  `yaml:"company"`
	Customer model.Customer `yaml:"customer"`
	Deal     struct {
		Name     string `yaml:"name"`
		Value    string `yaml:"value"`
		Stage    string `yaml:"stage"`
		Currency string `yaml:"currency"`
		PONumber string `yaml:"po_number"`
	} `yaml:"deal"`
	Invoice struct {
		Number    string `yaml:"number"`
		IssueDate string `yaml:"issue_date"`
		DueDate   string `yaml:"due_date"`
		Currency  string `yaml:"currency"`
		TaxRate   string `yaml:"tax_rate"`
		Discount  string `yaml:"discount"`
	} `yaml:"invoice"`
	LineItems []struct {
		Description string `yaml:"description"`
		Quantity    string `yaml:"quantity"`
		UnitPrice   string `yaml:"unit_price"`
	} `yaml:"line_items"`
}

func (f dataFixture) toModel() (model.DataContext, error) {
	data := model.DataContext{
		Company:  f.Company,
		Customer: f.Customer,
	}

	var err error
	data.Deal.Name = f.Deal.Name
	data.Deal.Stage = f.Deal.Stage
	data.Deal.Currency = f.Deal.Currency
	data.Deal.PONumber = f.Deal.PONumber
	if data.Deal.Value, err = parseAmount(f.Deal.Value, "deal.value"); err != nil {
		return model.DataContext{}, err
	}

	data.Invoice.Number = f.Invoice.Number
	data.Invoice.IssueDate = f.Invoice.IssueDate
	data.Invoice.DueDate = f.Invoice.DueDate
	data.Invoice.Currency = f.Invoice.Currency
	if data.Invoice.TaxRate, err = parseAmount(f.Invoice.TaxRate, "invoice.tax_rate"); err != nil {
		return model.DataContext{}, err
	}
	if data.Invoice.Discount, err = parseAmount(f.Invoice.Discount, "invoice.discount"); err != nil {
		return model.DataContext{}, err
	}

	ids := model.NewIDGenerator()
	for _, item := range f.LineItems {
		row := model.LineItem{
			ID:          ids.Next(),
			Description: item.Description,
		}
		if row.Quantity, err = parseAmount(item.Quantity, "line item quantity"); err != nil {
			return model.DataContext{}, err
		}
		if row.UnitPrice, err = parseAmount(item.UnitPrice, "line item unit_price"); err != nil {
			return model.DataContext{}, err
		}
		row.Recompute()
		data.LineItems = append(data.LineItems, row)
	}

	data.Refresh()
	return data, nil
}

func parseAmount(raw, field string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s: %w", field, err)
	}
	return value, nil
}
