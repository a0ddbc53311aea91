package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// StyleTokens carries the author-chosen branding values referenced by
// templates through the {{primary_color}} family of placeholders.
type StyleTokens struct {
	PrimaryColor     string `yaml:"primary_color" json:"primary_color"`
	SecondaryColor   string `yaml:"secondary_color" json:"secondary_color"`
	TableHeaderColor string `yaml:"table_header_color" json:"table_header_color"`
	TableTotalColor  string `yaml:"table_total_color" json:"table_total_color"`
	FontFamily       string `yaml:"font_family" json:"font_family"`
}

// DefaultStyleTokens returns the branding values applied to a template that
// has not been customised yet.
func DefaultStyleTokens() StyleTokens {
	return StyleTokens{
		PrimaryColor:     "#2563eb",
		SecondaryColor:   "#64748b",
		TableHeaderColor: "#f3f4f6",
		TableTotalColor:  "#f0fdf4",
		FontFamily:       "Inter, sans-serif",
	}
}

// Template is the persisted document layout: three independently editable
// markup sections plus style tokens. One template per owner may be flagged
// default. Markup is free-form HTML authored through the designer; it is
// stored raw and sanitised only on the read-only render paths.
type Template struct {
	ID           string      `yaml:"id" json:"id"`
	Name         string      `yaml:"name" json:"name"`
	HeaderMarkup string      `yaml:"header_markup" json:"header_markup"`
	FooterMarkup string      `yaml:"footer_markup" json:"footer_markup"`
	TableMarkup  string      `yaml:"table_markup" json:"table_markup"`
	Styles       StyleTokens `yaml:"style_tokens" json:"style_tokens"`
	IsDefault    bool        `yaml:"is_default" json:"is_default"`
}

// Company identifies the issuing business.
type Company struct {
	Name    string `yaml:"name" json:"name"`
	Address string `yaml:"address" json:"address"`
	Phone   string `yaml:"phone" json:"phone"`
	Email   string `yaml:"email" json:"email"`
}

// Customer is the billed party as supplied by the surrounding CRM layer.
type Customer struct {
	Name    string `yaml:"name" json:"name"`
	Email   string `yaml:"email" json:"email"`
	Phone   string `yaml:"phone" json:"phone"`
	Address string `yaml:"address" json:"address"`
}

// Deal carries the sales context an invoice is issued against.
type Deal struct {
	Name     string          `yaml:"name" json:"name"`
	Value    decimal.Decimal `yaml:"value" json:"value"`
	Stage    string          `yaml:"stage" json:"stage"`
	Currency string          `yaml:"currency" json:"currency"`
	PONumber string          `yaml:"po_number" json:"po_number"`
}

// Invoice holds the header-level fields of a single invoice. TaxRate is a
// percentage (18 means 18%). Discount is an absolute amount; DiscountPercent
// mirrors it and the two are kept mutually consistent through the
// SetDiscountAmount/SetDiscountPercent helpers.
type Invoice struct {
	Number          string          `yaml:"number" json:"number"`
	IssueDate       string          `yaml:"issue_date" json:"issue_date"`
	DueDate         string          `yaml:"due_date" json:"due_date"`
	Currency        string          `yaml:"currency" json:"currency"`
	TaxRate         decimal.Decimal `yaml:"tax_rate" json:"tax_rate"`
	Discount        decimal.Decimal `yaml:"discount" json:"discount"`
	DiscountPercent decimal.Decimal `yaml:"discount_percent" json:"discount_percent"`
}

// LineItem is one billable row. Amount is derived, never authored: it is
// recomputed whenever quantity or unit price changes.
type LineItem struct {
	ID          int             `yaml:"id" json:"id"`
	Description string          `yaml:"description" json:"description"`
	Quantity    decimal.Decimal `yaml:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `yaml:"unit_price" json:"unit_price"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
}

// Recompute refreshes the derived amount from quantity and unit price.
func (li *LineItem) Recompute() {
	li.Amount = li.Quantity.Mul(li.UnitPrice)
}

// DataContext is everything a render needs: the parties, the invoice header,
// the ordered line items and the computed totals. Built fresh per render.
type DataContext struct {
	Company   Company    `yaml:"company" json:"company"`
	Customer  Customer   `yaml:"customer" json:"customer"`
	Deal      Deal       `yaml:"deal" json:"deal"`
	Invoice   Invoice    `yaml:"invoice" json:"invoice"`
	LineItems []LineItem `yaml:"line_items" json:"line_items"`
	Totals    Totals     `yaml:"totals" json:"totals"`
}

// CurrencyCode resolves the currency for a render: the invoice's own code
// wins, then the deal's, then USD.
func (c DataContext) CurrencyCode() string {
	if code := strings.TrimSpace(c.Invoice.Currency); code != "" {
		return code
	}
	if code := strings.TrimSpace(c.Deal.Currency); code != "" {
		return code
	}
	return "USD"
}
