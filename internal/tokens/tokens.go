// Package tokens declares the closed placeholder vocabulary. The literal
// token strings are a compatibility surface: templates authored against
// earlier releases must keep resolving bit-exactly, so new tokens may be
// added but existing ones never renamed.
package tokens

// Entity tokens resolve to display strings from the data context.
const (
	CompanyName    = "{{company.name}}"
	CompanyAddress = "{{company.address}}"
	CompanyPhone   = "{{company.phone}}"
	CompanyEmail   = "{{company.email}}"

	CustomerName    = "{{customer.name}}"
	CustomerEmail   = "{{customer.email}}"
	CustomerPhone   = "{{customer.phone}}"
	CustomerAddress = "{{customer.address}}"

	DealName     = "{{deal.name}}"
	DealValue    = "{{deal.value}}"
	DealStage    = "{{deal.stage}}"
	DealCurrency = "{{deal.currency}}"
	DealPONumber = "{{deal.po_number}}"

	InvoiceNumber    = "{{invoice.number}}"
	InvoiceIssueDate = "{{invoice.issue_date}}"
	InvoiceDueDate   = "{{invoice.due_date}}"
	InvoiceSubtotal  = "{{invoice.subtotal}}"
	InvoiceTax       = "{{invoice.tax}}"
	InvoiceDiscount  = "{{invoice.discount}}"
	InvoiceTotal     = "{{invoice.total}}"
)

// Style tokens resolve to the template's style token values.
const (
	PrimaryColor     = "{{primary_color}}"
	SecondaryColor   = "{{secondary_color}}"
	TableHeaderColor = "{{table_header_color}}"
	TableTotalColor  = "{{table_total_color}}"
)

// Structural and short-form financial tokens used inside table markup.
const (
	ItemsRows     = "{{items_rows}}"
	Subtotal      = "{{subtotal}}"
	Tax           = "{{tax}}"
	TaxLabel      = "{{tax_label}}"
	Discount      = "{{discount}}"
	DiscountLabel = "{{discount_label}}"
	DiscountRow   = "{{discount_row}}"
	Total         = "{{total}}"
)

// Financial lists the reserved tokens the table restructuring engine uses to
// identify totals cells.
var Financial = []string{Subtotal, Tax, Discount, Total}

// All enumerates every known token. Order matters for resolution: longer
// namespaced tokens are listed before the short-form financial ones so
// {{invoice.total}} is never clobbered by a {{total}} pass.
var All = []string{
	CompanyName, CompanyAddress, CompanyPhone, CompanyEmail,
	CustomerName, CustomerEmail, CustomerPhone, CustomerAddress,
	DealName, DealValue, DealStage, DealCurrency, DealPONumber,
	InvoiceNumber, InvoiceIssueDate, InvoiceDueDate,
	InvoiceSubtotal, InvoiceTax, InvoiceDiscount, InvoiceTotal,
	PrimaryColor, SecondaryColor, TableHeaderColor, TableTotalColor,
	ItemsRows,
	Subtotal, TaxLabel, Tax, DiscountRow, DiscountLabel, Discount, Total,
}

// Known reports whether a literal string is part of the vocabulary.
func Known(token string) bool {
	for _, t := range All {
		if t == token {
			return true
		}
	}
	return false
}
