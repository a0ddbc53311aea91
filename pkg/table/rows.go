package table

import (
	"html"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-invoicegen/pkg/model"
)

// Rows produces one table-row fragment per line item with four logical
// cells: description, quantity, formatted unit price, formatted amount. An
// empty item list produces an empty string, never a placeholder row.
// Downstream consumers must treat the result as a variable-length fragment.
func Rows(items []model.LineItem, format func(decimal.Decimal) string) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	for _, item := range items {
		b.WriteString(`<tr>`)
		writeCell(&b, cellBase+` width: 50%;`, html.EscapeString(item.Description))
		writeCell(&b, cellBase+` text-align: center; width: 10%;`, html.EscapeString(item.Quantity.String()))
		writeCell(&b, cellBase+` text-align: right; width: 20%;`, format(item.UnitPrice))
		writeCell(&b, cellBase+` text-align: right; font-weight: 500; width: 20%;`, format(item.Amount))
		b.WriteString(`</tr>`)
	}
	return b.String()
}

const cellBase = `padding: 0.5rem 0.75rem; border-bottom: 1px solid #e5e7eb;`

func writeCell(b *strings.Builder, style, content string) {
	b.WriteString(`<td style="`)
	b.WriteString(style)
	b.WriteString(`">`)
	b.WriteString(content)
	b.WriteString(`</td>`)
}
