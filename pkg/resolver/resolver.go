// Package resolver substitutes placeholder tokens in template markup with
// formatted values from a data context. Resolution is a single left-to-right
// pass of literal substring replacement: tokens are not nested, never
// recursively resolved, and there is no escaping syntax. A literal "{{" that
// matches no known token passes through unchanged by default.
package resolver

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/goliatone/go-invoicegen/internal/tokens"
	"github.com/goliatone/go-invoicegen/pkg/currency"
	"github.com/goliatone/go-invoicegen/pkg/model"
	"github.com/goliatone/go-invoicegen/pkg/sanitize"
)

// UnknownPolicy controls what happens to {{...}} sequences that match no
// known token after substitution.
type UnknownPolicy int

const (
	// UnknownKeep leaves unmatched sequences in place. Default.
	UnknownKeep UnknownPolicy = iota
	// UnknownEmpty removes unmatched sequences from the output.
	UnknownEmpty
)

// Option customises a Resolver.
type Option func(*Resolver)

// WithLogger attaches a logger; unresolved tokens are logged non-fatally.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Resolver) {
		r.log = logger
	}
}

// WithUnknownPolicy overrides the pass-through behaviour for unknown tokens.
func WithUnknownPolicy(policy UnknownPolicy) Option {
	return func(r *Resolver) {
		r.unknown = policy
	}
}

// Resolver performs placeholder substitution against a data context.
type Resolver struct {
	log     zerolog.Logger
	unknown UnknownPolicy
}

// New builds a Resolver. Without options it keeps unknown tokens and logs
// nothing.
func New(options ...Option) *Resolver {
	r := &Resolver{
		log: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Resolve replaces every known token in markup: entity and style tokens plus
// the short-form financial ones. The {{items_rows}} marker is left alone; the
// table restructuring engine owns it.
func (r *Resolver) Resolve(markup string, ctx model.DataContext, styles model.StyleTokens) string {
	out := r.ResolveEntities(markup, ctx, styles)
	out = r.ResolveFinancial(out, ctx)
	return r.finish(out)
}

// ResolveEntities replaces company, customer, deal, invoice and style tokens,
// leaving the short-form financial tokens and the rows marker for a later
// pass. Table rendering needs this split: the restructuring engine identifies
// totals cells by the financial tokens still being present.
func (r *Resolver) ResolveEntities(markup string, ctx model.DataContext, styles model.StyleTokens) string {
	if markup == "" {
		return ""
	}
	markup = StripEditorStyles(markup)
	format := currency.NewFormatter(ctx.CurrencyCode()).FormatFunc()

	pairs := []string{
		tokens.CompanyName, sanitize.EscapeText(ctx.Company.Name),
		tokens.CompanyAddress, sanitize.EscapeText(ctx.Company.Address),
		tokens.CompanyPhone, sanitize.EscapeText(ctx.Company.Phone),
		tokens.CompanyEmail, sanitize.EscapeText(ctx.Company.Email),
		tokens.CustomerName, sanitize.EscapeText(ctx.Customer.Name),
		tokens.CustomerEmail, sanitize.EscapeText(ctx.Customer.Email),
		tokens.CustomerPhone, sanitize.EscapeText(ctx.Customer.Phone),
		tokens.CustomerAddress, sanitize.EscapeText(ctx.Customer.Address),
		tokens.DealName, sanitize.EscapeText(ctx.Deal.Name),
		tokens.DealValue, format(ctx.Deal.Value),
		tokens.DealStage, sanitize.EscapeText(ctx.Deal.Stage),
		tokens.DealCurrency, sanitize.EscapeText(ctx.CurrencyCode()),
		tokens.DealPONumber, sanitize.EscapeText(ctx.Deal.PONumber),
		tokens.InvoiceNumber, sanitize.EscapeText(ctx.Invoice.Number),
		tokens.InvoiceIssueDate, sanitize.EscapeText(ctx.Invoice.IssueDate),
		tokens.InvoiceDueDate, sanitize.EscapeText(ctx.Invoice.DueDate),
		tokens.InvoiceSubtotal, format(ctx.Totals.Subtotal),
		tokens.InvoiceTax, format(ctx.Totals.Tax),
		tokens.InvoiceDiscount, format(ctx.Totals.Discount),
		tokens.InvoiceTotal, format(ctx.Totals.Total),
		tokens.PrimaryColor, styles.PrimaryColor,
		tokens.SecondaryColor, styles.SecondaryColor,
		tokens.TableHeaderColor, styles.TableHeaderColor,
		tokens.TableTotalColor, styles.TableTotalColor,
	}
	return strings.NewReplacer(pairs...).Replace(markup)
}

// ResolveFinancial replaces the short-form totals tokens. A zero discount
// suppresses the discount row, label and amount entirely instead of emitting
// a zero-value row.
func (r *Resolver) ResolveFinancial(markup string, ctx model.DataContext) string {
	if markup == "" {
		return ""
	}
	format := currency.NewFormatter(ctx.CurrencyCode()).FormatFunc()

	pairs := []string{
		tokens.Subtotal, format(ctx.Totals.Subtotal),
		tokens.TaxLabel, "Tax (" + ctx.Invoice.TaxRate.String() + "%)",
		tokens.Tax, format(ctx.Totals.Tax),
		tokens.Total, format(ctx.Totals.Total),
	}
	if ctx.Totals.Discount.IsPositive() {
		pairs = append(pairs,
			tokens.DiscountRow, discountRowMarkup(ctx.Totals.Discount, format),
			tokens.DiscountLabel, "Discount",
			tokens.Discount, "-"+format(ctx.Totals.Discount),
		)
	} else {
		pairs = append(pairs,
			tokens.DiscountRow, "",
			tokens.DiscountLabel, "",
			tokens.Discount, "",
		)
	}
	return strings.NewReplacer(pairs...).Replace(markup)
}

// ResolveDiscountRow replaces only the {{discount_row}} token. Table
// rendering needs it substituted ahead of the DOM pass: as bare text between
// rows it would be foster-parented out of the table during parsing.
func (r *Resolver) ResolveDiscountRow(markup string, ctx model.DataContext) string {
	if markup == "" {
		return ""
	}
	row := ""
	if ctx.Totals.Discount.IsPositive() {
		format := currency.NewFormatter(ctx.CurrencyCode()).FormatFunc()
		row = discountRowMarkup(ctx.Totals.Discount, format)
	}
	return strings.ReplaceAll(markup, tokens.DiscountRow, row)
}

// Finish applies the unknown-token policy and logging as the last resolution
// step. Exposed for callers that split resolution across passes.
func (r *Resolver) Finish(markup string) string {
	return r.finish(markup)
}

func (r *Resolver) finish(markup string) string {
	matches := tokenPattern.FindAllString(markup, -1)
	for _, match := range matches {
		if match == tokens.ItemsRows {
			continue
		}
		r.log.Warn().Str("token", match).Msg("unresolved placeholder")
	}
	if r.unknown == UnknownEmpty && len(matches) > 0 {
		markup = tokenPattern.ReplaceAllStringFunc(markup, func(match string) string {
			if match == tokens.ItemsRows {
				return match
			}
			return ""
		})
	}
	return markup
}

var tokenPattern = regexp.MustCompile(`\{\{[a-zA-Z0-9_.]+\}\}`)

func discountRowMarkup(amount decimal.Decimal, format func(decimal.Decimal) string) string {
	var b strings.Builder
	b.WriteString(`<tr><td style="padding: 0.35rem 0.75rem; text-align: right; font-weight: 600; color: #374151;">Discount</td>`)
	b.WriteString(`<td style="padding: 0.35rem 0.75rem; text-align: right; width: 150px; color: #dc2626;">-`)
	b.WriteString(format(amount))
	b.WriteString(`</td></tr>`)
	return b.String()
}

// Editor style artifacts carried over from legacy WYSIWYG variable
// insertions. Stripped before any render so highlight styling never leaks
// into issued documents.
var editorStylePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)background-color:\s*#dbeafe;?`),
	regexp.MustCompile(`(?i)color:\s*#2563eb;?`),
	regexp.MustCompile(`(?i)padding:\s*0\s*4px;?`),
	regexp.MustCompile(`(?i)border-radius:\s*4px;?`),
	regexp.MustCompile(`(?i)font-family:\s*monospace;?`),
	regexp.MustCompile(`(?i)font-size:\s*0\.85em;?`),
}

// StripEditorStyles removes WYSIWYG highlight styling from markup.
func StripEditorStyles(markup string) string {
	if markup == "" {
		return ""
	}
	for _, pattern := range editorStylePatterns {
		markup = pattern.ReplaceAllString(markup, "")
	}
	return markup
}
