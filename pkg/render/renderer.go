// Package render assembles complete invoice documents from a template and a
// data context. Each section resolves independently; the table section
// additionally runs row generation and restructuring before sanitization.
package render

import (
	"context"
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-invoicegen/pkg/currency"
	"github.com/goliatone/go-invoicegen/pkg/model"
	"github.com/goliatone/go-invoicegen/pkg/render/template"
	"github.com/goliatone/go-invoicegen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-invoicegen/pkg/resolver"
	"github.com/goliatone/go-invoicegen/pkg/sanitize"
	"github.com/goliatone/go-invoicegen/pkg/table"
)

// Document holds the three rendered invoice sections plus the style tokens
// that were in effect, so exporters can reproduce the page chrome.
type Document struct {
	Header string
	Table  string
	Footer string
	Styles model.StyleTokens
}

// HTML joins the sections into a single printable fragment wrapped with the
// document font. The joined result passes through the sanitizer as a whole so
// a hostile style token value cannot break out of the wrapper attribute.
func (d Document) HTML() string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: `)
	b.WriteString(d.Styles.FontFamily)
	b.WriteString(`; color: #111827;">`)
	b.WriteString("\n")
	for _, section := range []string{d.Header, d.Table, d.Footer} {
		if section == "" {
			continue
		}
		b.WriteString(section)
		b.WriteString("\n")
	}
	b.WriteString(`</div>`)
	return sanitize.Sanitize(b.String())
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger attaches a logger used to report render degradations.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Renderer) {
		r.log = logger
	}
}

// WithResolver overrides the placeholder resolver.
func WithResolver(res *resolver.Resolver) Option {
	return func(r *Renderer) {
		if res != nil {
			r.resolver = res
		}
	}
}

// WithThemeSelector resolves style-token defaults through a go-theme selector
// before template tokens are applied on top.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(r *Renderer) {
		r.selector = selector
	}
}

// WithTheme names the theme and variant passed to the selector.
func WithTheme(name, variant string) Option {
	return func(r *Renderer) {
		r.themeName = name
		r.themeVariant = variant
	}
}

// WithTemplateRenderer swaps the engine used for the built-in fallback table.
func WithTemplateRenderer(engine template.TemplateRenderer) Option {
	return func(r *Renderer) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// Renderer produces final invoice documents. The zero value is not usable;
// construct with New.
type Renderer struct {
	log          zerolog.Logger
	resolver     *resolver.Resolver
	selector     theme.ThemeSelector
	themeName    string
	themeVariant string
	engine       template.TemplateRenderer
}

// New builds a Renderer. Without options it uses a silent logger, a default
// resolver, and the embedded fallback table template.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		log:      zerolog.Nop(),
		resolver: resolver.New(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.engine == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(embeddedTemplates),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("render: init template engine: %w", err)
		}
		r.engine = engine
	}
	return r, nil
}

// Render resolves the template sections against the data context. The caller's
// line items are never mutated; totals are recomputed on a private copy so the
// output always satisfies total = subtotal + tax - discount.
func (r *Renderer) Render(ctx context.Context, tpl model.Template, data model.DataContext) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, fmt.Errorf("render: %w", err)
	}

	items := make([]model.LineItem, len(data.LineItems))
	copy(items, data.LineItems)
	data.LineItems = items
	data.Refresh()

	styles := r.styleTokens(tpl)

	doc := Document{Styles: styles}
	doc.Header = r.renderSection(tpl.HeaderMarkup, data, styles)
	doc.Footer = r.renderSection(tpl.FooterMarkup, data, styles)

	tableSection, err := r.renderTable(tpl.TableMarkup, data, styles)
	if err != nil {
		return Document{}, err
	}
	doc.Table = tableSection

	return doc, nil
}

// RenderHTML is a convenience wrapper returning the joined document.
func (r *Renderer) RenderHTML(ctx context.Context, tpl model.Template, data model.DataContext) (string, error) {
	doc, err := r.Render(ctx, tpl, data)
	if err != nil {
		return "", err
	}
	return doc.HTML(), nil
}

func (r *Renderer) renderSection(markup string, data model.DataContext, styles model.StyleTokens) string {
	if markup == "" {
		return ""
	}
	resolved := r.resolver.Resolve(markup, data, styles)
	return sanitize.Sanitize(resolved)
}

// renderTable resolves entity tokens first so the restructuring engine can
// still identify totals cells by their financial tokens, then splices the
// generated rows, and only afterwards resolves the financial tokens.
func (r *Renderer) renderTable(markup string, data model.DataContext, styles model.StyleTokens) (string, error) {
	if strings.TrimSpace(markup) == "" {
		markup = DefaultTableMarkup()
	}

	format := currency.NewFormatter(data.CurrencyCode()).FormatFunc()
	rows := table.Rows(data.LineItems, format)

	entities := r.resolver.ResolveEntities(markup, data, styles)
	entities = r.resolver.ResolveDiscountRow(entities, data)
	restructured, err := table.Restructure(entities, rows)
	if err != nil {
		if errors.Is(err, table.ErrMissingMarker) || errors.Is(err, table.ErrMarkerOutsideTable) {
			r.log.Warn().Err(err).Msg("custom table markup unusable, using built-in table")
			return r.renderFallbackTable(data, styles)
		}
		return "", fmt.Errorf("render: restructure table: %w", err)
	}

	resolved := r.resolver.ResolveFinancial(restructured, data)
	resolved = r.resolver.Finish(resolved)
	return sanitize.Sanitize(resolved), nil
}

// renderFallbackTable produces the built-in line items table through the
// template engine. The engine escapes values itself, so descriptions are
// passed raw.
func (r *Renderer) renderFallbackTable(data model.DataContext, styles model.StyleTokens) (string, error) {
	format := currency.NewFormatter(data.CurrencyCode()).FormatFunc()

	rows := make([]map[string]any, 0, len(data.LineItems))
	for _, item := range data.LineItems {
		rows = append(rows, map[string]any{
			"description": item.Description,
			"quantity":    item.Quantity.String(),
			"unit_price":  format(item.UnitPrice),
			"amount":      format(item.Amount),
		})
	}

	discount := ""
	if data.Totals.Discount.IsPositive() {
		discount = format(data.Totals.Discount)
	}

	out, err := r.engine.RenderTemplate(fallbackTableName, map[string]any{
		"rows":         rows,
		"subtotal":     format(data.Totals.Subtotal),
		"tax_label":    "Tax (" + data.Invoice.TaxRate.String() + "%)",
		"tax":          format(data.Totals.Tax),
		"discount":     discount,
		"total":        format(data.Totals.Total),
		"header_color": styles.TableHeaderColor,
		"total_color":  styles.TableTotalColor,
	})
	if err != nil {
		return "", fmt.Errorf("render: fallback table: %w", err)
	}
	return sanitize.Sanitize(out), nil
}

// styleTokens layers branding sources: built-in defaults, then theme manifest
// tokens, then the template's own tokens on top.
func (r *Renderer) styleTokens(tpl model.Template) model.StyleTokens {
	styles := model.DefaultStyleTokens()

	if r.selector != nil {
		selection, err := r.selector.Select(r.themeName, r.themeVariant)
		if err != nil {
			r.log.Warn().Err(err).Str("theme", r.themeName).Msg("theme selection failed, using defaults")
		} else if selection != nil && selection.Manifest != nil {
			applyThemeTokens(&styles, selection.Manifest.Tokens)
		}
	}

	overlayStyles(&styles, tpl.Styles)
	return styles
}

func applyThemeTokens(styles *model.StyleTokens, themeTokens map[string]string) {
	assign := func(dst *string, key string) {
		if value, ok := themeTokens[key]; ok && value != "" {
			*dst = value
		}
	}
	assign(&styles.PrimaryColor, "primary_color")
	assign(&styles.SecondaryColor, "secondary_color")
	assign(&styles.TableHeaderColor, "table_header_color")
	assign(&styles.TableTotalColor, "table_total_color")
	assign(&styles.FontFamily, "font_family")
}

func overlayStyles(styles *model.StyleTokens, over model.StyleTokens) {
	if over.PrimaryColor != "" {
		styles.PrimaryColor = over.PrimaryColor
	}
	if over.SecondaryColor != "" {
		styles.SecondaryColor = over.SecondaryColor
	}
	if over.TableHeaderColor != "" {
		styles.TableHeaderColor = over.TableHeaderColor
	}
	if over.TableTotalColor != "" {
		styles.TableTotalColor = over.TableTotalColor
	}
	if over.FontFamily != "" {
		styles.FontFamily = over.FontFamily
	}
}
