package invoicegen

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-invoicegen/pkg/designer"
	"github.com/goliatone/go-invoicegen/pkg/model"
	"github.com/goliatone/go-invoicegen/pkg/render"
	"github.com/goliatone/go-invoicegen/pkg/store"
)

// Template is the persistent invoice template: three markup sections plus
// branding tokens.
type Template = model.Template

// StyleTokens carries the template branding values.
type StyleTokens = model.StyleTokens

// DataContext bundles the entities an invoice renders from.
type DataContext = model.DataContext

// LineItem is a billable invoice row.
type LineItem = model.LineItem

// Document holds the rendered invoice sections.
type Document = render.Document

// TemplateStore is the persistence surface templates are saved through.
type TemplateStore = store.TemplateStore

// NewRenderer exposes the invoice renderer constructor from the top-level
// module.
func NewRenderer(options ...render.Option) (*render.Renderer, error) {
	return render.New(options...)
}

// NewDesigner starts a template editing session.
func NewDesigner(tpl model.Template, options ...designer.Option) *designer.Designer {
	return designer.New(tpl, options...)
}

// RenderHTML renders a complete invoice document in one call. It is the
// simplest entry point for callers that just want HTML output.
func RenderHTML(ctx context.Context, tpl model.Template, data model.DataContext, options ...render.Option) (string, error) {
	r, err := render.New(options...)
	if err != nil {
		return "", err
	}
	return r.RenderHTML(ctx, tpl, data)
}

// WithThemeSelector passes a go-theme selector through to the renderer so
// branding tokens can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) render.Option {
	return render.WithThemeSelector(selector)
}

// DefaultTemplate returns a template seeded with the built-in sections and
// branding.
func DefaultTemplate() model.Template {
	return model.Template{
		Name:         "New Template",
		HeaderMarkup: render.DefaultHeaderMarkup(),
		FooterMarkup: render.DefaultFooterMarkup(),
		TableMarkup:  render.DefaultTableMarkup(),
		Styles:       model.DefaultStyleTokens(),
	}
}
