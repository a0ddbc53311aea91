// Package sanitize gates every read-only render path (preview, print, PDF
// export) against hostile markup. The policy strips script-executing
// constructs while keeping the structural tags, inline styles and table
// attributes an invoice layout depends on. The live editing surface is never
// sanitised: it holds raw, trusted-author markup.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	documentPolicyOnce sync.Once
	documentPolicy     *bluemonday.Policy
)

// Sanitize strips dangerous markup from an HTML string. It is idempotent:
// sanitising already-clean output returns it unchanged. Hostile content is
// silently removed, never reported; the security posture is fail closed.
func Sanitize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return invoicePolicy().Sanitize(raw)
}

// EscapeText escapes user-supplied field values before they are interpolated
// into markup fragments, so a customer named "<script>" renders as text.
func EscapeText(s string) string {
	return html.EscapeString(s)
}

func invoicePolicy() *bluemonday.Policy {
	documentPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()

		structural := []string{
			"div", "span", "p", "br", "hr", "h1", "h2", "h3", "h4", "h5", "h6",
			"table", "thead", "tbody", "tfoot", "tr", "td", "th",
			"strong", "b", "em", "i", "u", "s", "sub", "sup",
			"ul", "ol", "li", "a", "img", "font", "label",
			"blockquote", "pre", "code",
		}
		policy.AllowElements(structural...)

		globalAttrs := []string{
			"style", "class", "id", "title",
			"width", "height", "align", "valign",
			"color", "face", "size",
		}
		policy.AllowAttrs(globalAttrs...).Globally()

		policy.AllowAttrs("href", "target").OnElements("a")
		policy.AllowAttrs("src", "alt").OnElements("img")
		policy.AllowAttrs("colspan", "rowspan").OnElements("td", "th")
		policy.AllowAttrs("border", "cellpadding", "cellspacing").OnElements("table")

		policy.AllowStandardURLs()
		policy.AllowDataURIImages()
		policy.AllowStyles(styleProperties...).Globally()

		documentPolicy = policy
	})
	return documentPolicy
}

// styleProperties is the inline-style surface the designer can produce:
// layout, typography, colour, borders and the absolute positioning used by
// overlay elements.
var styleProperties = []string{
	"display", "position", "top", "left", "right", "bottom", "z-index",
	"float", "clear", "vertical-align", "overflow",
	"width", "height", "min-width", "min-height", "max-width", "max-height",
	"margin", "margin-top", "margin-right", "margin-bottom", "margin-left",
	"padding", "padding-top", "padding-right", "padding-bottom", "padding-left",
	"border", "border-top", "border-right", "border-bottom", "border-left",
	"border-radius", "border-collapse", "border-spacing", "box-shadow",
	"background", "background-color", "color",
	"font", "font-family", "font-size", "font-weight", "font-style",
	"line-height", "letter-spacing", "text-align", "text-decoration",
	"text-transform", "text-indent", "white-space",
	"flex", "flex-direction", "justify-content", "align-items", "gap",
	"list-style", "list-style-type", "opacity",
}
