package render

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-invoicegen/pkg/sanitize"
)

// HTMLExporter writes the rendered document as a standalone HTML page.
type HTMLExporter struct {
	// Title is placed in the page head; defaults to "Invoice".
	Title string
}

// Name implements Exporter.
func (e *HTMLExporter) Name() string { return "html" }

// Export implements Exporter.
func (e *HTMLExporter) Export(ctx context.Context, doc Document, filename string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("render: export html: %w", err)
	}

	// The title often carries CRM-supplied values such as the invoice number.
	title := sanitize.EscapeText(e.Title)
	if title == "" {
		title = "Invoice"
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString(`<meta charset="utf-8">`)
	b.WriteString("\n<title>")
	b.WriteString(title)
	b.WriteString("</title>\n</head>\n<body style=\"margin: 2rem;\">\n")
	b.WriteString(doc.HTML())
	b.WriteString("\n</body>\n</html>\n")

	if err := os.WriteFile(filename, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("render: export html: %w", err)
	}
	return nil
}
