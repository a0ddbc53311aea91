package render

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html templates/*.tmpl
var embeddedTemplates embed.FS

const (
	defaultHeaderName = "templates/default_header.html"
	defaultFooterName = "templates/default_footer.html"
	defaultTableName  = "templates/default_table.html"
	fallbackTableName = "templates/fallback_table"
)

// TemplatesFS exposes the embedded template bundle for consumers that want to
// use the built-in invoice sections out of the box.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// DefaultHeaderMarkup returns the built-in header section markup.
func DefaultHeaderMarkup() string {
	return mustEmbedded(defaultHeaderName)
}

// DefaultFooterMarkup returns the built-in footer section markup.
func DefaultFooterMarkup() string {
	return mustEmbedded(defaultFooterName)
}

// DefaultTableMarkup returns the built-in line items table markup, including
// the row insertion marker and totals placeholders.
func DefaultTableMarkup() string {
	return mustEmbedded(defaultTableName)
}

func mustEmbedded(name string) string {
	data, err := fs.ReadFile(embeddedTemplates, name)
	if err != nil {
		// The bundle is compiled in, so a missing entry is a packaging bug.
		panic("render: missing embedded template " + name)
	}
	return string(data)
}
