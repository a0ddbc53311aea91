package invoicegen

import (
	"io/fs"

	"github.com/goliatone/go-invoicegen/pkg/render"
)

// EmbeddedTemplates exposes the built-in section templates so callers can
// reuse or extend them without importing the render package directly.
func EmbeddedTemplates() fs.FS {
	return render.TemplatesFS()
}
