package template

import (
	"io"
)

// TemplateRenderer renders a named template file with view data. The page
// renderer and the builder screen both render through it; the pongo2
// implementation lives in the gotemplate package.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
