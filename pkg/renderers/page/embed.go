package page

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplateName is the template rendered for every page.
const TemplateName = "templates/page.tmpl"

// TemplatesFS exposes the embedded template bundle so callers can copy it as
// a starting point for WithTemplatesDir overrides.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
