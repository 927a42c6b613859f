package ui

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets
var embeddedAssets embed.FS

const (
	BuilderTemplate = "templates/builder.tmpl"
	ThanksTemplate  = "templates/thanks.tmpl"
)

// TemplatesFS exposes the embedded screen templates.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the stylesheet and script rooted at the assets directory.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}
