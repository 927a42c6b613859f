package formbuilder

import (
	"io/fs"

	"github.com/goliatone/go-formbuilder/pkg/renderers/page"
	"github.com/goliatone/go-formbuilder/pkg/ui"
)

// EmbeddedTemplates exposes the page template so callers can copy it as a
// starting point for page.WithTemplatesDir.
func EmbeddedTemplates() fs.FS {
	return page.TemplatesFS()
}

// AssetsFS exposes the builder screen script and stylesheet.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(formbuilder.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return ui.AssetsFS()
}
