package gotemplate

import (
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formbuilder/pkg/render"
)

var defaultFilters = map[string]pongo2.FilterFunction{
	"trim":       filterTrim,
	"scriptjson": filterScriptJSON,
}

func registerFilters(filters map[string]pongo2.FilterFunction) {
	for name, fn := range filters {
		if !pongo2.FilterExists(name) {
			_ = pongo2.RegisterFilter(name, fn)
		}
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterScriptJSON emits its input as a JSON literal that is safe inside a
// <script> element and marks it safe so autoescaping leaves it alone.
func filterScriptJSON(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	out, err := render.ScriptJSON(in.Interface())
	if err != nil {
		return nil, &pongo2.Error{Sender: "filter:scriptjson", OrigError: err}
	}
	return pongo2.AsSafeValue(out), nil
}
