// Package jsonexport renders the field list and submit URL as indented JSON,
// the format the builder "export" action downloads and `render --format json`
// writes. The output is accepted back by model.DecodeFields.
package jsonexport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

// Name is the registry name of the export renderer.
const Name = "json"

// Renderer implements render.Renderer.
type Renderer struct {
	indent string
}

type Option func(*Renderer)

// WithIndent overrides the two-space indent. An empty string yields compact
// output.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// New returns the export renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{indent: "  "}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "application/json; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, page render.Page, _ render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if page.Fields == nil {
		page.Fields = []model.Field{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if r.indent != "" {
		enc.SetIndent("", r.indent)
	}
	if err := enc.Encode(page); err != nil {
		return nil, fmt.Errorf("jsonexport: encode: %w", err)
	}
	return buf.Bytes(), nil
}
