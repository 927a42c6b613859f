// Package formbuilder builds single page HTML forms that post their values
// as JSON to a webhook. The root package re-exports the pieces most callers
// need; the builder session, renderers and publishing gateway live under
// pkg/.
package formbuilder

import (
	"context"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/publish"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/jsonexport"
	"github.com/goliatone/go-formbuilder/pkg/renderers/page"
	"github.com/goliatone/go-formbuilder/pkg/webhook"
)

type (
	Field          = model.Field
	FieldType      = model.FieldType
	Page           = render.Page
	RenderOptions  = render.RenderOptions
	Session        = builder.Session
	SessionOptions = builder.Options
	WebhookConfig  = webhook.Config
	PublishTarget  = publish.Target
)

// NewSession starts an editing session. A nil opts.Fields seeds the three
// starter fields.
func NewSession(opts SessionOptions) (*Session, error) {
	return builder.New(opts)
}

// DefaultFields returns the starter fields with fresh ids.
func DefaultFields() []Field {
	return model.DefaultFields(model.NewFactory())
}

// GenerateHTML renders fields as a standalone page that posts to submitURL.
func GenerateHTML(ctx context.Context, fields []Field, submitURL string, opts RenderOptions) ([]byte, error) {
	r, err := page.New()
	if err != nil {
		return nil, err
	}
	return r.Render(ctx, Page{Fields: fields, SubmitURL: submitURL}, opts)
}

// ExportJSON renders fields and submitURL as indented JSON.
func ExportJSON(ctx context.Context, fields []Field, submitURL string) ([]byte, error) {
	return jsonexport.New().Render(ctx, Page{Fields: fields, SubmitURL: submitURL}, RenderOptions{})
}
