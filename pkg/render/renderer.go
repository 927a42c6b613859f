package render

import (
	"context"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Page is the input of a render: the ordered field list and the URL the
// generated form submits to.
type Page struct {
	Fields    []model.Field `json:"fields"`
	SubmitURL string        `json:"submitUrl"`
}

// Renderer converts a Page into a byte representation (HTML, JSON).
// Implementations must be deterministic: the same page and options produce
// byte-identical output.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page Page, options RenderOptions) ([]byte, error)
}
