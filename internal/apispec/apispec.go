// Package apispec embeds the OpenAPI description of the HTTP API and
// validates incoming API requests against it.
package apispec

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"

	"github.com/goliatone/go-formbuilder/components/httpapi"
	"github.com/goliatone/go-formbuilder/internal/logging"
)

//go:embed openapi.yaml
var document []byte

// Document returns the raw embedded OpenAPI document.
func Document() []byte {
	return append([]byte(nil), document...)
}

// Spec is the parsed, validated document plus its request router.
type Spec struct {
	doc    *openapi3.T
	router routers.Router
}

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*Spec, error) {
	return LoadData(ctx, document)
}

// LoadData parses and validates raw. External references are not allowed.
func LoadData(ctx context.Context, raw []byte) (*Spec, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("apispec: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: false}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("apispec: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("apispec: validate: %w", err)
	}
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return nil, errors.New("apispec: document does not contain any paths")
	}

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("apispec: build router: %w", err)
	}
	return &Spec{doc: doc, router: router}, nil
}

// MustLoad is Load for program start-up.
func MustLoad() *Spec {
	spec, err := Load(context.Background())
	if err != nil {
		panic(err)
	}
	return spec
}

// Operations returns "METHOD /path" for every documented operation, sorted.
func (s *Spec) Operations() []string {
	var out []string
	for path, item := range s.doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method := range item.Operations() {
			out = append(out, strings.ToUpper(method)+" "+path)
		}
	}
	sort.Strings(out)
	return out
}

// Validate checks r against the document. Requests that match no documented
// operation are not an error; routing decides what happens to them.
func (s *Spec) Validate(r *http.Request) error {
	route, pathParams, err := s.router.FindRoute(r)
	if err != nil {
		return nil
	}
	input := &openapi3filter.RequestValidationInput{
		Request:    r,
		PathParams: pathParams,
		Route:      route,
		Options: &openapi3filter.Options{
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	}
	if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
		return httpapi.WithStatus(http.StatusBadRequest, err)
	}
	return nil
}

type failure struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// Middleware rejects requests under prefix that do not match their
// documented shape with 400 {ok:false, error}.
func (s *Spec) Middleware(prefix string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, prefix) {
				next.ServeHTTP(w, r)
				return
			}
			if err := s.Validate(r); err != nil {
				l := logging.FromContext(r.Context())
				l.Debug().Err(err).Msg("request rejected by api schema")
				httpapi.WriteJSON(w, httpapi.StatusOf(err, http.StatusBadRequest), failure{Error: err.Error()})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Handler serves the embedded document.
func Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(document)
	})
}
