package upload

import (
	"errors"
	"net/http"

	"github.com/goliatone/go-formbuilder/components/httpapi"
	"github.com/goliatone/go-formbuilder/pkg/publish"
)

type request struct {
	DAV  *publish.DAV `json:"dav"`
	Path string       `json:"path"`
	HTML string       `json:"html"`
}

func NewHandler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions serves the upload endpoint. Missing dav or path answer
// 400; upstream failures answer 200 with ok=false.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !httpapi.AllowMethods(w, r, http.MethodPost) {
			return
		}
		if !httpapi.Guard(w, r, opts.Guard) {
			return
		}

		var body request
		if err := httpapi.DecodeJSON(r, &body); err != nil {
			httpapi.WriteJSON(w, httpapi.StatusOf(err, http.StatusBadRequest), publish.Result{Error: err.Error()})
			return
		}
		if body.DAV == nil {
			httpapi.WriteJSON(w, http.StatusBadRequest, publish.Result{Error: publish.MissingDAVMessage})
			return
		}

		result, err := opts.Gateway.Upload(r.Context(), *body.DAV, body.Path, []byte(body.HTML))
		if errors.Is(err, publish.ErrMissingDAV) || errors.Is(err, publish.ErrMissingPath) {
			httpapi.WriteJSON(w, http.StatusBadRequest, result)
			return
		}
		httpapi.WriteJSON(w, http.StatusOK, result)
	})
}
