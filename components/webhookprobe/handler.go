package webhookprobe

import (
	"errors"
	"net/http"

	"github.com/goliatone/go-formbuilder/components/httpapi"
	"github.com/goliatone/go-formbuilder/pkg/webhook"
)

func NewHandler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions serves POST {webhookUrl, username, appPassword}. A
// missing URL answers 400; every probe outcome, failed or not, answers 200.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !httpapi.AllowMethods(w, r, http.MethodPost) {
			return
		}
		if !httpapi.Guard(w, r, opts.Guard) {
			return
		}

		var cfg webhook.Config
		if err := httpapi.DecodeJSON(r, &cfg); err != nil {
			httpapi.WriteJSON(w, httpapi.StatusOf(err, http.StatusBadRequest), webhook.Result{Error: err.Error()})
			return
		}

		result, err := opts.Prober.Probe(r.Context(), cfg)
		if errors.Is(err, webhook.ErrMissingURL) {
			httpapi.WriteJSON(w, http.StatusBadRequest, result)
			return
		}
		httpapi.WriteJSON(w, http.StatusOK, result)
	})
}
