package purchase

import (
	"errors"
	"net/http"

	"github.com/goliatone/go-formbuilder/components/httpapi"
	"github.com/goliatone/go-formbuilder/internal/logging"
	"github.com/goliatone/go-formbuilder/pkg/license"
)

type createResponse struct {
	CheckoutURL string `json:"checkoutUrl,omitempty"`
	Error       string `json:"error,omitempty"`
}

// CreateHandler answers POST with {checkoutUrl} or 500 {error}.
func CreateHandler(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !httpapi.AllowMethods(w, r, http.MethodPost) {
			return
		}
		if !httpapi.Guard(w, r, opts.Guard) {
			return
		}

		checkout, err := opts.Service.Create(r.Context())
		if err != nil {
			l := logging.FromContext(r.Context())
			l.Error().Err(err).Msg("create payment")
			httpapi.WriteJSON(w, http.StatusInternalServerError, createResponse{Error: err.Error()})
			return
		}
		httpapi.WriteJSON(w, http.StatusOK, createResponse{CheckoutURL: checkout})
	})
}

// WebhookHandler receives the provider callback. The payment id comes from a
// form or JSON body field "id", or the query string. It answers "ok", 400
// "missing id" or 500 with the error message.
func WebhookHandler(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !httpapi.AllowMethods(w, r, http.MethodPost) {
			return
		}

		id, err := httpapi.FormOrJSONValue(r, "id")
		if err != nil {
			httpapi.WriteText(w, httpapi.StatusOf(err, http.StatusBadRequest), err.Error())
			return
		}

		err = opts.Service.HandleWebhook(r.Context(), id)
		switch {
		case errors.Is(err, license.ErrMissingID):
			httpapi.WriteText(w, http.StatusBadRequest, "missing id")
		case err != nil:
			l := logging.FromContext(r.Context())
			l.Error().Err(err).Str("payment", id).Msg("payment webhook")
			httpapi.WriteText(w, http.StatusInternalServerError, err.Error())
		default:
			httpapi.WriteText(w, http.StatusOK, "ok")
		}
	})
}
