package builderapi

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/goliatone/go-formbuilder/components/httpapi"
	"github.com/goliatone/go-formbuilder/pkg/builder"
)

// MountPath returns the prefix the builder routes live under.
func MountPath(basePath string, fns ...OptionFn) string {
	return httpapi.MountPath(basePath, NewOptions(fns...).RoutePath)
}

// RegisterRoutes mounts the builder API for session on router and returns
// the route prefix.
func RegisterRoutes(router *mux.Router, basePath string, session *builder.Session, fns ...OptionFn) (string, error) {
	if router == nil {
		return "", fmt.Errorf("builderapi: missing router")
	}
	if session == nil {
		return "", fmt.Errorf("builderapi: missing session")
	}
	opts := NewOptions(fns...)
	prefix := httpapi.MountPath(basePath, opts.RoutePath)

	sub := router.PathPrefix(prefix).Subrouter()
	if opts.Guard != nil {
		sub.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if httpapi.Guard(w, r, opts.Guard) {
					next.ServeHTTP(w, r)
				}
			})
		})
	}

	h := handlers{session: session}
	sub.HandleFunc("/state", h.state).Methods(http.MethodGet)
	sub.HandleFunc("/fields", h.addField).Methods(http.MethodPost)
	sub.HandleFunc("/fields/{id}", h.removeField).Methods(http.MethodDelete)
	sub.HandleFunc("/fields/{id}", h.updateField).Methods(http.MethodPatch)
	sub.HandleFunc("/fields/{id}/move", h.moveField).Methods(http.MethodPost)
	sub.HandleFunc("/webhook", h.setWebhook).Methods(http.MethodPut)
	sub.HandleFunc("/publish-target", h.setPublishTarget).Methods(http.MethodPut)
	sub.HandleFunc("/document", h.document).Methods(http.MethodGet)
	sub.HandleFunc("/download", h.download).Methods(http.MethodGet)
	sub.HandleFunc("/export", h.export).Methods(http.MethodGet)
	sub.HandleFunc("/test-webhook", h.testWebhook).Methods(http.MethodPost)
	sub.HandleFunc("/publish", h.publish).Methods(http.MethodPost)
	return prefix, nil
}
