package webhookprobe

import (
	"fmt"

	"github.com/goliatone/go-formbuilder/components/httpapi"
)

// MountPath returns the full mount path for the probe route under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	return httpapi.MountPath(basePath, NewOptions(fns...).RoutePath)
}

// RegisterRoutes registers the probe handler under basePath on mux.
func RegisterRoutes(mux httpapi.Mux, basePath string, fns ...OptionFn) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("webhookprobe: missing mux")
	}
	opts := NewOptions(fns...)
	pattern := httpapi.MountPath(basePath, opts.RoutePath)
	mux.Handle(pattern, HandlerWithOptions(opts))
	return pattern, nil
}
