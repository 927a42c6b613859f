package purchase

import (
	"fmt"

	"github.com/goliatone/go-formbuilder/components/httpapi"
)

// RegisterRoutes registers both purchase routes under basePath and returns
// the create and webhook patterns.
func RegisterRoutes(mux httpapi.Mux, basePath string, fns ...OptionFn) (string, string, error) {
	if mux == nil {
		return "", "", fmt.Errorf("purchase: missing mux")
	}
	opts := NewOptions(fns...)
	create := httpapi.MountPath(basePath, opts.CreatePath)
	hook := httpapi.MountPath(basePath, opts.WebhookPath)
	mux.Handle(create, CreateHandler(opts))
	mux.Handle(hook, WebhookHandler(opts))
	return create, hook, nil
}
