package httpapi

import (
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// GuardFunc rejects a request by returning an error, optionally an
// HTTPError carrying the status.
type GuardFunc func(r *http.Request) error

// Guard runs guard and writes the rejection. It reports whether the request
// may continue.
func Guard(w http.ResponseWriter, r *http.Request, guard GuardFunc) bool {
	if guard == nil {
		return true
	}
	err := guard(r)
	if err == nil {
		return true
	}
	code := StatusOf(err, http.StatusForbidden)
	http.Error(w, http.StatusText(code), code)
	return false
}

// MountPath joins basePath and routePath into a clean absolute path.
func MountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
