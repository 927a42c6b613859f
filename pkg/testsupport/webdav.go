package testsupport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"golang.org/x/net/webdav"
)

// DAVServer is an in-memory WebDAV endpoint for publishing tests.
type DAVServer struct {
	*httptest.Server
	FS webdav.FileSystem

	mu      sync.Mutex
	methods []string
}

// NewDAVServer starts a WebDAV server backed by webdav.NewMemFS. When
// username is non-empty, requests must carry matching basic auth.
func NewDAVServer(t *testing.T, username, password string) *DAVServer {
	t.Helper()

	srv := &DAVServer{FS: webdav.NewMemFS()}
	handler := &webdav.Handler{
		FileSystem: srv.FS,
		LockSystem: webdav.NewMemLS(),
	}

	srv.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srv.mu.Lock()
		srv.methods = append(srv.methods, r.Method+" "+r.URL.Path)
		srv.mu.Unlock()

		if username != "" {
			user, pass, ok := r.BasicAuth()
			if !ok || user != username || pass != password {
				w.Header().Set("WWW-Authenticate", `Basic realm="dav"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// Requests returns "METHOD /path" for every request received so far.
func (s *DAVServer) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.methods...)
}

// MustReadFile returns the stored content at name.
func (s *DAVServer) MustReadFile(t *testing.T, name string) string {
	t.Helper()

	f, err := s.FS.OpenFile(context.Background(), name, os.O_RDONLY, 0)
	if err != nil {
		t.Fatalf("open %s: %v", name, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

// IsDir reports whether name exists as a collection.
func (s *DAVServer) IsDir(name string) bool {
	info, err := s.FS.Stat(context.Background(), name)
	return err == nil && info.IsDir()
}
