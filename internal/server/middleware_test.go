package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	zl "github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/goliatone/go-formbuilder/internal/logging"
)

func TestPanicCatcher(t *testing.T) {
	h := panicCatcher(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestContextLoggerAndLogHTTP(t *testing.T) {
	var buf bytes.Buffer
	base := zl.New(&buf).Level(zl.DebugLevel)

	var seen []string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := logging.FromContext(r.Context())
		l.Info().Msg("inside")
		seen = append(seen, r.URL.Path)
		w.WriteHeader(http.StatusTeapot)
	})
	h := contextLogger(base)(logHTTP(inner))

	for i := 0; i < 2; i++ {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x?secret=1", nil))
	}

	out := buf.String()
	assert.Equal(t, []string{"/x", "/x"}, seen)
	assert.Contains(t, out, `"rid":1`)
	assert.Contains(t, out, `"rid":2`)
	assert.Contains(t, out, `"req":"/x"`)
	assert.Contains(t, out, `"status":418`)
	assert.NotContains(t, out, "secret")
}
