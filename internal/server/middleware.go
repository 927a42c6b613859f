package server

import (
	"net/http"
	"sync/atomic"
	"time"

	zl "github.com/rs/zerolog"

	"github.com/goliatone/go-formbuilder/internal/logging"
)

// contextLogger is http middleware that inserts a request scoped logger into
// the request context.
func contextLogger(base zl.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return &contextLoggerHandler{next: next, base: base}
	}
}

type contextLoggerHandler struct {
	next  http.Handler
	base  zl.Logger
	reqID uint64
}

func (c *contextLoggerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l := c.base.With().
		Str("req", r.URL.Path).
		Uint64("rid", atomic.AddUint64(&c.reqID, 1)).
		Logger()
	c.next.ServeHTTP(w, r.WithContext(logging.WithContext(r.Context(), l)))
}

// panicCatcher recovers from handler panics, logs them, and turns them into
// 500s.
func panicCatcher(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				l := logging.FromContext(r.Context())
				l.Error().Msgf("handler panicked: %#v", err)
				w.WriteHeader(http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

// logHTTP logs one line per request. Bodies are never logged since they
// carry webhook and WebDAV credentials.
func logHTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}

		l := logging.FromContext(r.Context())
		ev := l.Debug()
		if rec.status >= http.StatusInternalServerError {
			ev = l.Warn()
		}
		ev.Str("method", r.Method).
			Int("status", rec.status).
			Int("bytes", rec.bytes).
			Dur("took", time.Since(start)).
			Msg("http")
	})
}
