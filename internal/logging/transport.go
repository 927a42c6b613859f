package logging

import (
	"context"
	"net/http"
	"time"

	lh "github.com/motemen/go-loghttp"
	zl "github.com/rs/zerolog"
)

type startKey struct{}

// Transport wraps base so every outbound request and response is logged at
// debug level through the logger found in the request context, falling back
// to l. Credentials are never logged: only method, URL, status and timing.
func Transport(base http.RoundTripper, l zl.Logger) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &stampTransport{next: &lh.Transport{
		Transport: base,
		LogRequest: func(req *http.Request) {
			logger := loggerFor(req, l)
			logger.Debug().
				Str("method", req.Method).
				Str("url", redactURL(req)).
				Bool("auth", req.Header.Get("Authorization") != "").
				Msg("--> outbound request")
		},
		LogResponse: func(resp *http.Response) {
			req := resp.Request
			logger := loggerFor(req, l)
			ev := logger.Debug().Int("status", resp.StatusCode)
			if req != nil {
				ev = ev.Str("method", req.Method).Str("url", redactURL(req))
				if start, ok := req.Context().Value(startKey{}).(time.Time); ok {
					ev = ev.Dur("elapsed", time.Since(start))
				}
			}
			ev.Msg("<-- outbound response")
		},
	}}
}

// Client returns an http.Client using Transport. A zero timeout means none.
func Client(timeout time.Duration, l zl.Logger) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: Transport(nil, l),
	}
}

type stampTransport struct {
	next http.RoundTripper
}

func (t *stampTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if _, ok := ctx.Value(startKey{}).(time.Time); !ok {
		req = req.WithContext(context.WithValue(ctx, startKey{}, time.Now()))
	}
	return t.next.RoundTrip(req)
}

func loggerFor(req *http.Request, fallback zl.Logger) zl.Logger {
	if req == nil {
		return fallback
	}
	return FromContextOr(req.Context(), fallback)
}

func redactURL(req *http.Request) string {
	if req == nil || req.URL == nil {
		return ""
	}
	u := *req.URL
	if u.User != nil {
		u.User = nil
	}
	return u.String()
}
