package publish

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"

	zl "github.com/rs/zerolog"
	"github.com/studio-b12/gowebdav"

	"github.com/goliatone/go-formbuilder/internal/logging"
)

var (
	// ErrMissingDAV is returned when no WebDAV base URL is configured.
	ErrMissingDAV = errors.New("publish: missing dav")
	// ErrMissingPath is returned when the upload has no target path.
	ErrMissingPath = errors.New("publish: missing path")
)

// Messages reported to API clients for the sentinel errors.
const (
	MissingDAVMessage  = "Missing dav"
	MissingPathMessage = "Missing path"
)

// Result is the outcome of an upload.
type Result struct {
	OK    bool   `json:"ok"`
	Path  string `json:"path,omitempty"`
	Error string `json:"error,omitempty"`
}

// Client is the subset of WebDAV operations the gateway needs.
type Client interface {
	Mkdir(path string, mode os.FileMode) error
	Write(path string, data []byte, mode os.FileMode) error
}

// ClientFactory builds a Client for a DAV endpoint.
type ClientFactory func(dav DAV, transport http.RoundTripper) Client

// NewWebDAVClient is the default ClientFactory backed by gowebdav. Basic
// credentials are sent up front on every request, so each call reaches the
// server exactly once.
func NewWebDAVClient(dav DAV, transport http.RoundTripper) Client {
	if transport == nil {
		transport = http.DefaultTransport
	}
	if dav.Username != "" || dav.Password != "" {
		transport = basicAuthTransport{next: transport, username: dav.Username, password: dav.Password}
	}
	c := gowebdav.NewAuthClient(dav.BaseURL, gowebdav.NewEmptyAuth())
	c.SetTransport(transport)
	return c
}

type basicAuthTransport struct {
	next     http.RoundTripper
	username string
	password string
}

func (t basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.SetBasicAuth(t.username, t.password)
	return t.next.RoundTrip(req)
}

// Gateway uploads documents. It is safe for concurrent use; each upload gets
// its own client.
type Gateway struct {
	newClient ClientFactory
	transport http.RoundTripper
	logger    zl.Logger
}

type Option func(*Gateway)

// WithClientFactory replaces the gowebdav client, mostly for tests.
func WithClientFactory(factory ClientFactory) Option {
	return func(g *Gateway) {
		if factory != nil {
			g.newClient = factory
		}
	}
}

// WithTransport sets the transport handed to each client.
func WithTransport(rt http.RoundTripper) Option {
	return func(g *Gateway) {
		g.transport = rt
	}
}

// WithLogger sets the gateway logger.
func WithLogger(l zl.Logger) Option {
	return func(g *Gateway) {
		g.logger = l
	}
}

// NewGateway returns a Gateway using gowebdav and a debug logging transport.
func NewGateway(options ...Option) *Gateway {
	g := &Gateway{newClient: NewWebDAVClient, logger: logging.Default()}
	for _, opt := range options {
		if opt != nil {
			opt(g)
		}
	}
	if g.transport == nil {
		g.transport = logging.Transport(nil, g.logger)
	}
	return g
}

// Upload creates every parent directory of path, ignoring failures (they
// usually exist already), then writes html to path, overwriting. Missing
// input is returned as ErrMissingDAV or ErrMissingPath; upstream failures are
// reported through Result with a nil error.
func (g *Gateway) Upload(ctx context.Context, dav DAV, path string, html []byte) (Result, error) {
	if strings.TrimSpace(dav.BaseURL) == "" {
		return Result{Error: MissingDAVMessage}, ErrMissingDAV
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{Error: MissingPathMessage}, ErrMissingPath
	}

	logger := logging.FromContextOr(ctx, g.logger)
	client := g.newClient(dav, g.transport)

	for _, dir := range parentDirs(path) {
		if err := ctx.Err(); err != nil {
			return Result{Error: err.Error()}, nil
		}
		if err := client.Mkdir(dir, 0o755); err != nil {
			logger.Debug().Str("dir", dir).Err(err).Msg("mkdir skipped")
		}
	}

	if err := ctx.Err(); err != nil {
		return Result{Error: err.Error()}, nil
	}
	if err := client.Write(path, html, 0o644); err != nil {
		logger.Warn().Str("path", path).Err(err).Msg("upload failed")
		return Result{Error: err.Error()}, nil
	}

	logger.Info().Str("path", path).Int("bytes", len(html)).Msg("uploaded")
	return Result{OK: true, Path: path}, nil
}

// Publish uploads html to the target's path.
func (g *Gateway) Publish(ctx context.Context, target Target, html []byte) (Result, error) {
	return g.Upload(ctx, target.DAV(), target.Path(), html)
}
