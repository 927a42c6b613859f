// Package webhook checks that a submission endpoint is reachable by sending
// it a single OPTIONS request, optionally with basic auth.
package webhook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	zl "github.com/rs/zerolog"

	"github.com/goliatone/go-formbuilder/internal/logging"
)

// ErrMissingURL is returned when the configuration has no webhook URL. No
// request is made in that case.
var ErrMissingURL = errors.New("webhook: missing url")

// MissingURLMessage is the error text reported to API clients for
// ErrMissingURL.
const MissingURLMessage = "Missing webhookUrl"

// Config is the submission endpoint of a generated page plus the optional
// credentials used when probing it.
type Config struct {
	WebhookURL  string `json:"webhookUrl" yaml:"webhookUrl"`
	Username    string `json:"username,omitempty" yaml:"username,omitempty"`
	AppPassword string `json:"appPassword,omitempty" yaml:"appPassword,omitempty"`
}

// HasCredentials reports whether both username and app password are set.
// Basic auth is only sent when both are present.
func (c Config) HasCredentials() bool {
	return c.Username != "" && c.AppPassword != ""
}

// Result is the outcome reported to callers. Error carries "HTTP <code>" for
// non-2xx answers or the transport error message.
type Result struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Prober sends the probe request.
type Prober struct {
	client *http.Client
	logger zl.Logger
}

type Option func(*Prober)

// WithHTTPClient replaces the default client (no timeout, debug logging
// transport).
func WithHTTPClient(client *http.Client) Option {
	return func(p *Prober) {
		if client != nil {
			p.client = client
		}
	}
}

// WithLogger sets the logger used for probe outcomes.
func WithLogger(l zl.Logger) Option {
	return func(p *Prober) {
		p.logger = l
	}
}

// NewProber returns a Prober.
func NewProber(options ...Option) *Prober {
	p := &Prober{logger: logging.Default()}
	for _, opt := range options {
		if opt != nil {
			opt(p)
		}
	}
	if p.client == nil {
		p.client = logging.Client(0, p.logger)
	}
	return p
}

// Probe sends one OPTIONS request to cfg.WebhookURL. A missing URL returns
// ErrMissingURL; every other failure is reported through Result with a nil
// error. Nothing is retried.
func (p *Prober) Probe(ctx context.Context, cfg Config) (Result, error) {
	target := strings.TrimSpace(cfg.WebhookURL)
	if target == "" {
		return Result{OK: false, Error: MissingURLMessage}, ErrMissingURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodOptions, target, nil)
	if err != nil {
		return p.failed(ctx, target, err.Error()), nil
	}
	if cfg.HasCredentials() {
		req.SetBasicAuth(cfg.Username, cfg.AppPassword)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return p.failed(ctx, target, err.Error()), nil
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return p.failed(ctx, target, fmt.Sprintf("HTTP %d", resp.StatusCode)), nil
	}

	p.log(ctx).Info().Str("url", target).Msg("webhook probe ok")
	return Result{OK: true}, nil
}

func (p *Prober) failed(ctx context.Context, target, detail string) Result {
	p.log(ctx).Warn().Str("url", target).Str("error", detail).Msg("webhook probe failed")
	return Result{OK: false, Error: detail}
}

func (p *Prober) log(ctx context.Context) *zl.Logger {
	l := logging.FromContextOr(ctx, p.logger)
	return &l
}
