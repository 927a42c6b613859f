// Package server exposes the builder over HTTP: the editing screen, its
// assets, the builder API and the webhook, upload and purchase endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	zl "github.com/rs/zerolog"

	"github.com/goliatone/go-formbuilder/components/builderapi"
	"github.com/goliatone/go-formbuilder/components/httpapi"
	"github.com/goliatone/go-formbuilder/components/purchase"
	"github.com/goliatone/go-formbuilder/components/upload"
	"github.com/goliatone/go-formbuilder/components/webhookprobe"
	"github.com/goliatone/go-formbuilder/internal/apispec"
	"github.com/goliatone/go-formbuilder/internal/app"
	"github.com/goliatone/go-formbuilder/internal/logging"
	"github.com/goliatone/go-formbuilder/pkg/ui"
)

const (
	ThanksPath  = "/thanks"
	AssetsPath  = "/assets/"
	HealthPath  = "/healthz"
	OpenAPIPath = "/api/openapi.yaml"
	apiPrefix   = "/api/"

	ShutdownTimeout = 5 * time.Second
)

type Option func(*Server)

// WithScreen replaces the default builder screen.
func WithScreen(screen *ui.Screen) Option {
	return func(s *Server) {
		s.screen = screen
	}
}

// WithAPISpec replaces the embedded request schema.
func WithAPISpec(spec *apispec.Spec) Option {
	return func(s *Server) {
		s.spec = spec
	}
}

// WithoutValidation disables request schema validation.
func WithoutValidation() Option {
	return func(s *Server) {
		s.validate = false
	}
}

type Server struct {
	app      *app.App
	screen   *ui.Screen
	spec     *apispec.Spec
	validate bool
	logger   zl.Logger

	apiBase     string
	purchaseURL string
	handler     http.Handler
}

// routerMux adapts a gorilla router to httpapi.Mux.
type routerMux struct {
	router *mux.Router
}

func (m routerMux) Handle(pattern string, handler http.Handler) {
	m.router.Handle(pattern, handler)
}

// New wires every route for a.
func New(a *app.App, opts ...Option) (*Server, error) {
	if a == nil {
		return nil, errors.New("server: missing app")
	}
	s := &Server{app: a, validate: true, logger: a.Logger}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.screen == nil {
		screen, err := ui.New(ui.WithTranslator(a.Catalog))
		if err != nil {
			return nil, err
		}
		s.screen = screen
	}
	if s.validate && s.spec == nil {
		spec, err := apispec.Load(context.Background())
		if err != nil {
			return nil, err
		}
		s.spec = spec
	}

	router := mux.NewRouter()
	m := routerMux{router: router}

	if _, err := webhookprobe.RegisterRoutes(m, "", webhookprobe.WithProber(a.Prober)); err != nil {
		return nil, err
	}
	if _, err := upload.RegisterRoutes(m, "", upload.WithGateway(a.Gateway)); err != nil {
		return nil, err
	}
	create, _, err := purchase.RegisterRoutes(m, "", purchase.WithService(a.License))
	if err != nil {
		return nil, err
	}
	if a.License.Enabled() {
		s.purchaseURL = create
	}
	apiBase, err := builderapi.RegisterRoutes(router, "", a.Session)
	if err != nil {
		return nil, err
	}
	s.apiBase = apiBase

	router.Handle(OpenAPIPath, apispec.Handler()).Methods(http.MethodGet)
	router.HandleFunc(HealthPath, health).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc(ThanksPath, s.thanks).Methods(http.MethodGet)
	router.PathPrefix(AssetsPath).Handler(http.StripPrefix(strings.TrimSuffix(AssetsPath, "/"), http.FileServer(http.FS(ui.AssetsFS()))))
	router.HandleFunc("/", s.index).Methods(http.MethodGet)

	chain := alice.New(contextLogger(s.logger), panicCatcher, logHTTP)
	if s.spec != nil {
		chain = chain.Append(s.spec.Middleware(apiPrefix))
	}
	s.handler = chain.Then(router)
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves on the configured address until ctx is done, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.app.Config.Addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.app.Config.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// HTTPServer returns the http.Server Serve runs. The write timeout comes
// from the configuration and is unset by default.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      s.app.Config.WriteTimeout,
	}
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := s.HTTPServer()

	errc := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("listening")
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	s.logger.Info().Msg("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	body, err := s.screen.Builder(r.Context(), ui.BuilderData{
		Locale:      s.locale(r),
		State:       s.app.Session.State(),
		APIBase:     s.apiBase,
		AssetsBase:  AssetsPath,
		PurchaseURL: s.purchaseURL,
	})
	s.writeHTML(w, r, body, err)
}

func (s *Server) thanks(w http.ResponseWriter, r *http.Request) {
	body, err := s.screen.Thanks(r.Context(), ui.ThanksData{
		Locale:     s.locale(r),
		HomeURL:    "/",
		AssetsBase: AssetsPath,
	})
	s.writeHTML(w, r, body, err)
}

// locale honours ?lang= when the catalogue has messages for it.
func (s *Server) locale(r *http.Request) string {
	if lang := strings.TrimSpace(r.URL.Query().Get("lang")); lang != "" && s.app.Catalog.Supports(lang) {
		return lang
	}
	return s.app.Config.Locale
}

func (s *Server) writeHTML(w http.ResponseWriter, r *http.Request, body []byte, err error) {
	if err != nil {
		l := logging.FromContext(r.Context())
		l.Error().Err(err).Msg("render screen")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func health(w http.ResponseWriter, _ *http.Request) {
	httpapi.WriteText(w, http.StatusOK, "ok")
}
