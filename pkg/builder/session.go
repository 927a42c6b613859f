// Package builder holds the editing session behind both builder front ends:
// the field list, webhook and publication settings, the generated document,
// and the two outward actions (webhook probe and publish).
package builder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	zl "github.com/rs/zerolog"

	"github.com/goliatone/go-formbuilder/internal/logging"
	"github.com/goliatone/go-formbuilder/pkg/editor"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/publish"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/jsonexport"
	"github.com/goliatone/go-formbuilder/pkg/renderers/page"
	"github.com/goliatone/go-formbuilder/pkg/webhook"
)

// ErrBusy is returned when an outward action is triggered while the same
// action is still in flight.
var ErrBusy = errors.New("builder: busy")

// DefaultDownloadName is used when the publish target has no form name.
const DefaultDownloadName = "formulier"

// Prober checks the webhook endpoint.
type Prober interface {
	Probe(ctx context.Context, cfg webhook.Config) (webhook.Result, error)
}

// Publisher uploads the document to a target.
type Publisher interface {
	Publish(ctx context.Context, target publish.Target, html []byte) (publish.Result, error)
}

// Options configures a Session. Zero values get working defaults.
type Options struct {
	// Fields seeds the list. Nil means Factory.Seed(); an empty non-nil
	// slice starts empty.
	Fields        []model.Field
	Webhook       webhook.Config
	Target        publish.Target
	Factory       *model.Factory
	Renderer      render.Renderer
	Exporter      render.Renderer
	Prober        Prober
	Publisher     Publisher
	RenderOptions render.RenderOptions
	// Sanitize, when set, cleans label, placeholder and option values
	// before they are stored.
	Sanitize func(string) string
	Logger   *zl.Logger
}

// BusyState reports which outward actions are in flight.
type BusyState struct {
	Testing    bool `json:"testing"`
	Publishing bool `json:"publishing"`
}

// State is a snapshot of the session for front ends.
type State struct {
	Fields         []model.Field     `json:"fields"`
	Webhook        webhook.Config    `json:"webhook"`
	PublishTarget  publish.Target    `json:"publishTarget"`
	PublishPath    string            `json:"publishPath"`
	DuplicateNames []string          `json:"duplicateNames,omitempty"`
	FieldTypes     []model.FieldType `json:"fieldTypes"`
	Busy           BusyState         `json:"busy"`
}

// Session is safe for concurrent use.
type Session struct {
	factory       *model.Factory
	renderer      render.Renderer
	exporter      render.Renderer
	prober        Prober
	publisher     Publisher
	renderOptions render.RenderOptions
	sanitize      func(string) string
	logger        zl.Logger

	mu       sync.RWMutex
	fields   editor.List
	hook     webhook.Config
	target   publish.Target
	document []byte

	testing    atomic.Bool
	publishing atomic.Bool
}

// New builds a session and renders the initial document.
func New(opts Options) (*Session, error) {
	s := &Session{
		factory:       opts.Factory,
		renderer:      opts.Renderer,
		exporter:      opts.Exporter,
		prober:        opts.Prober,
		publisher:     opts.Publisher,
		renderOptions: opts.RenderOptions,
		sanitize:      opts.Sanitize,
		hook:          opts.Webhook,
		target:        opts.Target,
	}
	if opts.Logger != nil {
		s.logger = *opts.Logger
	} else {
		s.logger = logging.Default()
	}
	if s.factory == nil {
		s.factory = model.NewFactory()
	}
	if s.renderer == nil {
		r, err := page.New()
		if err != nil {
			return nil, fmt.Errorf("builder: page renderer: %w", err)
		}
		s.renderer = r
	}
	if s.exporter == nil {
		s.exporter = jsonexport.New()
	}
	if s.prober == nil {
		s.prober = webhook.NewProber(webhook.WithLogger(s.logger))
	}
	if s.publisher == nil {
		s.publisher = publish.NewGateway(publish.WithLogger(s.logger))
	}

	if opts.Fields == nil {
		s.fields = editor.List(model.DefaultFields(s.factory))
	} else {
		s.fields = editor.List(s.factory.EnsureIDs(opts.Fields))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.regenerate(); err != nil {
		return nil, err
	}
	return s, nil
}

// AddField appends a field of type t and returns it. Unknown types become
// text fields.
func (s *Session) AddField(t model.FieldType) (model.Field, error) {
	if !t.Valid() {
		s.logger.Debug().Str("type", string(t)).Msg("unknown field type, using text")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := editor.Append(s.fields, s.factory, t)
	if err := s.commit(next); err != nil {
		return model.Field{}, err
	}
	return next[len(next)-1].Clone(), nil
}

// RemoveField drops the field with id.
func (s *Session) RemoveField(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(editor.Remove(s.fields, id))
}

// MoveField moves the field with id one step in dir.
func (s *Session) MoveField(id string, dir editor.Direction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(editor.Move(s.fields, id, dir))
}

// UpdateField sets one attribute of the field with id.
func (s *Session) UpdateField(id string, attr editor.Attribute, value any) error {
	value = s.clean(attr, value)
	if attr == editor.AttrType {
		if str, ok := value.(string); ok {
			if _, valid := model.ParseFieldType(str); !valid {
				s.logger.Debug().Str("type", str).Msg("unknown field type, using text")
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := editor.Update(s.fields, id, attr, value)
	if err != nil {
		return err
	}
	return s.commit(next)
}

// ReplaceFields swaps the whole list, filling missing ids.
func (s *Session) ReplaceFields(fields []model.Field) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(editor.List(s.factory.EnsureIDs(fields)))
}

// SetWebhook replaces the webhook configuration. The document is regenerated
// because it embeds the URL.
func (s *Session) SetWebhook(cfg webhook.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.hook
	s.hook = cfg
	if err := s.regenerate(); err != nil {
		s.hook = prev
		return err
	}
	return nil
}

// SetPublishTarget replaces the publication settings.
func (s *Session) SetPublishTarget(t publish.Target) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = t
	return nil
}

func (s *Session) Fields() []model.Field {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.CloneFields(s.fields)
}

func (s *Session) Webhook() webhook.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hook
}

func (s *Session) PublishTarget() publish.Target {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.target
}

// Document returns a copy of the generated page.
func (s *Session) Document() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]byte(nil), s.document...)
}

// State returns a snapshot including duplicate name warnings.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fields := model.CloneFields(s.fields)
	if fields == nil {
		fields = []model.Field{}
	}
	return State{
		Fields:         fields,
		Webhook:        s.hook,
		PublishTarget:  s.target,
		PublishPath:    s.target.Path(),
		DuplicateNames: editor.DuplicateNames(s.fields),
		FieldTypes:     model.FieldTypes(),
		Busy:           s.Busy(),
	}
}

// Busy reports which outward actions are running.
func (s *Session) Busy() BusyState {
	return BusyState{Testing: s.testing.Load(), Publishing: s.publishing.Load()}
}

// Download returns the attachment name and the document.
func (s *Session) Download() (string, []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	name := strings.TrimSpace(s.target.FormName)
	if name == "" {
		name = DefaultDownloadName
	}
	return name + ".html", append([]byte(nil), s.document...)
}

// Export renders the field list and webhook URL with the export renderer.
func (s *Session) Export(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	pg := s.pageLocked()
	s.mu.RUnlock()
	return s.exporter.Render(ctx, pg, s.renderOptions)
}

// TestWebhook probes the configured webhook. A probe already in flight
// yields ErrBusy.
func (s *Session) TestWebhook(ctx context.Context) (webhook.Result, error) {
	if !s.testing.CompareAndSwap(false, true) {
		return webhook.Result{}, ErrBusy
	}
	defer s.testing.Store(false)

	return s.prober.Probe(ctx, s.Webhook())
}

// Publish uploads the document as it was when Publish was called; edits
// made while the upload runs are not included. A publish already in flight
// yields ErrBusy.
func (s *Session) Publish(ctx context.Context) (publish.Result, error) {
	if !s.publishing.CompareAndSwap(false, true) {
		return publish.Result{}, ErrBusy
	}
	defer s.publishing.Store(false)

	s.mu.RLock()
	target := s.target
	doc := append([]byte(nil), s.document...)
	s.mu.RUnlock()

	return s.publisher.Publish(ctx, target, doc)
}

// commit renders next and installs it. On render failure the previous list
// and document stay in place. Callers hold s.mu.
func (s *Session) commit(next editor.List) error {
	prev := s.fields
	s.fields = next
	if err := s.regenerate(); err != nil {
		s.fields = prev
		return err
	}
	return nil
}

// regenerate renders the document from the current state. Callers hold s.mu.
func (s *Session) regenerate() error {
	doc, err := s.renderer.Render(context.Background(), s.pageLocked(), s.renderOptions)
	if err != nil {
		return fmt.Errorf("builder: render document: %w", err)
	}
	s.document = doc
	return nil
}

func (s *Session) pageLocked() render.Page {
	return render.Page{
		Fields:    model.CloneFields(s.fields),
		SubmitURL: s.hook.WebhookURL,
	}
}

// Names and default values are submitted data and stay verbatim.
var textAttributes = map[editor.Attribute]bool{
	editor.AttrLabel:       true,
	editor.AttrPlaceholder: true,
	editor.AttrOptions:     true,
}

func (s *Session) clean(attr editor.Attribute, value any) any {
	if s.sanitize == nil || !textAttributes[attr] {
		return value
	}
	switch v := value.(type) {
	case string:
		return s.sanitize(v)
	case []string:
		out := make([]string, len(v))
		for i, item := range v {
			out[i] = s.sanitize(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			if str, ok := item.(string); ok {
				out[i] = s.sanitize(str)
			} else {
				out[i] = item
			}
		}
		return out
	}
	return value
}
