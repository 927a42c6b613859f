package builder_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/editor"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/publish"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/sanitize"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
	"github.com/goliatone/go-formbuilder/pkg/webhook"
)

func newSession(t *testing.T, opts builder.Options) *builder.Session {
	t.Helper()
	if opts.Factory == nil {
		opts.Factory = testsupport.NewFactory("id")
	}
	s, err := builder.New(opts)
	require.NoError(t, err)
	return s
}

func TestNew_SeedsDefaultFields(t *testing.T) {
	s := newSession(t, builder.Options{})

	fields := s.Fields()
	require.Len(t, fields, 3)
	assert.Equal(t, "Naam", fields[0].Label)
	assert.Equal(t, "E-mail", fields[1].Label)
	assert.Equal(t, "Omschrijving", fields[2].Label)
	assert.Contains(t, string(s.Document()), "<!doctype html>")

	empty := newSession(t, builder.Options{Fields: []model.Field{}})
	assert.Empty(t, empty.Fields())
	assert.Equal(t, []model.Field{}, empty.State().Fields)
}

func TestEditing_RegeneratesDocument(t *testing.T) {
	s := newSession(t, builder.Options{Fields: []model.Field{}, Webhook: webhook.Config{WebhookURL: "https://hooks.example.com/a"}})
	before := s.Document()

	field, err := s.AddField(model.FieldTypeSelect)
	require.NoError(t, err)
	require.NoError(t, s.UpdateField(field.ID, editor.AttrLabel, "Kleur"))

	doc := string(s.Document())
	assert.NotEqual(t, string(before), doc)
	assert.Contains(t, doc, `"label":"Kleur"`)
	assert.Contains(t, doc, `const submitUrl = "https://hooks.example.com/a";`)

	require.NoError(t, s.SetWebhook(webhook.Config{WebhookURL: "https://hooks.example.com/b"}))
	assert.Contains(t, string(s.Document()), `const submitUrl = "https://hooks.example.com/b";`)

	require.NoError(t, s.RemoveField(field.ID))
	assert.NotContains(t, string(s.Document()), "Kleur")
}

func TestMoveAndUpdate(t *testing.T) {
	s := newSession(t, builder.Options{Fields: testsupport.SampleFields()})

	require.NoError(t, s.MoveField("f-email", editor.Up))
	fields := s.Fields()
	assert.Equal(t, "f-email", fields[0].ID)
	assert.Equal(t, "f-text", fields[1].ID)

	err := s.UpdateField("f-text", editor.Attribute("colour"), "red")
	assert.ErrorIs(t, err, editor.ErrUnknownAttribute)

	require.NoError(t, s.UpdateField("f-text", editor.AttrType, "date"))
	f, _, ok := editor.Find(s.Fields(), "f-text")
	require.True(t, ok)
	assert.Equal(t, model.FieldTypeText, f.Type)
}

func TestUpdateField_Sanitizes(t *testing.T) {
	s := newSession(t, builder.Options{Fields: testsupport.SampleFields(), Sanitize: sanitize.Text})

	require.NoError(t, s.UpdateField("f-text", editor.AttrLabel, "<b>Voornaam</b>"))
	require.NoError(t, s.UpdateField("f-select", editor.AttrOptions, []any{"<i>Groen</i>", "Geel"}))

	text, _, _ := editor.Find(s.Fields(), "f-text")
	sel, _, _ := editor.Find(s.Fields(), "f-select")
	assert.Equal(t, "Voornaam", text.Label)
	assert.Equal(t, []string{"Groen", "Geel"}, sel.Options)
}

func TestUpdateField_SanitizeKeepsNamesAndDefaults(t *testing.T) {
	s := newSession(t, builder.Options{Fields: testsupport.SampleFields(), Sanitize: sanitize.Text})

	for _, name := range []string{"x<y", "a<b>c", "q&amp;r"} {
		require.NoError(t, s.UpdateField("f-text", editor.AttrName, name))
		text, _, _ := editor.Find(s.Fields(), "f-text")
		assert.Equal(t, name, text.Name)
	}

	require.NoError(t, s.UpdateField("f-hidden", editor.AttrDefaultValue, "<b>web</b>"))
	hidden, _, _ := editor.Find(s.Fields(), "f-hidden")
	require.NotNil(t, hidden.DefaultValue)
	assert.Equal(t, "<b>web</b>", *hidden.DefaultValue)
}

func TestState_DuplicateNamesAndPath(t *testing.T) {
	s := newSession(t, builder.Options{
		Fields: []model.Field{
			{ID: "a", Type: model.FieldTypeText, Label: "A", Name: "x"},
			{ID: "b", Type: model.FieldTypeText, Label: "B", Name: "x"},
		},
		Target: publish.Target{Scope: "public", FormName: "contact"},
	})

	state := s.State()
	assert.Equal(t, []string{"x"}, state.DuplicateNames)
	assert.Equal(t, "web/public/contact/index.html", state.PublishPath)
	assert.Equal(t, model.FieldTypes(), state.FieldTypes)

	raw, err := json.Marshal(state)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"busy":{"testing":false,"publishing":false}`)
}

func TestDownloadAndExport(t *testing.T) {
	s := newSession(t, builder.Options{Fields: testsupport.SampleFields()})

	name, body := s.Download()
	assert.Equal(t, "formulier.html", name)
	assert.Equal(t, s.Document(), body)

	require.NoError(t, s.SetPublishTarget(publish.Target{FormName: "contact"}))
	name, _ = s.Download()
	assert.Equal(t, "contact.html", name)

	exported, err := s.Export(context.Background())
	require.NoError(t, err)
	decoded, err := model.DecodeFields(exported)
	require.NoError(t, err)
	assert.Equal(t, testsupport.SampleFields(), decoded)
}

func TestTestWebhook_Busy(t *testing.T) {
	prober := &blockingProber{started: make(chan struct{}), release: make(chan struct{})}
	s := newSession(t, builder.Options{Prober: prober, Webhook: webhook.Config{WebhookURL: "https://x"}})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		res, err := s.TestWebhook(context.Background())
		assert.NoError(t, err)
		assert.True(t, res.OK)
	}()

	<-prober.started
	assert.True(t, s.Busy().Testing)
	_, err := s.TestWebhook(context.Background())
	assert.ErrorIs(t, err, builder.ErrBusy)

	close(prober.release)
	wg.Wait()
	assert.False(t, s.Busy().Testing)
	assert.Equal(t, "https://x", prober.cfg.WebhookURL)
}

func TestPublish_BusyAndSnapshot(t *testing.T) {
	publisher := &blockingPublisher{started: make(chan struct{}), release: make(chan struct{})}
	s := newSession(t, builder.Options{
		Fields:    testsupport.SampleFields(),
		Publisher: publisher,
		Target:    publish.Target{BaseURL: "https://dav", Scope: "open", FormName: "f"},
	})
	snapshot := s.Document()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		res, err := s.Publish(context.Background())
		assert.NoError(t, err)
		assert.True(t, res.OK)
	}()

	<-publisher.started
	_, err := s.Publish(context.Background())
	assert.ErrorIs(t, err, builder.ErrBusy)
	assert.True(t, s.Busy().Publishing)

	// Editing while the upload runs does not change what is uploaded.
	require.NoError(t, s.UpdateField("f-text", editor.AttrLabel, "Gewijzigd"))
	close(publisher.release)
	wg.Wait()

	assert.Equal(t, string(snapshot), string(publisher.html))
	assert.NotContains(t, string(publisher.html), "Gewijzigd")
	assert.Equal(t, "web/open/f/index.html", publisher.target.Path())
	assert.False(t, s.Busy().Publishing)
}

func TestPublish_ToWebDAVServer(t *testing.T) {
	srv := testsupport.NewDAVServer(t, "", "")
	s := newSession(t, builder.Options{
		Fields: testsupport.SampleFields(),
		Target: publish.Target{BaseURL: srv.URL, Scope: "open", FormName: "contact"},
	})

	res, err := s.Publish(context.Background())
	require.NoError(t, err)
	require.True(t, res.OK, res.Error)
	assert.Equal(t, string(s.Document()), srv.MustReadFile(t, "/web/open/contact/index.html"))
}

func TestNew_RenderFailure(t *testing.T) {
	_, err := builder.New(builder.Options{Renderer: failingRenderer{}})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "render document"))
}

type blockingProber struct {
	started chan struct{}
	release chan struct{}
	cfg     webhook.Config
}

func (p *blockingProber) Probe(_ context.Context, cfg webhook.Config) (webhook.Result, error) {
	p.cfg = cfg
	close(p.started)
	<-p.release
	return webhook.Result{OK: true}, nil
}

type blockingPublisher struct {
	started chan struct{}
	release chan struct{}
	target  publish.Target
	html    []byte
}

func (p *blockingPublisher) Publish(_ context.Context, target publish.Target, html []byte) (publish.Result, error) {
	p.target = target
	p.html = html
	close(p.started)
	<-p.release
	return publish.Result{OK: true, Path: target.Path()}, nil
}

type failingRenderer struct{}

func (failingRenderer) Name() string        { return "fail" }
func (failingRenderer) ContentType() string { return "text/plain" }
func (failingRenderer) Render(context.Context, render.Page, render.RenderOptions) ([]byte, error) {
	return nil, errors.New("boom")
}
