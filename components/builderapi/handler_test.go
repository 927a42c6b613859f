package builderapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/publish"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
	"github.com/goliatone/go-formbuilder/pkg/webhook"
)

func setup(t *testing.T, opts builder.Options) (*mux.Router, *builder.Session) {
	t.Helper()
	if opts.Fields == nil {
		opts.Fields = testsupport.SampleFields()
	}
	opts.Factory = testsupport.NewFactory("n")
	session, err := builder.New(opts)
	require.NoError(t, err)

	router := mux.NewRouter()
	prefix, err := RegisterRoutes(router, "", session)
	require.NoError(t, err)
	require.Equal(t, "/api/builder", prefix)
	return router, session
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) builder.State {
	t.Helper()
	var state builder.State
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&state))
	return state
}

func TestFieldLifecycle(t *testing.T) {
	router, session := setup(t, builder.Options{})

	rec := do(t, router, http.MethodPost, "/api/builder/fields", `{"type":"checkbox"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	state := decodeState(t, rec)
	require.Len(t, state.Fields, 8)
	added := state.Fields[7]
	assert.Equal(t, "checkbox", string(added.Type))

	rec = do(t, router, http.MethodPatch, "/api/builder/fields/"+added.ID, `{"attribute":"label","value":"Akkoord"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Akkoord", decodeState(t, rec).Fields[7].Label)

	rec = do(t, router, http.MethodPost, "/api/builder/fields/"+added.ID+"/move", `{"direction":-1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, added.ID, decodeState(t, rec).Fields[6].ID)

	rec = do(t, router, http.MethodDelete, "/api/builder/fields/"+added.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeState(t, rec).Fields, 7)
	assert.Len(t, session.Fields(), 7)
}

func TestUpdateField_Errors(t *testing.T) {
	router, _ := setup(t, builder.Options{})

	rec := do(t, router, http.MethodPatch, "/api/builder/fields/f-text", `{"attribute":"colour","value":"red"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok":false`)

	rec = do(t, router, http.MethodPatch, "/api/builder/fields/f-text", `{"attribute":"rows","value":"many"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/builder/fields/f-text/move", `{"direction":5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/builder/fields", `{"type":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSettingsAndDocument(t *testing.T) {
	router, _ := setup(t, builder.Options{})

	rec := do(t, router, http.MethodPut, "/api/builder/webhook", `{"webhookUrl":"https://hooks.example.com/z"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://hooks.example.com/z", decodeState(t, rec).Webhook.WebhookURL)

	rec = do(t, router, http.MethodPut, "/api/builder/publish-target", `{"baseUrl":"https://dav","scope":"public","formName":"contact"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "web/public/contact/index.html", decodeState(t, rec).PublishPath)

	rec = do(t, router, http.MethodGet, "/api/builder/document", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `const submitUrl = "https://hooks.example.com/z";`)

	rec = do(t, router, http.MethodGet, "/api/builder/download", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="contact.html"`, rec.Header().Get("Content-Disposition"))

	rec = do(t, router, http.MethodGet, "/api/builder/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"submitUrl": "https://hooks.example.com/z"`)
}

func TestOutwardActions(t *testing.T) {
	hook := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	defer hook.Close()
	dav := testsupport.NewDAVServer(t, "", "")

	router, session := setup(t, builder.Options{
		Webhook: webhook.Config{WebhookURL: hook.URL},
		Target:  publish.Target{BaseURL: dav.URL, Scope: "open", FormName: "demo"},
	})

	rec := do(t, router, http.MethodPost, "/api/builder/test-webhook", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = do(t, router, http.MethodPost, "/api/builder/publish", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"path":"web/open/demo/index.html"}`, rec.Body.String())
	assert.Equal(t, string(session.Document()), dav.MustReadFile(t, "/web/open/demo/index.html"))
}

func TestOutwardActions_MissingInput(t *testing.T) {
	router, _ := setup(t, builder.Options{})

	rec := do(t, router, http.MethodPost, "/api/builder/test-webhook", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"ok":false,"error":"Missing webhookUrl"}`, rec.Body.String())

	rec = do(t, router, http.MethodPost, "/api/builder/publish", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"ok":false,"error":"Missing dav"}`, rec.Body.String())
}

func TestBusyIsConflict(t *testing.T) {
	prober := &blockingProber{started: make(chan struct{}), release: make(chan struct{})}
	router, _ := setup(t, builder.Options{Prober: prober, Webhook: webhook.Config{WebhookURL: "https://x"}})

	done := make(chan struct{})
	go func() {
		defer close(done)
		do(t, router, http.MethodPost, "/api/builder/test-webhook", "")
	}()
	<-prober.started

	rec := do(t, router, http.MethodPost, "/api/builder/test-webhook", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"ok":false,"error":"busy"}`, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/api/builder/state", "")
	assert.True(t, decodeState(t, rec).Busy.Testing)

	close(prober.release)
	<-done
}

func TestGuard(t *testing.T) {
	session, err := builder.New(builder.Options{})
	require.NoError(t, err)
	router := mux.NewRouter()
	_, err = RegisterRoutes(router, "/admin", session, WithGuard(func(*http.Request) error {
		return context.Canceled
	}))
	require.NoError(t, err)

	rec := do(t, router, http.MethodGet, "/admin/api/builder/state", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

type blockingProber struct {
	started chan struct{}
	release chan struct{}
}

func (p *blockingProber) Probe(context.Context, webhook.Config) (webhook.Result, error) {
	close(p.started)
	<-p.release
	return webhook.Result{OK: true}, nil
}
