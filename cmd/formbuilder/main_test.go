package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formbuilder/internal/app"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

type run struct {
	out, errs bytes.Buffer
	code      int
}

func invoke(t *testing.T, args ...string) *run {
	t.Helper()
	r := &run{code: -1}
	impl(args, strings.NewReader(""), &r.out, &r.errs, func(code int) { r.code = code },
		app.WithIDGenerator(testsupport.SequentialIDs("id")))
	return r
}

func TestRender_DefaultsToStarterFields(t *testing.T) {
	r := invoke(t, "render")

	require.Equal(t, -1, r.code, r.errs.String())
	html := r.out.String()
	assert.True(t, strings.HasPrefix(html, "<!doctype html>"))
	assert.Contains(t, html, `const submitUrl = "https://example.com/webhook";`)
	assert.Contains(t, html, `"name":"email"`)
}

func TestRender_JSONFromFieldFile(t *testing.T) {
	dir := t.TempDir()
	fields := filepath.Join(dir, "fields.yaml")
	require.NoError(t, os.WriteFile(fields, []byte("- id: a\n  type: number\n  label: Leeftijd\n  name: age\n"), 0o644))

	r := invoke(t, "render", "--fields", fields, "--format", "json", "--submit-url", "https://hooks.example.com/in")
	require.Equal(t, -1, r.code, r.errs.String())

	var doc struct {
		SubmitURL string `json:"submitUrl"`
		Fields    []struct {
			Name string `json:"name"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(r.out.Bytes(), &doc))
	assert.Equal(t, "https://hooks.example.com/in", doc.SubmitURL)
	require.Len(t, doc.Fields, 1)
	assert.Equal(t, "age", doc.Fields[0].Name)
}

func TestRender_OutputFileAndLocale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.html")

	r := invoke(t, "--locale", "en", "render", "-o", path)
	require.Equal(t, -1, r.code, r.errs.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<html lang="en">`)
	assert.Contains(t, r.errs.String(), "Saved: "+path)
}

func TestPublish(t *testing.T) {
	dav := testsupport.NewDAVServer(t, "u", "p")

	r := invoke(t, "publish", "--base-url", dav.URL, "--username", "u", "--password", "p", "--scope", "public", "--name", "contact")
	require.Equal(t, -1, r.code, r.errs.String())

	assert.Contains(t, r.out.String(), "web/public/contact/index.html")
	assert.Contains(t, dav.MustReadFile(t, "/web/public/contact/index.html"), "<!doctype html>")
}

func TestPublish_HTMLFile(t *testing.T) {
	dav := testsupport.NewDAVServer(t, "", "")
	page := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(page, []byte("<p>hand made</p>"), 0o644))

	r := invoke(t, "publish", "--base-url", dav.URL, "--html", page)
	require.Equal(t, -1, r.code, r.errs.String())
	assert.Equal(t, "<p>hand made</p>", dav.MustReadFile(t, "/web/open/mijn-formulier/index.html"))
}

func TestProbe(t *testing.T) {
	var method string
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
	}))
	defer hook.Close()

	r := invoke(t, "probe", "--url", hook.URL)
	require.Equal(t, -1, r.code, r.errs.String())
	assert.Equal(t, http.MethodOptions, method)
	assert.Contains(t, r.out.String(), "Webhook ok")

	hook.Close()
	r = invoke(t, "probe", "--url", hook.URL)
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.errs.String(), "Mislukt: ")
}

func TestInvalidInvocation(t *testing.T) {
	r := invoke(t, "render", "--format", "pdf")
	assert.Equal(t, 1, r.code)

	r = invoke(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "render")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.errs.String(), "config: read")

	r = invoke(t)
	assert.Equal(t, -1, r.code)
	assert.Contains(t, r.errs.String(), "usage: formbuilder")
}
