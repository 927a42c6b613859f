package builderapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/goliatone/go-formbuilder/components/httpapi"
	"github.com/goliatone/go-formbuilder/internal/logging"
	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/editor"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/publish"
	"github.com/goliatone/go-formbuilder/pkg/webhook"
)

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

type addRequest struct {
	Type model.FieldType `json:"type"`
}

type moveRequest struct {
	Direction editor.Direction `json:"direction"`
}

type updateRequest struct {
	Attribute editor.Attribute `json:"attribute"`
	Value     any              `json:"value"`
}

type handlers struct {
	session *builder.Session
}

func (h handlers) state(w http.ResponseWriter, _ *http.Request) {
	httpapi.WriteJSON(w, http.StatusOK, h.session.State())
}

func (h handlers) addField(w http.ResponseWriter, r *http.Request) {
	var body addRequest
	if err := httpapi.DecodeJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	if body.Type == "" {
		body.Type = model.FieldTypeText
	}
	if _, ok := model.ParseFieldType(string(body.Type)); !ok {
		l := logging.FromContext(r.Context())
		l.Debug().Str("type", string(body.Type)).Msg("unknown field type, adding text field")
	}
	if _, err := h.session.AddField(body.Type); err != nil {
		writeError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, h.session.State())
}

func (h handlers) removeField(w http.ResponseWriter, r *http.Request) {
	if err := h.session.RemoveField(mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, h.session.State())
}

func (h handlers) moveField(w http.ResponseWriter, r *http.Request) {
	var body moveRequest
	if err := httpapi.DecodeJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	if body.Direction != editor.Up && body.Direction != editor.Down {
		writeError(w, r, httpapi.WithStatus(http.StatusBadRequest, fmt.Errorf("direction must be -1 or 1")))
		return
	}
	if err := h.session.MoveField(mux.Vars(r)["id"], body.Direction); err != nil {
		writeError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, h.session.State())
}

func (h handlers) updateField(w http.ResponseWriter, r *http.Request) {
	var body updateRequest
	if err := httpapi.DecodeJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.session.UpdateField(mux.Vars(r)["id"], body.Attribute, body.Value); err != nil {
		writeError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, h.session.State())
}

func (h handlers) setWebhook(w http.ResponseWriter, r *http.Request) {
	var cfg webhook.Config
	if err := httpapi.DecodeJSON(r, &cfg); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.session.SetWebhook(cfg); err != nil {
		writeError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, h.session.State())
}

func (h handlers) setPublishTarget(w http.ResponseWriter, r *http.Request) {
	var target publish.Target
	if err := httpapi.DecodeJSON(r, &target); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.session.SetPublishTarget(target); err != nil {
		writeError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, h.session.State())
}

func (h handlers) document(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.session.Document())
}

func (h handlers) download(w http.ResponseWriter, _ *http.Request) {
	name, body := h.session.Download()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h handlers) export(w http.ResponseWriter, r *http.Request) {
	body, err := h.session.Export(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h handlers) testWebhook(w http.ResponseWriter, r *http.Request) {
	result, err := h.session.TestWebhook(r.Context())
	switch {
	case errors.Is(err, webhook.ErrMissingURL):
		httpapi.WriteJSON(w, http.StatusBadRequest, result)
	case err != nil:
		writeError(w, r, err)
	default:
		httpapi.WriteJSON(w, http.StatusOK, result)
	}
}

func (h handlers) publish(w http.ResponseWriter, r *http.Request) {
	result, err := h.session.Publish(r.Context())
	switch {
	case errors.Is(err, publish.ErrMissingDAV), errors.Is(err, publish.ErrMissingPath):
		httpapi.WriteJSON(w, http.StatusBadRequest, result)
	case err != nil:
		writeError(w, r, err)
	default:
		httpapi.WriteJSON(w, http.StatusOK, result)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	message := err.Error()
	if errors.Is(err, builder.ErrBusy) {
		message = "busy"
	}
	if code >= http.StatusInternalServerError {
		l := logging.FromContext(r.Context())
		l.Error().Err(err).Msg("builder api")
	}
	httpapi.WriteJSON(w, code, errorResponse{OK: false, Error: message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, builder.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, editor.ErrUnknownAttribute), errors.Is(err, editor.ErrInvalidValue):
		return http.StatusBadRequest
	}
	return httpapi.StatusOf(err, http.StatusInternalServerError)
}
