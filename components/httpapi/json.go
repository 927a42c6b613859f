package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
)

// MaxBodyBytes bounds request bodies. Generated pages are small; 4 MiB
// leaves room for large field lists.
const MaxBodyBytes = 4 << 20

// ErrBadJSON marks a malformed request body.
var ErrBadJSON = errors.New("invalid json body")

// WriteJSON writes v with status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(v)
}

// WriteText writes a plain text body with status.
func WriteText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// DecodeJSON reads a JSON body into dst. An empty body leaves dst as is.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return WithStatus(http.StatusBadRequest, err)
	}
	if len(data) > MaxBodyBytes {
		return WithStatus(http.StatusRequestEntityTooLarge, errors.New("request body too large"))
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return WithStatus(http.StatusBadRequest, fmt.Errorf("%w: %v", ErrBadJSON, err))
	}
	return nil
}

// FormOrJSONValue returns key from a JSON or urlencoded body, falling back to
// the query string. Payment providers post webhooks as form data; other
// clients send JSON.
func FormOrJSONValue(r *http.Request, key string) (string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseForm(); err != nil {
			return "", WithStatus(http.StatusBadRequest, err)
		}
		if v := strings.TrimSpace(r.PostForm.Get(key)); v != "" {
			return v, nil
		}
	case "application/json":
		var body map[string]any
		if err := DecodeJSON(r, &body); err != nil {
			return "", err
		}
		if v, ok := body[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), nil
		}
	}
	return strings.TrimSpace(queryValue(r.URL, key)), nil
}

func queryValue(u *url.URL, key string) string {
	if u == nil {
		return ""
	}
	return u.Query().Get(key)
}

// AllowMethods rejects requests whose method is not listed with 405.
func AllowMethods(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	return false
}
