// Package publish uploads generated pages to a WebDAV content host.
package publish

import (
	"encoding/json"
	"strings"
)

const (
	DefaultScope    = "open"
	DefaultFormName = "mijn-formulier"
)

// Scopes lists the scopes offered by the builder UI.
func Scopes() []string {
	return []string{"open", "public"}
}

// DAV holds the WebDAV endpoint and credentials.
type DAV struct {
	BaseURL  string `json:"baseUrl" yaml:"baseUrl"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
}

// UnmarshalJSON also accepts the legacy "topdeskBaseUrl" key.
func (d *DAV) UnmarshalJSON(data []byte) error {
	var raw struct {
		BaseURL        string `json:"baseUrl"`
		TopdeskBaseURL string `json:"topdeskBaseUrl"`
		Username       string `json:"username"`
		Password       string `json:"password"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.BaseURL = raw.BaseURL
	if d.BaseURL == "" {
		d.BaseURL = raw.TopdeskBaseURL
	}
	d.Username = raw.Username
	d.Password = raw.Password
	return nil
}

// Target is where the builder publishes its document.
type Target struct {
	BaseURL  string `json:"baseUrl" yaml:"baseUrl"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	Scope    string `json:"scope" yaml:"scope"`
	FormName string `json:"formName" yaml:"formName"`
}

// WithDefaults fills an empty scope and form name.
func (t Target) WithDefaults() Target {
	if strings.TrimSpace(t.Scope) == "" {
		t.Scope = DefaultScope
	}
	if strings.TrimSpace(t.FormName) == "" {
		t.FormName = DefaultFormName
	}
	return t
}

// Path returns web/<scope>/<formName>/index.html.
func (t Target) Path() string {
	t = t.WithDefaults()
	return "web/" + t.Scope + "/" + t.FormName + "/index.html"
}

// DAV returns the connection part of the target.
func (t Target) DAV() DAV {
	return DAV{BaseURL: t.BaseURL, Username: t.Username, Password: t.Password}
}

// parentDirs returns every intermediate directory of p in creation order:
// "web/open/x/index.html" gives web, web/open, web/open/x.
func parentDirs(p string) []string {
	segments := strings.Split(strings.Trim(p, "/"), "/")
	if len(segments) < 2 {
		return nil
	}
	dirs := make([]string, 0, len(segments)-1)
	current := ""
	for _, seg := range segments[:len(segments)-1] {
		if seg == "" {
			continue
		}
		if current == "" {
			current = seg
		} else {
			current += "/" + seg
		}
		dirs = append(dirs, current)
	}
	return dirs
}
