// Package config loads the formbuilder configuration: a YAML file layered
// over defaults, then environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/internal/logging"
	"github.com/goliatone/go-formbuilder/pkg/license"
	"github.com/goliatone/go-formbuilder/pkg/publish"
	"github.com/goliatone/go-formbuilder/pkg/webhook"
)

const (
	DefaultAddr       = ":8080"
	DefaultLogLevel   = "info"
	DefaultLocale     = "nl"
	DefaultWebhookURL = "https://example.com/webhook"
	DefaultBaseURL    = "https://yourtopdesk.example.com"
	DefaultAppURL     = "http://localhost:8080"
)

// Environment variables read by Load.
const (
	EnvMollieAPIKey = "MOLLIE_API_KEY"
	EnvAppURL       = "APP_URL"
	EnvAddr         = "FORMBUILDER_ADDR"
	EnvLogLevel     = "LOG_LEVEL"
)

type Config struct {
	Addr     string `yaml:"addr"`
	LogLevel string `yaml:"logLevel"`
	Locale   string `yaml:"locale"`
	// LocalesDir adds or overrides message files (active.<lang>.toml).
	LocalesDir string `yaml:"localesDir,omitempty"`
	// FieldsFile seeds the builder instead of the default fields.
	FieldsFile string `yaml:"fieldsFile,omitempty"`
	// HTTPTimeout bounds outbound calls. Zero means no timeout.
	HTTPTimeout time.Duration `yaml:"httpTimeout,omitempty"`
	// WriteTimeout bounds writing a server response. Zero means none, so a
	// long upload behind /api/upload is never cut off.
	WriteTimeout time.Duration `yaml:"writeTimeout,omitempty"`
	// SanitizeText strips markup from labels, placeholders and options
	// entered in the builder. Names and default values are never touched.
	SanitizeText bool `yaml:"sanitizeText,omitempty"`

	Webhook  webhook.Config `yaml:"webhook"`
	Publish  publish.Target `yaml:"publish"`
	Purchase license.Config `yaml:"purchase"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Addr:     DefaultAddr,
		LogLevel: DefaultLogLevel,
		Locale:   DefaultLocale,
		Webhook:  webhook.Config{WebhookURL: DefaultWebhookURL},
		Publish: publish.Target{
			BaseURL:  DefaultBaseURL,
			Scope:    publish.DefaultScope,
			FormName: publish.DefaultFormName,
		},
		Purchase: license.DefaultConfig(DefaultAppURL),
	}
}

// Load reads path (optional) over Default and applies environment overrides.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, os.Getenv)
}

// LoadWithEnv is Load with an explicit environment lookup.
func LoadWithEnv(path string, getenv func(string) string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := decode(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	if getenv != nil {
		applyEnv(&cfg, getenv)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvMollieAPIKey)); v != "" {
		cfg.Purchase.APIKey = v
	}
	if v := strings.TrimSpace(getenv(EnvAppURL)); v != "" {
		cfg.Purchase.AppURL = v
	}
	if v := strings.TrimSpace(getenv(EnvAddr)); v != "" {
		cfg.Addr = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}
}

// Validate rejects unknown log levels, unknown scopes and malformed
// amounts.
func (c Config) Validate() error {
	var errs []error
	if !logging.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("logLevel %q must be one of %s", c.LogLevel, strings.Join(logging.Levels, ", ")))
	}
	if c.Publish.Scope != "" && !validScope(c.Publish.Scope) {
		errs = append(errs, fmt.Errorf("publish.scope %q must be one of %s", c.Publish.Scope, strings.Join(publish.Scopes(), ", ")))
	}
	if c.Purchase.Amount != "" && !license.ValidAmount(c.Purchase.Amount) {
		errs = append(errs, fmt.Errorf("purchase.amount %q must look like 49.00", c.Purchase.Amount))
	}
	if c.HTTPTimeout < 0 {
		errs = append(errs, fmt.Errorf("httpTimeout must not be negative"))
	}
	if c.WriteTimeout < 0 {
		errs = append(errs, fmt.Errorf("writeTimeout must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

func validScope(scope string) bool {
	for _, s := range publish.Scopes() {
		if s == scope {
			return true
		}
	}
	return false
}
