package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// DefaultLanguage is the language every message exists in.
var DefaultLanguage = language.Dutch

//go:embed locales/*.toml
var embedded embed.FS

// ErrMessageNotFound is returned when no catalogue carries the key.
var ErrMessageNotFound = errors.New("i18n: message not found")

// Catalog resolves message ids to localized strings. It satisfies both
// render.Translator and model.Translator.
type Catalog struct {
	bundle *goi18n.Bundle

	mu         sync.Mutex
	localizers map[string]*goi18n.Localizer
}

// Option configures New.
type Option func(*options)

type options struct {
	dirs  []string
	files map[string][]byte
}

// WithDir loads every active.<lang>.toml file from dir on top of the embedded
// catalogues. Later files override earlier messages with the same id.
func WithDir(dir string) Option {
	return func(o *options) {
		if dir = strings.TrimSpace(dir); dir != "" {
			o.dirs = append(o.dirs, dir)
		}
	}
}

// WithMessageFile adds a single catalogue. name must follow the
// active.<lang>.toml convention so go-i18n can infer the language.
func WithMessageFile(name string, data []byte) Option {
	return func(o *options) {
		if o.files == nil {
			o.files = make(map[string][]byte)
		}
		o.files[name] = data
	}
}

// New builds a Catalog from the embedded nl and en catalogues plus any
// configured overrides.
func New(opts ...Option) (*Catalog, error) {
	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	bundle := goi18n.NewBundle(DefaultLanguage)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := fs.ReadDir(embedded, "locales")
	if err != nil {
		return nil, fmt.Errorf("i18n: read embedded locales: %w", err)
	}
	for _, entry := range entries {
		data, err := embedded.ReadFile(path.Join("locales", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", entry.Name(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, entry.Name()); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", entry.Name(), err)
		}
	}

	for _, dir := range cfg.dirs {
		files, err := filepath.Glob(filepath.Join(dir, "active.*.toml"))
		if err != nil {
			return nil, fmt.Errorf("i18n: read locales in %s: %w", dir, err)
		}
		sort.Strings(files)
		for _, file := range files {
			if _, err := bundle.LoadMessageFile(file); err != nil {
				return nil, fmt.Errorf("i18n: load %s: %w", file, err)
			}
		}
	}

	names := make([]string, 0, len(cfg.files))
	for name := range cfg.files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := bundle.ParseMessageFileBytes(cfg.files[name], name); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", name, err)
		}
	}

	return &Catalog{
		bundle:     bundle,
		localizers: make(map[string]*goi18n.Localizer),
	}, nil
}

// MustNew panics when the catalogue cannot be built.
func MustNew(opts ...Option) *Catalog {
	c, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Translate localizes key for locale. A single map[string]any argument is
// passed as template data ({{.Name}} in the catalogue). Unknown locales fall
// back to Dutch.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	if c == nil {
		return "", ErrMessageNotFound
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrMessageNotFound
	}

	cfg := &goi18n.LocalizeConfig{MessageID: key}
	if len(args) > 0 {
		if data, ok := args[0].(map[string]any); ok {
			cfg.TemplateData = data
		}
	}

	msg, err := c.localizer(locale).Localize(cfg)
	if msg != "" {
		return msg, nil
	}
	if err != nil {
		var notFound *goi18n.MessageNotFoundErr
		if errors.As(err, &notFound) {
			return "", fmt.Errorf("%w: %s", ErrMessageNotFound, key)
		}
		return "", fmt.Errorf("i18n: localize %s: %w", key, err)
	}
	return "", fmt.Errorf("%w: %s", ErrMessageNotFound, key)
}

// Message returns the localized key, or fallback when it is not found.
func (c *Catalog) Message(locale, key, fallback string) string {
	msg, err := c.Translate(locale, key)
	if err != nil {
		return fallback
	}
	return msg
}

// Languages returns the language tags with a catalogue, default first.
func (c *Catalog) Languages() []string {
	tags := c.bundle.LanguageTags()
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tag.String())
	}
	return out
}

// Supports reports whether locale matches a loaded catalogue exactly or by
// base language ("en-GB" matches "en").
func (c *Catalog) Supports(locale string) bool {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return false
	}
	base, _ := tag.Base()
	for _, candidate := range c.bundle.LanguageTags() {
		candidateBase, _ := candidate.Base()
		if candidate == tag || candidateBase == base {
			return true
		}
	}
	return false
}

func (c *Catalog) localizer(locale string) *goi18n.Localizer {
	locale = strings.TrimSpace(locale)

	c.mu.Lock()
	defer c.mu.Unlock()

	if l, ok := c.localizers[locale]; ok {
		return l
	}
	l := goi18n.NewLocalizer(c.bundle, locale, DefaultLanguage.String())
	c.localizers[locale] = l
	return l
}
