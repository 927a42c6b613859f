package render

import (
	"errors"
	"strings"
)

// Translator resolves a message key for a locale. The go-i18n backed
// catalogue in pkg/i18n satisfies it, as does any map based stub.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler returns the string to use when key could not be
// translated. args carries a map with the "default" fallback when known.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// Translator was configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Message keys of the generated page.
const (
	KeyPageTitle       = "page_title"
	KeyPageSubmit      = "page_submit"
	KeyPageSuccess     = "page_success"
	KeyPageErrorPrefix = "page_error_prefix"
)

// PageMessages holds the user facing strings of a generated page.
type PageMessages struct {
	Title       string `json:"-"`
	Submit      string `json:"submit"`
	Success     string `json:"success"`
	ErrorPrefix string `json:"errorPrefix"`
}

// DefaultPageMessages returns the Dutch strings used when nothing else is
// configured.
func DefaultPageMessages() PageMessages {
	return PageMessages{
		Title:       "Formulier",
		Submit:      "Versturen",
		Success:     "Verzonden!",
		ErrorPrefix: "Fout bij verzenden: ",
	}
}

// LocalizePage resolves the page strings for opts. An explicit opts.Title
// wins over the translated title.
func LocalizePage(opts RenderOptions) PageMessages {
	defaults := DefaultPageMessages()
	locale := opts.ResolvedLocale()

	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	messages := PageMessages{
		Title:       translate(locale, KeyPageTitle, defaults.Title, opts.Translator, onMissing),
		Submit:      translate(locale, KeyPageSubmit, defaults.Submit, opts.Translator, onMissing),
		Success:     translate(locale, KeyPageSuccess, defaults.Success, opts.Translator, onMissing),
		ErrorPrefix: translate(locale, KeyPageErrorPrefix, defaults.ErrorPrefix, opts.Translator, onMissing),
	}
	if title := strings.TrimSpace(opts.Title); title != "" {
		messages.Title = title
	}
	return messages
}

// Translate looks key up with fallback semantics shared by every renderer:
// a missing translator or message routes through onMissing, which defaults
// to returning fallback (or the key when fallback is blank).
func Translate(t Translator, locale, key, fallback string, onMissing MissingTranslationHandler) string {
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	return translate(locale, key, fallback, t, onMissing)
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	args := []any{map[string]any{"default": fallback}}
	if t == nil {
		return onMissing(locale, key, args, ErrMissingTranslator)
	}

	result, err := t.Translate(locale, key)
	if err == nil && result != "" {
		return result
	}
	return onMissing(locale, key, args, err)
}

func missingTranslationDefault(_ string, key string, args []any, _ error) string {
	if fallback := fallbackFromArgs(args); fallback != "" {
		return fallback
	}
	return key
}

func fallbackFromArgs(args []any) string {
	for _, arg := range args {
		values, ok := arg.(map[string]any)
		if !ok {
			continue
		}
		if str, ok := values["default"].(string); ok && str != "" {
			return str
		}
	}
	return ""
}
