package render

import "strings"

// TemplateI18nConfig configures template-level translation helpers.
type TemplateI18nConfig struct {
	// Locale is bound into the helpers so templates only pass keys.
	Locale string
	// FuncName customizes the translator helper name (defaults to "translate").
	FuncName string
	// Fallbacks provides per-key defaults used when the translator misses.
	Fallbacks map[string]string
	// OnMissing controls the string returned when a translation is missing.
	OnMissing MissingTranslationHandler
}

// TemplateI18nFuncs returns helpers suitable for a pongo2 context or global
// data map:
//
//	{{ translate("ui_add_field") }}
//	<html lang="{{ current_locale() }}">
func TemplateI18nFuncs(t Translator, cfg TemplateI18nConfig) map[string]any {
	translateName := strings.TrimSpace(cfg.FuncName)
	if translateName == "" {
		translateName = "translate"
	}

	onMissing := cfg.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	locale := strings.TrimSpace(cfg.Locale)
	if locale == "" {
		locale = DefaultLocale
	}

	return map[string]any{
		translateName: func(key string) string {
			return translate(locale, key, cfg.Fallbacks[strings.TrimSpace(key)], t, onMissing)
		},
		"current_locale": func() string {
			return locale
		},
	}
}
