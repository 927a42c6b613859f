package model

import "strings"

const nameFragmentLength = 6

// Message keys looked up through the Translator. The Dutch literals in
// defaultMessages are used whenever no translation is available.
const (
	keyTextLabel           = "field_text_label"
	keyTextPlaceholder     = "field_text_placeholder"
	keyEmailLabel          = "field_email_label"
	keyEmailPlaceholder    = "field_email_placeholder"
	keyNumberLabel         = "field_number_label"
	keyNumberPlaceholder   = "field_number_placeholder"
	keyTextareaLabel       = "field_textarea_label"
	keyCheckboxLabel       = "field_checkbox_label"
	keySelectLabel         = "field_select_label"
	keySelectOptionA       = "field_select_option_a"
	keySelectOptionB       = "field_select_option_b"
	keyHiddenLabel         = "field_hidden_label"
	keySeedNameLabel       = "seed_name_label"
	keySeedNamePlaceholder = "seed_name_placeholder"
	keySeedEmailLabel      = "seed_email_label"
	keySeedDescLabel       = "seed_description_label"
)

var defaultMessages = map[string]string{
	keyTextLabel:           "Tekst",
	keyTextPlaceholder:     "Tekst",
	keyEmailLabel:          "E-mail",
	keyEmailPlaceholder:    "jij@voorbeeld.nl",
	keyNumberLabel:         "Nummer",
	keyNumberPlaceholder:   "0",
	keyTextareaLabel:       "Tekstvlak",
	keyCheckboxLabel:       "Akkoord",
	keySelectLabel:         "Selectie",
	keySelectOptionA:       "Optie A",
	keySelectOptionB:       "Optie B",
	keyHiddenLabel:         "Verborgen veld",
	keySeedNameLabel:       "Naam",
	keySeedNamePlaceholder: "Jouw naam",
	keySeedEmailLabel:      "E-mail",
	keySeedDescLabel:       "Omschrijving",
}

// Factory creates fields with type specific defaults.
type Factory struct {
	opts Options
}

// NewFactory creates a Factory with the supplied options.
func NewFactory(options Options) *Factory {
	opts := defaultOptions()
	if options.IDGenerator != nil {
		opts.IDGenerator = options.IDGenerator
	}
	opts.Translator = options.Translator
	opts.Locale = strings.TrimSpace(options.Locale)
	return &Factory{opts: opts}
}

// NewID returns a fresh identifier from the configured generator.
func (f *Factory) NewID() string {
	return f.opts.IDGenerator()
}

// New returns a field of type t with a fresh id. Types outside the
// enumeration degrade to a plain text field instead of failing.
func (f *Factory) New(t FieldType) Field {
	id := f.NewID()
	fragment := idFragment(id)

	switch t {
	case FieldTypeText:
		return Field{ID: id, Type: t, Label: f.message(keyTextLabel), Name: "field_" + fragment, Placeholder: f.message(keyTextPlaceholder)}
	case FieldTypeEmail:
		return Field{ID: id, Type: t, Label: f.message(keyEmailLabel), Name: "email_" + fragment, Placeholder: f.message(keyEmailPlaceholder)}
	case FieldTypeNumber:
		return Field{ID: id, Type: t, Label: f.message(keyNumberLabel), Name: "number_" + fragment, Placeholder: f.message(keyNumberPlaceholder)}
	case FieldTypeTextarea:
		return Field{ID: id, Type: t, Label: f.message(keyTextareaLabel), Name: "textarea_" + fragment, Rows: DefaultTextareaRows}
	case FieldTypeCheckbox:
		return Field{ID: id, Type: t, Label: f.message(keyCheckboxLabel), Name: "checkbox_" + fragment, DefaultChecked: false}
	case FieldTypeSelect:
		return Field{
			ID:      id,
			Type:    t,
			Label:   f.message(keySelectLabel),
			Name:    "select_" + fragment,
			Options: []string{f.message(keySelectOptionA), f.message(keySelectOptionB)},
		}
	case FieldTypeHidden:
		return Field{ID: id, Type: t, Label: f.message(keyHiddenLabel), Name: "hidden_" + fragment, Hidden: true, DefaultValue: StringPtr("")}
	default:
		return Field{ID: id, Type: FieldTypeText, Label: f.message(keyTextLabel), Name: "f_" + fragment}
	}
}

// Seed returns the three fields a fresh builder session starts with.
func (f *Factory) Seed() []Field {
	return []Field{
		{ID: f.NewID(), Type: FieldTypeText, Label: f.message(keySeedNameLabel), Name: "name", Required: true, Placeholder: f.message(keySeedNamePlaceholder)},
		{ID: f.NewID(), Type: FieldTypeEmail, Label: f.message(keySeedEmailLabel), Name: "email", Required: true, Placeholder: f.message(keyEmailPlaceholder)},
		{ID: f.NewID(), Type: FieldTypeTextarea, Label: f.message(keySeedDescLabel), Name: "description", Rows: DefaultTextareaRows},
	}
}

// EnsureIDs assigns fresh ids to fields loaded without one.
func (f *Factory) EnsureIDs(fields []Field) []Field {
	out := CloneFields(fields)
	for i := range out {
		if strings.TrimSpace(out[i].ID) == "" {
			out[i].ID = f.NewID()
		}
	}
	return out
}

func (f *Factory) message(key string) string {
	fallback := defaultMessages[key]
	if f.opts.Translator == nil {
		return fallback
	}
	msg, err := f.opts.Translator.Translate(f.opts.Locale, key)
	if err != nil || strings.TrimSpace(msg) == "" {
		return fallback
	}
	return msg
}

func idFragment(id string) string {
	if len(id) <= nameFragmentLength {
		return id
	}
	return id[:nameFragmentLength]
}
