package render

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ScriptJSON serializes value as a JavaScript literal that is safe to embed
// verbatim inside an inline <script> element. HTML escaping rewrites <, > and
// & as \u escapes and the encoder always escapes U+2028 and
// U+2029, so the output can not close the script element or open an HTML
// comment. Map keys are sorted; struct fields keep declaration order.
func ScriptJSON(value any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(true)
	if err := enc.Encode(value); err != nil {
		return "", fmt.Errorf("render: script json: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// MustScriptJSON panics when value cannot be serialized.
func MustScriptJSON(value any) string {
	out, err := ScriptJSON(value)
	if err != nil {
		panic(err)
	}
	return out
}
