package core

import (
	_ "embed"
	"encoding/json"
	"regexp"
	"strings"
)

//go:embed runtime_helpers.js
var RuntimeHelpers string

// The bundler may rename the helper binding or call it through (0, name), so
// any callee is accepted.
var keepAlivePattern = regexp.MustCompile(`(?:\(\s*0\s*,\s*[A-Za-z_$][\w$.]*\s*\)|[A-Za-z_$][\w$.]*)\(\s*\{\s*\}\s*,\s*\[\s*(?:"to-remove"|'to-remove')\s*\]\s*\)\s*;?`)

// StyleLiteral renders the runtime pair consumed by the style-aware helper.
func StyleLiteral(rec ExtractionRecord) string {
	css, err := json.Marshal(rec.StyleText)
	if err != nil {
		css = []byte(`""`)
	}
	return "['" + rec.PlaceholderID + "', " + string(css) + "]"
}

// FinalizeArtifact resolves every placeholder marker in text, strips the
// keep-alive scaffolding and prepends the runtime helpers.
func FinalizeArtifact(text string, records []ExtractionRecord) string {
	for _, rec := range records {
		if rec.PlaceholderMarker == "" {
			continue
		}
		literal := StyleLiteral(rec)
		text = strings.ReplaceAll(text, rec.PlaceholderMarker, literal)
		text = strings.ReplaceAll(text, strings.ReplaceAll(rec.PlaceholderMarker, "'", `"`), literal)
	}

	text = keepAlivePattern.ReplaceAllString(text, "")

	return RuntimeHelpers + "\n" + text
}
