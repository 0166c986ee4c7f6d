// Package inspector provides the document-level operations of the tool:
// validation with pretty-printing, deep comparison of two documents, and
// the keyword gate deciding whether a question is about JSON at all.
package inspector

import (
	"bytes"
	"strings"

	json "github.com/goccy/go-json"

	"jsonspect/internal/errors"
	"jsonspect/internal/models"
	"jsonspect/internal/parser"
)

// Format validates a JSON string and returns it pretty-printed with
// 4-space indentation, together with the parsed value. Key order is
// preserved from the input.
func Format(jsonStr string) (string, models.Value, error) {
	value, err := parser.ParseString(jsonStr)
	if err != nil {
		return "", nil, err
	}
	formatted, err := encode(value, "    ")
	if err != nil {
		return "", nil, errors.NewOutputError("failed to render formatted JSON", err)
	}
	return formatted, value, nil
}

// MarshalValue renders a value tree as compact JSON.
func MarshalValue(v models.Value) (string, error) {
	data, err := encode(v, "")
	if err != nil {
		return "", errors.NewOutputError("failed to render JSON", err)
	}
	return data, nil
}

// encode renders JSON without HTML escaping, so tokens like
// "array<string>" survive verbatim.
func encode(v models.Value, indent string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	// Encode appends a trailing newline.
	return strings.TrimRight(buf.String(), "\n"), nil
}

// jsonKeywords gates AI questions: a question mentioning none of these is
// assumed to be off topic. Spanish terms sit alongside English ones so the
// gate works for both audiences.
var jsonKeywords = []string{
	"json", "campo", "clave", "valor", "estructura", "propiedad", "elemento", "objeto",
	"field", "key", "value", "structure", "property", "element", "object",
}

// IsJSONRelated reports whether a question appears to be about a JSON
// document. Case-insensitive keyword match.
func IsJSONRelated(question string) bool {
	q := strings.ToLower(question)
	for _, kw := range jsonKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}
