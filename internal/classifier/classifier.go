package classifier

import (
	"regexp"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/iancoleman/strcase"

	"jsonspect/internal/models"
)

// Value-shape patterns. Ordered by specificity where it matters.
var (
	objectIDRegex = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)
	dateOnlyRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	rfc3339Regex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:?\d{2})?$`)
	dateTimeRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(\.\d+)?$`)
	emailRegex    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

// rule is one predicate->tag pair. Classification walks the rule list in
// order and the first match wins, which keeps the priority contract
// auditable: name-based rules sit above value-based rules, so a field
// named createdAt holding a plain string still classifies as datetime.
type rule struct {
	name  string
	match func(field, value string) bool
	tag   models.Tag
}

var stringRules = []rule{
	{
		name:  "email-field",
		match: func(field, _ string) bool { return strings.Contains(field, "email") },
		tag:   models.TagEmail,
	},
	{
		name: "phone-field",
		match: func(field, _ string) bool {
			return strings.Contains(field, "phone") || strings.Contains(field, "tel")
		},
		tag: models.TagPhone,
	},
	{
		name: "url-field",
		match: func(field, _ string) bool {
			return strings.Contains(field, "url") || strings.Contains(field, "link") || strings.Contains(field, "website")
		},
		tag: models.TagURL,
	},
	{
		name: "id-field-hex-value",
		match: func(field, value string) bool {
			return strings.HasSuffix(field, "id") && objectIDRegex.MatchString(value)
		},
		tag: models.TagObjectID,
	},
	{
		name: "temporal-field-date-value",
		match: func(field, value string) bool {
			return isTemporalField(field) && dateOnlyRegex.MatchString(value)
		},
		tag: models.TagDate,
	},
	{
		name: "date-field-no-time",
		match: func(field, value string) bool {
			return strings.Contains(field, "date") && !hasTimeOfDay(value)
		},
		tag: models.TagDate,
	},
	{
		name:  "temporal-field",
		match: func(field, _ string) bool { return isTemporalField(field) },
		tag:   models.TagDatetime,
	},
	{
		name:  "date-value",
		match: func(_, value string) bool { return dateOnlyRegex.MatchString(value) },
		tag:   models.TagDate,
	},
	{
		name: "datetime-value",
		match: func(_, value string) bool {
			return rfc3339Regex.MatchString(value) || dateTimeRegex.MatchString(value)
		},
		tag: models.TagDatetime,
	},
	{
		name:  "email-value",
		match: func(_, value string) bool { return emailRegex.MatchString(value) },
		tag:   models.TagEmail,
	},
	{
		name: "url-value",
		match: func(_, value string) bool {
			return strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://")
		},
		tag: models.TagURL,
	},
	{
		name:  "objectid-value",
		match: func(_, value string) bool { return objectIDRegex.MatchString(value) },
		tag:   models.TagObjectID,
	},
}

// Classify assigns a semantic type tag to a scalar leaf from its field
// name and example value. It is a pure function: identical inputs always
// yield the same tag, and unrecognized input degrades to string rather
// than erroring.
func Classify(fieldName string, example models.Value) models.Tag {
	switch v := example.(type) {
	case nil:
		return models.TagNull
	case bool:
		return models.TagBoolean
	case json.Number:
		if _, err := v.Int64(); err == nil {
			return models.TagInteger
		}
		return models.TagNumber
	case int, int32, int64:
		return models.TagInteger
	case float32:
		return models.TagNumber
	case float64:
		// Synthesized or pre-decoded values arrive as float64; keep
		// integral ones tagged as integers.
		if v == float64(int64(v)) {
			return models.TagInteger
		}
		return models.TagNumber
	case string:
		return classifyString(fieldName, v)
	default:
		return models.TagString
	}
}

func classifyString(fieldName, value string) models.Tag {
	field := normalizeField(fieldName)
	for _, r := range stringRules {
		if r.match(field, value) {
			return r.tag
		}
	}
	return models.TagString
}

// normalizeField lowercases a field name and breaks camelCase boundaries
// with underscores so suffix rules ("_at", "id") see createdAt and
// created_at the same way. Acronym runs collapse to one word, so
// imageURL normalizes to image_url.
func normalizeField(fieldName string) string {
	return strcase.ToSnake(fieldName)
}

// isTemporalField reports whether a normalized field name suggests a
// point in time.
func isTemporalField(field string) bool {
	return strings.Contains(field, "date") || strings.Contains(field, "time") ||
		strings.Contains(field, "created") || strings.Contains(field, "updated") ||
		strings.HasSuffix(field, "_at")
}

// hasTimeOfDay reports whether a string value carries a time-of-day
// component (anything beyond a bare calendar date).
func hasTimeOfDay(value string) bool {
	return strings.ContainsAny(value, "T:")
}
