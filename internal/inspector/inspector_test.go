package inspector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsonspect/internal/errors"
	"jsonspect/internal/models"
)

func TestFormat(t *testing.T) {
	formatted, value, err := Format(`{"b": 1, "a": {"c": true}}`)
	require.NoError(t, err)

	expected := "{\n" +
		"    \"b\": 1,\n" +
		"    \"a\": {\n" +
		"        \"c\": true\n" +
		"    }\n" +
		"}"
	assert.Equal(t, expected, formatted)

	obj, ok := value.(models.Object)
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, obj.Keys())
}

func TestFormatDoesNotEscapeHTML(t *testing.T) {
	formatted, _, err := Format(`{"schema": "array<string>", "note": "a < b && b > c"}`)
	require.NoError(t, err)
	assert.Contains(t, formatted, "array<string>")
	assert.Contains(t, formatted, "a < b && b > c")
	assert.NotContains(t, formatted, `\u003c`)
}

func TestFormatInvalid(t *testing.T) {
	_, _, err := Format("not json at all")
	assert.Error(t, err)

	_, _, err = Format("")
	assert.ErrorIs(t, err, errors.ErrEmptyInput)
}

func TestMarshalValue(t *testing.T) {
	out, err := MarshalValue(models.Object{
		{Key: "x", Value: "y"},
		{Key: "n", Value: nil},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"x":"y","n":null}`, out)

	out, err = MarshalValue(models.Object{{Key: "tags", Value: "array<string>"}})
	require.NoError(t, err)
	assert.Equal(t, `{"tags":"array<string>"}`, out)
}

func TestIsJSONRelated(t *testing.T) {
	related := []string{
		"What is the value of the name key?",
		"How many fields does this have?",
		"¿Cuántos campos tiene el objeto?",
		"describe la estructura",
		"Is this valid JSON?",
	}
	for _, q := range related {
		assert.True(t, IsJSONRelated(q), "expected %q to be JSON-related", q)
	}

	unrelated := []string{
		"tell me a joke",
		"what's the weather like",
		"",
	}
	for _, q := range unrelated {
		assert.False(t, IsJSONRelated(q), "expected %q to be off topic", q)
	}
}
