package emitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsonspect/internal/errors"
	"jsonspect/internal/mock"
	"jsonspect/internal/models"
	"jsonspect/internal/parser"
)

func schemaFor(t *testing.T, doc string) *models.SchemaNode {
	t.Helper()
	v, err := parser.ParseString(doc)
	require.NoError(t, err)
	return mock.BuildSchema(v)
}

func TestParseLanguage(t *testing.T) {
	for _, s := range []string{"python", "go", "typescript"} {
		lang, err := ParseLanguage(s)
		require.NoError(t, err)
		assert.Equal(t, Language(s), lang)
	}

	_, err := ParseLanguage("rust")
	assert.ErrorIs(t, err, errors.ErrUnknownLanguage)
	_, err = ParseLanguage("")
	assert.ErrorIs(t, err, errors.ErrUnknownLanguage)
}

func TestEmitGoSimpleStruct(t *testing.T) {
	schema := schemaFor(t, `{"name": "Alice", "age": 30}`)
	out, err := New().Emit(schema, LangGo, "Person")
	require.NoError(t, err)

	expected := "package main\n\n" +
		"type Person struct {\n" +
		"\tName string `json:\"name\"`\n" +
		"\tAge  int64  `json:\"age\"`\n" +
		"}\n"
	assert.Equal(t, expected, out)
}

func TestEmitGoTimeImport(t *testing.T) {
	schema := schemaFor(t, `{"createdAt": "2024-01-01T10:00:00Z"}`)
	out, err := New().Emit(schema, LangGo, "Event")
	require.NoError(t, err)

	assert.Contains(t, out, `"time"`)
	assert.Contains(t, out, "CreatedAt time.Time `json:\"createdAt\"`")
}

func TestEmitGoNestedNaming(t *testing.T) {
	schema := schemaFor(t, `{"profile": {"address": {"city": "x"}}}`)
	out, err := New().Emit(schema, LangGo, "")
	require.NoError(t, err)

	assert.Contains(t, out, "type RootType struct")
	assert.Contains(t, out, "type RootTypeProfile struct")
	assert.Contains(t, out, "type RootTypeProfileAddress struct")
	assert.Contains(t, out, "Profile *RootTypeProfile")
	assert.Contains(t, out, "Address *RootTypeProfileAddress")
}

func TestEmitGoRootArray(t *testing.T) {
	schema := schemaFor(t, `[{"name": "x"}]`)
	out, err := New().Emit(schema, LangGo, "User")
	require.NoError(t, err)

	assert.Contains(t, out, "type User []UserItem")
	assert.Contains(t, out, "type UserItem struct")
}

func TestEmitGoCustomPackage(t *testing.T) {
	em := New()
	em.Package = "types"
	out, err := em.Emit(schemaFor(t, `{"a": 1}`), LangGo, "Thing")
	require.NoError(t, err)
	assert.Contains(t, out, "package types\n")
}

func TestEmitPythonDataclasses(t *testing.T) {
	schema := schemaFor(t, `{"name": "Alice", "profile": {"phone": "+1234567890"}}`)
	out, err := New().Emit(schema, LangPython, "User")
	require.NoError(t, err)

	expected := "from dataclasses import dataclass\n" +
		"\n\n@dataclass\nclass UserProfile:\n    phone: str\n" +
		"\n\n@dataclass\nclass User:\n    name: str\n    profile: UserProfile\n"
	assert.Equal(t, expected, out)
}

func TestEmitPythonImports(t *testing.T) {
	schema := schemaFor(t, `{"when": "2024-01-01", "items": [1], "missing": null}`)
	out, err := New().Emit(schema, LangPython, "Record")
	require.NoError(t, err)

	assert.Contains(t, out, "from datetime import date\n")
	assert.Contains(t, out, "from typing import Any, List\n")
	assert.Contains(t, out, "when: date")
	assert.Contains(t, out, "items: List[int]")
	assert.Contains(t, out, "missing: Any")
}

func TestEmitPythonRootArray(t *testing.T) {
	out, err := New().Emit(schemaFor(t, `[{"name": "x"}]`), LangPython, "User")
	require.NoError(t, err)

	assert.Contains(t, out, "class UserItem:")
	assert.Contains(t, out, "User = List[UserItem]\n")
}

func TestEmitTypeScriptInterfaces(t *testing.T) {
	schema := schemaFor(t, `{"name": "Alice", "tags": ["x"], "profile": {"city": "a"}}`)
	out, err := New().Emit(schema, LangTypeScript, "Item")
	require.NoError(t, err)

	expected := "export interface Item {\n" +
		"  name: string;\n" +
		"  tags: string[];\n" +
		"  profile: ItemProfile;\n" +
		"}\n" +
		"\n" +
		"export interface ItemProfile {\n" +
		"  city: string;\n" +
		"}\n"
	assert.Equal(t, expected, out)
}

func TestEmitTypeScriptQuotesOddKeys(t *testing.T) {
	out, err := New().Emit(schemaFor(t, `{"first-name": "x"}`), LangTypeScript, "Person")
	require.NoError(t, err)
	assert.Contains(t, out, `"first-name": string;`)
}

func TestEmitTypeScriptRootArray(t *testing.T) {
	out, err := New().Emit(schemaFor(t, `[{"id": 1}]`), LangTypeScript, "Row")
	require.NoError(t, err)
	assert.Contains(t, out, "export type Row = RowItem[];\n")
	assert.Contains(t, out, "export interface RowItem {")
}

func TestEmitScalarRoot(t *testing.T) {
	out, err := New().Emit(schemaFor(t, `42`), LangGo, "Answer")
	require.NoError(t, err)
	assert.Contains(t, out, "type Answer struct")
	assert.Contains(t, out, "Value int64")
}

func TestEmitDeterministic(t *testing.T) {
	schema := schemaFor(t, `{
		"id": "5f7b5e9b2d5a7c1234567890",
		"createdAt": "2024-01-01T10:00:00Z",
		"profile": {"email": "a@b.com", "scores": [1.5]},
		"tags": ["x", "y"]
	}`)

	for _, lang := range []Language{LangGo, LangPython, LangTypeScript} {
		first, err := New().Emit(schema, lang, "Doc")
		require.NoError(t, err)
		second, err := New().Emit(schema, lang, "Doc")
		require.NoError(t, err)
		assert.Equal(t, first, second, "emission for %s must be byte-identical", lang)
	}
}

func TestEmitUnknownLanguage(t *testing.T) {
	_, err := New().Emit(schemaFor(t, `{"a": 1}`), Language("java"), "X")
	assert.ErrorIs(t, err, errors.ErrUnknownLanguage)
}

func TestEmitNilSchema(t *testing.T) {
	_, err := New().Emit(nil, LangGo, "X")
	assert.Error(t, err)
}

func TestNamerDisambiguates(t *testing.T) {
	n := newNamer()
	assert.Equal(t, "User", n.unique("User"))
	assert.Equal(t, "User1", n.unique("User"))
	assert.Equal(t, "User2", n.unique("User"))
}
