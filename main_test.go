package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsonspect/internal/config"
	"jsonspect/internal/errors"
)

func writeTempJSON(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	return path
}

func testContext() *Context {
	return &Context{cfg: config.NewConfig()}
}

func TestCLIGrammar(t *testing.T) {
	// Save original CLI state; each parse mutates the shared struct.
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	p, err := kong.New(&CLI, kong.Vars{"version": "test"})
	require.NoError(t, err)

	tests := []struct {
		args    []string
		command string
		check   func(t *testing.T)
	}{
		{args: []string{"fmt"}, command: "fmt"},
		{args: []string{"diff", "a.json", "b.json"}, command: "diff <a> <b>"},
		{args: []string{"mock", "-n", "5", "--seed", "42"}, command: "mock", check: func(t *testing.T) {
			assert.Equal(t, 5, CLI.Mock.Count)
			assert.Equal(t, int64(42), CLI.Mock.Seed)
		}},
		{args: []string{"schema"}, command: "schema"},
		{args: []string{"types", "-l", "python", "-r", "User"}, command: "types", check: func(t *testing.T) {
			assert.Equal(t, "python", CLI.Types.Language)
			assert.Equal(t, "User", CLI.Types.RootName)
		}},
		{args: []string{"ask", "what keys exist?"}, command: "ask <question>"},
		{args: []string{"serve"}, command: "serve"},
	}
	for _, tt := range tests {
		ctx, err := p.Parse(tt.args)
		require.NoError(t, err, "args: %v", tt.args)
		assert.Equal(t, tt.command, ctx.Command())
		// Field assertions must run before the next parse resets CLI.
		if tt.check != nil {
			tt.check(t)
		}
	}
}

func TestFmtCmd(t *testing.T) {
	input := writeTempJSON(t, `{"b": 1, "a": 2}`)
	output := filepath.Join(t.TempDir(), "out.json")

	cmd := &FmtCmd{Input: input, Output: output}
	require.NoError(t, cmd.Run(testContext()))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"b\": 1")
}

func TestFmtCmd_MissingFile(t *testing.T) {
	cmd := &FmtCmd{Input: filepath.Join(t.TempDir(), "nope.json")}
	err := cmd.Run(testContext())
	assert.ErrorIs(t, err, errors.ErrFileNotFound)
}

func TestMockCmd(t *testing.T) {
	input := writeTempJSON(t, `{"name": "Alice", "age": 30}`)
	output := filepath.Join(t.TempDir(), "out.json")

	cmd := &MockCmd{Input: input, Output: output, Count: 3, Seed: 42}
	require.NoError(t, cmd.Run(testContext()))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name"`)
	assert.Contains(t, string(data), `"age"`)
}

func TestMockCmd_CSV(t *testing.T) {
	input := writeTempJSON(t, `{"name": "Alice", "age": 30}`)
	output := filepath.Join(t.TempDir(), "out.csv")

	cmd := &MockCmd{Input: input, Output: output, Count: 2, CSV: true, Seed: 42}
	require.NoError(t, cmd.Run(testContext()))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name,age")
}

func TestMockCmd_BadCount(t *testing.T) {
	input := writeTempJSON(t, `{"a": 1}`)
	cmd := &MockCmd{Input: input, Count: 0, Seed: 1}
	err := cmd.Run(testContext())
	assert.ErrorIs(t, err, errors.ErrCountNotPositive)
}

func TestTypesCmd(t *testing.T) {
	input := writeTempJSON(t, `{"name": "Alice", "email": "a@b.com"}`)
	output := filepath.Join(t.TempDir(), "out.go")

	cmd := &TypesCmd{Input: input, Output: output, Language: "go", RootName: "User", Package: "models"}
	require.NoError(t, cmd.Run(testContext()))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "package models")
	assert.Contains(t, out, "type User struct")
	assert.Contains(t, out, "Email")
}

func TestTypesCmd_UnknownLanguage(t *testing.T) {
	cmd := &TypesCmd{Language: "rust"}
	err := cmd.Run(testContext())
	assert.ErrorIs(t, err, errors.ErrUnknownLanguage)
}

func TestSchemaCmd(t *testing.T) {
	input := writeTempJSON(t, `{"email": "a@b.com", "age": 30}`)
	output := filepath.Join(t.TempDir(), "schema.json")

	cmd := &SchemaCmd{Input: input, Output: output}
	require.NoError(t, cmd.Run(testContext()))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"email": "email"`)
	assert.Contains(t, string(data), `"age": "integer"`)
}

func TestSchemaCmd_ArrayToken(t *testing.T) {
	input := writeTempJSON(t, `{"tags": ["x", "y"]}`)
	output := filepath.Join(t.TempDir(), "schema.json")

	cmd := &SchemaCmd{Input: input, Output: output}
	require.NoError(t, cmd.Run(testContext()))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tags": "array<string>"`)
	assert.NotContains(t, string(data), `\u003c`)
}

func TestAskCmd_OffTopic(t *testing.T) {
	cmd := &AskCmd{Question: "tell me a joke"}
	err := cmd.Run(testContext())
	assert.ErrorIs(t, err, errors.ErrOffTopicQuestion)
}
