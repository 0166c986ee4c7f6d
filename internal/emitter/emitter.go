// Package emitter renders an inferred schema as typed declarations for
// one of three target languages. Emission is a deterministic walk of the
// schema tree: identical schemas always produce byte-identical output.
package emitter

import (
	"fmt"
	"regexp"

	"github.com/iancoleman/strcase"

	"jsonspect/internal/errors"
	"jsonspect/internal/models"
)

// Language selects an emission target
type Language string

const (
	LangPython     Language = "python"
	LangGo         Language = "go"
	LangTypeScript Language = "typescript"
)

// ParseLanguage validates a target language name
func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case LangPython, LangGo, LangTypeScript:
		return Language(s), nil
	}
	return "", errors.NewEmitError(fmt.Sprintf("unsupported target language '%s'", s), errors.ErrUnknownLanguage)
}

// Emitter generates type declarations from schema trees
type Emitter struct {
	// Package names the package clause of Go output.
	Package string
}

// New creates an Emitter with default settings
func New() *Emitter {
	return &Emitter{Package: "main"}
}

// Emit renders the schema as declarations in the target language. The
// root type is named rootName; anonymous nested objects are named by
// concatenating the parent type and field names.
func (e *Emitter) Emit(root *models.SchemaNode, lang Language, rootName string) (string, error) {
	if root == nil {
		return "", errors.NewEmitError("schema is empty", nil)
	}
	if rootName == "" {
		rootName = "RootType"
	}
	rootName = typeName(rootName)

	switch lang {
	case LangGo:
		return e.emitGo(root, rootName)
	case LangPython:
		return e.emitPython(root, rootName)
	case LangTypeScript:
		return e.emitTypeScript(root, rootName)
	default:
		return "", errors.NewEmitError(fmt.Sprintf("unsupported target language '%s'", lang), errors.ErrUnknownLanguage)
	}
}

var identRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// typeName converts an arbitrary name to a PascalCase type identifier.
func typeName(name string) string {
	n := strcase.ToCamel(name)
	if n == "" {
		return "Field"
	}
	return n
}

// namer hands out unique type names for nested objects. A second object
// landing on an already-used name gets a numeric suffix, mirroring how
// duplicate struct names are disambiguated during analysis.
type namer struct {
	used map[string]int
}

func newNamer() *namer {
	return &namer{used: make(map[string]int)}
}

func (n *namer) unique(base string) string {
	count := n.used[base]
	n.used[base] = count + 1
	if count == 0 {
		return base
	}
	return fmt.Sprintf("%s%d", base, count)
}
