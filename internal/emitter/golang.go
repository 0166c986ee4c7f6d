package emitter

import (
	"bytes"
	"fmt"
	"go/format"

	"jsonspect/internal/errors"
	"jsonspect/internal/models"
)

type goField struct {
	name    string
	typeStr string
	tag     string
}

type goStruct struct {
	name   string
	fields []goField
}

// goEmit walks the schema collecting struct definitions in discovery
// order (parents before children) and renders them gofmt-formatted.
type goEmit struct {
	names   *namer
	structs []*goStruct
	imports map[string]struct{}
}

func (e *Emitter) emitGo(root *models.SchemaNode, rootName string) (string, error) {
	g := &goEmit{names: newNamer(), imports: make(map[string]struct{})}

	var rootDecl string
	switch root.Kind {
	case models.KindObject:
		g.defineStruct(root, rootName)
	case models.KindArray:
		elemType := g.typeOf(root.Element(), rootName+"Item")
		rootDecl = fmt.Sprintf("type %s []%s\n", rootName, elemType)
	default:
		// A scalar root gets wrapped so the output declares a named type.
		g.structs = append(g.structs, &goStruct{
			name: g.names.unique(rootName),
			fields: []goField{{
				name:    "Value",
				typeStr: g.scalarType(root.Tag),
				tag:     "`json:\"value\"`",
			}},
		})
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "package %s\n\n", e.Package)
	if len(g.imports) > 0 {
		buf.WriteString("import (\n")
		// Only the time package ever lands here, so no sorting pass is
		// needed to stay deterministic.
		for imp := range g.imports {
			fmt.Fprintf(&buf, "\t%q\n", imp)
		}
		buf.WriteString(")\n\n")
	}
	if rootDecl != "" {
		buf.WriteString(rootDecl)
		if len(g.structs) > 0 {
			buf.WriteString("\n")
		}
	}
	for i, s := range g.structs {
		if i > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "type %s struct {\n", s.name)
		for _, f := range s.fields {
			fmt.Fprintf(&buf, "\t%s %s %s\n", f.name, f.typeStr, f.tag)
		}
		buf.WriteString("}\n")
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return "", errors.NewEmitError("generated Go code failed to format", err)
	}
	return string(formatted), nil
}

// defineStruct registers a struct for an object node and returns its name.
func (g *goEmit) defineStruct(n *models.SchemaNode, suggested string) string {
	name := g.names.unique(suggested)
	s := &goStruct{name: name}
	g.structs = append(g.structs, s)
	for _, child := range n.Children {
		fieldName := typeName(child.FieldName)
		s.fields = append(s.fields, goField{
			name:    fieldName,
			typeStr: g.fieldType(child, name+fieldName),
			tag:     fmt.Sprintf("`json:%q`", child.FieldName),
		})
	}
	return name
}

// fieldType renders the type of a struct field, pointering nested
// objects so null examples stay representable.
func (g *goEmit) fieldType(n *models.SchemaNode, suggested string) string {
	if n.Kind == models.KindObject {
		return "*" + g.defineStruct(n, suggested)
	}
	return g.typeOf(n, suggested)
}

func (g *goEmit) typeOf(n *models.SchemaNode, suggested string) string {
	switch n.Kind {
	case models.KindObject:
		return g.defineStruct(n, suggested)
	case models.KindArray:
		return "[]" + g.fieldType(n.Element(), suggested)
	default:
		return g.scalarType(n.Tag)
	}
}

func (g *goEmit) scalarType(tag models.Tag) string {
	switch tag {
	case models.TagInteger:
		return "int64"
	case models.TagNumber:
		return "float64"
	case models.TagBoolean:
		return "bool"
	case models.TagDate, models.TagDatetime:
		g.imports["time"] = struct{}{}
		return "time.Time"
	case models.TagNull:
		return "interface{}"
	default:
		// string, email, phone, url, objectId
		return "string"
	}
}
