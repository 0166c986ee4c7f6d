package emitter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"

	"jsonspect/internal/models"
)

type pyField struct {
	name    string
	typeStr string
}

type pyClass struct {
	name   string
	fields []pyField
}

// pyEmit collects dataclasses in dependency order: nested classes are
// emitted before the classes that reference them, so the output runs
// without forward references.
type pyEmit struct {
	names   *namer
	classes []pyClass
	typing  map[string]struct{} // typing imports (List, Any)
	dates   map[string]struct{} // datetime imports (date, datetime)
}

func (e *Emitter) emitPython(root *models.SchemaNode, rootName string) (string, error) {
	p := &pyEmit{names: newNamer(), typing: make(map[string]struct{}), dates: make(map[string]struct{})}

	var alias string
	switch root.Kind {
	case models.KindObject:
		p.defineClass(root, rootName)
	case models.KindArray:
		elemType := p.typeOf(root.Element(), rootName+"Item")
		p.typing["List"] = struct{}{}
		alias = fmt.Sprintf("%s = List[%s]\n", rootName, elemType)
	default:
		p.classes = append(p.classes, pyClass{
			name:   p.names.unique(rootName),
			fields: []pyField{{name: "value", typeStr: p.scalarType(root.Tag)}},
		})
	}

	var buf bytes.Buffer
	buf.WriteString("from dataclasses import dataclass\n")
	if len(p.dates) > 0 {
		names := make([]string, 0, 2)
		// Fixed order keeps output byte-stable.
		for _, n := range []string{"date", "datetime"} {
			if _, ok := p.dates[n]; ok {
				names = append(names, n)
			}
		}
		fmt.Fprintf(&buf, "from datetime import %s\n", strings.Join(names, ", "))
	}
	if len(p.typing) > 0 {
		names := make([]string, 0, 2)
		for _, n := range []string{"Any", "List"} {
			if _, ok := p.typing[n]; ok {
				names = append(names, n)
			}
		}
		fmt.Fprintf(&buf, "from typing import %s\n", strings.Join(names, ", "))
	}

	for _, c := range p.classes {
		fmt.Fprintf(&buf, "\n\n@dataclass\nclass %s:\n", c.name)
		if len(c.fields) == 0 {
			buf.WriteString("    pass\n")
			continue
		}
		for _, f := range c.fields {
			fmt.Fprintf(&buf, "    %s: %s\n", f.name, f.typeStr)
		}
	}
	if alias != "" {
		buf.WriteString("\n\n")
		buf.WriteString(alias)
	}

	return buf.String(), nil
}

// defineClass registers a dataclass for an object node and returns its
// name. Children are resolved before the class is appended so dependency
// order falls out of the recursion.
func (p *pyEmit) defineClass(n *models.SchemaNode, suggested string) string {
	name := p.names.unique(suggested)
	c := pyClass{name: name}
	for _, child := range n.Children {
		c.fields = append(c.fields, pyField{
			name:    pyFieldName(child.FieldName),
			typeStr: p.typeOf(child, name+typeName(child.FieldName)),
		})
	}
	p.classes = append(p.classes, c)
	return name
}

func (p *pyEmit) typeOf(n *models.SchemaNode, suggested string) string {
	switch n.Kind {
	case models.KindObject:
		return p.defineClass(n, suggested)
	case models.KindArray:
		p.typing["List"] = struct{}{}
		return fmt.Sprintf("List[%s]", p.typeOf(n.Element(), suggested))
	default:
		return p.scalarType(n.Tag)
	}
}

func (p *pyEmit) scalarType(tag models.Tag) string {
	switch tag {
	case models.TagInteger:
		return "int"
	case models.TagNumber:
		return "float"
	case models.TagBoolean:
		return "bool"
	case models.TagDate:
		p.dates["date"] = struct{}{}
		return "date"
	case models.TagDatetime:
		p.dates["datetime"] = struct{}{}
		return "datetime"
	case models.TagNull:
		p.typing["Any"] = struct{}{}
		return "Any"
	default:
		return "str"
	}
}

// pyFieldName keeps field names verbatim when they are valid Python
// identifiers, falling back to snake_case otherwise so output stays
// syntactically valid.
func pyFieldName(key string) string {
	if identRegex.MatchString(key) {
		return key
	}
	snake := strcase.ToSnake(key)
	if identRegex.MatchString(snake) {
		return snake
	}
	return "field_" + strcase.ToSnake(key)
}
