package emitter

import (
	"bytes"
	"fmt"

	"jsonspect/internal/models"
)

type tsField struct {
	key     string
	typeStr string
}

type tsInterface struct {
	name   string
	fields []tsField
}

// tsEmit collects interfaces in discovery order; TypeScript hoists
// declarations, so parents can precede the nested interfaces they use.
type tsEmit struct {
	names      *namer
	interfaces []*tsInterface
}

func (e *Emitter) emitTypeScript(root *models.SchemaNode, rootName string) (string, error) {
	t := &tsEmit{names: newNamer()}

	var alias string
	switch root.Kind {
	case models.KindObject:
		t.defineInterface(root, rootName)
	case models.KindArray:
		elemType := t.typeOf(root.Element(), rootName+"Item")
		alias = fmt.Sprintf("export type %s = %s[];\n", rootName, elemType)
	default:
		t.interfaces = append(t.interfaces, &tsInterface{
			name:   t.names.unique(rootName),
			fields: []tsField{{key: "value", typeStr: scalarTSType(root.Tag)}},
		})
	}

	var buf bytes.Buffer
	if alias != "" {
		buf.WriteString(alias)
		if len(t.interfaces) > 0 {
			buf.WriteString("\n")
		}
	}
	for i, iface := range t.interfaces {
		if i > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "export interface %s {\n", iface.name)
		for _, f := range iface.fields {
			fmt.Fprintf(&buf, "  %s: %s;\n", tsKey(f.key), f.typeStr)
		}
		buf.WriteString("}\n")
	}
	return buf.String(), nil
}

func (t *tsEmit) defineInterface(n *models.SchemaNode, suggested string) string {
	name := t.names.unique(suggested)
	iface := &tsInterface{name: name}
	t.interfaces = append(t.interfaces, iface)
	for _, child := range n.Children {
		iface.fields = append(iface.fields, tsField{
			key:     child.FieldName,
			typeStr: t.typeOf(child, name+typeName(child.FieldName)),
		})
	}
	return name
}

func (t *tsEmit) typeOf(n *models.SchemaNode, suggested string) string {
	switch n.Kind {
	case models.KindObject:
		return t.defineInterface(n, suggested)
	case models.KindArray:
		elemType := t.typeOf(n.Element(), suggested)
		return elemType + "[]"
	default:
		return scalarTSType(n.Tag)
	}
}

func scalarTSType(tag models.Tag) string {
	switch tag {
	case models.TagInteger, models.TagNumber:
		return "number"
	case models.TagBoolean:
		return "boolean"
	case models.TagNull:
		return "null"
	default:
		// string, date, datetime, email, phone, url, objectId all travel
		// as strings on the wire.
		return "string"
	}
}

// tsKey quotes object keys that are not valid identifiers.
func tsKey(key string) string {
	if identRegex.MatchString(key) {
		return key
	}
	return fmt.Sprintf("%q", key)
}
