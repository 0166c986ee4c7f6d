package models

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// Value is a generic type to represent any JSON value.
// After parsing this is one of: nil, bool, string, json.Number, Object, Array.
// Synthesized values may additionally be int64 or float64.
type Value interface{}

// Member is a single key/value pair inside an Object.
type Member struct {
	Key   string
	Value Value
}

// Object represents a JSON object as an ordered sequence of members.
// A slice (rather than a map) keeps the first-seen key order from the
// source document, which generation and emission both depend on.
type Object []Member

// Array represents a JSON array.
type Array []Value

// Get returns the value for key and whether the key is present.
func (o Object) Get(key string) (Value, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Keys returns the object's keys in declaration order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

// MarshalJSON writes the object with its members in declaration order.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Tag is the inferred semantic type of a JSON position, beyond its raw
// JSON type. Scalar tags come from the classifier; array and object are
// structural and bypass scalar classification.
type Tag string

const (
	TagString   Tag = "string"
	TagInteger  Tag = "integer"
	TagNumber   Tag = "number"
	TagBoolean  Tag = "boolean"
	TagDate     Tag = "date"
	TagDatetime Tag = "datetime"
	TagEmail    Tag = "email"
	TagPhone    Tag = "phone"
	TagURL      Tag = "url"
	TagObjectID Tag = "objectId"
	TagArray    Tag = "array"
	TagObject   Tag = "object"
	TagNull     Tag = "null"
)

// scalarTags lists every tag a leaf position may carry. Used to recognize
// explicit type tokens in example documents ("email", "integer", ...).
var scalarTags = map[string]Tag{
	"string":   TagString,
	"integer":  TagInteger,
	"number":   TagNumber,
	"boolean":  TagBoolean,
	"date":     TagDate,
	"datetime": TagDatetime,
	"email":    TagEmail,
	"phone":    TagPhone,
	"url":      TagURL,
	"objectId": TagObjectID,
	"null":     TagNull,
}

// ParseScalarTag reports whether s names a scalar semantic tag.
func ParseScalarTag(s string) (Tag, bool) {
	t, ok := scalarTags[s]
	return t, ok
}

// Kind discriminates the three structural shapes a schema node can take.
type Kind int

const (
	KindScalar Kind = iota
	KindObject
	KindArray
)

// SchemaNode is a recursive description of one JSON position.
//
// Invariants: an array node has exactly one child (the element template);
// an object node's children are keyed by unique field names in first-seen
// order; a scalar node has no children and carries exactly one tag.
type SchemaNode struct {
	Kind      Kind
	FieldName string // set when nested under an object key
	Tag       Tag
	Children  []*SchemaNode
	Example   Value // scalar example value, nil for declared types
	Length    int   // array: element count in the example
}

// Element returns an array node's element template.
func (n *SchemaNode) Element() *SchemaNode {
	if n.Kind != KindArray || len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}
