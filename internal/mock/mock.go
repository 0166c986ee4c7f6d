// Package mock builds a semantic schema from one example JSON document
// and synthesizes batches of records conforming to it. The example's
// shape is the contract: every generated record is structurally
// isomorphic to the example, with scalar leaves replaced by fresh values
// consistent with their inferred tags.
package mock

import (
	"fmt"
	"math/rand"
	"regexp"

	"jsonspect/internal/classifier"
	"jsonspect/internal/config"
	"jsonspect/internal/errors"
	"jsonspect/internal/models"
	"jsonspect/internal/synth"
)

// arrayTokenRegex matches explicit array type tokens like "array<string>".
var arrayTokenRegex = regexp.MustCompile(`^array<(.+)>$`)

// BuildSchema infers the schema of an example document in a single
// recursive pass. Leaf strings naming a known tag ("email", "integer",
// "array<string>", ...) are honored as declared types rather than example
// values, so a document of type tokens works as a schema by itself.
func BuildSchema(example models.Value) *models.SchemaNode {
	return buildNode("", example)
}

func buildNode(fieldName string, v models.Value) *models.SchemaNode {
	switch val := v.(type) {
	case models.Object:
		node := &models.SchemaNode{Kind: models.KindObject, FieldName: fieldName, Tag: models.TagObject}
		for _, m := range val {
			node.Children = append(node.Children, buildNode(m.Key, m.Value))
		}
		return node
	case models.Array:
		node := &models.SchemaNode{Kind: models.KindArray, FieldName: fieldName, Tag: models.TagArray, Length: len(val)}
		if len(val) == 0 {
			// Empty arrays default their element schema to string.
			node.Children = []*models.SchemaNode{{Kind: models.KindScalar, Tag: models.TagString}}
			return node
		}
		// The first element is the template; the parent's field name
		// carries through so name rules still apply to elements.
		node.Children = []*models.SchemaNode{buildNode(fieldName, val[0])}
		return node
	case string:
		if node, ok := declaredNode(fieldName, val); ok {
			return node
		}
		return &models.SchemaNode{Kind: models.KindScalar, FieldName: fieldName, Tag: classifier.Classify(fieldName, val), Example: val}
	default:
		return &models.SchemaNode{Kind: models.KindScalar, FieldName: fieldName, Tag: classifier.Classify(fieldName, val), Example: val}
	}
}

// declaredNode recognizes explicit type tokens used as leaf values.
func declaredNode(fieldName, token string) (*models.SchemaNode, bool) {
	if tag, ok := models.ParseScalarTag(token); ok {
		return &models.SchemaNode{Kind: models.KindScalar, FieldName: fieldName, Tag: tag}, true
	}
	if m := arrayTokenRegex.FindStringSubmatch(token); m != nil {
		inner, ok := declaredNode(fieldName, m[1])
		if !ok {
			inner = &models.SchemaNode{Kind: models.KindScalar, FieldName: fieldName, Tag: models.TagString}
		}
		return &models.SchemaNode{
			Kind:      models.KindArray,
			FieldName: fieldName,
			Tag:       models.TagArray,
			Children:  []*models.SchemaNode{inner},
		}, true
	}
	return nil, false
}

// Describe renders a schema as a document of type tokens, mirroring the
// shape of the example it came from. A root-level array of objects is
// described by its element, since the element schema is what callers
// care about.
func Describe(root *models.SchemaNode) models.Value {
	if root.Kind == models.KindArray {
		if el := root.Element(); el != nil && el.Kind == models.KindObject {
			return describe(el)
		}
	}
	return describe(root)
}

func describe(n *models.SchemaNode) models.Value {
	switch n.Kind {
	case models.KindObject:
		obj := make(models.Object, 0, len(n.Children))
		for _, child := range n.Children {
			obj = append(obj, models.Member{Key: child.FieldName, Value: describe(child)})
		}
		return obj
	case models.KindArray:
		el := n.Element()
		if el.Kind == models.KindScalar {
			return fmt.Sprintf("array<%s>", el.Tag)
		}
		return models.Array{describe(el)}
	default:
		return string(n.Tag)
	}
}

// Generator assembles synthetic records from inferred schemas
type Generator struct {
	synth *synth.Synthesizer
	cfg   config.MockConfig
}

// NewGenerator creates a Generator with its own random source
func NewGenerator(rng *rand.Rand, cfg config.MockConfig) *Generator {
	return &Generator{synth: synth.New(rng, cfg), cfg: cfg}
}

// Generate produces count records shaped like the example. The records
// are independently synthesized; no two are guaranteed distinct.
func Generate(example models.Value, count int, rng *rand.Rand, cfg config.MockConfig) ([]models.Value, error) {
	return NewGenerator(rng, cfg).Generate(example, count)
}

// Generate produces count records shaped like example
func (g *Generator) Generate(example models.Value, count int) ([]models.Value, error) {
	if count < 1 {
		return nil, errors.NewMockError("record count must be at least 1", errors.ErrCountNotPositive)
	}
	if count > g.cfg.MaxRecords {
		return nil, errors.NewMockError(
			fmt.Sprintf("record count %d exceeds the maximum of %d", count, g.cfg.MaxRecords),
			errors.ErrCountTooLarge,
		)
	}

	schema := BuildSchema(example)
	records := make([]models.Value, count)
	for i := range records {
		records[i] = g.FromSchema(schema)
	}
	return records, nil
}

// FromSchema synthesizes one record conforming to the schema
func (g *Generator) FromSchema(n *models.SchemaNode) models.Value {
	switch n.Kind {
	case models.KindObject:
		obj := make(models.Object, 0, len(n.Children))
		for _, child := range n.Children {
			obj = append(obj, models.Member{Key: child.FieldName, Value: g.FromSchema(child)})
		}
		return obj
	case models.KindArray:
		length := g.arrayLength(n.Length)
		arr := make(models.Array, length)
		el := n.Element()
		for i := range arr {
			arr[i] = g.FromSchema(el)
		}
		return arr
	default:
		return g.synth.Value(n.Tag, n.Example)
	}
}

// arrayLength picks a synthesized array length: 1..EmptyArrayMax for
// arrays whose example was empty, the original length +/- jitter
// otherwise, never below 1.
func (g *Generator) arrayLength(original int) int {
	rng := g.synth.Rand()
	if original == 0 {
		span := g.cfg.EmptyArrayMax - g.cfg.EmptyArrayMin + 1
		return g.cfg.EmptyArrayMin + rng.Intn(span)
	}
	if g.cfg.ArrayJitter == 0 {
		return original
	}
	length := original + rng.Intn(2*g.cfg.ArrayJitter+1) - g.cfg.ArrayJitter
	if length < 1 {
		length = 1
	}
	return length
}
