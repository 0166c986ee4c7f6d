package inspector

import (
	"fmt"

	json "github.com/goccy/go-json"

	"jsonspect/internal/models"
	"jsonspect/internal/parser"
)

// ValueChange records a scalar whose value differs between documents.
type ValueChange struct {
	OldValue models.Value `json:"old_value"`
	NewValue models.Value `json:"new_value"`
}

// TypeChange records a position whose JSON type differs between documents.
type TypeChange struct {
	OldType  string       `json:"old_type"`
	NewType  string       `json:"new_type"`
	OldValue models.Value `json:"old_value"`
	NewValue models.Value `json:"new_value"`
}

// DiffResult groups differences by category, keyed by paths of the form
// root['key'][index].
type DiffResult struct {
	TypeChanges      map[string]TypeChange   `json:"type_changes,omitempty"`
	ValuesChanged    map[string]ValueChange  `json:"values_changed,omitempty"`
	DictItemsAdded   []string                `json:"dictionary_item_added,omitempty"`
	DictItemsRemoved []string                `json:"dictionary_item_removed,omitempty"`
	ItemsAdded       map[string]models.Value `json:"iterable_item_added,omitempty"`
	ItemsRemoved     map[string]models.Value `json:"iterable_item_removed,omitempty"`
}

// Empty reports whether the two documents were identical.
func (d *DiffResult) Empty() bool {
	return len(d.TypeChanges) == 0 && len(d.ValuesChanged) == 0 &&
		len(d.DictItemsAdded) == 0 && len(d.DictItemsRemoved) == 0 &&
		len(d.ItemsAdded) == 0 && len(d.ItemsRemoved) == 0
}

// Compare parses two JSON strings and returns their structural
// differences. Both inputs must be valid JSON; parse failures surface
// before any comparison happens.
func Compare(jsonA, jsonB string) (*DiffResult, error) {
	a, err := parser.ParseString(jsonA)
	if err != nil {
		return nil, err
	}
	b, err := parser.ParseString(jsonB)
	if err != nil {
		return nil, err
	}

	result := &DiffResult{
		TypeChanges:   make(map[string]TypeChange),
		ValuesChanged: make(map[string]ValueChange),
		ItemsAdded:    make(map[string]models.Value),
		ItemsRemoved:  make(map[string]models.Value),
	}
	diffValue("root", a, b, result)
	return result, nil
}

func diffValue(path string, a, b models.Value, result *DiffResult) {
	ta, tb := pyTypeName(a), pyTypeName(b)
	if ta != tb {
		result.TypeChanges[path] = TypeChange{OldType: ta, NewType: tb, OldValue: a, NewValue: b}
		return
	}

	switch av := a.(type) {
	case models.Object:
		bv := b.(models.Object)
		for _, m := range av {
			childPath := fmt.Sprintf("%s['%s']", path, m.Key)
			if other, ok := bv.Get(m.Key); ok {
				diffValue(childPath, m.Value, other, result)
			} else {
				result.DictItemsRemoved = append(result.DictItemsRemoved, childPath)
			}
		}
		for _, m := range bv {
			if _, ok := av.Get(m.Key); !ok {
				result.DictItemsAdded = append(result.DictItemsAdded, fmt.Sprintf("%s['%s']", path, m.Key))
			}
		}
	case models.Array:
		bv := b.(models.Array)
		shared := len(av)
		if len(bv) < shared {
			shared = len(bv)
		}
		for i := 0; i < shared; i++ {
			diffValue(fmt.Sprintf("%s[%d]", path, i), av[i], bv[i], result)
		}
		for i := shared; i < len(av); i++ {
			result.ItemsRemoved[fmt.Sprintf("%s[%d]", path, i)] = av[i]
		}
		for i := shared; i < len(bv); i++ {
			result.ItemsAdded[fmt.Sprintf("%s[%d]", path, i)] = bv[i]
		}
	default:
		if !scalarEqual(a, b) {
			result.ValuesChanged[path] = ValueChange{OldValue: a, NewValue: b}
		}
	}
}

// scalarEqual compares scalars, treating numerically equal numbers as
// equal regardless of their source spelling.
func scalarEqual(a, b models.Value) bool {
	na, aIsNum := a.(json.Number)
	nb, bIsNum := b.(json.Number)
	if aIsNum && bIsNum {
		fa, errA := na.Float64()
		fb, errB := nb.Float64()
		if errA == nil && errB == nil {
			return fa == fb
		}
		return na.String() == nb.String()
	}
	return a == b
}

// pyTypeName mirrors DeepDiff's type names so consumers of DeepDiff
// output can read ours unchanged.
func pyTypeName(v models.Value) string {
	switch n := v.(type) {
	case nil:
		return "NoneType"
	case bool:
		return "bool"
	case string:
		return "str"
	case json.Number:
		if _, err := n.Int64(); err == nil {
			return "int"
		}
		return "float"
	case models.Object:
		return "dict"
	case models.Array:
		return "list"
	default:
		return fmt.Sprintf("%T", v)
	}
}
