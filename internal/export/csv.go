// Package export projects generated record batches onto flat tabular
// forms for external consumers.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	json "github.com/goccy/go-json"

	"jsonspect/internal/errors"
	"jsonspect/internal/models"
)

// flatRecord keeps flattened columns in discovery order.
type flatRecord struct {
	keys   []string
	values map[string]string
}

func (f *flatRecord) add(key, value string) {
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// WriteCSV writes records as CSV. Nested objects flatten to dot paths
// (profile.phone), array elements to indexed paths (tags[0]). The header
// comes from the first record's column order; columns missing from a
// later record are left empty.
func WriteCSV(w io.Writer, records []models.Value) error {
	if len(records) == 0 {
		return errors.NewOutputError("no records to export", nil)
	}

	flats := make([]*flatRecord, len(records))
	for i, rec := range records {
		f := &flatRecord{values: make(map[string]string)}
		flatten("", rec, f)
		flats[i] = f
	}

	header := flats[0].keys
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return errors.NewOutputError("failed to write CSV header", err)
	}
	for _, f := range flats {
		row := make([]string, len(header))
		for i, col := range header {
			row[i] = f.values[col]
		}
		if err := cw.Write(row); err != nil {
			return errors.NewOutputError("failed to write CSV row", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.NewOutputError("failed to flush CSV output", err)
	}
	return nil
}

func flatten(prefix string, v models.Value, out *flatRecord) {
	switch val := v.(type) {
	case models.Object:
		for _, m := range val {
			key := m.Key
			if prefix != "" {
				key = prefix + "." + m.Key
			}
			flatten(key, m.Value, out)
		}
	case models.Array:
		for i, el := range val {
			flatten(fmt.Sprintf("%s[%d]", prefix, i), el, out)
		}
	default:
		key := prefix
		if key == "" {
			key = "value"
		}
		out.add(key, formatScalar(val))
	}
}

func formatScalar(v models.Value) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case json.Number:
		return s.String()
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", s)
	}
}
