package export

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsonspect/internal/models"
	"jsonspect/internal/parser"
)

func mustParse(t *testing.T, doc string) models.Value {
	t.Helper()
	v, err := parser.ParseString(doc)
	require.NoError(t, err)
	return v
}

func writeCSV(t *testing.T, records []models.Value) []string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, WriteCSV(&b, records))
	return strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
}

func TestWriteCSVFlattensNestedRecords(t *testing.T) {
	records := []models.Value{
		mustParse(t, `{"name": "Ann", "profile": {"phone": "111"}, "tags": ["x", "y"]}`),
		mustParse(t, `{"name": "Bob", "profile": {"phone": "222"}, "tags": ["z", "w"]}`),
	}

	lines := writeCSV(t, records)
	require.Len(t, lines, 3)
	assert.Equal(t, "name,profile.phone,tags[0],tags[1]", lines[0])
	assert.Equal(t, "Ann,111,x,y", lines[1])
	assert.Equal(t, "Bob,222,z,w", lines[2])
}

func TestWriteCSVMissingColumnsLeftEmpty(t *testing.T) {
	records := []models.Value{
		mustParse(t, `{"name": "Ann", "tags": ["x", "y"]}`),
		mustParse(t, `{"name": "Bob", "tags": ["z"]}`),
	}

	lines := writeCSV(t, records)
	require.Len(t, lines, 3)
	assert.Equal(t, "name,tags[0],tags[1]", lines[0])
	assert.Equal(t, "Bob,z,", lines[2])
}

func TestWriteCSVScalarFormatting(t *testing.T) {
	records := []models.Value{
		mustParse(t, `{"ok": true, "count": 42, "score": 4.5, "note": null}`),
	}

	lines := writeCSV(t, records)
	require.Len(t, lines, 2)
	assert.Equal(t, "ok,count,score,note", lines[0])
	assert.Equal(t, "true,42,4.5,", lines[1])
}

func TestWriteCSVSynthesizedScalars(t *testing.T) {
	// Generated records carry int64 and float64 rather than json.Number.
	records := []models.Value{
		models.Object{
			{Key: "age", Value: int64(30)},
			{Key: "score", Value: 4.25},
		},
	}

	lines := writeCSV(t, records)
	assert.Equal(t, "30,4.25", lines[1])
}

func TestWriteCSVScalarRecords(t *testing.T) {
	records := []models.Value{json.Number("1"), json.Number("2")}

	lines := writeCSV(t, records)
	require.Len(t, lines, 3)
	assert.Equal(t, "value", lines[0])
	assert.Equal(t, "1", lines[1])
}

func TestWriteCSVEmptyBatch(t *testing.T) {
	var b strings.Builder
	err := WriteCSV(&b, nil)
	assert.Error(t, err)
}
