package output

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/sheetgen-go/pkg/sheetgen/models"
)

func record(kv ...any) models.Record {
	rec := models.NewRecord()
	for i := 0; i+1 < len(kv); i += 2 {
		rec.Set(kv[i].(string), kv[i+1])
	}
	return rec
}

func TestRecordsToJSON(t *testing.T) {
	records := []models.Record{record("id", int64(1), "name", "Sword")}

	data, err := RecordsToJSON(records, true)

	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"id\": 1,\n    \"name\": \"Sword\"\n  }\n]\n", string(data))
}

func TestRecordsToJSON_IntegralFloat(t *testing.T) {
	records := []models.Record{record("rate", 3.0, "hp", int64(3))}

	data, err := RecordsToJSON(records, false)

	require.NoError(t, err)
	assert.Equal(t, `[{"rate":3,"hp":3}]`+"\n", string(data))
}

func TestRecordsToJSON_Empty(t *testing.T) {
	data, err := RecordsToJSON(nil, true)

	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestToJSON_NoHTMLEscape(t *testing.T) {
	data, err := ToJSON("a<b & 剣", false)

	require.NoError(t, err)
	assert.Equal(t, "\"a<b & 剣\"\n", string(data))
}

func TestRecordsToJSON_NoHTMLEscape(t *testing.T) {
	records := []models.Record{record("<hp>", "HP > 0", "name", "a<b & 剣")}

	data, err := RecordsToJSON(records, true)

	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"<hp>\": \"HP > 0\",\n    \"name\": \"a<b & 剣\"\n  }\n]\n", string(data))
}

func TestNestedToJSON_NoHTMLEscape(t *testing.T) {
	records := []models.Record{record("id", "a&b", "note", "<tag>")}

	data, err := NestedToJSON(records, "id", false)

	require.NoError(t, err)
	assert.Equal(t, `{"a&b":{"note":"<tag>"}}`+"\n", string(data))
}

func TestUnescapeHTML(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"a\u003cb\u003e\u0026"`, `"a<b>&"`},
		{`"a\\u003cb"`, `"a\\u003cb"`},
		{`"\\\u0026"`, `"\\&"`},
		{`"\u00e9\n"`, `"\u00e9\n"`},
		{`"plain"`, `"plain"`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, string(unescapeHTML([]byte(tt.input))), "unescapeHTML(%s)", tt.input)
	}
}

func TestNestedToJSON(t *testing.T) {
	records := []models.Record{
		record("id", int64(1), "name", "Sword"),
		record("id", int64(2), "name", "Shield", "def", 2.5),
	}

	data, err := NestedToJSON(records, "id", false)

	require.NoError(t, err)
	assert.Equal(t, `{"1":{"name":"Sword"},"2":{"name":"Shield","def":2.5}}`+"\n", string(data))
}

func TestNestedToJSON_MissingKey(t *testing.T) {
	records := []models.Record{record("name", "Sword")}

	_, err := NestedToJSON(records, "id", false)

	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestRawToJSON(t *testing.T) {
	raw := json.RawMessage(`[{"b":1,"a":"x"}]`)

	data, err := RawToJSON(raw, true)
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"b\": 1,\n    \"a\": \"x\"\n  }\n]\n", string(data))

	data, err = RawToJSON(json.RawMessage("[ 1, 2 ]"), false)
	require.NoError(t, err)
	assert.Equal(t, "[1,2]\n", string(data))

	_, err = RawToJSON(json.RawMessage("[1,"), true)
	assert.Error(t, err)
}
