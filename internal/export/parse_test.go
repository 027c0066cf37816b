package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tabulate/pkg/types"
)

func TestParseKeepsNumberLiterals(t *testing.T) {
	doc, err := Parse(strings.NewReader(`[{"price": 10.50}]`))
	require.NoError(t, err)

	items := doc.([]any)
	price := items[0].(map[string]any)["price"]
	assert.Equal(t, json.Number("10.50"), price)
}

func TestParseSkipsBOM(t *testing.T) {
	doc, err := Parse(strings.NewReader("\ufeff[]"))
	require.NoError(t, err)
	assert.Equal(t, []any{}, doc)
}

func TestParseRejectsTrailingData(t *testing.T) {
	_, err := Parse(strings.NewReader(`{} {}`))
	assert.ErrorIs(t, err, types.ErrMalformedInput)

	_, err = Parse(strings.NewReader("{}\n\t "))
	assert.NoError(t, err)
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		want    types.Format
		wantErr bool
	}{
		{"product array", `[{"sku":"A"}]`, types.FormatProducts, false},
		{"empty array", `[]`, types.FormatProducts, false},
		{"schema document", `{"data_schema":{},"data":{}}`, types.FormatSchema, false},
		{"schema document with info", `{"data_schema":{},"data":{},"data_schema_info":{}}`, types.FormatSchema, false},
		{"missing data", `{"data_schema":{}}`, types.FormatUnknown, true},
		{"missing schema", `{"data":{}}`, types.FormatUnknown, true},
		{"sections not objects", `{"data_schema":[],"data":[]}`, types.FormatUnknown, true},
		{"unrelated object", `{"foo":1}`, types.FormatUnknown, true},
		{"scalar", `3`, types.FormatUnknown, true},
		{"null", `null`, types.FormatUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sniff(strings.NewReader(tt.doc))
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.ErrorIs(t, err, types.ErrUnrecognizedFormat)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSniffMalformed(t *testing.T) {
	_, err := Sniff(strings.NewReader(`[`))
	assert.ErrorIs(t, err, types.ErrMalformedInput)
}
