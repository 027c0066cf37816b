package cell

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tabulate/pkg/types"
)

// decode parses JSON the way the export engine does, keeping number literals.
func decode(t *testing.T, s string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	require.NoError(t, dec.Decode(&v))
	return v
}

func TestCoerceImage(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		typ  types.ColumnType
		want string
	}{
		{
			name: "third position of each element",
			raw:  `[["M","id1","http://x/a.png"],["M","id2","http://x/b.png"]]`,
			typ:  types.ColumnImage,
			want: "http://x/a.png | http://x/b.png",
		},
		{
			name: "file columns behave like images",
			raw:  `[["F","id1","http://x/a.pdf","extra"]]`,
			typ:  types.ColumnFile,
			want: "http://x/a.pdf",
		},
		{
			name: "short element yields empty text",
			raw:  `[["M","id1"],["M","id2","b.png"]]`,
			typ:  types.ColumnImage,
			want: " | b.png",
		},
		{
			name: "scalar element yields empty text",
			raw:  `["a.png"]`,
			typ:  types.ColumnImage,
			want: "",
		},
		{
			name: "not a sequence",
			raw:  `"http://x/a.png"`,
			typ:  types.ColumnImage,
			want: "",
		},
		{
			name: "numeric third position",
			raw:  `[[1,2,3]]`,
			typ:  types.ColumnFile,
			want: "3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Coerce(decode(t, tt.raw), tt.typ))
		})
	}
}

func TestCoerceList(t *testing.T) {
	assert.Equal(t, "red, green, 3", Coerce(decode(t, `["red","green",3]`), types.ColumnList))
	assert.Equal(t, "solo", Coerce("solo", types.ColumnList))
	assert.Equal(t, "", Coerce("", types.ColumnList))
	assert.Equal(t, "", Coerce(nil, types.ColumnList))
	assert.Equal(t, "", Coerce(decode(t, `[]`), types.ColumnList))

	t.Run("empty scalars give empty text", func(t *testing.T) {
		for _, raw := range []string{`0`, `0.0`, `false`, `{}`} {
			assert.Equal(t, "", Coerce(decode(t, raw), types.ColumnList), raw)
		}
		assert.Equal(t, "7", Coerce(decode(t, `7`), types.ColumnList))
		assert.Equal(t, "true", Coerce(decode(t, `true`), types.ColumnList))
	})
}

func TestCoerceTable(t *testing.T) {
	raw := decode(t, `{"rows":[["a",1],["b",2.50]],"html":"<b>&</b>"}`)
	assert.Equal(t, `{"html":"<b>&</b>","rows":[["a",1],["b",2.50]]}`, Coerce(raw, types.ColumnTable))

	t.Run("object keys are sorted", func(t *testing.T) {
		assert.Equal(t, `{"a":2,"z":1}`, Coerce(decode(t, `{"z":1,"a":2}`), types.ColumnTable))
	})

	t.Run("serialization failure falls back to plain string", func(t *testing.T) {
		got := Coerce(math.Inf(1), types.ColumnTable)
		assert.Equal(t, "+Inf", got)
	})
}

func TestCoercePlain(t *testing.T) {
	for _, typ := range []types.ColumnType{types.ColumnPlain, types.ColumnUnspecified} {
		assert.Equal(t, "", Coerce(nil, typ))
		assert.Equal(t, "hello", Coerce("hello", typ))
		assert.Equal(t, "12.50", Coerce(json.Number("12.50"), typ))
		assert.Equal(t, "true", Coerce(true, typ))
		assert.Equal(t, `["a","b"]`, Coerce(decode(t, `["a","b"]`), typ))
	}
}

func TestCoerceIsDeterministic(t *testing.T) {
	raw := decode(t, `{"b":[1,2],"a":{"z":null,"y":"x"}}`)
	first := Coerce(raw, types.ColumnTable)
	for i := 0; i < 20; i++ {
		require.Equal(t, first, Coerce(raw, types.ColumnTable))
	}
	assert.Equal(t, `{"a":{"y":"x","z":null},"b":[1,2]}`, first)
}

func TestIsFalsy(t *testing.T) {
	falsy := []any{nil, false, "", json.Number("0"), json.Number("0.0"), 0.0, 0, []any{}, map[string]any{}}
	for _, v := range falsy {
		assert.True(t, IsFalsy(v), "%#v", v)
	}
	truthy := []any{true, "0", json.Number("0.01"), 1.5, []any{nil}}
	for _, v := range truthy {
		assert.False(t, IsFalsy(v), "%#v", v)
	}
}
