package cell

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/tabulate/pkg/types"
)

// Separators used when a column holds several values.
const (
	mediaSeparator = " | "
	listSeparator  = ", "
)

// Coerce renders raw as cell text according to the column type. An absent
// (nil) value is always empty text.
func Coerce(raw any, typ types.ColumnType) string {
	if raw == nil {
		return ""
	}
	switch typ {
	case types.ColumnImage, types.ColumnFile:
		return coerceMedia(raw)
	case types.ColumnList:
		return coerceList(raw)
	case types.ColumnTable:
		return coerceTable(raw)
	default:
		return Stringify(raw)
	}
}

// coerceMedia takes the third position of every element of raw. Elements that
// are not sequences of at least three positions contribute empty text.
func coerceMedia(raw any) string {
	seq, ok := raw.([]any)
	if !ok {
		return ""
	}
	parts := make([]string, len(seq))
	for i, elem := range seq {
		if e, ok := elem.([]any); ok && len(e) >= 3 {
			parts[i] = Stringify(e[2])
		}
	}
	return strings.Join(parts, mediaSeparator)
}

// coerceList joins the elements of a sequence. A scalar is used as is unless
// it is empty, false, or zero.
func coerceList(raw any) string {
	seq, ok := raw.([]any)
	if !ok {
		if IsFalsy(raw) {
			return ""
		}
		return Stringify(raw)
	}
	parts := make([]string, len(seq))
	for i, elem := range seq {
		parts[i] = Stringify(elem)
	}
	return strings.Join(parts, listSeparator)
}

// coerceTable keeps embedded tabular data as compact JSON in one cell. Object
// keys come out sorted, not in document order.
func coerceTable(raw any) string {
	s, err := compactJSON(raw)
	if err != nil {
		return fmt.Sprint(raw)
	}
	return s
}

// Stringify returns the plain string form of a decoded JSON value. Numbers
// keep their literal text when decoded as json.Number; nested arrays and
// objects render as compact JSON.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case []any, map[string]any:
		s, err := compactJSON(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return s
	default:
		return fmt.Sprint(x)
	}
}

func compactJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// IsFalsy reports whether v is an empty value: nil, false, zero, an empty
// string, or an empty array or object.
func IsFalsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case string:
		return x == ""
	case json.Number:
		f, err := x.Float64()
		return err == nil && f == 0
	case float64:
		return x == 0
	case int:
		return x == 0
	case int64:
		return x == 0
	case []any:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	default:
		return false
	}
}
