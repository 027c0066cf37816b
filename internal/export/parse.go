package export

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mesh-intelligence/tabulate/pkg/types"
)

// Keys of the schema document shape.
const (
	keySchema     = "data_schema"
	keyData       = "data"
	keySchemaInfo = "data_schema_info"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse decodes one JSON document. Numbers are kept as json.Number so cells
// reproduce their literal text. A leading UTF-8 BOM is skipped. Any decode
// error, including trailing data after the document, wraps
// types.ErrMalformedInput.
func Parse(r io.Reader) (any, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, fmt.Errorf("%w: %w", types.ErrMalformedInput, err)
		}
	}

	dec := json.NewDecoder(br)
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty document", types.ErrMalformedInput)
		}
		return nil, fmt.Errorf("%w: %w", types.ErrMalformedInput, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after document", types.ErrMalformedInput)
	}
	return doc, nil
}

// Detect returns the format of a parsed document. An array is a product
// catalog; an object whose data_schema and data sections are both objects
// is a schema document. Anything else wraps types.ErrUnrecognizedFormat.
func Detect(doc any) (types.Format, error) {
	switch d := doc.(type) {
	case []any:
		return types.FormatProducts, nil
	case map[string]any:
		_, hasSchema := d[keySchema].(map[string]any)
		_, hasData := d[keyData].(map[string]any)
		if hasSchema && hasData {
			return types.FormatSchema, nil
		}
		return types.FormatUnknown, fmt.Errorf("%w: object needs %q and %q sections",
			types.ErrUnrecognizedFormat, keySchema, keyData)
	default:
		return types.FormatUnknown, fmt.Errorf("%w: top-level value is %s",
			types.ErrUnrecognizedFormat, kindOf(doc))
	}
}

// Sniff parses r and reports its format without exporting anything.
func Sniff(r io.Reader) (types.Format, error) {
	doc, err := Parse(r)
	if err != nil {
		return types.FormatUnknown, err
	}
	return Detect(doc)
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "a string"
	case json.Number:
		return "a number"
	case bool:
		return "a boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
