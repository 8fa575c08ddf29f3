package codec

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// JSONCodec decodes JSON payloads into generic Go values (maps, slices,
// json.Number, strings, booleans and nil). It is decode-only.
type JSONCodec struct{}

func (JSONCodec) Scheme() Scheme { return SchemeJSON }

// Decode parses payload. Numbers are kept as json.Number so large ids
// survive unchanged.
func (JSONCodec) Decode(payload []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("json: decode payload: %w", err)
	}
	return v, nil
}
