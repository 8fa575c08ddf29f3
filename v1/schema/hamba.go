package schema

import (
	"errors"
	"fmt"

	"github.com/Aleph-Alpha/brokerlens/v1/codec"
	"github.com/hamba/avro/v2"
)

// HambaCompiler compiles Avro JSON schemas with github.com/hamba/avro.
type HambaCompiler struct{}

// NewHambaCompiler returns a HambaCompiler.
func NewHambaCompiler() *HambaCompiler {
	return &HambaCompiler{}
}

// Compile parses schema and returns a decoder for its binary encoding.
func (c *HambaCompiler) Compile(kind codec.SchemaKind, schema string) (codec.Decoder, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	// Named types are scoped to one schema text.
	parsed, err := avro.ParseWithCache(schema, "", &avro.SchemaCache{})
	if err != nil {
		return nil, fmt.Errorf("schema: compile avro: %w", err)
	}
	return &HambaDecoder{schema: parsed}, nil
}

// HambaDecoder decodes Avro binary payloads into generic Go values.
type HambaDecoder struct {
	schema avro.Schema
}

func (d *HambaDecoder) Scheme() codec.Scheme { return codec.SchemeAvro }

// Decode decodes one datum into map[string]any for records and the
// matching Go type for primitives. The payload must hold exactly one datum.
func (d *HambaDecoder) Decode(payload []byte) (any, error) {
	r := avro.NewReader(nil, 0).Reset(payload)

	var v any
	r.ReadVal(d.schema, &v)
	if r.Error != nil {
		return nil, fmt.Errorf("avro: decode payload: %w", r.Error)
	}

	// a successful read past the datum means bytes were left over
	r.Read(make([]byte, 1))
	if r.Error == nil {
		return nil, errors.New("avro: trailing bytes after datum")
	}
	return v, nil
}

// Schema returns the canonical form of the compiled schema.
func (d *HambaDecoder) Schema() string {
	return d.schema.String()
}
