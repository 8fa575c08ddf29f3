package schema

import (
	"fmt"

	"github.com/Aleph-Alpha/brokerlens/v1/codec"
	"github.com/linkedin/goavro/v2"
)

// GoAvroCompiler compiles Avro JSON schemas with github.com/linkedin/goavro.
type GoAvroCompiler struct{}

// NewGoAvroCompiler returns a GoAvroCompiler.
func NewGoAvroCompiler() *GoAvroCompiler {
	return &GoAvroCompiler{}
}

// Compile parses schema and returns a decoder for its binary encoding.
func (c *GoAvroCompiler) Compile(kind codec.SchemaKind, schema string) (codec.Decoder, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	avroCodec, err := goavro.NewCodec(schema)
	if err != nil {
		return nil, fmt.Errorf("schema: compile avro: %w", err)
	}
	return &GoAvroDecoder{codec: avroCodec}, nil
}

// GoAvroDecoder decodes Avro binary payloads into goavro native values:
// records become map[string]interface{}, unions map[string]interface{}
// keyed by branch name.
type GoAvroDecoder struct {
	codec *goavro.Codec
}

func (d *GoAvroDecoder) Scheme() codec.Scheme { return codec.SchemeAvro }

// Decode decodes one datum. Trailing bytes after the datum are an error.
func (d *GoAvroDecoder) Decode(payload []byte) (any, error) {
	native, rest, err := d.codec.NativeFromBinary(payload)
	if err != nil {
		return nil, fmt.Errorf("avro: decode payload: %w", err)
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("avro: %d trailing bytes after datum", len(rest))
	}
	return native, nil
}

// Schema returns the canonical form of the compiled schema.
func (d *GoAvroDecoder) Schema() string {
	return d.codec.CanonicalSchema()
}
