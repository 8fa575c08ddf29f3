package codec

import (
	"fmt"

	"github.com/Aleph-Alpha/brokerlens/v1/scalar"
)

// BytesCodec is the loop-back codec: payloads pass through unchanged.
type BytesCodec struct{}

func (BytesCodec) Scheme() Scheme { return SchemeBytes }

// Decode returns payload as is.
func (BytesCodec) Decode(payload []byte) (any, error) {
	return payload, nil
}

// Encode accepts []byte or string.
func (BytesCodec) Encode(value any) ([]byte, error) {
	return toBytes(value)
}

// TextCodec converts between payloads and strings using a charset.
type TextCodec struct {
	text *scalar.Codec
}

// NewTextCodec returns a TextCodec using the charset of c. A nil c means UTF-8.
func NewTextCodec(c *scalar.Codec) TextCodec {
	if c == nil {
		c = scalar.Default()
	}
	return TextCodec{text: c}
}

func (TextCodec) Scheme() Scheme { return SchemeText }

// Decode returns the payload as a string.
func (c TextCodec) Decode(payload []byte) (any, error) {
	return c.codec().Decode(payload, scalar.TypeText)
}

// Encode accepts a string, []byte or fmt.Stringer.
func (c TextCodec) Encode(value any) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return c.codec().Encode(v, scalar.TypeText)
	case fmt.Stringer:
		return c.codec().Encode(v.String(), scalar.TypeText)
	case []byte:
		return v, nil
	}
	return nil, fmt.Errorf("%w: text cannot encode %T", ErrUnsupportedValue, value)
}

func (c TextCodec) codec() *scalar.Codec {
	if c.text == nil {
		return scalar.Default()
	}
	return c.text
}

func toBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
}
