package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/segmentio/kafka-go/compress"
)

// GzipCodec unwraps gzip-compressed payloads on decode and compresses on
// encode, using the same gzip implementation kafka-go applies to batches.
type GzipCodec struct{}

func (GzipCodec) Scheme() Scheme { return SchemeGzip }

// Decode returns the decompressed payload.
func (GzipCodec) Decode(payload []byte) (any, error) {
	r := compress.GzipCodec.NewReader(bytes.NewReader(payload))
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gzip: decompress payload: %w", err)
	}
	return out, nil
}

// Encode compresses a []byte or string value.
func (GzipCodec) Encode(value any) ([]byte, error) {
	raw, err := toBytes(value)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := compress.GzipCodec.NewWriter(&buf)
	if _, err := w.Write(raw); err != nil {
		w.Close()
		return nil, fmt.Errorf("gzip: compress payload: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gzip: flush payload: %w", err)
	}
	return buf.Bytes(), nil
}
