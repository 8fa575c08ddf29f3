package inspect

import (
	"context"

	"github.com/Aleph-Alpha/brokerlens/v1/codec"
	"github.com/Aleph-Alpha/brokerlens/v1/decoders"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultKeyCodec decodes message keys when Config.KeyCodec is empty.
	DefaultKeyCodec = codec.URLText

	// DefaultFallbackCodec decodes values of topics without a working
	// decoder when Config.FallbackCodec is empty.
	DefaultFallbackCodec = codec.URLText
)

// Config selects the codecs used when no topic decoder applies.
type Config struct {
	// KeyCodec is the codec URL for message keys.
	KeyCodec string `yaml:"key_codec" mapstructure:"key_codec"`

	// FallbackCodec is the codec URL for values when the topic has no
	// decoder that compiled and accepts the payload.
	FallbackCodec string `yaml:"fallback_codec" mapstructure:"fallback_codec"`
}

// TopicDecoders lists the registered decoders of a topic, newest first.
// *decoders.Registry satisfies it.
type TopicDecoders interface {
	codec.DecoderLookup
	DecodersForTopic(topic string) []*decoders.Entry
}

// Logger is the subset of the std logger the inspector needs.
// *logger.Logger satisfies it.
type Logger interface {
	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

type nopLogger struct{}

func (nopLogger) DebugWithContext(context.Context, string, error, ...map[string]interface{}) {}
func (nopLogger) WarnWithContext(context.Context, string, error, ...map[string]interface{})  {}

// Tracer continues the trace a message carries in its headers.
// *tracer.Tracer satisfies it.
type Tracer interface {
	SetCarrierOnContext(ctx context.Context, carrier map[string]string) context.Context
	StartSpan(ctx context.Context, name string) (context.Context, trace.Span)
	SetAttributes(span trace.Span, attrs map[string]interface{})
	RecordErrorOnSpan(span trace.Span, err error)
}
