package inspect

import (
	"context"
	"fmt"
	"time"

	"github.com/Aleph-Alpha/brokerlens/v1/codec"
	"github.com/segmentio/kafka-go"
)

// Record is a decoded broker message.
type Record struct {
	Topic     string            `json:"topic"`
	Partition int               `json:"partition"`
	Offset    int64             `json:"offset"`
	Time      time.Time         `json:"time"`
	Headers   map[string]string `json:"headers,omitempty"`

	// Key is nil for messages without a key.
	Key any `json:"key"`

	Value any `json:"value"`

	// DecoderName is the registry name of the decoder that produced Value,
	// or the fallback codec URL.
	DecoderName string `json:"decoder_name"`

	// Scheme is the scheme name of the decoder that produced Value.
	Scheme string `json:"scheme"`
}

// Inspector decodes broker messages with the decoders registered for their
// topic. It is safe for concurrent use.
type Inspector struct {
	topics       TopicDecoders
	key          codec.Decoder
	fallback     codec.Decoder
	fallbackName string
	logger       Logger
	tracer       Tracer
}

// NewInspector resolves the key and fallback codecs of cfg up front so
// misconfiguration is reported before the first message.
//
// Parameters:
//   - cfg: key and fallback codec URLs; empty fields take DefaultKeyCodec
//     and DefaultFallbackCodec
//   - resolver: resolves the codec URLs
//   - topics: the decoders registered per topic, usually *decoders.Registry
//
// Returns an error wrapping ErrUnknownCodec when a URL names no codec.
//
// Example:
//
//	insp, err := inspect.NewInspector(inspect.Config{FallbackCodec: "bytes"}, resolver, registry)
//	if err != nil {
//	    return err
//	}
//	rec, err := insp.Inspect(ctx, msg)
func NewInspector(cfg Config, resolver *codec.Resolver, topics TopicDecoders) (*Inspector, error) {
	if cfg.KeyCodec == "" {
		cfg.KeyCodec = DefaultKeyCodec
	}
	if cfg.FallbackCodec == "" {
		cfg.FallbackCodec = DefaultFallbackCodec
	}

	key, err := resolveRequired(resolver, cfg.KeyCodec, topics)
	if err != nil {
		return nil, err
	}
	fallback, err := resolveRequired(resolver, cfg.FallbackCodec, topics)
	if err != nil {
		return nil, err
	}

	return &Inspector{
		topics:       topics,
		key:          key,
		fallback:     fallback,
		fallbackName: cfg.FallbackCodec,
		logger:       nopLogger{},
	}, nil
}

func resolveRequired(resolver *codec.Resolver, url string, lookup codec.DecoderLookup) (codec.Decoder, error) {
	dec, err := resolver.ResolveDecoder(url, lookup)
	if err != nil {
		return nil, fmt.Errorf("inspect: resolve %q: %w", url, err)
	}
	if dec == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, url)
	}
	return dec, nil
}

// WithLogger sets the logger and returns i for chaining.
func (i *Inspector) WithLogger(l Logger) *Inspector {
	if l != nil {
		i.logger = l
	}
	return i
}

// WithTracer makes Inspect continue the trace found in message headers and
// returns i for chaining.
func (i *Inspector) WithTracer(t Tracer) *Inspector {
	if t != nil {
		i.tracer = t
	}
	return i
}

// Inspect decodes msg. The value goes through the topic's decoders, newest
// first, skipping those that failed to compile or reject the payload; the
// fallback codec is used when none succeeds.
//
// With a tracer set, the work runs in an "inspect" span that continues the
// trace of the message's traceparent header.
func (i *Inspector) Inspect(ctx context.Context, msg kafka.Message) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	headers := headerMap(msg.Headers)
	if i.tracer == nil {
		return i.inspect(ctx, msg, headers)
	}

	ctx = i.tracer.SetCarrierOnContext(ctx, headers)
	ctx, span := i.tracer.StartSpan(ctx, "inspect")
	defer span.End()
	i.tracer.SetAttributes(span, map[string]interface{}{
		"messaging.destination": msg.Topic,
		"messaging.partition":   msg.Partition,
		"messaging.offset":      msg.Offset,
	})

	rec, err := i.inspect(ctx, msg, headers)
	if err != nil {
		i.tracer.RecordErrorOnSpan(span, err)
		return nil, err
	}
	i.tracer.SetAttributes(span, map[string]interface{}{"decoder": rec.DecoderName})
	return rec, nil
}

func headerMap(headers []kafka.Header) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	m := make(map[string]string, len(headers))
	for _, h := range headers {
		m[h.Key] = string(h.Value)
	}
	return m
}

func (i *Inspector) inspect(ctx context.Context, msg kafka.Message, headers map[string]string) (*Record, error) {
	rec := &Record{
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Time:      msg.Time,
		Headers:   headers,
	}

	if msg.Key != nil {
		key, err := i.key.Decode(msg.Key)
		if err != nil {
			return nil, fmt.Errorf("%w: key: %v", ErrDecodeFailed, err)
		}
		rec.Key = key
	}

	fields := map[string]interface{}{
		"topic":     msg.Topic,
		"partition": msg.Partition,
		"offset":    msg.Offset,
	}
	for _, e := range i.topics.DecodersForTopic(msg.Topic) {
		if !e.Schema.OK() {
			continue
		}
		v, err := e.Schema.Decoder.Decode(msg.Value)
		if err != nil {
			fields["decoder"] = e.Name
			i.logger.DebugWithContext(ctx, "topic decoder rejected payload", err, fields)
			continue
		}
		rec.Value = v
		rec.DecoderName = e.Name
		rec.Scheme = codec.SchemeNameOf(e.Schema.Decoder)
		return rec, nil
	}

	v, err := i.fallback.Decode(msg.Value)
	if err != nil {
		i.logger.WarnWithContext(ctx, "fallback codec rejected payload", err, fields)
		return nil, fmt.Errorf("%w: value: %v", ErrDecodeFailed, err)
	}
	rec.Value = v
	rec.DecoderName = i.fallbackName
	rec.Scheme = codec.SchemeNameOf(i.fallback)
	return rec, nil
}

// InspectAll decodes msgs in order, stopping at the first error or when ctx
// is done.
func (i *Inspector) InspectAll(ctx context.Context, msgs []kafka.Message) ([]*Record, error) {
	out := make([]*Record, 0, len(msgs))
	for _, m := range msgs {
		rec, err := i.Inspect(ctx, m)
		if err != nil {
			return out, fmt.Errorf("offset %d: %w", m.Offset, err)
		}
		out = append(out, rec)
	}
	return out, nil
}
