// Package inspect turns broker messages into readable records using the
// decoders registered for their topic.
//
//	registry, _ := decoders.NewRegistry(decoders.Config{PrefsRoot: root}, resolver, compiler)
//	insp, err := inspect.NewInspector(inspect.Config{KeyCodec: "text"}, resolver, registry)
//	rec, err := insp.Inspect(ctx, msg) // msg is a kafka.Message
//	fmt.Println(rec.DecoderName, rec.Value)
//
// A message's value is decoded by the newest decoder of its topic that
// compiled and accepts the payload. When there is none, the fallback codec
// (text by default) is used and Record.DecoderName holds its URL.
//
// With WithTracer, Inspect continues the trace named by the message's
// traceparent header, so log entries written while decoding share its
// trace id.
package inspect
