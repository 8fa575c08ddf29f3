// Package codec resolves codec URLs into decoders and encoders for raw
// broker payloads.
//
// A codec URL is either a bare keyword or a prefixed form:
//
//	apachelog        Apache access log line  -> ApacheLogRecord   (decode only)
//	avro:<spec>      Avro record             -> native Go value   (decode only)
//	bytes            loop-back               -> []byte
//	decoder:<name>   a decoder registered under name in a DecoderLookup
//	gzip             gzip payload            -> decompressed []byte
//	json             JSON document           -> generic value     (decode only)
//	lograw           raw log line            -> string            (decode only)
//	text             text in the configured charset -> string
//
// Unknown URLs are a miss, not an error:
//
//	r, _ := codec.NewResolver(codec.Config{}, schema.NewGoAvroCompiler())
//	dec, err := r.ResolveDecoder("json", nil)
//	if err != nil {
//	    return err
//	}
//	if dec == nil {
//	    // fall back to something else
//	}
//
// Only bytes, gzip and text resolve to an encoder.
//
// Every decoder and encoder carries a Scheme tag from construction, and
// SchemeNameOf maps any value back to its keyword. The avro:<spec> argument
// is lost in that mapping; the tag is meant for display.
package codec
