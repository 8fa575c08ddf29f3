// Package decoders maintains the per-topic decoder registry backed by schema
// files on disk.
//
// Layout:
//
//	<prefs root>/decoders/<topic>/<file>
//
// Each file is compiled according to its extension:
//
//	.avsc, .avdl  schema text handed to the codec.SchemaCompiler
//	.js           descriptor {"name": "...", "type": "<codec URL>"} whose
//	              type is resolved through the codec.Resolver, so a
//	              descriptor may point at avro:<spec>, another
//	              decoder:<name>, or any plain codec
//	anything else recorded as "file is not supported"
//
// Compilation problems never escape: they are recorded in the entry's
// CompiledSchema together with the schema text, and the entry stays visible
// in listings so the file can be fixed.
//
// Every file is compiled at most once per process, keyed by its canonical
// path, no matter how many goroutines ask for it at the same time. Entries
// are never refreshed: editing a file in place has no effect until restart,
// so new schema versions should be added as new files.
//
//	reg, err := decoders.NewRegistry(decoders.Config{PrefsRoot: root}, resolver, compiler)
//	if err != nil {
//	    return err
//	}
//	for _, e := range reg.DecodersForTopic("orders") {
//	    if !e.Schema.OK() {
//	        log.Warn("broken decoder", e.Schema.Err, map[string]interface{}{"file": e.Schema.Label})
//	        continue
//	    }
//	    value, err := e.Schema.Decoder.Decode(payload)
//	    ...
//	}
package decoders
