// Package schema adapts Avro libraries to codec.SchemaCompiler.
//
// Two engines are available: github.com/linkedin/goavro/v2 (the default)
// and github.com/hamba/avro/v2, selected with Config.Engine. Both compile
// Avro schemas in their JSON form; Avro IDL (.avdl) is reported as
// ErrUnsupportedKind, which the decoder registry records as a failed entry.
//
//	compiler, err := schema.NewCompiler(schema.Config{Engine: schema.EngineHamba})
//	if err != nil {
//	    return err
//	}
//	dec, err := compiler.Compile(codec.SchemaKindAvro, `{"type":"string"}`)
package schema
