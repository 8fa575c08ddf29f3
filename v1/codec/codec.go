package codec

import (
	"path/filepath"
	"strings"
)

// Scheme identifies the kind of a decoder or encoder. Every instance carries
// its scheme from construction, which is what SchemeNameOf reports.
type Scheme int

const (
	SchemeUnknown Scheme = iota
	SchemeApacheLog
	SchemeAvro
	SchemeBytes
	SchemeGzip
	SchemeJSON
	SchemeLogRaw
	SchemeText
)

// UnknownSchemeName is reported for untagged values and unknown schemes.
const UnknownSchemeName = "unknown"

var schemeNames = map[Scheme]string{
	SchemeApacheLog: "apachelog",
	SchemeAvro:      "avro",
	SchemeBytes:     "bytes",
	SchemeGzip:      "gzip",
	SchemeJSON:      "json",
	SchemeLogRaw:    "lograw",
	SchemeText:      "text",
}

// String returns the bare codec URL keyword for s. Parametrized schemes
// report their keyword only ("avro", never "avro:<spec>").
func (s Scheme) String() string {
	if name, ok := schemeNames[s]; ok {
		return name
	}
	return UnknownSchemeName
}

// Tagged is implemented by every decoder and encoder in this package and by
// schema-backed decoders produced by a SchemaCompiler.
type Tagged interface {
	Scheme() Scheme
}

// Decoder turns a raw broker payload into a typed value.
type Decoder interface {
	Tagged
	Decode(payload []byte) (any, error)
}

// Encoder turns a value into a raw broker payload.
type Encoder interface {
	Tagged
	Encode(value any) ([]byte, error)
}

// SchemeNameOf returns the scheme name carried by v, or "unknown" when v is
// nil or carries no tag.
func SchemeNameOf(v any) string {
	if t, ok := v.(Tagged); ok {
		return t.Scheme().String()
	}
	return UnknownSchemeName
}

// SchemaKind names the schema language of a piece of schema text.
type SchemaKind string

const (
	// SchemaKindAvro is an Avro schema in its JSON form (.avsc).
	SchemaKindAvro SchemaKind = "avro"

	// SchemaKindAvroIDL is an Avro IDL protocol (.avdl).
	SchemaKindAvroIDL SchemaKind = "avro-idl"
)

// SchemaKindForFile maps a schema file extension to its kind.
func SchemaKindForFile(path string) (SchemaKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".avsc":
		return SchemaKindAvro, true
	case ".avdl":
		return SchemaKindAvroIDL, true
	}
	return "", false
}

// SchemaCompiler turns schema text into a decoder. Implementations live
// outside this package; see v1/schema.
type SchemaCompiler interface {
	Compile(kind SchemaKind, schema string) (Decoder, error)
}

// DecoderLookup finds a previously registered decoder by name. found is
// false when no decoder has that name. When the named decoder exists but its
// schema failed to compile, found is true and err carries the compile error.
type DecoderLookup interface {
	LookupDecoder(name string) (dec Decoder, found bool, err error)
}
