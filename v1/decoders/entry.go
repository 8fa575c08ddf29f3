package decoders

import (
	"time"

	"github.com/Aleph-Alpha/brokerlens/v1/codec"
)

// CompiledSchema is the outcome of compiling one schema file. Exactly one of
// Decoder and Err is set. SchemaString always holds the text that was
// compiled so failures can be shown next to their cause.
type CompiledSchema struct {
	Label        string
	Decoder      codec.Decoder
	Err          error
	SchemaString string
}

// Succeeded builds a successful CompiledSchema. A nil decoder is recorded as
// a failure with ErrFileNotSupported.
func Succeeded(label string, dec codec.Decoder, schema string) CompiledSchema {
	if dec == nil {
		return Failed(label, ErrFileNotSupported, schema)
	}
	return CompiledSchema{Label: label, Decoder: dec, SchemaString: schema}
}

// Failed builds a failed CompiledSchema.
func Failed(label string, err error, schema string) CompiledSchema {
	if err == nil {
		err = ErrFileNotSupported
	}
	return CompiledSchema{Label: label, Err: err, SchemaString: schema}
}

// OK reports whether the schema compiled.
func (c CompiledSchema) OK() bool {
	return c.Err == nil
}

// Entry is a registered decoder. Entries are created on first resolution of
// their file and never change afterwards.
type Entry struct {
	Topic string

	// Name is the descriptor's "name" field, or the file name without its
	// extension for other files. decoder:<name> URLs match on it.
	Name string

	// Path is the canonical absolute path, the entry's identity.
	Path string

	// LastModified is the file's modification time when it was compiled.
	LastModified time.Time

	Schema CompiledSchema
}
