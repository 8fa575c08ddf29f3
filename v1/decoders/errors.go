package decoders

import "errors"

var (
	// ErrFileNotSupported is recorded for files whose extension has no
	// compilation rule and for descriptors whose type resolves to nothing.
	ErrFileNotSupported = errors.New("file is not supported")

	// ErrCompilePanic is recorded when compiling a file panicked.
	ErrCompilePanic = errors.New("decoders: schema compilation panicked")

	// ErrNoSchemaCompiler is recorded for schema files when the registry has
	// no SchemaCompiler.
	ErrNoSchemaCompiler = errors.New("decoders: no schema compiler configured")

	// ErrNoResolver is recorded for descriptor files when the registry has
	// no DecoderResolver.
	ErrNoResolver = errors.New("decoders: no codec resolver configured")

	// ErrInvalidDescriptor is recorded for descriptor files that are not a
	// JSON object with a string "type".
	ErrInvalidDescriptor = errors.New("decoders: invalid descriptor")
)

// IsFileNotSupportedError reports whether err marks an unsupported file.
func IsFileNotSupportedError(err error) bool {
	return errors.Is(err, ErrFileNotSupported)
}
