package codec

import "errors"

var (
	// ErrNamedDecoderFailed is returned when decoder:<name> refers to a
	// registered decoder whose schema did not compile.
	ErrNamedDecoderFailed = errors.New("codec: named decoder failed to compile")

	// ErrSchemaCompile wraps failures compiling an avro:<spec> argument.
	ErrSchemaCompile = errors.New("codec: schema compilation failed")

	// ErrNoSchemaCompiler is returned for avro:<spec> when the resolver was
	// built without a SchemaCompiler.
	ErrNoSchemaCompiler = errors.New("codec: no schema compiler configured")

	// ErrUnsupportedValue is returned by encoders given a value type they
	// cannot serialize.
	ErrUnsupportedValue = errors.New("codec: unsupported value type")

	// ErrMalformedLogLine is returned by the apachelog decoder.
	ErrMalformedLogLine = errors.New("codec: payload is not an apache log line")
)

// IsNamedDecoderError reports whether err came from a failed named decoder.
func IsNamedDecoderError(err error) bool {
	return errors.Is(err, ErrNamedDecoderFailed)
}

// IsSchemaCompileError reports whether err came from compiling avro:<spec>.
func IsSchemaCompileError(err error) bool {
	return errors.Is(err, ErrSchemaCompile)
}
