package schema

import "errors"

var (
	// ErrUnsupportedKind is returned for schema kinds an engine cannot compile.
	ErrUnsupportedKind = errors.New("schema: unsupported schema kind")

	// ErrUnknownEngine is returned by NewCompiler for an unknown Config.Engine.
	ErrUnknownEngine = errors.New("schema: unknown avro engine")
)

// IsUnsupportedKindError reports whether err is an unsupported kind failure.
func IsUnsupportedKindError(err error) bool {
	return errors.Is(err, ErrUnsupportedKind)
}
