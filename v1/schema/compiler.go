package schema

import (
	"fmt"

	"github.com/Aleph-Alpha/brokerlens/v1/codec"
)

// NewCompiler returns the SchemaCompiler for cfg.Engine.
func NewCompiler(cfg Config) (codec.SchemaCompiler, error) {
	switch cfg.Engine {
	case "", EngineGoAvro:
		return NewGoAvroCompiler(), nil
	case EngineHamba:
		return NewHambaCompiler(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, cfg.Engine)
}

func checkKind(kind codec.SchemaKind) error {
	if kind != codec.SchemaKindAvro {
		return fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	}
	return nil
}
