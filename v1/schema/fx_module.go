package schema

import (
	"go.uber.org/fx"
)

// FXModule provides the codec.SchemaCompiler selected by schema.Config.
var FXModule = fx.Module("schema",
	fx.Provide(
		NewCompiler,
	),
)
