package decoders

import (
	"context"

	"github.com/Aleph-Alpha/brokerlens/v1/codec"
	"github.com/Aleph-Alpha/brokerlens/v1/observability"
	"go.uber.org/fx"
)

// FXModule provides the decoder *Registry and exposes it as a
// codec.DecoderLookup.
//
// Dependencies: a decoders.Config and a *codec.Resolver (codec.FXModule);
// optionally a codec.SchemaCompiler (schema.FXModule), a Logger and an
// observability.Observer.
//
//	app := fx.New(
//	    schema.FXModule,
//	    codec.FXModule,
//	    decoders.FXModule,
//	    fx.Provide(
//	        func() codec.Config { return codec.Config{} },
//	        func() schema.Config { return schema.Config{} },
//	        func() decoders.Config { return decoders.Config{PrefsRoot: "/var/lib/brokerlens"} },
//	    ),
//	)
var FXModule = fx.Module("decoders",
	fx.Provide(
		NewRegistryWithDI,
		func(r *Registry) codec.DecoderLookup { return r },
	),
	fx.Invoke(RegisterRegistryLifecycle),
)

// RegistryParams groups the dependencies of NewRegistryWithDI.
type RegistryParams struct {
	fx.In

	Config   Config
	Resolver *codec.Resolver
	Compiler codec.SchemaCompiler   `optional:"true"`
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewRegistryWithDI builds a Registry from injected dependencies.
func NewRegistryWithDI(params RegistryParams) (*Registry, error) {
	r, err := NewRegistry(params.Config, params.Resolver, params.Compiler)
	if err != nil {
		return nil, err
	}
	if params.Logger != nil {
		r.WithLogger(params.Logger)
	}
	if params.Observer != nil {
		r.WithObserver(params.Observer)
	}
	return r, nil
}

// RegisterRegistryLifecycle creates the decoder root on start and logs the
// topics found. A root that cannot be created is logged, not fatal: the
// registry then serves an empty view.
//
// Parameters:
//   - lc: the fx lifecycle to hook into
//   - r: the registry provided by NewRegistryWithDI
//
// FXModule invokes it; call it directly only when building the graph by
// hand:
//
//	fx.Invoke(decoders.RegisterRegistryLifecycle)
func RegisterRegistryLifecycle(lc fx.Lifecycle, r *Registry) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			topics := r.Topics()
			r.logger.Info("decoder registry ready", nil, map[string]interface{}{
				"root":   r.root,
				"topics": len(topics),
			})
			return nil
		},
	})
}
