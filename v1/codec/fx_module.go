package codec

import (
	"github.com/Aleph-Alpha/brokerlens/v1/observability"
	"go.uber.org/fx"
)

// FXModule provides a *Resolver. It needs a codec.Config and accepts an
// optional SchemaCompiler (see schema.FXModule) and Observer.
//
//	app := fx.New(
//	    schema.FXModule,
//	    codec.FXModule,
//	    fx.Provide(func() codec.Config { return codec.Config{Charset: "UTF-8"} }),
//	)
var FXModule = fx.Module("codec",
	fx.Provide(
		NewResolverWithDI,
	),
)

// ResolverParams groups the dependencies of NewResolverWithDI.
type ResolverParams struct {
	fx.In

	Config   Config
	Compiler SchemaCompiler         `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewResolverWithDI builds a Resolver from injected dependencies.
func NewResolverWithDI(params ResolverParams) (*Resolver, error) {
	r, err := NewResolver(params.Config, params.Compiler)
	if err != nil {
		return nil, err
	}
	if params.Observer != nil {
		r.WithObserver(params.Observer)
	}
	return r, nil
}
