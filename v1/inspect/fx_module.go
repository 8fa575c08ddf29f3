package inspect

import (
	"github.com/Aleph-Alpha/brokerlens/v1/codec"
	"github.com/Aleph-Alpha/brokerlens/v1/decoders"
	"go.uber.org/fx"
)

// FXModule provides an *Inspector wired to the decoder registry.
var FXModule = fx.Module("inspect",
	fx.Provide(
		NewInspectorWithDI,
	),
)

// InspectorParams groups the dependencies of NewInspectorWithDI.
type InspectorParams struct {
	fx.In

	Config   Config `optional:"true"`
	Resolver *codec.Resolver
	Registry *decoders.Registry
	Logger   Logger `optional:"true"`
	Tracer   Tracer `optional:"true"`
}

// NewInspectorWithDI builds an Inspector from injected dependencies.
func NewInspectorWithDI(params InspectorParams) (*Inspector, error) {
	i, err := NewInspector(params.Config, params.Resolver, params.Registry)
	if err != nil {
		return nil, err
	}
	return i.WithLogger(params.Logger).WithTracer(params.Tracer), nil
}
