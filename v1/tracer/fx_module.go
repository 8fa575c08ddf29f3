package tracer

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides a *Tracer and shuts its provider down when the
// application stops.
//
// Usage:
//
//	app := fx.New(
//	    fx.Supply(tracer.Config{ServiceName: "brokerlens"}),
//	    tracer.FXModule,
//	)
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClientWithDI,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// TracerParams groups the dependencies of NewClientWithDI.
type TracerParams struct {
	fx.In

	Config Config `optional:"true"`
	Logger Logger `optional:"true"`
}

// NewClientWithDI builds a Tracer from injected dependencies.
func NewClientWithDI(params TracerParams) (*Tracer, error) {
	return NewClient(params.Config, params.Logger)
}

// RegisterTracerLifecycle flushes and stops the tracer provider on
// application stop.
//
// Parameters:
//   - lc: the fx lifecycle to hook into
//   - t: the tracer to shut down
func RegisterTracerLifecycle(lc fx.Lifecycle, t *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			t.logger.Info("shutting down tracer", nil)
			return t.Shutdown(ctx)
		},
	})
}
