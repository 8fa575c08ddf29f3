package main

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/Aleph-Alpha/brokerlens/v1/codec"
	"github.com/Aleph-Alpha/brokerlens/v1/decoders"
	"github.com/Aleph-Alpha/brokerlens/v1/inspect"
	"github.com/Aleph-Alpha/brokerlens/v1/logger"
	"github.com/Aleph-Alpha/brokerlens/v1/metrics"
	"github.com/Aleph-Alpha/brokerlens/v1/schema"
	"github.com/Aleph-Alpha/brokerlens/v1/tracer"
)

// components are the long-lived objects a command works with.
type components struct {
	Log       *logger.Logger
	Resolver  *codec.Resolver
	Registry  *decoders.Registry
	Inspector *inspect.Inspector
}

// appOptions assembles the fx graph for cfg and fills c on start.
func appOptions(cfg *Config, c *components) fx.Option {
	opts := []fx.Option{
		fx.WithLogger(func(l *logger.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Zap}
		}),
		fx.Supply(
			cfg.Log,
			cfg.codecConfig(),
			cfg.schemaConfig(),
			cfg.decodersConfig(),
			cfg.inspectConfig(),
		),
		logger.FXModule,
		schema.FXModule,
		codec.FXModule,
		decoders.FXModule,
		inspect.FXModule,
		fx.Provide(
			func(l *logger.Logger) decoders.Logger { return l },
			func(l *logger.Logger) inspect.Logger { return l },
		),
		fx.Populate(&c.Log, &c.Resolver, &c.Registry, &c.Inspector),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts,
			fx.Supply(cfg.Metrics.Config),
			metrics.FXModule,
			fx.Provide(func(l *logger.Logger) metrics.Logger { return l }),
		)
	}
	if cfg.Tracing.Enabled {
		opts = append(opts,
			fx.Supply(cfg.Tracing.Config),
			tracer.FXModule,
			fx.Provide(
				func(l *logger.Logger) tracer.Logger { return l },
				func(t *tracer.Tracer) inspect.Tracer { return t },
			),
		)
	}
	return fx.Options(opts...)
}

// withApp starts the application, runs fn and stops the application again.
func withApp(ctx context.Context, cfg *Config, fn func(*components) error) error {
	var c components
	app := fx.New(appOptions(cfg, &c))
	if err := app.Err(); err != nil {
		return fmt.Errorf("build application: %w", err)
	}
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("start application: %w", err)
	}

	runErr := fn(&c)

	if err := app.Stop(context.WithoutCancel(ctx)); err != nil && runErr == nil {
		return fmt.Errorf("stop application: %w", err)
	}
	return runErr
}
