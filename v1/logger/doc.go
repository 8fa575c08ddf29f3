// Package logger provides the structured logger used across brokerlens.
//
// It wraps go.uber.org/zap behind a small method set taking a message, an
// optional error and optional field maps:
//
//	log, err := logger.NewLoggerClient(logger.Config{
//		Level:         logger.Debug,
//		EnableTracing: true,
//	})
//	if err != nil {
//		return err
//	}
//	log.Warn("schema file did not compile", err, map[string]interface{}{
//		"path": "/prefs/decoders/orders/orders-v2.avsc",
//	})
//
// The *WithContext variants add trace_id and span_id from an OpenTelemetry
// span carried by the context when Config.EnableTracing is set.
//
// Packages that log accept their own narrow Logger interface which *Logger
// satisfies, so they never import this package directly.
package logger
