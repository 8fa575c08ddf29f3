// Package tracer wraps the OpenTelemetry SDK for brokerlens.
//
// A Tracer owns a TracerProvider and offers the few calls the rest of the
// module needs: starting spans, recording errors and moving W3C trace
// context in and out of string maps such as broker message headers.
//
// Basic usage:
//
//	t, err := tracer.NewClient(tracer.Config{ServiceName: "brokerlens"}, log)
//	if err != nil {
//	    return err
//	}
//	defer t.Shutdown(context.Background())
//
//	ctx = t.SetCarrierOnContext(ctx, headers)
//	ctx, span := t.StartSpan(ctx, "inspect")
//	defer span.End()
//
// With fx, include FXModule and supply a Config; the provider is shut down
// with the application.
package tracer
