// Package observability defines the hook components use to report the
// operations they perform, so that metrics, tracing or audit logging can be
// attached without the components depending on any of them.
package observability

import "time"

// Observer receives a notification for every observed operation.
// Implementations must be safe for concurrent use.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// OperationContext describes a single completed operation.
type OperationContext struct {
	// Component is the reporting package, e.g. "codec" or "decoders".
	Component string

	// Operation is the action performed, e.g. "compile" or "resolve_decoder".
	Operation string

	// Resource is the primary subject of the operation (a file path, a codec URL).
	Resource string

	// SubResource adds context such as the topic a file belongs to.
	SubResource string

	Duration time.Duration

	// Error is nil when the operation succeeded.
	Error error

	// Size is the number of bytes involved, when meaningful.
	Size int64

	Metadata map[string]interface{}
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(ctx OperationContext)

// ObserveOperation calls f(ctx).
func (f ObserverFunc) ObserveOperation(ctx OperationContext) {
	f(ctx)
}
