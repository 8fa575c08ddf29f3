package decoders

import (
	"time"

	"github.com/Aleph-Alpha/brokerlens/v1/observability"
)

// observe notifies the observer, if any.
//
// Notes:
//   - resource: the canonical schema file path
//   - subResource: the topic the file belongs to
func (r *Registry) observe(operation, resource, subResource string, duration time.Duration, err error, size int64, metadata map[string]interface{}) {
	if r == nil || r.observer == nil {
		return
	}

	r.observer.ObserveOperation(observability.OperationContext{
		Component:   "decoders",
		Operation:   operation,
		Resource:    resource,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Size:        size,
		Metadata:    metadata,
	})
}
