package codec

import (
	"time"

	"github.com/Aleph-Alpha/brokerlens/v1/observability"
)

func (r *Resolver) observeResolution(operation, url string, start time.Time, hit bool, err error) {
	if r == nil || r.observer == nil {
		return
	}

	result := "miss"
	if hit {
		result = "hit"
	}
	r.observer.ObserveOperation(observability.OperationContext{
		Component: "codec",
		Operation: operation,
		Resource:  url,
		Duration:  time.Since(start),
		Error:     err,
		Metadata:  map[string]interface{}{"result": result},
	})
}
