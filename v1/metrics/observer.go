package metrics

import (
	"github.com/Aleph-Alpha/brokerlens/v1/observability"
)

// Status label values of operations_total.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusMiss    = "miss"
)

// ObserveOperation records one reported operation. It implements
// observability.Observer and is safe for concurrent use.
//
// Resolutions whose metadata carries result=miss are counted with status
// "miss". Decoder compilations additionally feed compiled_schemas_total
// using the "outcome" metadata.
func (m *Metrics) ObserveOperation(ctx observability.OperationContext) {
	if m == nil {
		return
	}

	status := StatusSuccess
	switch {
	case ctx.Error != nil:
		status = StatusError
	case ctx.Metadata["result"] == "miss":
		status = StatusMiss
	}

	m.operationsTotal.WithLabelValues(ctx.Component, ctx.Operation, status).Inc()
	m.operationDuration.WithLabelValues(ctx.Component, ctx.Operation).Observe(ctx.Duration.Seconds())

	if ctx.Component == "decoders" && ctx.Operation == "compile" {
		outcome, _ := ctx.Metadata["outcome"].(string)
		if outcome == "" {
			outcome = status
		}
		m.compiledSchemas.WithLabelValues(outcome).Inc()
	}
}

var _ observability.Observer = (*Metrics)(nil)
