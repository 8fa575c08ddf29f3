// Package metrics exports brokerlens operations to Prometheus.
//
// *Metrics implements observability.Observer: hand it to the codec
// resolver and the decoder registry (WithObserver, or through fx) and every
// resolution and compilation is counted.
//
// Exposed series, each with a constant "service" label:
//
//	brokerlens_operations_total{component,operation,status}
//	brokerlens_operation_duration_seconds{component,operation}
//	brokerlens_compiled_schemas_total{outcome}
//
// status is "success", "error" or "miss" (a codec URL that resolved to
// nothing). outcome is "success" or "failure".
//
// Each Metrics has its own registry, so tests and embedded uses never
// collide with the global Prometheus registry. The registry is served at
// /metrics on Config.Address.
package metrics
