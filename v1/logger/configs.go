package logger

// Supported log levels.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// DefaultServiceName is attached to every entry when Config.ServiceName is empty.
const DefaultServiceName = "brokerlens"

// Config controls how the zap logger is built.
type Config struct {
	// Level is one of debug, info, warning or error. Anything else means info.
	Level string `yaml:"level" mapstructure:"level"`

	// ServiceName is emitted as the "service" field on every entry.
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`

	// EnableTracing adds trace_id and span_id to entries logged through the
	// *WithContext methods when the context carries a valid span.
	EnableTracing bool `yaml:"enable_tracing" mapstructure:"enable_tracing"`

	// Development switches to the human-readable console encoder.
	Development bool `yaml:"development" mapstructure:"development"`
}
